package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/bookmarks"
	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/sources/seedfile"
)

// BookmarkSink is where imported bookmarks go. *bookmarks.Store satisfies it.
type BookmarkSink interface {
	Contains(ctx context.Context, address string) (bool, error)
	Add(ctx context.Context, label, address string) (domain.Bookmark, error)
}

// ImportResult summarizes one pass over the seed file.
type ImportResult struct {
	Added   int
	Skipped int // already bookmarked
	Failed  int // rejected by the validating lookup
}

// SeedImporter imports the bookmark seed file into the bookmark store, once
// at startup, then on every interval tick and manual trigger.
type SeedImporter struct {
	loader        *seedfile.Loader
	sink          BookmarkSink
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
	stopOnce      sync.Once
	started       bool
	manualTrigger <-chan struct{}

	// OnChange, when set, is called after a pass that added bookmarks.
	OnChange func()
}

// NewSeedImporter creates a new importer. An interval <= 0 disables the
// periodic pass; manualTrigger may be nil.
func NewSeedImporter(
	seedFile string,
	sink BookmarkSink,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *SeedImporter {
	return &SeedImporter{
		loader:        seedfile.NewLoader(seedFile),
		sink:          sink,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start checks the seed file exists, then imports it in the background.
func (si *SeedImporter) Start(ctx context.Context) error {
	if _, err := os.Stat(si.loader.Path()); err != nil {
		return fmt.Errorf("bookmark seed file unavailable: %w", err)
	}
	si.started = true

	go func() {
		defer close(si.doneCh)

		var tick <-chan time.Time
		if si.interval > 0 {
			ticker := time.NewTicker(si.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		si.run(ctx)
		for {
			select {
			case <-tick:
				si.run(ctx)
			case <-si.manualTrigger:
				si.logger.Info("manual bookmark import triggered")
				si.run(ctx)
			case <-si.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the importer and waits for a running pass to finish.
func (si *SeedImporter) Stop() {
	si.stopOnce.Do(func() { close(si.stopCh) })
	if si.started {
		<-si.doneCh
	}
}

func (si *SeedImporter) run(ctx context.Context) {
	res, err := si.Import(ctx)
	if err != nil {
		si.logger.Error("failed to import bookmarks", logger.Error(err))
		return
	}
	if res.Added > 0 && si.OnChange != nil {
		si.OnChange()
	}
}

// Import adds every seed entry whose address is not bookmarked yet. Entries
// the lookup rejects are logged and skipped; they are retried next pass.
func (si *SeedImporter) Import(ctx context.Context) (ImportResult, error) {
	var res ImportResult

	entries, err := si.loader.Load()
	if err != nil {
		return res, fmt.Errorf("failed to load bookmark seed: %w", err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		present, err := si.sink.Contains(ctx, e.Address)
		if err != nil {
			return res, fmt.Errorf("failed to read bookmarks: %w", err)
		}
		if present {
			res.Skipped++
			continue
		}

		if _, err := si.sink.Add(ctx, e.Label, e.Address); err != nil {
			if errors.Is(err, bookmarks.ErrDuplicateAddress) {
				res.Skipped++
				continue
			}
			res.Failed++
			si.logger.Warn("seed bookmark rejected",
				logger.String("label", e.Label),
				logger.String("address", e.Address),
				logger.Error(err))
			continue
		}
		res.Added++
	}

	si.logger.Info("bookmark seed imported",
		logger.Int("added", res.Added),
		logger.Int("skipped", res.Skipped),
		logger.Int("failed", res.Failed))

	return res, nil
}
