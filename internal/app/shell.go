package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/cfxlookup/internal/bookmarks"
	"github.com/MrSnakeDoc/cfxlookup/internal/config"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/lookup"
	"github.com/MrSnakeDoc/cfxlookup/internal/redis"
	"github.com/MrSnakeDoc/cfxlookup/internal/scheduler"
	"github.com/MrSnakeDoc/cfxlookup/internal/session"
	"github.com/MrSnakeDoc/cfxlookup/internal/shell"
	"github.com/MrSnakeDoc/cfxlookup/internal/store"
	boltstore "github.com/MrSnakeDoc/cfxlookup/internal/store/bolt"
	redisstore "github.com/MrSnakeDoc/cfxlookup/internal/store/redis"
	"github.com/MrSnakeDoc/cfxlookup/internal/tui"
	"github.com/MrSnakeDoc/cfxlookup/internal/utils"
	"github.com/MrSnakeDoc/cfxlookup/internal/version"
)

// Shell is the `cfxlookup shell` process: the terminal UI over a keyed store.
type Shell struct {
	cfg       *config.ShellConfig
	logger    logger.Logger
	kv        store.KV
	resolver  *lookup.Resolver
	bookmarks *bookmarks.Store
	shell     *shell.Shell
}

func NewShell() (*Shell, error) {
	cfg := config.LoadShell()

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	loggerClient := logger.NewWithOutput(cfg.LogLevel, false, []string{cfg.LogFile})

	kv, err := openStore(cfg, loggerClient)
	if err != nil {
		_ = loggerClient.Sync()
		return nil, err
	}

	resolver := lookup.NewResolver(cfg.ServerDirectoryURL, cfg.RelayURL, lookup.Options{Timeout: cfg.LookupTimeout})
	bm := bookmarks.New(kv, resolver.Server)
	sh := shell.New(resolver, session.NewAccess(kv), session.NewChatMemory(kv), bm, loggerClient)

	return &Shell{
		cfg:       cfg,
		logger:    loggerClient,
		kv:        kv,
		resolver:  resolver,
		bookmarks: bm,
		shell:     sh,
	}, nil
}

func openStore(cfg *config.ShellConfig, log logger.Logger) (store.KV, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisstore.NewStore(client), nil
	case config.StoreMemory:
		log.Warn("using in-memory store, state is lost on exit")
		return store.NewMemory(), nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		kv, err := boltstore.Open(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		log.Info("bolt store opened", logger.String("path", cfg.StorePath))
		return kv, nil
	}
}

func (a *Shell) Run() error {
	defer func() { _ = a.logger.Sync() }()
	defer utils.MustClose(a.kv, "store", a.logger)

	a.logger.Info("starting cfxlookup shell",
		logger.String("version", version.Version),
		logger.String("store", a.cfg.Store))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	unlocked, err := a.shell.Restore(ctx)
	if err != nil {
		a.logger.Warn("failed to restore shell state", logger.Error(err))
	}

	var reload chan struct{}
	if a.cfg.BookmarkFile != "" {
		reload = make(chan struct{}, 1)
	}

	model := tui.New(ctx, a.shell, a.logger, unlocked, tui.Options{
		GateKey:     a.cfg.GateKey,
		GatePresses: a.cfg.GatePresses,
		RelayURL:    a.cfg.RelayURL,
		Reload:      reload,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if reload != nil {
		importer := scheduler.NewSeedImporter(
			a.cfg.BookmarkFile,
			a.bookmarks,
			a.logger,
			a.cfg.BookmarkReloadInterval,
			reload,
		)
		importer.OnChange = func() { program.Send(tui.BookmarksChangedMsg{}) }
		if err := importer.Start(ctx); err != nil {
			a.logger.Warn("bookmark import disabled", logger.Error(err))
		} else {
			a.logger.Info("bookmark importer started",
				logger.String("file", a.cfg.BookmarkFile),
				logger.Duration("interval", a.cfg.BookmarkReloadInterval))
			defer importer.Stop()
			defer cancel()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("shell exited: %w", err)
	}

	a.logger.Info("cfxlookup shell stopped")
	return nil
}
