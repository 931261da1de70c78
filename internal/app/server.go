package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/config"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/upstream"
	"github.com/MrSnakeDoc/cfxlookup/internal/version"
)

// Relay is the `cfxlookup serve` process.
type Relay struct {
	cfg    *config.ServerConfig
	logger logger.Logger
	server *httpserver.Server
}

func NewRelay() *Relay {
	cfg := config.LoadServer()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	client := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	platform := upstream.NewPlatformDirectory(cfg.PlatformAPIURL, cfg.PlatformAPIKey, client)
	if !platform.Configured() {
		loggerClient.Warn("platform API key not configured, platform profile lookups will fail")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		CORSOrigins:      cfg.CORSOrigins,
		RateBurst:        cfg.RateBurst,
		RatePerMin:       cfg.RatePerMinute,
		Chat:             upstream.NewChatDirectory(cfg.ChatDirectoryURL, client),
		Platform:         platform,
		Avatars:          upstream.NewAvatarFetcher(client, int64(cfg.AvatarMaxBytes), cfg.AvatarAllowedHosts),
		AvatarMaxAge:     cfg.AvatarMaxAge,
		ChatDirectoryURL: cfg.ChatDirectoryURL,
		PlatformAPIURL:   cfg.PlatformAPIURL,
	}

	return &Relay{
		cfg:    cfg,
		logger: loggerClient,
		server: httpserver.New(cfg, loggerClient, d),
	}
}

func (a *Relay) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting cfxlookup relay %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ cfxlookup relay stopped cleanly")
	return nil
}
