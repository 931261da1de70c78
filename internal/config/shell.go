package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store backends for the shell's keyed state.
const (
	StoreBolt   = "bolt"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// ShellConfig configures the interactive shell (`cfxlookup shell`).
type ShellConfig struct {
	LogLevel string
	LogFile  string // the terminal belongs to the UI, so logs go to a file

	ServerDirectoryURL string        // game server directory, queried directly
	RelayURL           string        // base URL of `cfxlookup serve`
	LookupTimeout      time.Duration // per lookup request

	Store     string // StoreBolt | StoreRedis | StoreMemory
	StorePath string // bbolt file

	// Redis (Store == StoreRedis)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold  int           // warn after this many attempts

	BookmarkFile           string        // optional yaml seed, empty = no import
	BookmarkReloadInterval time.Duration // 0 = import once at startup

	GateKey     string
	GatePresses int
}

func LoadShell() *ShellConfig {
	dataDir := defaultDataDir()

	cfg := &ShellConfig{
		LogLevel: getenv(env("LOG_LEVEL"), "info"),
		LogFile:  getenv(env("LOG_FILE"), filepath.Join(dataDir, "cfxlookup.log")),

		ServerDirectoryURL: mustURL(env("SERVER_DIRECTORY_URL"), "https://servers-frontend.fivem.net"),
		RelayURL:           mustURL(env("RELAY_URL"), "http://localhost:8080"),
		LookupTimeout:      mustDuration(env("LOOKUP_TIMEOUT"), 15*time.Second),

		Store:     getenv(env("STORE"), StoreBolt),
		StorePath: getenv(env("STORE_PATH"), filepath.Join(dataDir, "state.db")),

		BookmarkFile:           getenv(env("BOOKMARK_FILE"), ""),
		BookmarkReloadInterval: mustDuration(env("BOOKMARK_RELOAD_INTERVAL"), 0),

		GateKey:     getenv(env("GATE_KEY"), "g"),
		GatePresses: getenvInt(env("GATE_PRESSES"), 2),
	}

	switch cfg.Store {
	case StoreBolt, StoreMemory:
	case StoreRedis:
		cfg.RedisAddr = requireEnv(env("REDIS_ADDR"))
		cfg.RedisUser = getenv(env("REDIS_USERNAME"), "default")
		cfg.RedisPassword = getenv(env("REDIS_PASSWORD"), "")
		cfg.RedisDB = requireEnvInt(env("REDIS_DB"))
		cfg.RedisDT = mustDuration(env("REDIS_DIAL_TIMEOUT"), 5*time.Second)
		cfg.RedisRT = mustDuration(env("REDIS_READ_TIMEOUT"), 3*time.Second)
		cfg.RedisWT = mustDuration(env("REDIS_WRITE_TIMEOUT"), 3*time.Second)
		cfg.RedisMaxWait = mustDuration(env("REDIS_MAX_WAIT"), 10*time.Second)
		cfg.RedisPingTimeout = mustDuration(env("REDIS_PING_TIMEOUT"), 5*time.Second)
		cfg.RedisPoolSize = getenvInt(env("REDIS_POOL_SIZE"), 4)
		cfg.RedisConnectTimeout = mustDuration(env("REDIS_CONNECT_TIMEOUT"), 30*time.Second)
		cfg.RedisRetryInterval = mustDuration(env("REDIS_RETRY_INTERVAL"), 2*time.Second)
		cfg.RedisWarnThreshold = getenvInt(env("REDIS_WARN_THRESHOLD"), 3)
	default:
		panic(fmt.Sprintf("❌ FATAL: %s must be one of %s, %s, %s (got %q)",
			env("STORE"), StoreBolt, StoreRedis, StoreMemory, cfg.Store))
	}

	if len([]rune(cfg.GateKey)) != 1 {
		panic(fmt.Sprintf("❌ FATAL: %s must be a single character, got %q", env("GATE_KEY"), cfg.GateKey))
	}
	if cfg.GatePresses < 1 {
		panic(fmt.Sprintf("❌ FATAL: %s must be >= 1, got %d", env("GATE_PRESSES"), cfg.GatePresses))
	}

	cfgCopy := *cfg
	if cfg.RedisPassword != "" {
		cfgCopy.RedisPassword = redacted
	}
	debugDump(cfg.LogLevel, "shell", cfgCopy)

	return cfg
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cfxlookup")
	}
	return "."
}
