package config

import "time"

// ServerConfig configures the relay server (`cfxlookup serve`).
type ServerConfig struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Upstreams
	ChatDirectoryURL string        // chat user directory, the id is appended as a path segment
	PlatformAPIURL   string        // platform player summaries endpoint
	PlatformAPIKey   string        // optional here; relay answers 5xx while it is missing
	UpstreamTimeout  time.Duration // per upstream request

	// Avatar relay
	AvatarMaxAge       time.Duration // Cache-Control max-age on relayed images
	AvatarMaxBytes     int           // images larger than this are refused
	AvatarAllowedHosts []string      // optional, empty = any host

	// Access restrictions
	AllowedHosts []string // optional, restrict relay routes to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	CORSOrigins  []string // optional, origins allowed to call the relay from a browser

	// Rate limiting (relay routes, per client IP)
	RateBurst     int
	RatePerMinute int
}

func LoadServer() *ServerConfig {
	cfg := &ServerConfig{
		// Server settings
		ListenPort:      getenv(env("LISTEN_PORT"), ":8080"),
		ShutdownTimeout: mustDuration(env("SHUTDOWN_TIMEOUT"), 5*time.Second),

		// Logging
		LogLevel:  getenv(env("LOG_LEVEL"), "info"),
		PrettyLog: mustBool(env("PRETTY_LOG"), true),

		// Upstreams
		ChatDirectoryURL: mustURL(env("CHAT_DIRECTORY_URL"), "https://discordlookup.mesalytic.moe/v1/user"),
		PlatformAPIURL:   mustURL(env("PLATFORM_API_URL"), "https://api.steampowered.com/ISteamUser/GetPlayerSummaries/v2"),
		PlatformAPIKey:   getenv(env("PLATFORM_API_KEY"), ""),
		UpstreamTimeout:  mustDuration(env("UPSTREAM_TIMEOUT"), 10*time.Second),

		// Avatar relay
		AvatarMaxAge:       mustDuration(env("AVATAR_MAX_AGE"), time.Hour),
		AvatarMaxBytes:     getenvInt(env("AVATAR_MAX_BYTES"), 5<<20),
		AvatarAllowedHosts: getenvSlice(env("AVATAR_ALLOWED_HOSTS")),

		// Access restrictions
		AllowedHosts: getenvSlice(env("ALLOWED_HOSTS")),
		AllowedCIDRS: getenvSlice(env("ALLOWED_CIDRS")),
		TrustProxy:   mustBool(env("TRUST_PROXY"), false),
		CORSOrigins:  getenvSlice(env("CORS_ORIGINS")),

		RateBurst:     getenvInt(env("RATE_BURST"), 30),
		RatePerMinute: getenvInt(env("RATE_PER_MINUTE"), 120),
	}

	cfgCopy := *cfg
	if cfgCopy.PlatformAPIKey != "" {
		cfgCopy.PlatformAPIKey = redacted
	}
	debugDump(cfg.LogLevel, "server", cfgCopy)

	return cfg
}
