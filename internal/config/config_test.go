package config

import (
	"testing"
	"time"
)

func expectPanic(t *testing.T, name string) {
	t.Helper()
	if r := recover(); r == nil {
		t.Errorf("%s should have panicked", name)
	}
}

func TestRequireEnv(t *testing.T) {
	t.Setenv(env("TEST_REQUIRED"), "value")
	if got := requireEnv(env("TEST_REQUIRED")); got != "value" {
		t.Errorf("requireEnv() = %q, want value", got)
	}

	t.Run("missing", func(t *testing.T) {
		defer expectPanic(t, "requireEnv()")
		requireEnv(env("TEST_REQUIRED_MISSING"))
	})
}

func TestRequireEnvInt(t *testing.T) {
	t.Setenv(env("TEST_DB"), "42")
	if got := requireEnvInt(env("TEST_DB")); got != 42 {
		t.Errorf("requireEnvInt() = %d, want 42", got)
	}

	for name, value := range map[string]string{"invalid": "not_a_number", "missing": ""} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env("TEST_DB_BAD"), value)
			defer expectPanic(t, "requireEnvInt()")
			requireEnvInt(env("TEST_DB_BAD"))
		})
	}
}

// Optional settings fall back to their default on missing or unparsable
// values instead of failing startup.
func TestOptionalParsers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		check func(t *testing.T, key string)
	}{
		{
			name:  "duration",
			value: "5s",
			check: func(t *testing.T, key string) {
				if got := mustDuration(key, time.Second); got != 5*time.Second {
					t.Errorf("mustDuration() = %v", got)
				}
			},
		},
		{
			name:  "invalid duration",
			value: "soon",
			check: func(t *testing.T, key string) {
				if got := mustDuration(key, 10*time.Second); got != 10*time.Second {
					t.Errorf("mustDuration() = %v, want default", got)
				}
			},
		},
		{
			name:  "bool",
			value: "false",
			check: func(t *testing.T, key string) {
				if mustBool(key, true) {
					t.Error("mustBool() = true, want false")
				}
			},
		},
		{
			name:  "invalid bool",
			value: "maybe",
			check: func(t *testing.T, key string) {
				if !mustBool(key, true) {
					t.Error("mustBool() = false, want default")
				}
			},
		},
		{
			name:  "int",
			value: "7",
			check: func(t *testing.T, key string) {
				if got := getenvInt(key, 2); got != 7 {
					t.Errorf("getenvInt() = %d", got)
				}
			},
		},
		{
			name:  "invalid int",
			value: "seven",
			check: func(t *testing.T, key string) {
				if got := getenvInt(key, 2); got != 2 {
					t.Errorf("getenvInt() = %d, want default", got)
				}
			},
		},
		{
			name:  "unset string",
			value: "",
			check: func(t *testing.T, key string) {
				if got := getenv(key, "fallback"); got != "fallback" {
					t.Errorf("getenv() = %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := env("TEST_OPTIONAL")
			t.Setenv(key, tt.value)
			tt.check(t, key)
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(` a , "b",, 'c' `)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitAndTrim() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAndTrim()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitAndTrim("") != nil {
		t.Error("splitAndTrim(\"\") should be nil")
	}
}

func TestMustURL(t *testing.T) {
	t.Setenv("TEST_URL", "https://relay.example.com/")
	if got := mustURL("TEST_URL", "http://unused"); got != "https://relay.example.com" {
		t.Errorf("mustURL() = %q, want trailing slash trimmed", got)
	}

	t.Setenv("TEST_URL_BAD", "relay.example.com")
	defer func() {
		if r := recover(); r == nil {
			t.Error("mustURL() should have panicked on a schemeless URL")
		}
	}()
	mustURL("TEST_URL_BAD", "http://unused")
}

func TestLoadServerDefaults(t *testing.T) {
	cfg := LoadServer()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.PlatformAPIKey != "" {
		t.Errorf("PlatformAPIKey = %q, want empty by default", cfg.PlatformAPIKey)
	}
	if cfg.AvatarMaxAge != time.Hour {
		t.Errorf("AvatarMaxAge = %v, want 1h", cfg.AvatarMaxAge)
	}
	if cfg.RateBurst != 30 || cfg.RatePerMinute != 120 {
		t.Errorf("rate limit = %d/%d, want 30/120", cfg.RateBurst, cfg.RatePerMinute)
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("CFX_PLATFORM_API_KEY", "secret")
	t.Setenv("CFX_CHAT_DIRECTORY_URL", "http://127.0.0.1:9000/v1/user/")
	t.Setenv("CFX_ALLOWED_CIDRS", "10.0.0.0/8, 127.0.0.1")

	cfg := LoadServer()
	if cfg.PlatformAPIKey != "secret" {
		t.Errorf("PlatformAPIKey not loaded")
	}
	if cfg.ChatDirectoryURL != "http://127.0.0.1:9000/v1/user" {
		t.Errorf("ChatDirectoryURL = %q", cfg.ChatDirectoryURL)
	}
	if len(cfg.AllowedCIDRS) != 2 {
		t.Errorf("AllowedCIDRS = %v, want 2 entries", cfg.AllowedCIDRS)
	}
}

func TestLoadShell(t *testing.T) {
	t.Setenv("CFX_STORE", "memory")
	t.Setenv("CFX_GATE_PRESSES", "3")

	cfg := LoadShell()
	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want memory", cfg.Store)
	}
	if cfg.GateKey != "g" || cfg.GatePresses != 3 {
		t.Errorf("gate = %q x%d, want g x3", cfg.GateKey, cfg.GatePresses)
	}
	if cfg.RelayURL != "http://localhost:8080" {
		t.Errorf("RelayURL = %q", cfg.RelayURL)
	}
}

func TestLoadShellRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store", env: map[string]string{"CFX_STORE": "sqlite"}},
		{name: "redis without addr", env: map[string]string{"CFX_STORE": "redis"}},
		{name: "multi-char gate key", env: map[string]string{"CFX_GATE_KEY": "gg"}},
		{name: "zero presses", env: map[string]string{"CFX_GATE_PRESSES": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("LoadShell() should have panicked")
				}
			}()
			LoadShell()
		})
	}
}
