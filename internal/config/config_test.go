package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_TYPE", "GUESS_TIME_LIMIT", "HASH_TEACHER_PIN", "RATE_LIMIT_REQUESTS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.GuessTimeLimit != 60*time.Second || cfg.WordCompleteDelay != time.Second {
		t.Errorf("unexpected play timing %v / %v", cfg.GuessTimeLimit, cfg.WordCompleteDelay)
	}
	if cfg.HashTeacherPin {
		t.Error("expected PIN hashing to be off by default")
	}
	if cfg.RateLimitRequests != 120 {
		t.Errorf("expected 120 requests, got %d", cfg.RateLimitRequests)
	}
}

func TestEnvParsing(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(*Config) bool
	}{
		{"duration", "GUESS_TIME_LIMIT", "30s", func(c *Config) bool { return c.GuessTimeLimit == 30*time.Second }},
		{"invalid duration falls back", "GUESS_TIME_LIMIT", "soon", func(c *Config) bool { return c.GuessTimeLimit == 60*time.Second }},
		{"bool", "HASH_TEACHER_PIN", "true", func(c *Config) bool { return c.HashTeacherPin }},
		{"invalid bool falls back", "TTS_ENABLED", "maybe", func(c *Config) bool { return c.TTSEnabled }},
		{"int", "RATE_LIMIT_REQUESTS", "5", func(c *Config) bool { return c.RateLimitRequests == 5 }},
		{"invalid int falls back", "RATE_LIMIT_REQUESTS", "lots", func(c *Config) bool { return c.RateLimitRequests == 120 }},
		{"string", "DATABASE_TYPE", "postgres", func(c *Config) bool { return c.DatabaseType == "postgres" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if cfg := Load(); !tt.check(cfg) {
				t.Errorf("%s=%q was not applied as expected", tt.key, tt.value)
			}
		})
	}
}
