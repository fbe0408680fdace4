package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("VISAPATH_DATABASE_DSN", "file:visapath.db")
	t.Setenv("VISAPATH_DATABASE_DRIVER", "SQLite")
	t.Setenv("VISAPATH_ASSESSMENT_FRESHNESS", "48h")
	t.Setenv("VISAPATH_REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("driver: got %q", cfg.Database.Driver)
	}
	if cfg.Assessment.Freshness != 48*time.Hour {
		t.Fatalf("freshness: got %v", cfg.Assessment.Freshness)
	}
	if cfg.Suggestion.CompletedRetention != 30*24*time.Hour {
		t.Fatalf("retention default: got %v", cfg.Suggestion.CompletedRetention)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected http/redis config: %+v %+v", cfg.HTTP, cfg.Redis)
	}
	if !cfg.UsesDefaultSecret() {
		t.Fatalf("expected default jwt secret")
	}
}

func TestLoadConfigFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visapath.yaml")
	body := `
database:
  driver: postgres
  dsn: postgres://localhost/visapath
auth:
  jwt_secret: from-file
suggestion:
  completed_retention: 240h
otel:
  enabled: true
  sample_ratio: 0.25
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VISAPATH_AUTH_JWT_SECRET", "from-env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("env should win over file, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Suggestion.CompletedRetention != 240*time.Hour {
		t.Fatalf("retention: got %v", cfg.Suggestion.CompletedRetention)
	}
	if !cfg.Otel.Enabled || cfg.Otel.SampleRatio != 0.25 {
		t.Fatalf("otel: got %+v", cfg.Otel)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing dsn", nil, "database.dsn"},
		{"bad driver", map[string]string{"VISAPATH_DATABASE_DSN": "x", "VISAPATH_DATABASE_DRIVER": "mysql"}, "database.driver"},
		{"bad ratio", map[string]string{"VISAPATH_DATABASE_DSN": "x", "VISAPATH_OTEL_SAMPLE_RATIO": "1.5"}, "sample_ratio"},
		{"zero freshness", map[string]string{"VISAPATH_DATABASE_DSN": "x", "VISAPATH_ASSESSMENT_FRESHNESS": "0s"}, "freshness"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
