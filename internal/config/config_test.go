package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Provider != "sqlite" {
		t.Fatalf("provider = %q, want sqlite", cfg.Database.Provider)
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Fatalf("conn max lifetime = %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis must be disabled by default")
	}
	if cfg.Labels.MinIO.Enabled() {
		t.Fatal("minio must be disabled by default")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: 9090
database:
  provider: mysql
  dsn: "binner:secret@tcp(127.0.0.1:3306)/binner?parseTime=true"
auth:
  token_expire: 2h
redis:
  host: cache.local
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Database.Provider != "mysql" {
		t.Fatalf("provider = %q, want mysql", cfg.Database.Provider)
	}
	if cfg.Auth.TokenExpire != 2*time.Hour {
		t.Fatalf("token expire = %v, want 2h", cfg.Auth.TokenExpire)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.Log.Level)
	}
	if got := cfg.Redis.Addr(); got != "cache.local:6379" {
		t.Fatalf("redis addr = %q", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "sqlite ok", cfg: Config{Database: DatabaseConfig{Provider: "sqlite", Path: "x.db"}}},
		{name: "gorm-sqlite ok", cfg: Config{Database: DatabaseConfig{Provider: "gorm-sqlite", Path: "x.db"}}},
		{name: "gorm-sqlite without path", cfg: Config{Database: DatabaseConfig{Provider: "gorm-sqlite"}}, wantErr: true},
		{name: "mysql without dsn", cfg: Config{Database: DatabaseConfig{Provider: "mysql"}}, wantErr: true},
		{name: "unknown provider", cfg: Config{Database: DatabaseConfig{Provider: "oracle", DSN: "x"}}, wantErr: true},
		{
			name:    "required auth without secret",
			cfg:     Config{Database: DatabaseConfig{Provider: "sqlite", Path: "x.db"}, Auth: AuthConfig{Required: true}},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
