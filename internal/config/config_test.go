package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("DISCORD_APP_ID", "app")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "3001" {
		t.Fatalf("unexpected default port %q", cfg.Server.Port)
	}
	if cfg.Delivery.Backend != "put" {
		t.Fatalf("unexpected default backend %q", cfg.Delivery.Backend)
	}
	if cfg.Delivery.Threshold() != 25*1024*1024 {
		t.Fatalf("unexpected default threshold %d", cfg.Delivery.Threshold())
	}
	if cfg.Media.YtdlpPath != "yt-dlp" {
		t.Fatalf("unexpected default yt-dlp path %q", cfg.Media.YtdlpPath)
	}
}

func TestLoadMissingTokenFails(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_APP_ID", "app")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error without a token")
	}
}

func TestEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GRABBIT_SIZE_LIMIT_MB", "100")
	t.Setenv("GRABBIT_UPLOAD_ENDPOINT", "https://files.internal")
	t.Setenv("GRABBIT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Delivery.Threshold() != 100*1024*1024 {
		t.Fatalf("env size limit not applied, threshold %d", cfg.Delivery.Threshold())
	}
	if cfg.Delivery.UploadEndpoint != "https://files.internal" {
		t.Fatalf("env endpoint not applied: %q", cfg.Delivery.UploadEndpoint)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env log level not applied: %q", cfg.Logging.Level)
	}
}

func TestYAMLFileWithEnvOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: \"4000\"\ndelivery:\n  size_limit_mb: 50\n  retention_note: Expires in 7 days\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Fatalf("env should override file, got port %q", cfg.Server.Port)
	}
	if cfg.Delivery.SizeLimitMB != 50 {
		t.Fatalf("file value not applied, size limit %d", cfg.Delivery.SizeLimitMB)
	}
	if cfg.Delivery.RetentionNote != "Expires in 7 days" {
		t.Fatalf("file retention note not applied: %q", cfg.Delivery.RetentionNote)
	}
}

func TestS3BackendRequiresBucket(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GRABBIT_UPLOAD_BACKEND", "s3")
	t.Setenv("GRABBIT_S3_BUCKET", "")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for s3 backend without bucket")
	}
}

func TestUnknownBackendRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GRABBIT_UPLOAD_BACKEND", "ftp")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
