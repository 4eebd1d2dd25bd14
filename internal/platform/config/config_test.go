package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.AppName != "car-collection" {
		t.Fatalf("expected default app name, got %q", cfg.AppName)
	}
	if cfg.MinioBucket != "car-images" {
		t.Fatalf("expected default bucket, got %q", cfg.MinioBucket)
	}
	if cfg.ExportAPIBaseURL != "https://api.github.com" || cfg.ExportBranch != "main" {
		t.Fatalf("unexpected export defaults: %q %q", cfg.ExportAPIBaseURL, cfg.ExportBranch)
	}
}

func TestLoad_ReadsEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://localhost/cars")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.Addr())
	}
	if cfg.DBDSN != "postgres://localhost/cars" || !cfg.MinioUseSSL {
		t.Fatalf("env not applied: %#v", cfg)
	}
}

func TestLoad_RejectsBadExportRepo(t *testing.T) {
	t.Setenv("EXPORT_TOKEN", "ghp_x")
	t.Setenv("EXPORT_REPO", "sin-owner")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for EXPORT_REPO without owner/name")
	}
}
