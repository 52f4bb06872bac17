package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8000" {
		t.Fatalf("expected default port 8000, got %q", cfg.HTTPPort)
	}
	if cfg.GitHubPath != "logs.csv" || cfg.GitHubBranch != "main" {
		t.Fatalf("unexpected github defaults: %q %q", cfg.GitHubPath, cfg.GitHubBranch)
	}
	if cfg.LoggingEnabled() {
		t.Fatal("logging must be disabled without remote-store identifiers")
	}
}

func TestLoggingEnabled_RequiresAllThreeIdentifiers(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GITHUB_TOKEN", "ghp_x")
	t.Setenv("GH_OWNER", "acme")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.LoggingEnabled() {
		t.Fatal("missing GH_REPO must keep logging disabled")
	}

	t.Setenv("GH_REPO", "tariff-logs")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.LoggingEnabled() {
		t.Fatal("expected logging enabled with all identifiers set")
	}
}
