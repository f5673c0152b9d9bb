package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendSheets {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendSheets)
	}
	if cfg.League != "LIGA" {
		t.Errorf("League = %q, want LIGA", cfg.League)
	}
	if len(cfg.Teams) != 4 {
		t.Errorf("Teams = %v, want 4 teams", cfg.Teams)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %s, want 1h", cfg.CacheTTL)
	}
	if cfg.Sheets.LedgerSheet != "main" {
		t.Errorf("LedgerSheet = %q, want main", cfg.Sheets.LedgerSheet)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	body := []byte("backend: sqlite\nsqlite_path: /tmp/x.db\ncache_ttl: 5m\nadmins: [42, 7]\nteams: [A, B]\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.SQLitePath != "/tmp/x.db" {
		t.Errorf("got backend %q path %q", cfg.Backend, cfg.SQLitePath)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %s, want 5m", cfg.CacheTTL)
	}
	if !cfg.IsAdmin(42) || cfg.IsAdmin(1) {
		t.Errorf("IsAdmin mismatch for admins %v", cfg.Admins)
	}
	if len(cfg.Teams) != 2 {
		t.Errorf("Teams = %v", cfg.Teams)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MRL_LEAGUE", "COPA")
	t.Setenv("MRL_SHEETS_SPREADSHEET_ID", "abc123")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.League != "COPA" {
		t.Errorf("League = %q, want COPA", cfg.League)
	}
	if cfg.Sheets.SpreadsheetID != "abc123" {
		t.Errorf("SpreadsheetID = %q, want abc123", cfg.Sheets.SpreadsheetID)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: excel\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, User_DB: "u", PasswordDB: "p", DBName: "n"}
	want := "host=db user=u password=p dbname=n port=5433 sslmode=disable TimeZone=UTC"
	if got := cfg.PostgresDSN(); got != want {
		t.Errorf("PostgresDSN = %q, want %q", got, want)
	}
}
