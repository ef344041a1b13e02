package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults to load, got error: %v", err)
	}

	if cfg.Pricing.RiskFreeRatePct != 5.0 {
		t.Errorf("expected default risk-free rate 5.0, got %v", cfg.Pricing.RiskFreeRatePct)
	}
	if cfg.Scan.Workers != 3 {
		t.Errorf("expected 3 workers by default, got %d", cfg.Scan.Workers)
	}
	if cfg.GEX.CallWallThreshold != 0.3 {
		t.Errorf("expected call wall threshold 0.3, got %v", cfg.GEX.CallWallThreshold)
	}
	if cfg.Events.LookaheadDays != 10 {
		t.Errorf("expected 10-day lookahead, got %d", cfg.Events.LookaheadDays)
	}
	if cfg.Decision.BaseConfidence != 50 {
		t.Errorf("expected base confidence 50, got %d", cfg.Decision.BaseConfidence)
	}
	if len(cfg.Symbols) == 0 {
		t.Error("expected default symbols")
	}
	if len(cfg.Calendar.FOMCDates) == 0 {
		t.Error("expected default FOMC dates")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	_ = os.Setenv("GEXDESK_SCAN_WORKERS", "7")
	defer func() { _ = os.Unsetenv("GEXDESK_SCAN_WORKERS") }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scan.Workers != 7 {
		t.Errorf("expected env override to 7 workers, got %d", cfg.Scan.Workers)
	}
}

func TestEventCalendarFromConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cal := cfg.EventCalendar()
	if len(cal.FOMCDates()) != len(cfg.Calendar.FOMCDates) {
		t.Errorf("calendar lost FOMC dates: %d vs %d",
			len(cal.FOMCDates()), len(cfg.Calendar.FOMCDates))
	}
}

func TestResolveDataDateExplicit(t *testing.T) {
	date, err := ResolveDataDate("ignored", "2026-03-18")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != "2026-03-18" {
		t.Errorf("expected explicit date back, got %s", date)
	}

	if _, err := ResolveDataDate("ignored", "03/18/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestResolveDataDateLatest(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"2026-03-16", "2026-03-18", "2026-03-17"} {
		sub := filepath.Join(dir, d)
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(sub, "SPX.json"), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Empty folders are skipped.
	if err := os.MkdirAll(filepath.Join(dir, "2026-03-19"), 0o755); err != nil {
		t.Fatal(err)
	}

	date, err := ResolveDataDate(dir, "latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != "2026-03-18" {
		t.Errorf("expected newest non-empty folder 2026-03-18, got %s", date)
	}
}

func TestResolveDataDateEmptyDir(t *testing.T) {
	if _, err := ResolveDataDate(t.TempDir(), "latest"); err == nil {
		t.Error("expected error when no date folders exist")
	}
}
