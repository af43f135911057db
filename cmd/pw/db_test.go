package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a sqlite config into a temp dir and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pitwall.yaml")
	content := "owner: alice\n" +
		"database:\n" +
		"  driver: sqlite\n" +
		"  path: " + filepath.Join(dir, "pitwall.db") + "\n" +
		"tracks:\n" +
		"  - name: Thunderhill East\n" +
		"    location: Willows, CA\n" +
		"    length_km: 3.2\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func TestDBCmd_Help(t *testing.T) {
	out, err := runCmd(t, "db", "--help")
	if err != nil {
		t.Fatalf("db --help failed: %v", err)
	}
	if !strings.Contains(out, "Database management") {
		t.Errorf("expected help to mention 'Database management', got: %s", out)
	}
	if !strings.Contains(out, "init") {
		t.Errorf("expected help to list 'init' subcommand, got: %s", out)
	}
}

func TestDBInitCmd_MissingConfig(t *testing.T) {
	_, err := runCmd(t, "db", "init", "--config", "/nonexistent/pitwall.yaml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}

func TestDBInitCmd_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pitwall.yaml")
	if err := os.WriteFile(cfgPath, []byte("database:\n  driver: sqlite\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runCmd(t, "db", "init", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected error for config without owner")
	}
	if !strings.Contains(err.Error(), "owner is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "owner is required")
	}
}

func TestDBInitCmd_Sqlite(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCmd(t, "db", "init", "--config", cfgPath)
	if err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Migrated 4 tables") {
		t.Errorf("expected migration summary, got: %s", out)
	}
	if !strings.Contains(out, "Thunderhill East") {
		t.Errorf("expected seeded track name, got: %s", out)
	}
	if !strings.Contains(out, "initialized successfully") {
		t.Errorf("expected success message, got: %s", out)
	}
}

func TestDBResetCmd_SqliteWithYes(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if out, err := runCmd(t, "db", "init", "--config", cfgPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	out, err := runCmd(t, "db", "reset", "--config", cfgPath, "--yes")
	if err != nil {
		t.Fatalf("db reset failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Removed database file") {
		t.Errorf("expected file removal message, got: %s", out)
	}
	if !strings.Contains(out, "reset successfully") {
		t.Errorf("expected reset success message, got: %s", out)
	}
}
