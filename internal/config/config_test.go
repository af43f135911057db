package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
owner: alice
free_session_limit: 25

database:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  name: pitwall_alice
  user: pitwall

server:
  port: 9090

notify:
  platform: slack
  channel: C0123456
  token: xoxb-test
  digest_cron: "30 17 * * 5"

tracks:
  - name: Thunderhill East
    location: Willows, CA
    length_km: 3.2
  - name: Laguna Seca
    location: Monterey, CA
    length_km: 3.602
`

const minimalYAML = `
owner: bob
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Owner != "alice" {
		t.Errorf("Owner = %q, want %q", cfg.Owner, "alice")
	}
	if cfg.FreeSessionLimit != 25 {
		t.Errorf("FreeSessionLimit = %d, want 25", cfg.FreeSessionLimit)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.Database.Host != "10.0.0.5" {
		t.Errorf("Database.Host = %q, want 10.0.0.5", cfg.Database.Host)
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("Database.Port = %d, want 3307", cfg.Database.Port)
	}
	if cfg.Database.Name != "pitwall_alice" {
		t.Errorf("Database.Name = %q, want pitwall_alice", cfg.Database.Name)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Notify.Platform != "slack" || cfg.Notify.Channel != "C0123456" {
		t.Errorf("Notify = %+v, want slack on C0123456", cfg.Notify)
	}
	if cfg.Notify.DigestCron != "30 17 * * 5" {
		t.Errorf("Notify.DigestCron = %q, want 30 17 * * 5", cfg.Notify.DigestCron)
	}
	if len(cfg.Tracks) != 2 {
		t.Fatalf("len(Tracks) = %d, want 2", len(cfg.Tracks))
	}
	if cfg.Tracks[1].Name != "Laguna Seca" || cfg.Tracks[1].LengthKm != 3.602 {
		t.Errorf("Tracks[1] = %+v", cfg.Tracks[1])
	}
}

func TestParse_MinimalDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite default", cfg.Database.Driver)
	}
	if cfg.Database.Path != "pitwall.db" {
		t.Errorf("Database.Path = %q, want pitwall.db", cfg.Database.Path)
	}
	if cfg.Database.Name != "pitwall_bob" {
		t.Errorf("Database.Name = %q, want pitwall_bob", cfg.Database.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.FreeSessionLimit != 10 {
		t.Errorf("FreeSessionLimit = %d, want 10", cfg.FreeSessionLimit)
	}
	if cfg.Notify.Platform != "" {
		t.Errorf("Notify.Platform = %q, want off by default", cfg.Notify.Platform)
	}
	if cfg.Notify.DigestCron != "0 18 * * 0" {
		t.Errorf("Notify.DigestCron = %q, want 0 18 * * 0", cfg.Notify.DigestCron)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing owner", `server: {port: 8080}`, "owner is required"},
		{"bad driver", "owner: bob\ndatabase: {driver: postgres}", "not sqlite or mysql"},
		{"bad platform", "owner: bob\nnotify: {platform: teams, channel: c, token: t}", "not slack or discord"},
		{"platform without channel", "owner: bob\nnotify: {platform: discord, token: t}", "notify.channel is required"},
		{"platform without token", "owner: bob\nnotify: {platform: slack, channel: c}", "notify.token is required"},
		{"unnamed track", "owner: bob\ntracks: [{location: nowhere}]", "tracks[0].name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("owner: [unclosed")); err == nil {
		t.Fatal("expected parse error for invalid YAML")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pitwall.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Owner != "bob" {
		t.Errorf("Owner = %q, want bob", cfg.Owner)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
