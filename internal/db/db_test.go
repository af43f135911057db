package db

import (
	"path/filepath"
	"testing"

	"github.com/kverlaine/pitwall/internal/config"
	"github.com/kverlaine/pitwall/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestDSN(t *testing.T) {
	dc := config.DatabaseConfig{User: "pitwall", Host: "10.0.0.5", Port: 3307, Name: "pitwall_alice"}
	want := "pitwall@tcp(10.0.0.5:3307)/pitwall_alice?parseTime=true"
	if got := DSN(dc); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestConnect_UnknownDriver(t *testing.T) {
	if _, err := Connect(config.DatabaseConfig{Driver: "postgres"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestConnect_SqliteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitwall.db")
	gdb, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
}

func TestSeedTracks_UpsertsByName(t *testing.T) {
	gdb := openTestDB(t)

	seeds := []config.TrackSeed{
		{Name: "Thunderhill East", Location: "Willows, CA", LengthKm: 3.2},
	}
	if err := SeedTracks(gdb, seeds); err != nil {
		t.Fatalf("SeedTracks: %v", err)
	}

	// Re-seeding with updated details must not duplicate the row.
	seeds[0].LengthKm = 4.8
	if err := SeedTracks(gdb, seeds); err != nil {
		t.Fatalf("SeedTracks again: %v", err)
	}

	var tracks []models.Track
	if err := gdb.Find(&tracks).Error; err != nil {
		t.Fatalf("find tracks: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("len(tracks) = %d, want 1", len(tracks))
	}
	if tracks[0].LengthKm != 4.8 {
		t.Errorf("LengthKm = %v, want 4.8 after upsert", tracks[0].LengthKm)
	}
}

func TestTrackInactivePersists(t *testing.T) {
	gdb := openTestDB(t)

	retired := models.Track{Name: "Closed Course", Active: false}
	if err := gdb.Create(&retired).Error; err != nil {
		t.Fatalf("create track: %v", err)
	}

	var loaded models.Track
	if err := gdb.First(&loaded, "name = ?", "Closed Course").Error; err != nil {
		t.Fatalf("load track: %v", err)
	}
	if loaded.Active {
		t.Error("Active = true after inserting an inactive track")
	}

	var active []models.Track
	if err := gdb.Where("active = ?", true).Find(&active).Error; err != nil {
		t.Fatalf("find active tracks: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active tracks = %+v, want none", active)
	}
}

func TestSeedProfile_KeepsExistingTier(t *testing.T) {
	gdb := openTestDB(t)

	if err := SeedProfile(gdb, "alice"); err != nil {
		t.Fatalf("SeedProfile: %v", err)
	}
	if err := gdb.Model(&models.Profile{}).Where("owner = ?", "alice").Update("tier", "pro").Error; err != nil {
		t.Fatalf("upgrade tier: %v", err)
	}
	if err := SeedProfile(gdb, "alice"); err != nil {
		t.Fatalf("SeedProfile rerun: %v", err)
	}

	var profile models.Profile
	if err := gdb.First(&profile, "owner = ?", "alice").Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.Tier != "pro" {
		t.Errorf("Tier = %q, want pro preserved across re-init", profile.Tier)
	}
}

func TestSessionJSONColumnsRoundTrip(t *testing.T) {
	gdb := openTestDB(t)

	in := models.Session{
		ID:        "ses-00001",
		Owner:     "alice",
		VehicleID: "veh-00001",
		Date:      "2026-02-24",
		Tires:     models.Tires{Front: models.TireEnd{Brand: "Pirelli", Pressure: "32"}},
		ExtraModules: &models.ExtraModules{
			Geometry: map[string]string{"sag_front": "35"},
		},
		EnabledModules: models.EnabledModules{models.ModuleTires: true, models.ModuleNotes: true},
	}
	if err := gdb.Create(&in).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	var out models.Session
	if err := gdb.First(&out, "id = ?", "ses-00001").Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if out.Tires.Front.Brand != "Pirelli" || out.Tires.Front.Pressure != "32" {
		t.Errorf("Tires = %+v", out.Tires)
	}
	if out.ExtraModules == nil || out.ExtraModules.Geometry["sag_front"] != "35" {
		t.Errorf("ExtraModules = %+v", out.ExtraModules)
	}
	if !out.EnabledModules[models.ModuleTires] {
		t.Errorf("EnabledModules = %+v", out.EnabledModules)
	}

	// A legacy row without flags must load with a nil map, the tag the
	// resolver branches on.
	legacy := models.Session{ID: "ses-00002", Owner: "alice", VehicleID: "veh-00001", Date: "2026-02-20"}
	if err := gdb.Create(&legacy).Error; err != nil {
		t.Fatalf("create legacy session: %v", err)
	}
	var loaded models.Session
	if err := gdb.First(&loaded, "id = ?", "ses-00002").Error; err != nil {
		t.Fatalf("load legacy session: %v", err)
	}
	if loaded.EnabledModules != nil {
		t.Errorf("legacy EnabledModules = %+v, want nil", loaded.EnabledModules)
	}
}
