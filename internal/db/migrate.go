package db

import (
	"fmt"

	"github.com/kverlaine/pitwall/internal/config"
	"github.com/kverlaine/pitwall/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns every GORM model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Profile{},
		&models.Vehicle{},
		&models.Track{},
		&models.Session{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedTracks upserts Track rows from configuration.
func SeedTracks(db *gorm.DB, tracks []config.TrackSeed) error {
	for _, ts := range tracks {
		track := models.Track{
			Name:     ts.Name,
			Location: ts.Location,
			LengthKm: ts.LengthKm,
			Active:   true,
		}

		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"location", "length_km", "active"}),
		}).Create(&track)
		if result.Error != nil {
			return fmt.Errorf("db: seed track %q: %w", ts.Name, result.Error)
		}
	}
	return nil
}

// SeedProfile ensures a Profile row exists for the owner. An existing tier
// is left alone so a pro upgrade survives re-running init.
func SeedProfile(db *gorm.DB, owner string) error {
	profile := models.Profile{Owner: owner, Tier: "free"}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}},
		DoNothing: true,
	}).Create(&profile)
	if result.Error != nil {
		return fmt.Errorf("db: seed profile for %q: %w", owner, result.Error)
	}
	return nil
}
