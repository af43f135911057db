// Package garage provides vehicle lifecycle operations.
package garage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/kverlaine/pitwall/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for adding a vehicle.
type CreateOpts struct {
	Owner    string
	Nickname string
	Type     models.VehicleType
	Year     int
	Make     string
	Model    string
}

// GenerateID creates a unique vehicle ID in veh-xxxxx format (5-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("garage: generate ID: %w", err)
	}
	return "veh-" + hex.EncodeToString(b)[:5], nil
}

// Create adds a vehicle with an auto-generated ID.
func Create(db *gorm.DB, opts CreateOpts) (*models.Vehicle, error) {
	if opts.Owner == "" {
		return nil, fmt.Errorf("garage: owner is required")
	}
	if opts.Nickname == "" {
		return nil, fmt.Errorf("garage: nickname is required")
	}
	if !opts.Type.Valid() {
		return nil, fmt.Errorf("garage: vehicle type %q is not motorcycle or car", opts.Type)
	}

	id, err := generateUniqueID(db)
	if err != nil {
		return nil, err
	}

	vehicle := models.Vehicle{
		ID:       id,
		Owner:    opts.Owner,
		Nickname: opts.Nickname,
		Type:     opts.Type,
		Year:     opts.Year,
		Make:     opts.Make,
		Model:    opts.Model,
	}
	if err := db.Create(&vehicle).Error; err != nil {
		return nil, fmt.Errorf("garage: create: %w", err)
	}
	return &vehicle, nil
}

// Get retrieves an owner's vehicle by ID.
func Get(db *gorm.DB, owner, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := db.Where("id = ? AND owner = ?", id, owner).First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("garage: vehicle not found: %s", id)
		}
		return nil, fmt.Errorf("garage: get %s: %w", id, err)
	}
	return &vehicle, nil
}

// List returns an owner's vehicles ordered by nickname.
func List(db *gorm.DB, owner string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := db.Where("owner = ?", owner).Order("nickname ASC").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("garage: list: %w", err)
	}
	return vehicles, nil
}

// Delete removes an owner's vehicle. Its sessions are kept; they simply no
// longer resolve to a garage entry.
func Delete(db *gorm.DB, owner, id string) error {
	result := db.Where("id = ? AND owner = ?", id, owner).Delete(&models.Vehicle{})
	if result.Error != nil {
		return fmt.Errorf("garage: delete %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("garage: vehicle not found: %s", id)
	}
	return nil
}

// generateUniqueID generates an ID and retries once on collision.
func generateUniqueID(db *gorm.DB) (string, error) {
	for i := 0; i < 2; i++ {
		id, err := GenerateID()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.Vehicle{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("garage: check ID uniqueness: %w", err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("garage: could not generate unique ID")
}
