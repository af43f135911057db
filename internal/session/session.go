// Package session provides session storage operations and glues the setup
// resolution engine to persisted records.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/kverlaine/pitwall/internal/garage"
	"github.com/kverlaine/pitwall/internal/models"
	"github.com/kverlaine/pitwall/internal/setup"
	"gorm.io/gorm"
)

// ErrFreeLimit is returned by Create when a free-tier owner is at their
// session cap.
var ErrFreeLimit = errors.New("session: free plan session limit reached; upgrade to pro for unlimited sessions")

// defaultCandidateLimit caps how many earlier rows the previous-session
// query pulls before the in-memory selector runs.
const defaultCandidateLimit = 10

// CreateOpts holds parameters for logging a session.
type CreateOpts struct {
	Owner          string
	VehicleID      string
	Track          string
	Date           string // YYYY-MM-DD
	StartTime      string // HH:MM:SS, optional
	SessionNumber  int
	Conditions     string
	Tires          models.Tires
	Suspension     models.Suspension
	Alignment      *models.Alignment
	ExtraModules   *models.ExtraModules
	EnabledModules models.EnabledModules
	Notes          string
	FreeLimit      int // sessions allowed on the free tier; 0 means unlimited
}

// GenerateID creates a unique session ID in ses-xxxxx format (5-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate ID: %w", err)
	}
	return "ses-" + hex.EncodeToString(b)[:5], nil
}

// Create logs a session. The vehicle must belong to the owner; module flags
// are sanitized against its type before persisting so stale draft flags
// never reach storage. Free-tier owners are capped at FreeLimit sessions.
func Create(db *gorm.DB, opts CreateOpts) (*models.Session, error) {
	if opts.Owner == "" {
		return nil, fmt.Errorf("session: owner is required")
	}
	if _, err := time.Parse("2006-01-02", opts.Date); err != nil {
		return nil, fmt.Errorf("session: date %q is not YYYY-MM-DD", opts.Date)
	}
	if opts.StartTime != "" {
		if _, err := time.Parse("15:04:05", opts.StartTime); err != nil {
			return nil, fmt.Errorf("session: start time %q is not HH:MM:SS", opts.StartTime)
		}
	}

	vehicle, err := garage.Get(db, opts.Owner, opts.VehicleID)
	if err != nil {
		return nil, err
	}

	if opts.FreeLimit > 0 {
		var profile models.Profile
		if err := db.First(&profile, "owner = ?", opts.Owner).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session: load profile: %w", err)
		}
		if profile.Tier != "pro" {
			var count int64
			if err := db.Model(&models.Session{}).Where("owner = ?", opts.Owner).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("session: count sessions: %w", err)
			}
			if count >= int64(opts.FreeLimit) {
				return nil, ErrFreeLimit
			}
		}
	}

	id, err := generateUniqueID(db)
	if err != nil {
		return nil, err
	}

	sess := models.Session{
		ID:             id,
		Owner:          opts.Owner,
		VehicleID:      vehicle.ID,
		Track:          opts.Track,
		Date:           opts.Date,
		StartTime:      opts.StartTime,
		SessionNumber:  opts.SessionNumber,
		Conditions:     opts.Conditions,
		Tires:          opts.Tires,
		Suspension:     opts.Suspension,
		Alignment:      opts.Alignment,
		ExtraModules:   opts.ExtraModules,
		EnabledModules: setup.SanitizeEnabledModules(vehicle.Type, opts.EnabledModules),
		Notes:          opts.Notes,
	}
	if err := db.Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}
	return &sess, nil
}

// Get retrieves an owner's session by ID.
func Get(db *gorm.DB, owner, id string) (*models.Session, error) {
	var sess models.Session
	if err := db.Where("id = ? AND owner = ?", id, owner).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session: not found: %s", id)
		}
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	return &sess, nil
}

// List returns an owner's sessions newest first, optionally restricted to
// one vehicle.
func List(db *gorm.DB, owner, vehicleID string) ([]models.Session, error) {
	q := db.Where("owner = ?", owner)
	if vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}

	var sessions []models.Session
	if err := q.Order("date DESC, start_time DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("session: list: %w", err)
	}
	return sessions, nil
}

// Delete removes an owner's session.
func Delete(db *gorm.DB, owner, id string) error {
	result := db.Where("id = ? AND owner = ?", id, owner).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("session: delete %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session: not found: %s", id)
	}
	return nil
}

// PreviousCandidates fetches same-vehicle sessions strictly earlier than the
// current one, newest first. Earlier mirrors the selector's ordering key: a
// missing start time counts as end of day, so same-day rows qualify only
// with a recorded time before the cutoff. Filtering in SQL keeps same-day
// later (or untimed) rows from eating slots of the limit; the selector still
// re-checks ordering in memory.
func PreviousCandidates(db *gorm.DB, current *models.Session, limit int) ([]*models.Session, error) {
	if limit <= 0 {
		limit = defaultCandidateLimit
	}

	cutoff := current.StartTime
	if cutoff == "" {
		cutoff = "23:59:59"
	}

	var candidates []*models.Session
	err := db.Where("owner = ? AND vehicle_id = ? AND id != ?",
		current.Owner, current.VehicleID, current.ID).
		Where("date < ? OR (date = ? AND start_time != '' AND start_time < ?)",
			current.Date, current.Date, cutoff).
		Order("date DESC, start_time DESC").
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("session: previous candidates for %s: %w", current.ID, err)
	}
	return candidates, nil
}

// Comparison bundles everything the detail views need to render a setup
// diff against the most recent earlier session.
type Comparison struct {
	Previous        *models.Session
	CurrentEnabled  models.EnabledModules
	PreviousEnabled models.EnabledModules
	Rows            []setup.CompareRow
}

// CompareWithPrevious resolves module state for the current session, picks
// the nearest earlier same-vehicle session and builds the diff rows. A nil
// Comparison.Previous (with no error) means there is nothing to compare
// against and the caller should show its empty state. Module availability
// for both sides derives from the vehicle's current type, matching how
// sessions logged before a vehicle reassignment are displayed elsewhere.
func CompareWithPrevious(db *gorm.DB, current *models.Session, vehicleType models.VehicleType) (*Comparison, error) {
	currentEnabled := setup.ResolveEnabledModules(current, vehicleType)

	candidates, err := PreviousCandidates(db, current, defaultCandidateLimit)
	if err != nil {
		return nil, err
	}

	previous := setup.SelectPrevious(current, candidates)
	if previous == nil {
		return &Comparison{CurrentEnabled: currentEnabled}, nil
	}

	previousEnabled := setup.ResolveEnabledModules(previous, vehicleType)
	return &Comparison{
		Previous:        previous,
		CurrentEnabled:  currentEnabled,
		PreviousEnabled: previousEnabled,
		Rows:            setup.BuildCompareRows(current, previous, currentEnabled, previousEnabled),
	}, nil
}

// generateUniqueID generates an ID and retries once on collision.
func generateUniqueID(db *gorm.DB) (string, error) {
	for i := 0; i < 2; i++ {
		id, err := GenerateID()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.Session{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("session: check ID uniqueness: %w", err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("session: could not generate unique ID")
}
