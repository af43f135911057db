package models

// Track is a circuit sessions can be logged against. Sessions store the
// track name directly, so free-text names that were never seeded still work.
// Active carries no column default: GORM skips zero-value fields that have
// one, which would silently resurrect retired tracks. Writers set it
// explicitly.
type Track struct {
	Name     string `gorm:"primaryKey;size:64"`
	Location string `gorm:"size:128"`
	LengthKm float64
	Active   bool
}
