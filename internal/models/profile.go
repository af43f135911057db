package models

import "time"

// Profile holds per-owner account state. Tier gating happens in the session
// store; payment processing lives outside this system entirely.
type Profile struct {
	Owner     string `gorm:"primaryKey;size:64"`
	Tier      string `gorm:"size:8;default:free"` // free, pro
	CreatedAt time.Time
	UpdatedAt time.Time
}
