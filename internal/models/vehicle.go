package models

import "time"

// Vehicle is a bike or car in the owner's garage.
type Vehicle struct {
	ID        string      `gorm:"primaryKey;size:32"`
	Owner     string      `gorm:"size:64;not null;index"`
	Nickname  string      `gorm:"size:64;not null"`
	Type      VehicleType `gorm:"size:16;not null"`
	Year      int
	Make      string `gorm:"size:64"`
	Model     string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
