package models

import "time"

// TireEnd holds tire settings for one end of the vehicle.
type TireEnd struct {
	Brand    string `json:"brand"`
	Compound string `json:"compound"`
	Pressure string `json:"pressure"`
}

// Tires holds the tire setup group.
type Tires struct {
	Condition string  `json:"condition"`
	Front     TireEnd `json:"front"`
	Rear      TireEnd `json:"rear"`
}

// SuspensionEnd holds clicker settings for one end of the vehicle.
// Direction records whether clicks count in from fully open or out from
// fully closed.
type SuspensionEnd struct {
	Direction   string `json:"direction"`
	Preload     string `json:"preload"`
	Compression string `json:"compression"`
	Rebound     string `json:"rebound"`
}

// Suspension holds the suspension setup group.
type Suspension struct {
	Front SuspensionEnd `json:"front"`
	Rear  SuspensionEnd `json:"rear"`
}

// Alignment holds the car-only alignment group. Nil on a session means the
// group was never filled in.
type Alignment struct {
	FrontCamber string `json:"front_camber"`
	RearCamber  string `json:"rear_camber"`
	FrontToe    string `json:"front_toe"`
	RearToe     string `json:"rear_toe"`
	Caster      string `json:"caster"`
}

// ExtraModules is the bag of vehicle-specific optional groups, each a
// mapping of named string fields.
type ExtraModules struct {
	Geometry   map[string]string `json:"geometry,omitempty"`
	Drivetrain map[string]string `json:"drivetrain,omitempty"`
	Aero       map[string]string `json:"aero,omitempty"`
}

// Session is one trackside outing's setup record. Date and StartTime are
// kept as zero-padded ISO strings ("2026-02-24", "11:30:00") so the
// previous-session ordering key can be compared lexicographically. An empty
// StartTime means the time was not recorded.
type Session struct {
	ID             string `gorm:"primaryKey;size:32"`
	Owner          string `gorm:"size:64;not null;index"`
	VehicleID      string `gorm:"size:32;not null;index"`
	Track          string `gorm:"size:64"`
	Date           string `gorm:"size:10;not null;index"`
	StartTime      string `gorm:"size:8"`
	SessionNumber  int
	Conditions     string         `gorm:"size:16"` // sunny, overcast, rainy, mixed
	Tires          Tires          `gorm:"serializer:json"`
	Suspension     Suspension     `gorm:"serializer:json"`
	Alignment      *Alignment     `gorm:"serializer:json"`
	ExtraModules   *ExtraModules  `gorm:"serializer:json"`
	EnabledModules EnabledModules `gorm:"serializer:json"` // nil on legacy rows
	Notes          string         `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
