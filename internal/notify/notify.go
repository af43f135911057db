// Package notify posts Pitwall activity digests to chat platforms.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kverlaine/pitwall/internal/models"
	"gorm.io/gorm"
)

// Notifier is the interface platform-specific implementations satisfy.
type Notifier interface {
	// Post sends a plain-text message to a channel.
	Post(ctx context.Context, channelID, text string) error

	// Close gracefully shuts down the platform connection.
	Close() error
}

// WeeklyReport holds computed activity for a 7-day period.
type WeeklyReport struct {
	PeriodStart    time.Time
	PeriodEnd      time.Time
	SessionsLogged int
	VehiclesOut    int
	TrackBreakdown []TrackDigest
}

// TrackDigest holds per-track session counts for the digest.
type TrackDigest struct {
	Track    string
	Sessions int
}

// BuildWeeklyReport counts the owner's sessions dated in the 7 days up to
// now. Returns nil when there was no activity, which suppresses the digest.
func BuildWeeklyReport(db *gorm.DB, owner string, now time.Time) (*WeeklyReport, error) {
	since := now.AddDate(0, 0, -7)
	sinceDate := since.Format("2006-01-02")
	untilDate := now.Format("2006-01-02")

	report := &WeeklyReport{PeriodStart: since, PeriodEnd: now}

	var count int64
	if err := db.Model(&models.Session{}).
		Where("owner = ? AND date > ? AND date <= ?", owner, sinceDate, untilDate).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("notify: count weekly sessions: %w", err)
	}
	report.SessionsLogged = int(count)
	if report.SessionsLogged == 0 {
		return nil, nil
	}

	if err := db.Model(&models.Session{}).
		Where("owner = ? AND date > ? AND date <= ?", owner, sinceDate, untilDate).
		Distinct("vehicle_id").
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("notify: count weekly vehicles: %w", err)
	}
	report.VehiclesOut = int(count)

	type row struct {
		Track string
		Count int
	}
	var rows []row
	if err := db.Model(&models.Session{}).
		Select("track, count(*) as count").
		Where("owner = ? AND date > ? AND date <= ?", owner, sinceDate, untilDate).
		Group("track").
		Order("count DESC, track ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notify: weekly track breakdown: %w", err)
	}
	for _, r := range rows {
		track := r.Track
		if track == "" {
			track = "(no track)"
		}
		report.TrackBreakdown = append(report.TrackBreakdown, TrackDigest{Track: track, Sessions: r.Count})
	}

	return report, nil
}

// FormatWeekly renders a report as a chat message.
func FormatWeekly(report *WeeklyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pitwall weekly digest (%s to %s)\n",
		report.PeriodStart.Format("Jan 2"), report.PeriodEnd.Format("Jan 2"))
	fmt.Fprintf(&b, "Sessions logged: %d\n", report.SessionsLogged)
	fmt.Fprintf(&b, "Vehicles out: %d\n", report.VehiclesOut)
	if len(report.TrackBreakdown) > 0 {
		b.WriteString("Tracks:\n")
		for _, td := range report.TrackBreakdown {
			fmt.Fprintf(&b, "  %s: %d\n", td.Track, td.Sessions)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
