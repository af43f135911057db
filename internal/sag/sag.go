// Package sag computes suspension sag from the three standard measurements:
// fully extended (L0), bike on the stand or wheels free (L1), and rider
// aboard in gear (L2).
package sag

import (
	"math"
	"strconv"
	"strings"
)

// FreeSag is the suspension settle under the vehicle's own weight: L0 - L1.
// ok is false when either measurement is missing.
func FreeSag(l0, l1 float64, haveL0, haveL1 bool) (float64, bool) {
	if !haveL0 || !haveL1 {
		return 0, false
	}
	return l0 - l1, true
}

// RiderSag is the settle with the rider aboard: L0 - L2.
func RiderSag(l0, l2 float64, haveL0, haveL2 bool) (float64, bool) {
	if !haveL0 || !haveL2 {
		return 0, false
	}
	return l0 - l2, true
}

// SagPercent expresses sag as a share of total travel. ok is false when a
// measurement is missing or travel is not positive.
func SagPercent(sagMm, travelMm float64, haveSag, haveTravel bool) (float64, bool) {
	if !haveSag || !haveTravel || travelMm <= 0 {
		return 0, false
	}
	return sagMm / travelMm * 100, true
}

// ParseMeasurement parses a millimeter reading typed into a form. Blank or
// non-numeric input returns ok=false.
func ParseMeasurement(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0, false
	}
	return parsed, true
}

// FormatMeasurement renders a computed value to one decimal place, or an
// em dash when the value is missing.
func FormatMeasurement(value float64, ok bool) string {
	if !ok {
		return "—"
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}
