// Package convert provides the trackside unit converter: pure conversions
// between the units that show up on a setup sheet.
package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// Category groups the units that convert between each other.
type Category string

const (
	Pressure    Category = "pressure"
	Temperature Category = "temperature"
	Torque      Category = "torque"
	Mass        Category = "mass"
	Volume      Category = "volume"
	SpringRate  Category = "spring_rate"
	Length      Category = "length"
	Speed       Category = "speed"
)

// CategoryConfig describes one converter category for listing in UIs.
type CategoryConfig struct {
	ID    Category
	Label string
	Units []string
}

// Categories lists every category with its units, in display order.
func Categories() []CategoryConfig {
	return []CategoryConfig{
		{Pressure, "Pressure", []string{"psi", "bar", "kPa"}},
		{Temperature, "Temperature", []string{"F", "C"}},
		{Torque, "Torque", []string{"Nm", "ft-lb"}},
		{Mass, "Mass", []string{"lb", "kg"}},
		{Volume, "Volume", []string{"gal", "qt", "pt", "L", "oz", "ml"}},
		{SpringRate, "Spring Rate", []string{"N/mm", "kgf/mm", "lb/in"}},
		{Length, "Length", []string{"mm", "cm", "in"}},
		{Speed, "Speed", []string{"mph", "km/h", "m/s"}},
	}
}

// Factor tables convert through a base unit per category.
var (
	toKPa = map[string]float64{"psi": 6.89475729, "bar": 100, "kPa": 1}
	toMl  = map[string]float64{"gal": 3785.41178, "qt": 946.352946, "pt": 473.176473, "L": 1000, "oz": 29.5735296, "ml": 1}
	toNmm = map[string]float64{"N/mm": 1, "kgf/mm": 9.80665, "lb/in": 0.175126835}
	toMm  = map[string]float64{"mm": 1, "cm": 10, "in": 25.4}
	toMps = map[string]float64{"mph": 0.44704, "km/h": 0.2777777778, "m/s": 1}
)

// Value converts value between two units of a category. It returns an error
// for unknown categories or units that don't belong to the category.
func Value(category Category, fromUnit, toUnit string, value float64) (float64, error) {
	if fromUnit == toUnit {
		return value, nil
	}

	switch category {
	case Pressure:
		return viaBase(toKPa, fromUnit, toUnit, value)
	case Temperature:
		return temperature(fromUnit, toUnit, value)
	case Torque:
		return torque(fromUnit, toUnit, value)
	case Mass:
		return mass(fromUnit, toUnit, value)
	case Volume:
		return viaBase(toMl, fromUnit, toUnit, value)
	case SpringRate:
		return viaBase(toNmm, fromUnit, toUnit, value)
	case Length:
		return viaBase(toMm, fromUnit, toUnit, value)
	case Speed:
		return viaBase(toMps, fromUnit, toUnit, value)
	default:
		return 0, fmt.Errorf("convert: unknown category %q", category)
	}
}

func viaBase(factors map[string]float64, from, to string, value float64) (float64, error) {
	fromFactor, ok := factors[from]
	if !ok {
		return 0, fmt.Errorf("convert: unknown unit %q", from)
	}
	toFactor, ok := factors[to]
	if !ok {
		return 0, fmt.Errorf("convert: unknown unit %q", to)
	}
	return value * fromFactor / toFactor, nil
}

func temperature(from, to string, value float64) (float64, error) {
	switch {
	case from == "F" && to == "C":
		return (value - 32) * 5 / 9, nil
	case from == "C" && to == "F":
		return value*9/5 + 32, nil
	}
	return 0, fmt.Errorf("convert: no temperature conversion %s to %s", from, to)
}

func torque(from, to string, value float64) (float64, error) {
	switch {
	case from == "Nm" && to == "ft-lb":
		return value * 0.737562149, nil
	case from == "ft-lb" && to == "Nm":
		return value * 1.35581795, nil
	}
	return 0, fmt.Errorf("convert: no torque conversion %s to %s", from, to)
}

func mass(from, to string, value float64) (float64, error) {
	switch {
	case from == "kg" && to == "lb":
		return value * 2.20462262, nil
	case from == "lb" && to == "kg":
		return value * 0.45359237, nil
	}
	return 0, fmt.Errorf("convert: no mass conversion %s to %s", from, to)
}

// ParseInput parses free-text numeric input; blank or non-numeric input
// returns ok=false rather than an error, matching form behavior.
func ParseInput(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// FormatResult renders a converted value rounded to 3 decimal places with
// trailing zeros trimmed.
func FormatResult(value float64) string {
	rounded := strconv.FormatFloat(value, 'f', 3, 64)
	rounded = strings.TrimRight(rounded, "0")
	rounded = strings.TrimSuffix(rounded, ".")
	if rounded == "" || rounded == "-" {
		return "0"
	}
	return rounded
}
