package setup

import (
	"strings"

	"github.com/kverlaine/pitwall/internal/models"
)

// isBlank reports whether a value is empty after trimming whitespace.
func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// anyNonBlank reports whether at least one value is non-blank.
func anyNonBlank(values ...string) bool {
	for _, v := range values {
		if !isBlank(v) {
			return true
		}
	}
	return false
}

// SanitizeEnabledModules reconciles a possibly-partial, possibly-stale set
// of module flags against the catalog for vehicleType. Flags for modules the
// vehicle type does not carry are forced off, so switching a draft from car
// to motorcycle silently drops alignment and aero. Notes is always on.
// Missing flags fall back to the defaults.
func SanitizeEnabledModules(vehicleType models.VehicleType, candidate models.EnabledModules) models.EnabledModules {
	enabled := DefaultEnabledModules(vehicleType)
	available := make(map[models.ModuleKey]bool, len(availableByVehicle[vehicleType]))
	for _, key := range availableByVehicle[vehicleType] {
		available[key] = true
	}

	for _, key := range models.AllModuleKeys() {
		if key == models.ModuleNotes {
			continue
		}
		if !available[key] {
			enabled[key] = false
			continue
		}
		if v, ok := candidate[key]; ok {
			enabled[key] = v
		}
	}

	enabled[models.ModuleNotes] = true
	return enabled
}

// ResolveEnabledModules computes the definitive module state for a session.
// Sessions that carry explicit flags win, sanitized against the current
// vehicle type in case the vehicle was reassigned after logging. Legacy
// sessions from before the enabled-modules column existed fall back to
// content inference.
func ResolveEnabledModules(session *models.Session, vehicleType models.VehicleType) models.EnabledModules {
	if session.EnabledModules != nil {
		return fromExplicit(vehicleType, session.EnabledModules)
	}
	return fromInference(session, vehicleType)
}

func fromExplicit(vehicleType models.VehicleType, stored models.EnabledModules) models.EnabledModules {
	return SanitizeEnabledModules(vehicleType, stored)
}

// fromInference derives module state from field contents. Tires and
// suspension default on, so inference can only add to them; the extra
// modules turn on only when the vehicle type carries them and some field
// holds a value. Notes is the one module that can resolve to off here: an
// old session that never had notes should not render an empty section.
func fromInference(session *models.Session, vehicleType models.VehicleType) models.EnabledModules {
	enabled := DefaultEnabledModules(vehicleType)

	enabled[models.ModuleTires] = enabled[models.ModuleTires] || hasTireValues(session)
	enabled[models.ModuleSuspension] = enabled[models.ModuleSuspension] || hasSuspensionValues(session)
	enabled[models.ModuleAlignment] = vehicleType == models.VehicleCar && hasAlignmentValues(session.Alignment)
	enabled[models.ModuleGeometry] = vehicleType == models.VehicleMotorcycle && hasExtraValues(session.ExtraModules, models.ModuleGeometry)
	enabled[models.ModuleDrivetrain] = vehicleType == models.VehicleMotorcycle && hasExtraValues(session.ExtraModules, models.ModuleDrivetrain)
	enabled[models.ModuleAero] = vehicleType == models.VehicleCar && hasExtraValues(session.ExtraModules, models.ModuleAero)
	enabled[models.ModuleNotes] = !isBlank(session.Notes)

	return enabled
}

func hasTireValues(session *models.Session) bool {
	return anyNonBlank(
		session.Tires.Front.Brand,
		session.Tires.Front.Compound,
		session.Tires.Front.Pressure,
		session.Tires.Rear.Brand,
		session.Tires.Rear.Compound,
		session.Tires.Rear.Pressure,
	)
}

func hasSuspensionValues(session *models.Session) bool {
	return anyNonBlank(
		session.Suspension.Front.Preload,
		session.Suspension.Front.Compression,
		session.Suspension.Front.Rebound,
		session.Suspension.Rear.Preload,
		session.Suspension.Rear.Compression,
		session.Suspension.Rear.Rebound,
	)
}

func hasAlignmentValues(alignment *models.Alignment) bool {
	if alignment == nil {
		return false
	}
	return anyNonBlank(
		alignment.FrontCamber,
		alignment.RearCamber,
		alignment.FrontToe,
		alignment.RearToe,
		alignment.Caster,
	)
}

func hasExtraValues(extra *models.ExtraModules, key models.ModuleKey) bool {
	fields := extraModuleFields(extra, key)
	for _, v := range fields {
		if !isBlank(v) {
			return true
		}
	}
	return false
}

// extraModuleFields returns the named-field map for one extra module, nil
// when the bag or the sub-object is absent.
func extraModuleFields(extra *models.ExtraModules, key models.ModuleKey) map[string]string {
	if extra == nil {
		return nil
	}
	switch key {
	case models.ModuleGeometry:
		return extra.Geometry
	case models.ModuleDrivetrain:
		return extra.Drivetrain
	case models.ModuleAero:
		return extra.Aero
	default:
		return nil
	}
}
