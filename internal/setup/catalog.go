// Package setup resolves which optional setup modules apply to a session
// and builds field-level comparisons between two sessions of one vehicle.
package setup

import "github.com/kverlaine/pitwall/internal/models"

// moduleLabels maps each module key to its display heading.
var moduleLabels = map[models.ModuleKey]string{
	models.ModuleTires:      "Tires",
	models.ModuleSuspension: "Suspension",
	models.ModuleAlignment:  "Alignment",
	models.ModuleGeometry:   "Geometry",
	models.ModuleDrivetrain: "Drivetrain",
	models.ModuleAero:       "Aero",
	models.ModuleNotes:      "Notes",
}

// availableByVehicle fixes which modules are legal per vehicle type.
var availableByVehicle = map[models.VehicleType][]models.ModuleKey{
	models.VehicleMotorcycle: {
		models.ModuleTires,
		models.ModuleSuspension,
		models.ModuleGeometry,
		models.ModuleDrivetrain,
		models.ModuleNotes,
	},
	models.VehicleCar: {
		models.ModuleTires,
		models.ModuleSuspension,
		models.ModuleAlignment,
		models.ModuleAero,
		models.ModuleNotes,
	},
}

// ModuleLabel returns the display heading for a module key.
func ModuleLabel(key models.ModuleKey) string {
	return moduleLabels[key]
}

// AvailableModules returns the ordered set of modules legal for a vehicle
// type. The returned slice is a copy.
func AvailableModules(vehicleType models.VehicleType) []models.ModuleKey {
	avail := availableByVehicle[vehicleType]
	out := make([]models.ModuleKey, len(avail))
	copy(out, avail)
	return out
}

// DefaultEnabledModules returns the module state a brand-new session starts
// with: tires, suspension and notes on, every other applicable module off.
func DefaultEnabledModules(vehicleType models.VehicleType) models.EnabledModules {
	enabled := make(models.EnabledModules, len(models.AllModuleKeys()))
	for _, key := range models.AllModuleKeys() {
		enabled[key] = false
	}
	enabled[models.ModuleTires] = true
	enabled[models.ModuleSuspension] = true
	enabled[models.ModuleNotes] = true
	return enabled
}
