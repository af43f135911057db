package models

// VehicleType determines which setup modules are legal for a vehicle's
// sessions.
type VehicleType string

const (
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleCar        VehicleType = "car"
)

// Valid reports whether t is a known vehicle type.
func (t VehicleType) Valid() bool {
	return t == VehicleMotorcycle || t == VehicleCar
}

// ModuleKey identifies one optional setup module. Notes is not a real
// toggle: it is unconditionally available for any session.
type ModuleKey string

const (
	ModuleTires      ModuleKey = "tires"
	ModuleSuspension ModuleKey = "suspension"
	ModuleAlignment  ModuleKey = "alignment"
	ModuleGeometry   ModuleKey = "geometry"
	ModuleDrivetrain ModuleKey = "drivetrain"
	ModuleAero       ModuleKey = "aero"
	ModuleNotes      ModuleKey = "notes"
)

// AllModuleKeys returns every module key in display order.
func AllModuleKeys() []ModuleKey {
	return []ModuleKey{
		ModuleTires,
		ModuleSuspension,
		ModuleAlignment,
		ModuleGeometry,
		ModuleDrivetrain,
		ModuleAero,
		ModuleNotes,
	}
}

// EnabledModules maps every module key to its on/off state for one session.
// A nil map on a session means the row predates explicit module flags and
// the state must be inferred from field contents.
type EnabledModules map[ModuleKey]bool
