package setup

import "github.com/kverlaine/pitwall/internal/models"

// CompareRow is one labeled field in a setup diff between two sessions.
type CompareRow struct {
	Label    string `json:"label"`
	Current  string `json:"current"`
	Previous string `json:"previous"`
}

// Changed reports whether the two sides differ. Comparison is exact string
// equality: "8" vs "8.0" counts as changed.
func (r CompareRow) Changed() bool {
	return r.Current != r.Previous
}

// fieldGetter extracts one display value from a session.
type fieldGetter func(s *models.Session) string

type compareField struct {
	label string
	get   fieldGetter
}

// compareOrder fixes the module group order in the diff.
var compareOrder = []models.ModuleKey{
	models.ModuleTires,
	models.ModuleSuspension,
	models.ModuleAlignment,
	models.ModuleGeometry,
	models.ModuleDrivetrain,
	models.ModuleAero,
	models.ModuleNotes,
}

var compareFields = map[models.ModuleKey][]compareField{
	models.ModuleTires: {
		{"Tires: Condition", func(s *models.Session) string { return s.Tires.Condition }},
		{"Tires: Front Brand", func(s *models.Session) string { return s.Tires.Front.Brand }},
		{"Tires: Front Compound", func(s *models.Session) string { return s.Tires.Front.Compound }},
		{"Tires: Front Pressure", func(s *models.Session) string { return s.Tires.Front.Pressure }},
		{"Tires: Rear Brand", func(s *models.Session) string { return s.Tires.Rear.Brand }},
		{"Tires: Rear Compound", func(s *models.Session) string { return s.Tires.Rear.Compound }},
		{"Tires: Rear Pressure", func(s *models.Session) string { return s.Tires.Rear.Pressure }},
	},
	models.ModuleSuspension: {
		{"Suspension: Front Direction", func(s *models.Session) string { return s.Suspension.Front.Direction }},
		{"Suspension: Front Preload", func(s *models.Session) string { return s.Suspension.Front.Preload }},
		{"Suspension: Front Compression", func(s *models.Session) string { return s.Suspension.Front.Compression }},
		{"Suspension: Front Rebound", func(s *models.Session) string { return s.Suspension.Front.Rebound }},
		{"Suspension: Rear Direction", func(s *models.Session) string { return s.Suspension.Rear.Direction }},
		{"Suspension: Rear Preload", func(s *models.Session) string { return s.Suspension.Rear.Preload }},
		{"Suspension: Rear Compression", func(s *models.Session) string { return s.Suspension.Rear.Compression }},
		{"Suspension: Rear Rebound", func(s *models.Session) string { return s.Suspension.Rear.Rebound }},
	},
	models.ModuleAlignment: {
		{"Alignment: Front Camber", alignmentField(func(a *models.Alignment) string { return a.FrontCamber })},
		{"Alignment: Rear Camber", alignmentField(func(a *models.Alignment) string { return a.RearCamber })},
		{"Alignment: Front Toe", alignmentField(func(a *models.Alignment) string { return a.FrontToe })},
		{"Alignment: Rear Toe", alignmentField(func(a *models.Alignment) string { return a.RearToe })},
		{"Alignment: Caster", alignmentField(func(a *models.Alignment) string { return a.Caster })},
	},
	models.ModuleGeometry: {
		{"Geometry: Front Sag", extraField(models.ModuleGeometry, "sag_front")},
		{"Geometry: Rear Sag", extraField(models.ModuleGeometry, "sag_rear")},
		{"Geometry: Fork Height", extraField(models.ModuleGeometry, "fork_height")},
		{"Geometry: Rear Ride Height", extraField(models.ModuleGeometry, "rear_ride_height")},
		{"Geometry: Notes", extraField(models.ModuleGeometry, "notes")},
	},
	models.ModuleDrivetrain: {
		{"Drivetrain: Front Sprocket", extraField(models.ModuleDrivetrain, "front_sprocket")},
		{"Drivetrain: Rear Sprocket", extraField(models.ModuleDrivetrain, "rear_sprocket")},
		{"Drivetrain: Chain Length", extraField(models.ModuleDrivetrain, "chain_length")},
		{"Drivetrain: Notes", extraField(models.ModuleDrivetrain, "notes")},
	},
	models.ModuleAero: {
		{"Aero: Wing Angle", extraField(models.ModuleAero, "wing_angle")},
		{"Aero: Splitter Setting", extraField(models.ModuleAero, "splitter_setting")},
		{"Aero: Rake", extraField(models.ModuleAero, "rake")},
		{"Aero: Notes", extraField(models.ModuleAero, "notes")},
	},
	models.ModuleNotes: {
		{"Notes", func(s *models.Session) string { return s.Notes }},
	},
}

func alignmentField(get func(a *models.Alignment) string) fieldGetter {
	return func(s *models.Session) string {
		if s.Alignment == nil {
			return ""
		}
		return get(s.Alignment)
	}
}

func extraField(key models.ModuleKey, field string) fieldGetter {
	return func(s *models.Session) string {
		return extraModuleFields(s.ExtraModules, key)[field]
	}
}

// BuildCompareRows assembles the ordered diff between current and previous
// under each side's own resolved module state. Conditions and Start Time are
// session-level attributes and always lead. A module group appears when it
// is enabled on either side; within an emitted group, a side that has the
// module off shows empty strings, which is itself signal — the field is
// newly tracked (or newly dropped) this session.
func BuildCompareRows(current, previous *models.Session, currentEnabled, previousEnabled models.EnabledModules) []CompareRow {
	rows := []CompareRow{
		{Label: "Conditions", Current: current.Conditions, Previous: previous.Conditions},
		{Label: "Start Time", Current: current.StartTime, Previous: previous.StartTime},
	}

	for _, key := range compareOrder {
		if !currentEnabled[key] && !previousEnabled[key] {
			continue
		}
		for _, f := range compareFields[key] {
			row := CompareRow{Label: f.label}
			if currentEnabled[key] {
				row.Current = f.get(current)
			}
			if previousEnabled[key] {
				row.Previous = f.get(previous)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// FilterChanged keeps only rows whose sides differ, for the default
// changed-only rendering.
func FilterChanged(rows []CompareRow) []CompareRow {
	out := make([]CompareRow, 0, len(rows))
	for _, r := range rows {
		if r.Changed() {
			out = append(out, r)
		}
	}
	return out
}
