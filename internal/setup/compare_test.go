package setup

import (
	"strings"
	"testing"

	"github.com/kverlaine/pitwall/internal/models"
)

func rowByLabel(t *testing.T, rows []CompareRow, label string) CompareRow {
	t.Helper()
	for _, r := range rows {
		if r.Label == label {
			return r
		}
	}
	t.Fatalf("no row labeled %q in %v", label, labels(rows))
	return CompareRow{}
}

func hasLabelPrefix(rows []CompareRow, prefix string) bool {
	for _, r := range rows {
		if strings.HasPrefix(r.Label, prefix) {
			return true
		}
	}
	return false
}

func labels(rows []CompareRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}

func TestBuildCompareRows_AlwaysPresentRows(t *testing.T) {
	current := &models.Session{Conditions: "sunny", StartTime: "12:00:00"}
	previous := &models.Session{Conditions: "rainy"}
	off := models.EnabledModules{}

	rows := BuildCompareRows(current, previous, off, off)
	if len(rows) != 2 {
		t.Fatalf("with every module off, rows = %v, want only Conditions and Start Time", labels(rows))
	}
	if rows[0].Label != "Conditions" || rows[1].Label != "Start Time" {
		t.Errorf("leading rows = %v, want Conditions then Start Time", labels(rows))
	}
	if rows[0].Current != "sunny" || rows[0].Previous != "rainy" {
		t.Errorf("Conditions row = %+v", rows[0])
	}
	if rows[1].Current != "12:00:00" || rows[1].Previous != "" {
		t.Errorf("Start Time row = %+v", rows[1])
	}
}

func TestBuildCompareRows_GatingBothSidesOff(t *testing.T) {
	geom := map[string]string{"sag_front": "35"}
	current := &models.Session{ExtraModules: &models.ExtraModules{Geometry: geom}}
	previous := &models.Session{ExtraModules: &models.ExtraModules{Geometry: geom}}
	off := models.EnabledModules{}

	rows := BuildCompareRows(current, previous, off, off)
	if hasLabelPrefix(rows, "Geometry:") {
		t.Errorf("geometry rows emitted with the module off on both sides: %v", labels(rows))
	}
}

func TestBuildCompareRows_GatingOneSideOn(t *testing.T) {
	current := &models.Session{ExtraModules: &models.ExtraModules{Geometry: map[string]string{"sag_front": "35"}}}
	previous := &models.Session{ExtraModules: &models.ExtraModules{Geometry: map[string]string{"sag_front": "33"}}}
	currentEnabled := models.EnabledModules{models.ModuleGeometry: true}
	previousEnabled := models.EnabledModules{}

	rows := BuildCompareRows(current, previous, currentEnabled, previousEnabled)
	row := rowByLabel(t, rows, "Geometry: Front Sag")
	if row.Current != "35" {
		t.Errorf("current side = %q, want 35", row.Current)
	}
	if row.Previous != "" {
		t.Errorf("disabled side = %q, want empty string", row.Previous)
	}
}

func TestBuildCompareRows_GroupOrderFixed(t *testing.T) {
	all := models.EnabledModules{}
	for _, key := range models.AllModuleKeys() {
		all[key] = true
	}
	rows := BuildCompareRows(&models.Session{}, &models.Session{}, all, all)

	wantOrder := []string{
		"Conditions", "Start Time",
		"Tires: Condition", "Suspension: Front Direction", "Alignment: Front Camber",
		"Geometry: Front Sag", "Drivetrain: Front Sprocket", "Aero: Wing Angle", "Notes",
	}
	pos := -1
	for _, want := range wantOrder {
		found := -1
		for i, r := range rows {
			if r.Label == want {
				found = i
				break
			}
		}
		if found == -1 {
			t.Fatalf("row %q missing from %v", want, labels(rows))
		}
		if found < pos {
			t.Errorf("row %q out of order at %d (previous group at %d)", want, found, pos)
		}
		pos = found
	}
}

func TestBuildCompareRows_NilGroupsRenderEmpty(t *testing.T) {
	all := models.EnabledModules{models.ModuleAlignment: true, models.ModuleAero: true}
	rows := BuildCompareRows(&models.Session{}, &models.Session{}, all, all)

	for _, label := range []string{"Alignment: Caster", "Aero: Rake"} {
		row := rowByLabel(t, rows, label)
		if row.Current != "" || row.Previous != "" {
			t.Errorf("%s on a session with nil groups = %+v, want empty sides", label, row)
		}
	}
}

func TestCompareRow_Changed(t *testing.T) {
	tests := []struct {
		current  string
		previous string
		want     bool
	}{
		{"32.5", "32.5", false},
		{"32.5", "", true},
		{"8", "8.0", true}, // exact string equality, not numeric
		{"", "", false},
	}
	for _, tt := range tests {
		row := CompareRow{Current: tt.current, Previous: tt.previous}
		if got := row.Changed(); got != tt.want {
			t.Errorf("Changed(%q, %q) = %v, want %v", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestFilterChanged(t *testing.T) {
	rows := []CompareRow{
		{Label: "a", Current: "1", Previous: "1"},
		{Label: "b", Current: "2", Previous: "1"},
		{Label: "c", Current: "", Previous: ""},
	}
	got := FilterChanged(rows)
	if len(got) != 1 || got[0].Label != "b" {
		t.Errorf("FilterChanged = %v, want only row b", labels(got))
	}
}

// End-to-end: two legacy motorcycle sessions, resolution, selection and
// comparison chained together.
func TestCompareFlow_EndToEnd(t *testing.T) {
	a := &models.Session{
		ID:        "ses-aaaaa",
		VehicleID: "veh-1",
		Date:      "2026-02-20",
		Tires:     models.Tires{Front: models.TireEnd{Pressure: "32"}},
	}
	b := &models.Session{
		ID:         "ses-bbbbb",
		VehicleID:  "veh-1",
		Date:       "2026-02-24",
		StartTime:  "09:00:00",
		Tires:      models.Tires{Front: models.TireEnd{Pressure: "33"}},
		Suspension: models.Suspension{Front: models.SuspensionEnd{Preload: "5"}},
	}

	enabledA := ResolveEnabledModules(a, models.VehicleMotorcycle)
	enabledB := ResolveEnabledModules(b, models.VehicleMotorcycle)

	// Suspension stays on for A even with blank fields: inference never
	// turns the default-on modules off.
	if !enabledA[models.ModuleTires] || !enabledA[models.ModuleSuspension] || enabledA[models.ModuleNotes] {
		t.Fatalf("session A resolved %v, want tires and suspension on, notes off", enabledA)
	}
	if !enabledB[models.ModuleTires] || !enabledB[models.ModuleSuspension] || enabledB[models.ModuleNotes] {
		t.Fatalf("session B resolved %v, want tires and suspension", enabledB)
	}

	previous := SelectPrevious(b, []*models.Session{a})
	if previous == nil || previous.ID != a.ID {
		t.Fatalf("SelectPrevious = %+v, want session A", previous)
	}

	rows := BuildCompareRows(b, previous, enabledB, enabledA)

	pressure := rowByLabel(t, rows, "Tires: Front Pressure")
	if pressure.Current != "33" || pressure.Previous != "32" {
		t.Errorf("front pressure row = %+v, want 33 vs 32", pressure)
	}

	preload := rowByLabel(t, rows, "Suspension: Front Preload")
	if preload.Current != "5" || preload.Previous != "" {
		t.Errorf("front preload row = %+v, want 5 vs empty", preload)
	}

	if hasLabelPrefix(rows, "Notes") {
		t.Errorf("notes rows emitted though neither legacy session had notes: %v", labels(rows))
	}
}
