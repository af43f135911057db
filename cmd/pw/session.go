package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kverlaine/pitwall/internal/garage"
	"github.com/kverlaine/pitwall/internal/models"
	"github.com/kverlaine/pitwall/internal/session"
	"github.com/kverlaine/pitwall/internal/setup"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session logging commands",
	}

	cmd.AddCommand(newSessionLogCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionCompareCmd())
	cmd.AddCommand(newSessionRmCmd())
	return cmd
}

func newSessionLogCmd() *cobra.Command {
	var (
		configPath    string
		vehicleID     string
		track         string
		date          string
		startTime     string
		sessionNumber int
		conditions    string
		notes         string
		enable        []string
		disable       []string

		tireCondition string
		frontTire     models.TireEnd
		rearTire      models.TireEnd
		frontSusp     models.SuspensionEnd
		rearSusp      models.SuspensionEnd
		alignment     models.Alignment
		geometry      []string
		drivetrain    []string
		aero          []string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a track session",
		Long: `Logs a session's setup for a vehicle. Tires, suspension and notes are on
by default; use --enable/--disable to toggle other modules. Modules the
vehicle type does not support are ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			enabled, err := parseModuleFlags(enable, disable)
			if err != nil {
				return err
			}

			opts := session.CreateOpts{
				Owner:          cfg.Owner,
				VehicleID:      vehicleID,
				Track:          track,
				Date:           date,
				StartTime:      startTime,
				SessionNumber:  sessionNumber,
				Conditions:     conditions,
				Tires:          models.Tires{Condition: tireCondition, Front: frontTire, Rear: rearTire},
				Suspension:     models.Suspension{Front: frontSusp, Rear: rearSusp},
				EnabledModules: enabled,
				Notes:          notes,
				FreeLimit:      cfg.FreeSessionLimit,
			}
			if alignment != (models.Alignment{}) {
				opts.Alignment = &alignment
			}
			if extra := parseExtraModules(geometry, drivetrain, aero); extra != nil {
				opts.ExtraModules = extra
			}

			sess, err := session.Create(gormDB, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged session %s (%s", sess.ID, sess.Date)
			if sess.StartTime != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " %s", sess.StartTime)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ")")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "vehicle ID (required)")
	cmd.Flags().StringVar(&track, "track", "", "track name")
	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "session date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startTime, "time", "", "start time (HH:MM:SS)")
	cmd.Flags().IntVar(&sessionNumber, "number", 0, "session number within the day")
	cmd.Flags().StringVar(&conditions, "conditions", "", "weather conditions (sunny, overcast, rainy, mixed)")
	cmd.Flags().StringVar(&notes, "notes", "", "session notes")
	cmd.Flags().StringSliceVar(&enable, "enable", nil, "enable a setup module (repeatable)")
	cmd.Flags().StringSliceVar(&disable, "disable", nil, "disable a setup module (repeatable)")

	cmd.Flags().StringVar(&tireCondition, "tire-condition", "", "tire condition")
	cmd.Flags().StringVar(&frontTire.Brand, "front-tire-brand", "", "front tire brand")
	cmd.Flags().StringVar(&frontTire.Compound, "front-tire-compound", "", "front tire compound")
	cmd.Flags().StringVar(&frontTire.Pressure, "front-tire-pressure", "", "front tire pressure")
	cmd.Flags().StringVar(&rearTire.Brand, "rear-tire-brand", "", "rear tire brand")
	cmd.Flags().StringVar(&rearTire.Compound, "rear-tire-compound", "", "rear tire compound")
	cmd.Flags().StringVar(&rearTire.Pressure, "rear-tire-pressure", "", "rear tire pressure")

	cmd.Flags().StringVar(&frontSusp.Direction, "front-clicks", "", "front clicker direction (in, out)")
	cmd.Flags().StringVar(&frontSusp.Preload, "front-preload", "", "front preload")
	cmd.Flags().StringVar(&frontSusp.Compression, "front-compression", "", "front compression")
	cmd.Flags().StringVar(&frontSusp.Rebound, "front-rebound", "", "front rebound")
	cmd.Flags().StringVar(&rearSusp.Direction, "rear-clicks", "", "rear clicker direction (in, out)")
	cmd.Flags().StringVar(&rearSusp.Preload, "rear-preload", "", "rear preload")
	cmd.Flags().StringVar(&rearSusp.Compression, "rear-compression", "", "rear compression")
	cmd.Flags().StringVar(&rearSusp.Rebound, "rear-rebound", "", "rear rebound")

	cmd.Flags().StringVar(&alignment.FrontCamber, "front-camber", "", "front camber (car)")
	cmd.Flags().StringVar(&alignment.RearCamber, "rear-camber", "", "rear camber (car)")
	cmd.Flags().StringVar(&alignment.FrontToe, "front-toe", "", "front toe (car)")
	cmd.Flags().StringVar(&alignment.RearToe, "rear-toe", "", "rear toe (car)")
	cmd.Flags().StringVar(&alignment.Caster, "caster", "", "caster (car)")

	cmd.Flags().StringSliceVar(&geometry, "geometry", nil, "geometry field as name=value (repeatable)")
	cmd.Flags().StringSliceVar(&drivetrain, "drivetrain", nil, "drivetrain field as name=value (repeatable)")
	cmd.Flags().StringSliceVar(&aero, "aero", nil, "aero field as name=value (repeatable)")

	cmd.MarkFlagRequired("vehicle")
	return cmd
}

// parseModuleFlags builds an explicit module map from --enable/--disable.
// Returns nil when neither flag was used so the stored flags fall back to
// the per-type defaults.
func parseModuleFlags(enable, disable []string) (models.EnabledModules, error) {
	if len(enable) == 0 && len(disable) == 0 {
		return nil, nil
	}

	known := make(map[models.ModuleKey]bool, len(models.AllModuleKeys()))
	for _, key := range models.AllModuleKeys() {
		known[key] = true
	}

	enabled := make(models.EnabledModules)
	for _, name := range enable {
		key := models.ModuleKey(strings.ToLower(strings.TrimSpace(name)))
		if !known[key] {
			return nil, fmt.Errorf("unknown module %q", name)
		}
		enabled[key] = true
	}
	for _, name := range disable {
		key := models.ModuleKey(strings.ToLower(strings.TrimSpace(name)))
		if !known[key] {
			return nil, fmt.Errorf("unknown module %q", name)
		}
		enabled[key] = false
	}
	return enabled, nil
}

// parseExtraModules turns repeated name=value flags into the extras bag.
// Returns nil when every group is empty.
func parseExtraModules(geometry, drivetrain, aero []string) *models.ExtraModules {
	extra := &models.ExtraModules{
		Geometry:   parseFieldPairs(geometry),
		Drivetrain: parseFieldPairs(drivetrain),
		Aero:       parseFieldPairs(aero),
	}
	if extra.Geometry == nil && extra.Drivetrain == nil && extra.Aero == nil {
		return nil
	}
	return extra
}

func parseFieldPairs(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	fields := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		fields[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func newSessionListCmd() *cobra.Command {
	var (
		configPath string
		vehicleID  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Long:  "Lists sessions newest first, optionally filtered to one vehicle.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			sessions, err := session.List(gormDB, cfg.Owner, vehicleID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions logged.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTIME\tVEHICLE\tTRACK\tCONDITIONS")
			for _, s := range sessions {
				startTime := s.StartTime
				if startTime == "" {
					startTime = "-"
				}
				track := s.Track
				if track == "" {
					track = "-"
				}
				conditions := s.Conditions
				if conditions == "" {
					conditions = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.Date, startTime, s.VehicleID, truncate(track, 30), conditions)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "filter by vehicle ID")
	return cmd
}

func newSessionShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show session details",
		Long:  "Displays a session's setup with the modules that apply to it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			sess, err := session.Get(gormDB, cfg.Owner, args[0])
			if err != nil {
				return err
			}
			vehicle, err := garage.Get(gormDB, cfg.Owner, sess.VehicleID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", sess.ID)
			fmt.Fprintf(out, "Vehicle:     %s (%s)\n", vehicle.Nickname, vehicle.ID)
			fmt.Fprintf(out, "Date:        %s\n", sess.Date)
			if sess.StartTime != "" {
				fmt.Fprintf(out, "Start:       %s\n", sess.StartTime)
			}
			if sess.SessionNumber > 0 {
				fmt.Fprintf(out, "Session #:   %d\n", sess.SessionNumber)
			}
			if sess.Track != "" {
				fmt.Fprintf(out, "Track:       %s\n", sess.Track)
			}
			if sess.Conditions != "" {
				fmt.Fprintf(out, "Conditions:  %s\n", sess.Conditions)
			}

			enabled := setup.ResolveEnabledModules(sess, vehicle.Type)
			labels := []string{}
			for _, key := range setup.AvailableModules(vehicle.Type) {
				if enabled[key] {
					labels = append(labels, setup.ModuleLabel(key))
				}
			}
			fmt.Fprintf(out, "Modules:     %s\n", strings.Join(labels, ", "))

			if enabled[models.ModuleNotes] && sess.Notes != "" {
				fmt.Fprintf(out, "\nNotes:\n%s\n", sess.Notes)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	return cmd
}

func newSessionCompareCmd() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "compare <id>",
		Short: "Compare a session against the previous outing",
		Long: `Diffs a session's setup against the nearest earlier session of the same
vehicle. By default only changed fields are shown; --all includes every
field of the modules enabled on either side.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			sess, err := session.Get(gormDB, cfg.Owner, args[0])
			if err != nil {
				return err
			}
			vehicle, err := garage.Get(gormDB, cfg.Owner, sess.VehicleID)
			if err != nil {
				return err
			}

			cmp, err := session.CompareWithPrevious(gormDB, sess, vehicle.Type)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cmp.Previous == nil {
				fmt.Fprintf(out, "No earlier session for %s to compare against.\n", vehicle.Nickname)
				return nil
			}

			fmt.Fprintf(out, "Comparing %s (%s) with %s (%s)\n\n",
				sess.ID, sessionStamp(sess), cmp.Previous.ID, sessionStamp(cmp.Previous))

			rows := cmp.Rows
			if !all {
				rows = setup.FilterChanged(rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No setup changes since the previous session.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tCURRENT\tPREVIOUS\t")
			for _, row := range rows {
				marker := ""
				if row.Changed() {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					row.Label, orDash(row.Current), orDash(row.Previous), marker)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	cmd.Flags().BoolVar(&all, "all", false, "include unchanged fields")
	return cmd
}

func newSessionRmCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := session.Delete(gormDB, cfg.Owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	return cmd
}

func sessionStamp(s *models.Session) string {
	if s.StartTime == "" {
		return s.Date
	}
	return s.Date + " " + s.StartTime
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
