package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/kverlaine/pitwall/internal/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm/clause"
)

func newTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track catalog commands",
	}

	cmd.AddCommand(newTrackAddCmd())
	cmd.AddCommand(newTrackListCmd())
	return cmd
}

func newTrackAddCmd() *cobra.Command {
	var (
		configPath string
		location   string
		lengthKm   float64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a track to the catalog",
		Long:  "Adds or updates a track. Tracks from config are seeded at db init; this covers one-off additions.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			track := models.Track{
				Name:     args[0],
				Location: location,
				LengthKm: lengthKm,
				Active:   true,
			}
			result := gormDB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"location", "length_km", "active"}),
			}).Create(&track)
			if result.Error != nil {
				return fmt.Errorf("add track %q: %w", args[0], result.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added track %s\n", track.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	cmd.Flags().StringVar(&location, "location", "", "track location")
	cmd.Flags().Float64Var(&lengthKm, "length", 0, "track length in km")
	return cmd
}

func newTrackListCmd() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			q := gormDB.Order("name ASC")
			if !all {
				q = q.Where("active = ?", true)
			}
			var tracks []models.Track
			if err := q.Find(&tracks).Error; err != nil {
				return fmt.Errorf("list tracks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintln(out, "No tracks in the catalog.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLOCATION\tLENGTH\tACTIVE")
			for _, t := range tracks {
				length := "-"
				if t.LengthKm > 0 {
					length = fmt.Sprintf("%.2f km", t.LengthKm)
				}
				location := t.Location
				if location == "" {
					location = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", t.Name, location, length, t.Active)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	cmd.Flags().BoolVar(&all, "all", false, "include inactive tracks")
	return cmd
}
