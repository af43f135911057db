package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kverlaine/pitwall/internal/config"
	"github.com/kverlaine/pitwall/internal/db"
	"github.com/kverlaine/pitwall/internal/garage"
	"github.com/kverlaine/pitwall/internal/models"
	"github.com/kverlaine/pitwall/internal/setup"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newVehicleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Garage management commands",
	}

	cmd.AddCommand(newVehicleAddCmd())
	cmd.AddCommand(newVehicleListCmd())
	cmd.AddCommand(newVehicleShowCmd())
	cmd.AddCommand(newVehicleRmCmd())
	return cmd
}

func newVehicleAddCmd() *cobra.Command {
	var (
		configPath  string
		nickname    string
		vehicleType string
		year        int
		vehicleMake string
		model       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a vehicle to the garage",
		Long:  "Adds a vehicle with an auto-generated ID. The type decides which setup modules its sessions can use.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			v, err := garage.Create(gormDB, garage.CreateOpts{
				Owner:    cfg.Owner,
				Nickname: nickname,
				Type:     models.VehicleType(vehicleType),
				Year:     year,
				Make:     vehicleMake,
				Model:    model,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added vehicle %s (%s)\n", v.ID, v.Nickname)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	cmd.Flags().StringVar(&nickname, "nickname", "", "vehicle nickname (required)")
	cmd.Flags().StringVar(&vehicleType, "type", "motorcycle", "vehicle type (motorcycle, car)")
	cmd.Flags().IntVar(&year, "year", 0, "model year")
	cmd.Flags().StringVar(&vehicleMake, "make", "", "manufacturer")
	cmd.Flags().StringVar(&model, "model", "", "model name")
	cmd.MarkFlagRequired("nickname")
	return cmd
}

func newVehicleListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List garage vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			vehicles, err := garage.List(gormDB, cfg.Owner)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(vehicles) == 0 {
				fmt.Fprintln(out, "No vehicles in the garage.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNICKNAME\tTYPE\tYEAR\tMAKE\tMODEL")
			for _, v := range vehicles {
				year := "-"
				if v.Year > 0 {
					year = fmt.Sprintf("%d", v.Year)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					v.ID, truncate(v.Nickname, 30), v.Type, year, v.Make, v.Model)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	return cmd
}

func newVehicleShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show vehicle details",
		Long:  "Displays a vehicle's details and the setup modules its type makes available.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			v, err := garage.Get(gormDB, cfg.Owner, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", v.ID)
			fmt.Fprintf(out, "Nickname:  %s\n", v.Nickname)
			fmt.Fprintf(out, "Type:      %s\n", v.Type)
			if v.Year > 0 {
				fmt.Fprintf(out, "Year:      %d\n", v.Year)
			}
			if v.Make != "" {
				fmt.Fprintf(out, "Make:      %s\n", v.Make)
			}
			if v.Model != "" {
				fmt.Fprintf(out, "Model:     %s\n", v.Model)
			}

			labels := []string{}
			for _, key := range setup.AvailableModules(v.Type) {
				labels = append(labels, setup.ModuleLabel(key))
			}
			fmt.Fprintf(out, "Modules:   %s\n", strings.Join(labels, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	return cmd
}

func newVehicleRmCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a vehicle from the garage",
		Long:  "Removes a vehicle. Its logged sessions are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := garage.Delete(gormDB, cfg.Owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed vehicle %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pitwall.yaml", "path to Pitwall config file")
	return cmd
}

// connectFromConfig loads config and returns a GORM DB connection.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	return cfg, gormDB, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
