package main

import (
	"fmt"

	"github.com/kverlaine/pitwall/internal/sag"
	"github.com/spf13/cobra"
)

func newSagCmd() *cobra.Command {
	var (
		extended string
		free     string
		rider    string
		travel   string
	)

	cmd := &cobra.Command{
		Use:   "sag",
		Short: "Compute suspension sag",
		Long: `Computes free and rider sag from the three standard measurements, all in
millimeters: fully extended (--extended), wheels free (--free), and rider
aboard in gear (--rider). With --travel, sag is also shown as a share of
total travel. Missing measurements show as a dash.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l0, haveL0 := sag.ParseMeasurement(extended)
			l1, haveL1 := sag.ParseMeasurement(free)
			l2, haveL2 := sag.ParseMeasurement(rider)
			travelMm, haveTravel := sag.ParseMeasurement(travel)

			if !haveL0 {
				return fmt.Errorf("--extended is required and must be a number")
			}

			freeSag, haveFree := sag.FreeSag(l0, l1, haveL0, haveL1)
			riderSag, haveRider := sag.RiderSag(l0, l2, haveL0, haveL2)
			freePct, haveFreePct := sag.SagPercent(freeSag, travelMm, haveFree, haveTravel)
			riderPct, haveRiderPct := sag.SagPercent(riderSag, travelMm, haveRider, haveTravel)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Free sag:   %s mm", sag.FormatMeasurement(freeSag, haveFree))
			if haveFreePct {
				fmt.Fprintf(out, " (%s%%)", sag.FormatMeasurement(freePct, true))
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Rider sag:  %s mm", sag.FormatMeasurement(riderSag, haveRider))
			if haveRiderPct {
				fmt.Fprintf(out, " (%s%%)", sag.FormatMeasurement(riderPct, true))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&extended, "extended", "", "fully extended measurement in mm (required)")
	cmd.Flags().StringVar(&free, "free", "", "wheels-free measurement in mm")
	cmd.Flags().StringVar(&rider, "rider", "", "rider-aboard measurement in mm")
	cmd.Flags().StringVar(&travel, "travel", "", "total suspension travel in mm")
	return cmd
}
