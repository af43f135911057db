package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kverlaine/pitwall/internal/convert"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <category> <value> <from> <to>",
		Short: "Convert between setup sheet units",
		Long: `Converts a value between two units of a category, e.g.

  pw convert pressure 32 psi bar
  pw convert spring_rate 9.5 kgf/mm N/mm

Run "pw convert units" to list categories and their units.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, rawValue, from, to := args[0], args[1], args[2], args[3]

			value, ok := convert.ParseInput(rawValue)
			if !ok {
				return fmt.Errorf("value %q is not a number", rawValue)
			}

			result, err := convert.Value(convert.Category(category), from, to, value)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n",
				convert.FormatResult(value), from, convert.FormatResult(result), to)
			return nil
		},
	}

	cmd.AddCommand(newConvertUnitsCmd())
	return cmd
}

func newConvertUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List converter categories and units",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tLABEL\tUNITS")
			for _, cc := range convert.Categories() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", cc.ID, cc.Label, strings.Join(cc.Units, ", "))
			}
			w.Flush()
		},
	}
}
