package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"panmixia/pkg/panmixia"
)

var (
	diagnosticsRunID  string
	diagnosticsLatest bool
	diagnosticsLimit  int
	diagnosticsJSON   bool
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "Print per-generation diagnostics of a run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		diagnostics, err := client.Diagnostics(cmd.Context(), panmixia.DiagnosticsRequest{
			RunID:  diagnosticsRunID,
			Latest: diagnosticsLatest,
			Limit:  diagnosticsLimit,
		})
		if err != nil {
			return err
		}

		if diagnosticsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(diagnostics)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GEN\tBEST\tMEAN\tSTDDEV\tINVALID\tALTERED\tKILLED\tMS")
		for _, d := range diagnostics {
			fmt.Fprintf(w, "%d\t%g\t%.4g\t%.4g\t%d\t%d\t%d\t%d\n",
				d.Generation, d.BestFitness, d.Fitness.Mean, d.Fitness.StdDev,
				d.InvalidCount, d.AlterCount, d.KillCount, d.DurationMillis)
		}
		return w.Flush()
	},
}

func init() {
	diagnosticsCmd.Flags().StringVar(&diagnosticsRunID, "run-id", "", "run to inspect")
	diagnosticsCmd.Flags().BoolVar(&diagnosticsLatest, "latest", false, "inspect the newest archived run")
	diagnosticsCmd.Flags().IntVar(&diagnosticsLimit, "limit", 0, "maximal number of generations to print (0 prints all)")
	diagnosticsCmd.Flags().BoolVar(&diagnosticsJSON, "json", false, "emit JSON instead of a table")

	rootCmd.AddCommand(diagnosticsCmd)
}
