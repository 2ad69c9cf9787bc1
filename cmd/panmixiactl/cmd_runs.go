package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"panmixia/pkg/panmixia"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived runs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		runs, err := client.Runs(cmd.Context(), panmixia.RunsRequest{Limit: runsLimit})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs archived")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN ID\tCREATED\tPROBLEM\tSEED\tPOP\tGENS\tBEST")
		for _, r := range runs {
			created := r.CreatedAtUTC
			if at, err := time.Parse(time.RFC3339, r.CreatedAtUTC); err == nil {
				created = humanize.Time(at)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%g\n",
				r.RunID, created, r.Problem, r.Seed, r.Population, r.Generations, r.BestFitness)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximal number of runs to list")

	rootCmd.AddCommand(runsCmd)
}
