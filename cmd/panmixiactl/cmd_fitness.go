package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"panmixia/pkg/panmixia"
)

var (
	fitnessRunID  string
	fitnessLatest bool
	fitnessLimit  int
)

var fitnessCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Print the per-generation best-fitness history of a run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		history, err := client.FitnessHistory(cmd.Context(), panmixia.FitnessHistoryRequest{
			RunID:  fitnessRunID,
			Latest: fitnessLatest,
			Limit:  fitnessLimit,
		})
		if err != nil {
			return err
		}

		for i, best := range history {
			fmt.Printf("%d\t%g\n", i+1, best)
		}
		return nil
	},
}

func init() {
	fitnessCmd.Flags().StringVar(&fitnessRunID, "run-id", "", "run to inspect")
	fitnessCmd.Flags().BoolVar(&fitnessLatest, "latest", false, "inspect the newest archived run")
	fitnessCmd.Flags().IntVar(&fitnessLimit, "limit", 0, "maximal number of generations to print (0 prints all)")

	rootCmd.AddCommand(fitnessCmd)
}
