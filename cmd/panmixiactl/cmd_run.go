package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"panmixia/pkg/panmixia"
)

var (
	runProblem           string
	runBits              int
	runDimension         int
	runPopulation        int
	runGenerations       int
	runSeed              int64
	runWorkers           int
	runSelection         string
	runOffspringFraction float64
	runMutationRate      float64
	runCrossoverRate     float64
	runMaxAge            int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one evolution run and archive its results",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()

		summary, err := client.Run(cmd.Context(), panmixia.RunRequest{
			Problem:           runProblem,
			Bits:              runBits,
			Dimension:         runDimension,
			Population:        runPopulation,
			Generations:       runGenerations,
			Seed:              runSeed,
			Workers:           runWorkers,
			Selection:         runSelection,
			OffspringFraction: runOffspringFraction,
			MutationRate:      runMutationRate,
			CrossoverRate:     runCrossoverRate,
			MaxPhenotypeAge:   runMaxAge,
		})
		if err != nil {
			return err
		}

		fmt.Printf("run id:        %s\n", summary.RunID)
		fmt.Printf("problem:       %s\n", summary.Problem)
		fmt.Printf("generations:   %d\n", summary.Generations)
		fmt.Printf("best fitness:  %g\n", summary.BestFitness)
		fmt.Printf("best genotype: %s\n", summary.BestGenotype)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runProblem, "problem", "ones", "problem to optimize: ones|sphere")
	runCmd.Flags().IntVar(&runBits, "bits", 16, "genotype width for the ones problem")
	runCmd.Flags().IntVar(&runDimension, "dimension", 8, "genotype dimension for the sphere problem")
	runCmd.Flags().IntVar(&runPopulation, "population", 50, "population size")
	runCmd.Flags().IntVar(&runGenerations, "generations", 100, "generations to evolve")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "random seed (0 picks one from the clock)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 4, "parallel fitness evaluation workers")
	runCmd.Flags().StringVar(&runSelection, "selection", "tournament", "offspring selection: tournament|sus|truncation|gated")
	runCmd.Flags().Float64Var(&runOffspringFraction, "offspring-fraction", 0, "offspring share of the population")
	runCmd.Flags().Float64Var(&runMutationRate, "mutation-rate", 0.03, "per-gene mutation probability")
	runCmd.Flags().Float64Var(&runCrossoverRate, "crossover-rate", 0.3, "crossover probability")
	runCmd.Flags().IntVar(&runMaxAge, "max-age", 0, "maximal phenotype age in generations")

	rootCmd.AddCommand(runCmd)
}
