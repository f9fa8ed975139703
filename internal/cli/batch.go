package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tharunlokeshu/agriscout/internal/worker"
)

var (
	batchConcurrency int
	batchRadius      int
	batchMaxResults  int
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <locations-file>",
	Short: "Discover vendors for many locations concurrently",
	Long: `Batch reads locations from a file (one per line, # for
comments) and runs discovery for each with a bounded worker pool.
Every location's table is printed and saved as an artifact.

Example:
  agriscout batch delta_towns.txt --concurrency 3`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 2, "parallel discovery runs")
	batchCmd.Flags().IntVar(&batchRadius, "radius", 2000, "search radius in meters")
	batchCmd.Flags().IntVar(&batchMaxResults, "max-results", 200, "max vendors per location")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	d, _, cleanup, err := buildDiscoverer(cfg, logger, true)
	if err != nil {
		return err
	}
	defer cleanup()

	processor := worker.NewBatchProcessor(d, batchConcurrency, batchRadius, batchMaxResults)
	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return err
	}

	for _, res := range results {
		fmt.Println(res.Table)
		fmt.Println()
	}
	fmt.Printf("Processed %d locations.\n", len(results))
	return nil
}
