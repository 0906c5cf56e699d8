// Command magnifier replays a preprocessed packet trace through the
// sentinel-search-and-mirroring simulation described by spec.md.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Emeline-1/magnifier/internal/config"
	"github.com/Emeline-1/magnifier/internal/telemetry"
)

var (
	cfgFile    string
	verbose    bool
	debug      bool
	metricsAddr string

	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "magnifier",
	Short: "Simulates sentinel-based ingress mirroring over a packet trace",
	Long: `magnifier replays a preprocessed packet trace, searching for
single-ingress source prefixes ("sentinels"), deploying a subset of them
as mirroring rules, and scoring the result against ground truth over a
rolling three-iteration window.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file; only its input_path, output_path and seed are used, and flags take precedence")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (e.g. :9090)")

	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.InputPath, "pkts", "p", "", "path to the preprocessed packet CSV (required)")
	flags.StringVarP(&cfg.OutputPath, "outfile", "o", "results.csv", "output CSV path")
	flags.IntVarP(&cfg.Frequency, "frequency", "f", 1024, "sampler frequency")
	flags.IntVarP(&cfg.DurationSeconds, "duration", "d", 30, "simulated window duration in seconds")
	flags.IntVarP(&cfg.PacketsPerSecond, "pps", "P", -1, "packets per window (-1: use duration instead)")
	var start, end int
	flags.IntVarP(&start, "start", "s", 16, "sentinel search start prefix length")
	flags.IntVarP(&end, "end", "e", 24, "sentinel search end prefix length")
	flags.IntVarP(&cfg.Iterations, "iteration", "i", 20, "number of iterations to run")
	var magnifier int
	flags.IntVarP(&magnifier, "magnifier", "m", 1, "1: run the magnifier sampler, 0: run everflow")
	flags.IntVarP(&cfg.NBorder, "border", "b", 4, "number of ingress border routers (4, 8, 16, 32, or 64)")
	var traffic int
	flags.IntVarP(&traffic, "traffic", "t", 1, "1: persistent ingress mapping, 0: random")
	flags.IntVarP(&cfg.PermutationPct, "amount", "a", -1, "percent of /24s to permute to a different ingress (-1: disabled; no prefix inventory is read, so any other value is logged and ignored)")
	flags.Int64Var(&cfg.Seed, "seed", 1, "deterministic seed for sampling and permutation")

	cobra.OnInitialize(func() {
		cfg.SearchStart = uint8(start)
		cfg.SearchEnd = uint8(end)
		cfg.Magnifier = magnifier != 0
		cfg.Persistent = traffic != 0
	})
}

func main() {
	rootCmd.AddCommand(visualizeCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *telemetry.Logger {
	format := telemetry.FormatText
	return telemetry.NewLogger(telemetry.LoggerConfig{Debug: debug, Format: format})
}
