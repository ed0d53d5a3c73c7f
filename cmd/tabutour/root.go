package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rbenhaddou/tabutour/geo"
	"github.com/rbenhaddou/tabutour/matrix"
	"github.com/rbenhaddou/tabutour/tabu"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tabutour",
	Short: "Tabu Search tours over Moroccan cities",
	Long: `tabutour computes a near-optimal closed tour visiting every city
exactly once, minimizing total travel distance with Tabu Search.

Without --cities it searches the built-in set of 22 Moroccan cities;
otherwise it loads Name|Lat|Lon rows from an xlsx spreadsheet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree; called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tabutour:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: tabutour.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development-style debug logging")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(serveCmd)
}

// initConfig wires viper: explicit --config wins, then an optional
// tabutour.yaml next to the process, then TABUTOUR_* env vars. A missing
// config file is not an error.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tabutour")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("TABUTOUR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// newLogger builds the process logger: production JSON by default,
// development console output under --verbose.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

// loadCities resolves the instance: the built-in Morocco set, or an xlsx
// spreadsheet when path is non-empty.
func loadCities(path, sheet string) ([]geo.City, error) {
	if path == "" {
		return geo.Morocco(), nil
	}

	return geo.LoadXLSX(path, sheet)
}

// buildMatrix picks the distance model for the loaded cities.
func buildMatrix(cities []geo.City, haversine bool) (*matrix.Dense, error) {
	if haversine {
		return geo.HaversineMatrix(cities)
	}

	return geo.EuclideanMatrix(cities)
}

// parseMoveFamily maps the CLI/JSON vocabulary onto the closed enum.
func parseMoveFamily(s string) (tabu.MoveFamily, error) {
	switch s {
	case "swap":
		return tabu.Swap, nil
	case "segment-reversal", "2opt", "":
		return tabu.SegmentReversal, nil
	default:
		return 0, fmt.Errorf("unknown move family %q (want swap or segment-reversal)", s)
	}
}

// parseInitStrategy maps the CLI/JSON vocabulary onto the closed enum.
func parseInitStrategy(s string) (tabu.InitStrategy, error) {
	switch s {
	case "identity":
		return tabu.InitIdentity, nil
	case "random-shuffle":
		return tabu.InitRandomShuffle, nil
	case "nearest-neighbor", "":
		return tabu.InitNearestNeighbor, nil
	default:
		return 0, fmt.Errorf("unknown initial strategy %q (want identity, random-shuffle or nearest-neighbor)", s)
	}
}
