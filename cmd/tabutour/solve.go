package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rbenhaddou/tabutour/tabu"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run one Tabu Search and print the resulting route",
	RunE:  runSolve,
}

func init() {
	f := solveCmd.Flags()

	f.String("cities", "", "xlsx file with Name|Lat|Lon rows (default: built-in Morocco set)")
	f.String("sheet", "Sheet1", "sheet name inside --cities")
	f.Bool("haversine", false, "great-circle distances in km instead of planar Euclidean")

	f.String("move-family", "segment-reversal", "neighborhood moves: swap or segment-reversal")
	f.Int("tenure", 10, "iterations an applied move stays tabu")
	f.Int("max-iterations", 1000, "total iteration budget")
	f.Int("max-stale", 0, "stop after this many non-improving iterations (0 disables)")
	f.Float64("target-cost", 0, "stop once the best cost reaches this value (0 disables)")
	f.String("init", "nearest-neighbor", "initial tour: identity, random-shuffle or nearest-neighbor")
	f.Int64("seed", 0, "random seed (0 uses a fixed default stream)")
	f.Int("start", 0, "index of the start city")
	f.Int("workers", 0, "goroutines for candidate scoring (0 or 1 = sequential)")
	f.Duration("time-limit", 0, "soft wall-clock budget (0 disables)")

	_ = viper.BindPFlags(f)
}

// solveOptionsFromViper assembles engine Options from flags, config file
// and environment (in viper precedence order). Validation stays with the
// engine: malformed values fail fast inside tabu.Solve.
func solveOptionsFromViper() (tabu.Options, error) {
	opts := tabu.DefaultOptions()

	family, err := parseMoveFamily(viper.GetString("move-family"))
	if err != nil {
		return tabu.Options{}, err
	}
	strategy, err := parseInitStrategy(viper.GetString("init"))
	if err != nil {
		return tabu.Options{}, err
	}

	opts.MoveFamily = family
	opts.InitStrategy = strategy
	opts.Tenure = viper.GetInt("tenure")
	opts.MaxIterations = viper.GetInt("max-iterations")
	opts.MaxStale = viper.GetInt("max-stale")
	opts.TargetCost = viper.GetFloat64("target-cost")
	opts.Seed = viper.GetInt64("seed")
	opts.StartVertex = viper.GetInt("start")
	opts.Workers = viper.GetInt("workers")
	opts.TimeLimit = viper.GetDuration("time-limit")

	return opts, nil
}

func runSolve(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cities, err := loadCities(viper.GetString("cities"), viper.GetString("sheet"))
	if err != nil {
		return err
	}
	dist, err := buildMatrix(cities, viper.GetBool("haversine"))
	if err != nil {
		return err
	}

	opts, err := solveOptionsFromViper()
	if err != nil {
		return err
	}
	opts.OnImprove = func(iteration int, cost float64) {
		logger.Info("best tour improved",
			zap.Int("iteration", iteration),
			zap.Float64("cost", cost),
		)
	}

	logger.Info("starting search",
		zap.Int("cities", len(cities)),
		zap.String("moveFamily", opts.MoveFamily.String()),
		zap.String("initialStrategy", opts.InitStrategy.String()),
		zap.Int("tenure", opts.Tenure),
		zap.Int("maxIterations", opts.MaxIterations),
		zap.Int64("seed", opts.Seed),
	)

	started := time.Now()
	res, err := tabu.Solve(cmd.Context(), dist, opts)
	if err != nil {
		return err
	}

	logger.Info("search terminated",
		zap.Float64("cost", res.Cost),
		zap.Int("foundAt", res.FoundAt),
		zap.Int("iterations", res.Iterations),
		zap.Duration("elapsed", time.Since(started)),
	)

	fmt.Printf("best tour (%d cities, cost %.3f, found at iteration %d of %d):\n",
		len(res.Tour), res.Cost, res.FoundAt, res.Iterations)
	for pos, idx := range res.Tour {
		fmt.Printf("  %2d. %s\n", pos+1, cities[idx].Name)
	}
	fmt.Printf("  and back to %s\n", cities[res.Tour[0]].Name)

	return nil
}
