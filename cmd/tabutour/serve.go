package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rbenhaddou/tabutour/geo"
	"github.com/rbenhaddou/tabutour/tabu"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Tabu Search over HTTP",
	Long: `serve exposes the solver as a small JSON API:

  POST /solve    solve an instance (body: cities + options; empty cities
                 fall back to the built-in Morocco set)
  GET  /healthz  liveness probe`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

// cityPayload mirrors geo.City for the wire.
type cityPayload struct {
	Name string  `json:"name" binding:"required"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// optionsPayload carries the recognized configuration options. Zero values
// defer to DefaultOptions; validation stays with the engine.
type optionsPayload struct {
	MoveFamily       string  `json:"moveFamily"`
	TabuTenure       int     `json:"tabuTenure"`
	MaxIterations    int     `json:"maxIterations"`
	MaxNoImprovement int     `json:"maxNoImprovement"`
	TargetCost       float64 `json:"targetCost"`
	InitialStrategy  string  `json:"initialStrategy"`
	RandomSeed       int64   `json:"randomSeed"`
	StartCity        int     `json:"startCity"`
	Workers          int     `json:"workers"`
}

type solveRequest struct {
	Cities    []cityPayload  `json:"cities"`
	Haversine bool           `json:"haversine"`
	Options   optionsPayload `json:"options"`
}

type solveResponse struct {
	Tour       []string `json:"tour"`
	Cost       float64  `json:"cost"`
	FoundAt    int      `json:"foundAt"`
	Iterations int      `json:"iterations"`
}

func (p optionsPayload) toOptions() (tabu.Options, error) {
	opts := tabu.DefaultOptions()

	family, err := parseMoveFamily(p.MoveFamily)
	if err != nil {
		return tabu.Options{}, err
	}
	strategy, err := parseInitStrategy(p.InitialStrategy)
	if err != nil {
		return tabu.Options{}, err
	}
	opts.MoveFamily = family
	opts.InitStrategy = strategy

	if p.TabuTenure != 0 {
		opts.Tenure = p.TabuTenure
	}
	if p.MaxIterations != 0 {
		opts.MaxIterations = p.MaxIterations
	}
	opts.MaxStale = p.MaxNoImprovement
	opts.TargetCost = p.TargetCost
	opts.Seed = p.RandomSeed
	opts.StartVertex = p.StartCity
	opts.Workers = p.Workers

	return opts, nil
}

// isConfigError classifies solver failures the caller can fix.
func isConfigError(err error) bool {
	for _, sentinel := range []error{
		tabu.ErrNilMatrix, tabu.ErrNonSquare, tabu.ErrDimensionMismatch,
		tabu.ErrNonZeroDiagonal, tabu.ErrNegativeWeight, tabu.ErrNonFiniteWeight,
		tabu.ErrAsymmetry, tabu.ErrBadTenure, tabu.ErrBadIterations,
		tabu.ErrStartOutOfRange, tabu.ErrUnknownMoveFamily, tabu.ErrUnknownInitStrategy,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/solve", func(c *gin.Context) {
		var req solveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cities := geo.Morocco()
		if len(req.Cities) > 0 {
			cities = make([]geo.City, len(req.Cities))
			for i, p := range req.Cities {
				cities[i] = geo.City{Name: p.Name, Lat: p.Lat, Lon: p.Lon}
			}
		}

		dist, err := buildMatrix(cities, req.Haversine)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts, err := req.Options.toOptions()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := tabu.Solve(c.Request.Context(), dist, opts)
		if err != nil {
			status := http.StatusInternalServerError
			if isConfigError(err) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		names := make([]string, len(res.Tour))
		for i, idx := range res.Tour {
			names[i] = cities[idx].Name
		}

		logger.Info("solved instance",
			zap.Int("cities", len(cities)),
			zap.Float64("cost", res.Cost),
			zap.Int("iterations", res.Iterations),
		)
		c.JSON(http.StatusOK, solveResponse{
			Tour:       names,
			Cost:       res.Cost,
			FoundAt:    res.FoundAt,
			Iterations: res.Iterations,
		})
	})

	logger.Info("listening", zap.String("addr", serveAddr))

	return r.Run(serveAddr)
}
