// Command decimate reduces the triangle count of a mesh file.
//
//	decimate -in bunny.obj -out bunny_small.obj -target 0.8
//
// Settings come from defaults, then a YAML config file, then flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gorustyt/godecimate/config"
	"github.com/gorustyt/godecimate/decimate"
	"github.com/gorustyt/godecimate/logger"
	"github.com/gorustyt/godecimate/meshio"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(2)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("decimate failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	in, err := meshio.Load(cfg.IO.Input)
	if err != nil {
		return err
	}
	if cfg.IO.Triangulate {
		meshio.Triangulate(&in.Mesh)
	}
	logger.Info("mesh loaded",
		zap.String("path", cfg.IO.Input),
		zap.Int("points", len(in.Points)),
		zap.Int("triangles", len(in.Polys)),
		zap.Duration("took", time.Since(start)))
	logger.Sugar.Debugf("config: %+v", cfg.Decimate)

	start = time.Now()
	res, err := decimate.Decimate(ctx, &in.Mesh, cfg.Decimate,
		decimate.WithLogger(logger.Log.Named("decimate")),
		decimate.WithProgress(func(f float64) {
			logger.Debug("progress", zap.Float64("fraction", f))
		}))
	if err != nil {
		return err
	}
	took := time.Since(start)
	if res.Stats.Aborted {
		logger.Warn("interrupted, saving partial result")
	}

	out := &meshio.Mesh{Mesh: res.Mesh, Scalars: res.ErrorScalars}
	if out.Scalars != nil {
		if f, _ := meshio.FormatFromPath(cfg.IO.Output); f != meshio.FormatMeshPB {
			logger.Warn("error scalars are only written to meshpb files", zap.String("path", cfg.IO.Output))
		}
	}
	if err := meshio.Save(cfg.IO.Output, out); err != nil {
		return err
	}
	logger.Info("mesh decimated",
		zap.String("path", cfg.IO.Output),
		zap.Object("stats", &res.Stats),
		zap.Duration("took", took))
	return nil
}
