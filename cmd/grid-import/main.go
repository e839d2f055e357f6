// Command grid-import loads a JSON-lines grid export into the SQLite dataset.
//
//	grid-import -input data/2025-06-01.jsonl -db data/weather.db -stride 10
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"weather-explorer/config"
	"weather-explorer/internal/repositories"
	"weather-explorer/internal/services/ingest"
	"weather-explorer/pkg/logger"
)

func main() {
	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	input := flag.String("input", "", "JSON-lines file with {time, latitude, longitude, t2m, u10, v10, tp6h} records")
	dbPath := flag.String("db", cnf.Dataset.Path, "SQLite dataset path")
	stride := flag.Int("stride", ingest.DefaultStride, "keep every n-th latitude and longitude")
	batch := flag.Int("batch", ingest.DefaultBatchSize, "rows per insert transaction")
	flag.Parse()

	l := logger.New(logger.Options{
		AppName: "grid-import",
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, os.Stdout)
	defer func() { _ = l.Stop() }()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	grid, err := repositories.OpenGrid(ctx, *dbPath)
	if err != nil {
		l.Fatal("cannot open the grid dataset", map[string]any{"path": *dbPath, "err": err})
	}
	defer grid.Close()

	im := ingest.NewImporter(grid, *stride, *batch, l)

	stats, err := im.Import(ctx, func() (io.ReadCloser, error) {
		return os.Open(*input)
	})
	if err != nil {
		l.Error(err, map[string]any{"input": *input})
		_ = grid.Close()
		_ = l.Stop()
		os.Exit(1)
	}

	l.Info("import finished", map[string]any{
		"input":   *input,
		"db":      *dbPath,
		"read":    stats.Read,
		"written": stats.Written,
		"lats":    stats.Lats,
		"lons":    stats.Lons,
	})
}
