package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-explorer/config"
	v1 "weather-explorer/internal/controllers/http/v1"
	"weather-explorer/internal/repositories"
	"weather-explorer/internal/services/explorer"
	"weather-explorer/internal/services/weather"
	"weather-explorer/pkg/httpserver"
	"weather-explorer/pkg/logger"
	"weather-explorer/pkg/observe"
)

const janitorInterval = time.Minute

// @title Weather Explorer API
// @version 1.0.0
// @description Gridded weather series and map popup sessions with auto-advancing chart slides.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather series served from the grid dataset
// @tag.name Explorer
// @tag.description Map popup sessions
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var hooks []io.Writer
	hook, err := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.DSN, cnf.Sentry.Debug)
	if err == nil {
		hooks = append(hooks, hook)
	}

	l := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
		Hooks:   hooks,
	}, os.Stdout)

	switch {
	case hook != nil:
		hook.SetLogger(l)
	case !errors.Is(err, observe.ErrNoDSN):
		l.Warning("sentry disabled", map[string]any{"err": err.Error()})
	}

	grid, err := repositories.OpenGrid(ctx, cnf.Dataset.Path)
	if err != nil {
		l.Fatal("cannot open the grid dataset", map[string]any{"path": cnf.Dataset.Path, "err": err})
	}

	samples := repositories.InitSampleRepository(cnf, l)

	sessions := explorer.NewStore(samples, l, explorer.Options{
		DefaultRange:     cnf.DefaultDateRange(),
		CarouselInterval: cnf.CarouselInterval(),
	}, cnf.SessionTTL())

	var sweeps []func()
	if cache, ok := samples.(*repositories.CachedRepository); ok {
		sweeps = append(sweeps, func() { cache.Prune() })
	}
	go sessions.Run(ctx, janitorInterval, sweeps...)

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
		Ready: func() bool {
			pingCtx, pingCancel := context.WithTimeout(ctx, time.Second)
			defer pingCancel()
			return grid.Ping(pingCtx) == nil
		},
	}, l)

	v1.NewRouter(
		app,
		weather.NewWeatherService(grid, l),
		sessions,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"dataset": cnf.Dataset.Path,
		"env":     cnf.App.Env,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		cancel()
		_ = grid.Close()
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
	}()

	select {
	case <-sigCh:
		l.Info("received shutdown signal")
	case <-ctx.Done():
		l.Info("context cancelled")
	}
}
