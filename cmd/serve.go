package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/config"
	"github.com/etnz/fundperf/logger"
	"github.com/etnz/fundperf/server"
	"github.com/google/subcommands"
)

// serveCmd serves the reports and the chart over HTTP.
type serveCmd struct {
	data string
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the reports over HTTP" }
func (*serveCmd) Usage() string {
	return `fundperf serve [-data <file>] [-port <port>]

  Loads the workbook once and serves the reports, the cumulative return chart and the documentation.
  PORT, DEBUG, LOG_LEVEL and DATA_PATHS are read from the environment or a .env file.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.data, "data", "", "path to the price workbook, instead of DATA_PATHS")
	f.IntVar(&c.port, "port", 0, "listen port, instead of PORT")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.port > 0 {
		cfg.Port = c.port
	}
	if c.data != "" {
		cfg.DataPaths = []string{c.data}
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.Debug})
	logger.SetGlobalLogger(log)

	store, err := fundperf.Load(cfg.DataPaths...)
	if err != nil {
		// The server keeps running, every view shows "no data available".
		log.Error().Err(err).Strs("paths", cfg.DataPaths).Msg("failed to load workbook")
		store = fundperf.EmptyStore(err)
	} else {
		log.Info().Str("source", store.Source()).Int("funds", len(store.Funds())).Msg("workbook loaded")
	}

	srv := server.New(server.Config{
		Port:     cfg.Port,
		Log:      log,
		Reporter: fundperf.NewReporter(store),
		DevMode:  cfg.Debug,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
