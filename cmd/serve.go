package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/positions/logger"
	"github.com/etnz/positions/server"
	"github.com/google/subcommands"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr    string
	refresh string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the positions over an HTTP JSON API" }
func (*serveCmd) Usage() string {
	return `pos serve [-addr <host:port>] [-refresh <cron spec>]

  Serves the pivot, allocation, stats and market endpoints. Lots are reloaded
  on the refresh schedule while the market is open.
  Defaults come from POS_ADDR, POS_REFRESH, POS_LOG_LEVEL, POS_LOG_PRETTY,
  POS_SESSION_TTL and POS_MAX_SESSIONS.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listen address, overrides POS_ADDR")
	f.StringVar(&c.refresh, "refresh", "", "refresh schedule, overrides POS_REFRESH")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := server.ConfigFromEnv()
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	if c.refresh != "" {
		cfg.Refresh = c.refresh
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	src, err := newSourceWith(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	srv := server.New(server.Options{Config: cfg, Log: log, Source: src})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			log.Error().Err(err).Msg("Server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
