package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/spotthings/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP bridge until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	if cmd.IsSet("port") {
		r.config.Server.Port = cmd.Int("port")
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	srv := server.NewServer(server.ServerOpts{
		Config:  r.config,
		Manager: r.tokens,
		Factory: r.factory,
		Logger:  r.logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("serving", "addr", r.config.Server.Addr(), "token_file", r.config.Storage.TokenFile)
	return srv.ListenAndServe(ctx)
}
