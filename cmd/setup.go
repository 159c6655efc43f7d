package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/desertthunder/spotthings/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the embedded example configuration to --config.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		if !cmd.Bool("force") {
			r.logger.Info("config file already exists", "path", configPath)
			return r.writePlain("✓ Config already exists at %s (use --force to overwrite)\n", configPath)
		}
		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("%w: removing existing config: %w", shared.ErrIO, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", shared.ErrIO, err)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrIO, err)
	}
	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Config written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set credentials.spotify client_id and client_secret (or SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET)\n")
	r.writePlain("2. Run 'spotthings serve' and visit /login, or run 'spotthings auth login'\n")

	return nil
}
