package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotthings/internal/auth"
	"github.com/desertthunder/spotthings/internal/credentials"
	"github.com/desertthunder/spotthings/internal/server"
	"github.com/desertthunder/spotthings/internal/services"
	"github.com/desertthunder/spotthings/internal/shared"
	"github.com/urfave/cli/v3"
)

// Tokens is the credential lifecycle used by the CLI. [auth.Manager] implements it.
type Tokens interface {
	server.TokenManager
	Status(ctx context.Context) (*credentials.Credential, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Dependencies left nil are built from the configuration on first use.
type Runner struct {
	config      *shared.Config
	tokens      Tokens
	factory     services.ClientFactory
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	now         func() time.Time
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Tokens      Tokens
	Factory     services.ClientFactory
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
	Clock       func() time.Time
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC() }
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		tokens:      opts.Tokens,
		factory:     opts.Factory,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		now:         opts.Clock,
		openBrowser: opts.OpenBrowser,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, authCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the configuration once: the file named by --config (or the embedded
// defaults when it does not exist), then environment overrides.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	configPath := cmd.String("config")

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrInvalidConfig, err)
		}
		r.logger.Debug("loaded config", "path", configPath)
	} else {
		r.logger.Debug("config file not found, using defaults", "path", configPath)
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := shared.SetLogLevel(r.logger, config.Log.Level); err != nil {
		r.logger.Warn("ignoring unknown log level", "level", config.Log.Level)
	}

	r.config = config
	return config, nil
}

// prepare loads the configuration and builds the token manager and Spotify client factory.
func (r *Runner) prepare(cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if r.tokens == nil {
		r.tokens = auth.NewManager(auth.ManagerOpts{
			OAuth:      services.NewOAuthConfig(config.Credentials.Spotify),
			Store:      credentials.NewFileStore(config.Storage.TokenFile),
			Logger:     r.logger,
			Clock:      r.now,
			HTTPClient: r.httpClient,
		})
	}

	if r.factory == nil {
		r.factory = services.NewSpotifyFactory(services.FactoryOpts{
			BaseURL:           config.Credentials.Spotify.APIURL,
			HTTPClient:        r.httpClient,
			RequestsPerSecond: config.Credentials.Spotify.RequestsPerSecond,
		})
	}

	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
