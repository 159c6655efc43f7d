package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotthings/internal/auth"
	"github.com/desertthunder/spotthings/internal/credentials"
	"github.com/desertthunder/spotthings/internal/services"
	"github.com/desertthunder/spotthings/internal/shared"
	"github.com/desertthunder/spotthings/internal/smartthings"
)

// shutdownTimeout bounds graceful shutdown once the serve context is cancelled.
const shutdownTimeout = 5 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, rate limiting and panic recovery.
type Middleware func(http.Handler) http.Handler

// Route is a method and path pair served by a [Handler].
type Route struct {
	Method string
	Path   string
}

// Handler defines the interface for HTTP request handlers in the bridge.
// Implementations group related endpoints (auth, playback, smartthings).
type Handler interface {
	http.Handler     // ServeHTTP handles the HTTP request and writes the response
	Routes() []Route // Routes returns the method/path pairs this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// TokenManager is the credential lifecycle the handlers depend on. [auth.Manager] implements it.
type TokenManager interface {
	AuthURL() string
	CompleteAuthorization(ctx context.Context, code string) (*credentials.Credential, error)
	EnsureFreshToken(ctx context.Context) (*credentials.Credential, error)
	Refresh(ctx context.Context) (auth.RefreshResult, error)
}

// Server wires the handlers, middleware and ST Schema dispatcher into one [http.Handler].
type Server struct {
	config *shared.Config
	router *BasicRouter
	logger *log.Logger
}

// ServerOpts configures a [Server].
type ServerOpts struct {
	Config  *shared.Config
	Manager TokenManager
	Factory services.ClientFactory
	Logger  *log.Logger
}

// NewServer builds the router with every bridge route registered.
func NewServer(opts ServerOpts) *Server {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	logger := shared.WithLogger(opts.Logger, "component", "server")

	dispatcher := smartthings.NewDispatcher(smartthings.DispatcherOpts{
		Devices: smartthings.DeviceListerFunc(func(ctx context.Context) ([]services.SpotifyDevice, error) {
			cred, err := opts.Manager.EnsureFreshToken(ctx)
			if err != nil {
				return nil, err
			}
			return opts.Factory.NewClient(cred).Devices(ctx)
		}),
		ClientID: opts.Config.Credentials.SmartThings.ClientID,
		Logger:   opts.Logger,
	})

	router := NewBasicRouter()
	router.Use(
		Recoverer(logger),
		RequestLogger(logger),
		NewRateLimiter(opts.Config.Server.RequestsPerMinute).Middleware(),
	)

	router.Handler(PingHandler{})
	router.Handler(NewAuthHandler(opts.Manager, opts.Logger))
	router.Handler(NewPlaybackHandler(opts.Manager, opts.Factory, opts.Logger))
	router.Handler(NewSmartThingsHandler(dispatcher, opts.Logger))

	return &Server{config: opts.Config, router: router, logger: logger}
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Routes lists the registered routes.
func (s *Server) Routes() []Route {
	return s.router.Routes()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.config.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeoutDuration(),
		WriteTimeout: s.config.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
