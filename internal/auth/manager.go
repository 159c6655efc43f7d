package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotthings/internal/credentials"
	"github.com/desertthunder/spotthings/internal/shared"
	"golang.org/x/oauth2"
)

// State is the fixed OAuth state parameter sent with every authorize URL.
const State = "smarththings"

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// RefreshResult reports the outcome of [Manager.Refresh].
type RefreshResult struct {
	Credential *credentials.Credential
	Refreshed  bool
}

// Manager performs code exchange and lazy refresh for the single stored credential.
type Manager struct {
	oauth      *oauth2.Config
	store      credentials.Store
	logger     *log.Logger
	now        Clock
	httpClient *http.Client

	mu sync.Mutex
}

// ManagerOpts contains the dependencies of a [Manager].
type ManagerOpts struct {
	OAuth      *oauth2.Config
	Store      credentials.Store
	Logger     *log.Logger
	Clock      Clock
	HTTPClient *http.Client // used for token endpoint calls; defaults to oauth2's client
}

// NewManager creates a [Manager] with the provided dependencies.
func NewManager(opts ManagerOpts) *Manager {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC() }
	}

	return &Manager{
		oauth:      opts.OAuth,
		store:      opts.Store,
		logger:     shared.WithLogger(opts.Logger, "component", "auth"),
		now:        opts.Clock,
		httpClient: opts.HTTPClient,
	}
}

// AuthURL returns the Spotify consent page URL carrying the configured scopes and [State].
func (m *Manager) AuthURL() string {
	return m.oauth.AuthCodeURL(State)
}

// CompleteAuthorization exchanges an authorization code and persists the resulting credential.
//
// An empty code fails with [shared.ErrAuthorization] before any network or store access.
func (m *Manager) CompleteAuthorization(ctx context.Context, code string) (*credentials.Credential, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", shared.ErrAuthorization)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tok, err := m.oauth.Exchange(m.tokenContext(ctx), code)
	if err != nil {
		return nil, classify(shared.ErrAuthorization, err)
	}

	cred := credentials.FromToken(tok, m.now())
	if err := m.store.Save(ctx, cred); err != nil {
		return nil, err
	}

	m.logger.Info("authorization complete", "expires_at", cred.ExpiresAt, "scope", cred.Scope)
	return cred, nil
}

// EnsureFreshToken returns a credential whose access token is outside the safe-expiry margin,
// refreshing it first if necessary.
func (m *Manager) EnsureFreshToken(ctx context.Context) (*credentials.Credential, error) {
	res, err := m.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return res.Credential, nil
}

// Refresh is [Manager.EnsureFreshToken] that also reports whether a refresh grant was performed.
func (m *Manager) Refresh(ctx context.Context) (RefreshResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cred, err := m.store.Load(ctx)
	if err != nil {
		return RefreshResult{}, err
	}
	if cred == nil {
		return RefreshResult{}, shared.ErrUnauthorized
	}

	now := m.now()
	if !cred.NeedsRefresh(now) {
		return RefreshResult{Credential: cred}, nil
	}

	m.logger.Debug("access token inside safe-expiry margin", "expires_at", cred.ExpiresAt)

	src := m.oauth.TokenSource(m.tokenContext(ctx), &oauth2.Token{RefreshToken: cred.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		m.logger.Warn("refresh failed", "error", err)
		return RefreshResult{}, classify(shared.ErrRefresh, err)
	}

	next := credentials.FromToken(tok, now)
	if next.RefreshToken == "" {
		next.RefreshToken = cred.RefreshToken
	}

	if err := m.store.Save(ctx, next); err != nil {
		return RefreshResult{}, err
	}

	m.logger.Info("access token refreshed", "expires_at", next.ExpiresAt)
	return RefreshResult{Credential: next, Refreshed: true}, nil
}

// Status returns the stored credential without refreshing it. The result is nil when unauthorized.
func (m *Manager) Status(ctx context.Context) (*credentials.Credential, error) {
	return m.store.Load(ctx)
}

func (m *Manager) tokenContext(ctx context.Context) context.Context {
	if m.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
}

// classify maps a token endpoint failure to kind when Spotify rejected the grant, and to
// [shared.ErrProvider] when the endpoint could not be reached.
func classify(kind error, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return fmt.Errorf("%w: %w", shared.ErrProvider, err)
}
