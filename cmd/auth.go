package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spotthings/internal/shared"
	"github.com/desertthunder/spotthings/internal/ui"
	"github.com/urfave/cli/v3"
)

// statusReport is the `auth status --json` payload. Token values are never printed.
type statusReport struct {
	TokenFile  string     `json:"token_file"`
	State      string     `json:"state"`
	TokenType  string     `json:"token_type,omitempty"`
	Scope      string     `json:"scope,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	SafeExpiry *time.Time `json:"safe_expiry,omitempty"`
}

// AuthLogin opens the Spotify consent page. The running server completes the flow at /callback.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	authURL := r.tokens.AuthURL()

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := r.openBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	return r.writePlain("Spotify will redirect to %s; keep `spotthings serve` running to receive it.\n",
		r.config.Credentials.Spotify.RedirectURI)
}

// AuthStatus reports the stored credential without touching Spotify.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}

	cred, err := r.tokens.Status(ctx)
	if err != nil {
		return err
	}

	now := r.now()
	if !cmd.Bool("json") {
		return r.writePlain("%s", ui.RenderStatus(cred, r.config.Storage.TokenFile, now))
	}

	report := statusReport{TokenFile: r.config.Storage.TokenFile, State: ui.StateOf(cred, now).String()}
	if cred != nil {
		expiresAt, safeExpiry := cred.ExpiresAt.UTC(), cred.SafeExpiry().UTC()
		report.TokenType = cred.TokenType
		report.Scope = cred.Scope
		report.ExpiresAt = &expiresAt
		report.SafeExpiry = &safeExpiry
	}
	return r.writeJSON(report, true)
}

// AuthRefresh refreshes the stored credential when it is inside the safe-expiry margin.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(cmd); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	res, err := r.tokens.Refresh(ctx)
	if errors.Is(err, shared.ErrUnauthorized) {
		return fmt.Errorf("%w: run `spotthings auth login` first", err)
	}
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if res.Refreshed {
		r.logger.Info("token refreshed", "expires_at", res.Credential.ExpiresAt)
		return r.writePlain("✓ Token refreshed, expires at %s\n", res.Credential.ExpiresAt.UTC().Format(time.RFC1123))
	}

	return r.writePlain("✓ Token is still valid until %s\n", res.Credential.SafeExpiry().UTC().Format(time.RFC1123))
}
