package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/spotthings/internal/credentials"
)

var styles = newPalette("#1DB954", "#04B575", "#FF0000", "#FFA500", "#626262")

// palette holds the named styles used by status output.
type palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	label lipgloss.Style
}

func newPalette(title, ok, err, warn, muted string) *palette {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return &palette{
		title: fg(title).Bold(true).MarginBottom(1),
		ok:    fg(ok).Bold(true),
		err:   fg(err).Bold(true),
		warn:  fg(warn),
		help:  fg(muted).Italic(true),
		label: fg(muted).Width(15),
	}
}

// CredentialState summarizes a stored credential relative to now.
type CredentialState int

const (
	StateMissing CredentialState = iota
	StateValid
	StateExpiring // inside the safe-expiry margin; the next request refreshes it
	StateExpired
)

func (s CredentialState) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateExpiring:
		return "expiring"
	case StateExpired:
		return "expired"
	default:
		return "missing"
	}
}

// StateOf classifies cred at now.
func StateOf(cred *credentials.Credential, now time.Time) CredentialState {
	switch {
	case cred == nil:
		return StateMissing
	case !now.Before(cred.ExpiresAt):
		return StateExpired
	case cred.NeedsRefresh(now):
		return StateExpiring
	default:
		return StateValid
	}
}

// RenderStatus formats the credential report printed by `auth status`.
func RenderStatus(cred *credentials.Credential, path string, now time.Time) string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Spotify credential"))
	b.WriteString("\n")
	b.WriteString(row("File", path))

	state := StateOf(cred, now)
	if state == StateMissing {
		b.WriteString(row("Status", styles.err.Render("✗ not authorized")))
		b.WriteString(styles.help.Render("Run `spotthings auth login` or visit /login on the server."))
		b.WriteString("\n")
		return b.String()
	}

	switch state {
	case StateValid:
		b.WriteString(row("Status", styles.ok.Render("✓ valid")))
	case StateExpiring:
		b.WriteString(row("Status", styles.warn.Render("⚠ expiring, will refresh on next use")))
	case StateExpired:
		b.WriteString(row("Status", styles.warn.Render("⚠ expired, will refresh on next use")))
	}

	b.WriteString(row("Token type", cred.TokenType))
	b.WriteString(row("Expires at", cred.ExpiresAt.UTC().Format(time.RFC1123)))
	b.WriteString(row("Refresh after", cred.SafeExpiry().UTC().Format(time.RFC1123)))
	if cred.Scope != "" {
		b.WriteString(row("Scopes", cred.Scope))
	}
	if cred.RefreshToken == "" {
		b.WriteString(styles.err.Render("No refresh token stored, log in again."))
		b.WriteString("\n")
	}

	return b.String()
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s\n", styles.label.Render(label+":"), value)
}
