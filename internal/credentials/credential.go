package credentials

import (
	"fmt"
	"time"

	"github.com/desertthunder/spotthings/internal/shared"
	"golang.org/x/oauth2"
)

// SafeExpiryMargin is subtracted from the recorded expiry to decide when to refresh.
const SafeExpiryMargin = 5 * time.Minute

// Credential is the persisted Spotify token pair.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token"`
	Scope        string    `json:"scope"`
}

// FromToken builds a Credential from an oauth2 token response received at now.
//
// expires_at is now + expires_in when the response carries expires_in, falling back to the
// token's own Expiry.
func FromToken(tok *oauth2.Token, now time.Time) *Credential {
	cred := &Credential{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.UTC(),
	}

	if secs := expiresIn(tok); secs > 0 {
		cred.ExpiresAt = now.UTC().Add(time.Duration(secs) * time.Second)
	}

	if scope, ok := tok.Extra("scope").(string); ok {
		cred.Scope = scope
	}

	return cred
}

func expiresIn(tok *oauth2.Token) int64 {
	if tok.ExpiresIn > 0 {
		return tok.ExpiresIn
	}
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// SafeExpiry is the instant after which the access token is no longer handed out.
func (c *Credential) SafeExpiry() time.Time {
	return c.ExpiresAt.Add(-SafeExpiryMargin)
}

// NeedsRefresh reports whether now has reached the safe expiry.
func (c *Credential) NeedsRefresh(now time.Time) bool {
	return !now.Before(c.SafeExpiry())
}

// Token converts the record into an [oauth2.Token] for use with an [oauth2.Config].
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    c.TokenType,
		RefreshToken: c.RefreshToken,
		Expiry:       c.ExpiresAt,
	}
}

// Validate rejects partially populated records.
func (c *Credential) Validate() error {
	switch {
	case c.AccessToken == "":
		return fmt.Errorf("%w: access_token is empty", shared.ErrInvalidInput)
	case c.RefreshToken == "":
		return fmt.Errorf("%w: refresh_token is empty", shared.ErrInvalidInput)
	case c.ExpiresAt.IsZero():
		return fmt.Errorf("%w: expires_at is not set", shared.ErrInvalidInput)
	}
	return nil
}

// Clone returns a copy that shares no state with c.
func (c *Credential) Clone() *Credential {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
