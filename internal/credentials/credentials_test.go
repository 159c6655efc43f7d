package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/spotthings/internal/shared"
	"golang.org/x/oauth2"
)

func sampleCredential(expiresAt time.Time) *Credential {
	return &Credential{
		AccessToken:  "A1",
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		RefreshToken: "R1",
		Scope:        "user-read-private user-modify-playback-state",
	}
}

func TestCredential(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("NeedsRefresh", func(t *testing.T) {
		tc := []struct {
			name      string
			expiresAt time.Time
			want      bool
		}{
			{name: "well before margin", expiresAt: now.Add(time.Hour), want: false},
			{name: "one second before margin", expiresAt: now.Add(SafeExpiryMargin + time.Second), want: false},
			{name: "exactly at margin", expiresAt: now.Add(SafeExpiryMargin), want: true},
			{name: "inside margin", expiresAt: now.Add(time.Minute), want: true},
			{name: "already expired", expiresAt: now.Add(-time.Minute), want: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				got := sampleCredential(tt.expiresAt).NeedsRefresh(now)
				if got != tt.want {
					t.Errorf("NeedsRefresh() = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("FromToken", func(t *testing.T) {
		tok := (&oauth2.Token{
			AccessToken:  "A2",
			TokenType:    "Bearer",
			RefreshToken: "R2",
			ExpiresIn:    3600,
		}).WithExtra(map[string]any{"scope": "user-read-email"})

		cred := FromToken(tok, now)
		if cred.AccessToken != "A2" || cred.RefreshToken != "R2" {
			t.Errorf("unexpected tokens: %+v", cred)
		}
		if !cred.ExpiresAt.Equal(now.Add(time.Hour)) {
			t.Errorf("expected expiry %v, got %v", now.Add(time.Hour), cred.ExpiresAt)
		}
		if cred.Scope != "user-read-email" {
			t.Errorf("expected scope, got %q", cred.Scope)
		}
	})

	t.Run("FromToken Uses Expiry Without ExpiresIn", func(t *testing.T) {
		expiry := now.Add(30 * time.Minute)
		cred := FromToken(&oauth2.Token{AccessToken: "A", Expiry: expiry}, now)
		if !cred.ExpiresAt.Equal(expiry) {
			t.Errorf("expected %v, got %v", expiry, cred.ExpiresAt)
		}
	})

	t.Run("Token", func(t *testing.T) {
		cred := sampleCredential(now)
		tok := cred.Token()
		if tok.AccessToken != "A1" || tok.RefreshToken != "R1" || !tok.Expiry.Equal(now) {
			t.Errorf("unexpected token %+v", tok)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := sampleCredential(now).Validate(); err != nil {
			t.Errorf("expected valid credential, got %v", err)
		}

		missing := sampleCredential(now)
		missing.RefreshToken = ""
		if err := missing.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}

		noExpiry := sampleCredential(time.Time{})
		if err := noExpiry.Validate(); err == nil {
			t.Error("expected error for zero expiry")
		}
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	expiresAt := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)

	t.Run("Load Missing File", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

		cred, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cred != nil {
			t.Errorf("expected nil credential, got %+v", cred)
		}
	})

	t.Run("Save Then Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")
		store := NewFileStore(path)

		if err := store.Save(ctx, sampleCredential(expiresAt)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		cred, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cred.AccessToken != "A1" || cred.RefreshToken != "R1" {
			t.Errorf("unexpected credential %+v", cred)
		}
		if !cred.ExpiresAt.Equal(expiresAt) {
			t.Errorf("expected %v, got %v", expiresAt, cred.ExpiresAt)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
		}
	})

	t.Run("Save Replaces Record", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

		first := sampleCredential(expiresAt)
		first.Scope = "a b c"
		if err := store.Save(ctx, first); err != nil {
			t.Fatal(err)
		}

		second := &Credential{AccessToken: "A2", TokenType: "Bearer", ExpiresAt: expiresAt, RefreshToken: "R1"}
		if err := store.Save(ctx, second); err != nil {
			t.Fatal(err)
		}

		cred, _ := store.Load(ctx)
		if cred.AccessToken != "A2" {
			t.Errorf("expected A2, got %s", cred.AccessToken)
		}
		if cred.Scope != "" {
			t.Errorf("expected record to be replaced not merged, got scope %q", cred.Scope)
		}
	})

	t.Run("Record Field Names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		store := NewFileStore(path)
		if err := store.Save(ctx, sampleCredential(expiresAt)); err != nil {
			t.Fatal(err)
		}

		data, _ := os.ReadFile(path)
		for _, key := range []string{`"access_token"`, `"token_type"`, `"expires_at"`, `"refresh_token"`, `"scope"`} {
			if !strings.Contains(string(data), key) {
				t.Errorf("expected %s in %s", key, data)
			}
		}
	})

	t.Run("Load Corrupt File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := NewFileStore(path).Load(ctx)
		if !errors.Is(err, shared.ErrIO) {
			t.Errorf("expected ErrIO, got %v", err)
		}
	})

	t.Run("Load Directory", func(t *testing.T) {
		_, err := NewFileStore(t.TempDir()).Load(ctx)
		if !errors.Is(err, shared.ErrIO) {
			t.Errorf("expected ErrIO, got %v", err)
		}
	})

	t.Run("Load Partial Record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		if err := os.WriteFile(path, []byte(`{"access_token":"A1"}`), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := NewFileStore(path).Load(ctx)
		if !errors.Is(err, shared.ErrIO) {
			t.Errorf("expected ErrIO, got %v", err)
		}
	})

	t.Run("Save Partial Record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		err := NewFileStore(path).Save(ctx, &Credential{AccessToken: "A1"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
			t.Errorf("expected no file to be written, got %v", statErr)
		}
	})

	t.Run("Save Nil", func(t *testing.T) {
		err := NewFileStore(filepath.Join(t.TempDir(), "token.json")).Save(ctx, nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		cred, err := NewMemoryStore(nil).Load(ctx)
		if err != nil || cred != nil {
			t.Errorf("expected (nil, nil), got (%v, %v)", cred, err)
		}
	})

	t.Run("Returns Copies", func(t *testing.T) {
		store := NewMemoryStore(sampleCredential(time.Now()))

		cred, _ := store.Load(ctx)
		cred.AccessToken = "mutated"

		again, _ := store.Load(ctx)
		if again.AccessToken != "A1" {
			t.Errorf("expected stored value to be unaffected, got %s", again.AccessToken)
		}
	})

	t.Run("Save", func(t *testing.T) {
		store := NewMemoryStore(nil)
		if err := store.Save(ctx, sampleCredential(time.Now())); err != nil {
			t.Fatal(err)
		}
		cred, _ := store.Load(ctx)
		if cred == nil || cred.RefreshToken != "R1" {
			t.Errorf("unexpected credential %+v", cred)
		}
	})
}
