package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.TokenFile != "./token.json" {
			t.Errorf("expected token file ./token.json, got %s", config.Storage.TokenFile)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.Spotify.APIURL != "https://api.spotify.com/v1" {
			t.Errorf("expected spotify api url, got %s", config.Credentials.Spotify.APIURL)
		}

		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if config.Server.ReadTimeoutDuration() != 10*time.Second {
			t.Errorf("expected 10s read timeout, got %v", config.Server.ReadTimeoutDuration())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Storage.TokenFile != DefaultConfig().Storage.TokenFile {
			t.Errorf("created config token file doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "127.0.0.1"
port = 8080

[storage]
token_file = "/var/lib/spotthings/token.json"

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:8080/callback"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Addr() != "127.0.0.1:8080" {
			t.Errorf("expected addr 127.0.0.1:8080, got %s", config.Server.Addr())
		}

		if config.Storage.TokenFile != "/var/lib/spotthings/token.json" {
			t.Errorf("unexpected token file %s", config.Storage.TokenFile)
		}

		if config.Credentials.Spotify.APIURL != "https://api.spotify.com/v1" {
			t.Errorf("expected default api url to survive partial file, got %s", config.Credentials.Spotify.APIURL)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_id")
		t.Setenv("TOKEN_FILE_PATH", "/tmp/env-token.json")
		t.Setenv("PORT", "4000")

		config := DefaultConfig()
		if err := config.ApplyEnv(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env client id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Storage.TokenFile != "/tmp/env-token.json" {
			t.Errorf("expected env token file, got %s", config.Storage.TokenFile)
		}
		if config.Server.Port != 4000 {
			t.Errorf("expected env port 4000, got %d", config.Server.Port)
		}
	})

	t.Run("ApplyEnv Invalid Port", func(t *testing.T) {
		t.Setenv("PORT", "http")

		err := DefaultConfig().ApplyEnv()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadEnvFile", func(t *testing.T) {
		t.Run("Missing File", func(t *testing.T) {
			if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
				t.Errorf("expected missing env file to be ignored, got %v", err)
			}
		})

		t.Run("Sets Variables", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(path, []byte("ST_CLIENT_ID=from_dotenv\n"), 0600); err != nil {
				t.Fatalf("failed to write env file: %v", err)
			}
			t.Setenv("ST_CLIENT_ID", "")
			os.Unsetenv("ST_CLIENT_ID")

			if err := LoadEnvFile(path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := os.Getenv("ST_CLIENT_ID"); got != "from_dotenv" {
				t.Errorf("expected from_dotenv, got %q", got)
			}
		})
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			mutate  func(*Config)
			wantErr error
		}{
			{name: "defaults are valid", mutate: func(*Config) {}},
			{name: "missing client id", mutate: func(c *Config) { c.Credentials.Spotify.ClientID = "" }, wantErr: ErrMissingCredentials},
			{name: "missing redirect", mutate: func(c *Config) { c.Credentials.Spotify.RedirectURI = "" }, wantErr: ErrInvalidConfig},
			{name: "missing token file", mutate: func(c *Config) { c.Storage.TokenFile = "" }, wantErr: ErrInvalidConfig},
			{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: ErrInvalidConfig},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				err := config.Validate()
				if tt.wantErr == nil && err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})
}
