package services

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/spotthings/internal/shared"
)

func TestAPIResponse(t *testing.T) {
	t.Run("ContentType", func(t *testing.T) {
		tc := []struct {
			name string
			resp APIResponse
			want string
		}{
			{name: "upstream header", resp: APIResponse{Headers: http.Header{"Content-Type": {"application/json; charset=utf-8"}}}, want: "application/json; charset=utf-8"},
			{name: "json body without header", resp: APIResponse{Headers: http.Header{}, IsJSON: true}, want: "application/json"},
			{name: "empty body", resp: APIResponse{Headers: http.Header{}}, want: "text/plain; charset=utf-8"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.resp.ContentType(); got != tt.want {
					t.Errorf("ContentType() = %q, want %q", got, tt.want)
				}
			})
		}
	})
}

func TestProviderError(t *testing.T) {
	t.Run("Parses Spotify Error Body", func(t *testing.T) {
		pe := newProviderError(&APIResponse{
			StatusCode: http.StatusNotFound,
			Body:       []byte(`{"error":{"status":404,"message":"Device not found"}}`),
		})

		if pe.Message != "Device not found" {
			t.Errorf("expected message from body, got %q", pe.Message)
		}
		if !strings.Contains(pe.Error(), "404") {
			t.Errorf("expected status in error string, got %q", pe.Error())
		}
		if !errors.Is(pe, shared.ErrProvider) {
			t.Error("expected ErrProvider")
		}
		if errors.Is(pe, shared.ErrProviderAuth) {
			t.Error("did not expect ErrProviderAuth for 404")
		}
	})

	t.Run("Falls Back To Status Text", func(t *testing.T) {
		pe := newProviderError(&APIResponse{StatusCode: http.StatusBadGateway, Body: []byte("<html>")})
		if pe.Message != "Bad Gateway" {
			t.Errorf("expected status text, got %q", pe.Message)
		}
	})

	t.Run("Unauthorized Matches Auth Error", func(t *testing.T) {
		pe := newProviderError(&APIResponse{StatusCode: http.StatusUnauthorized})
		if !errors.Is(pe, shared.ErrProviderAuth) {
			t.Error("expected ErrProviderAuth for 401")
		}
	})
}
