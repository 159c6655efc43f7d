// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/spotthings/internal/credentials"
	"github.com/desertthunder/spotthings/internal/services"
)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MockPlayer is a test double for [services.Player] that records calls.
type MockPlayer struct {
	mu sync.Mutex

	DeviceList []services.SpotifyDevice
	Response   *services.APIResponse
	Err        error

	Calls []string
}

func (m *MockPlayer) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallCount returns how many provider calls were made.
func (m *MockPlayer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockPlayer) Devices(ctx context.Context) ([]services.SpotifyDevice, error) {
	m.record("Devices")
	return m.DeviceList, m.Err
}

func (m *MockPlayer) DevicesRaw(ctx context.Context) (*services.APIResponse, error) {
	m.record("DevicesRaw")
	return m.Response, m.Err
}

func (m *MockPlayer) PlaylistsRaw(ctx context.Context) (*services.APIResponse, error) {
	m.record("PlaylistsRaw")
	return m.Response, m.Err
}

func (m *MockPlayer) Play(ctx context.Context, deviceID, contextURI string) (*services.APIResponse, error) {
	m.record("Play:" + deviceID + ":" + contextURI)
	return m.Response, m.Err
}

func (m *MockPlayer) Pause(ctx context.Context, deviceID string) (*services.APIResponse, error) {
	m.record("Pause:" + deviceID)
	return m.Response, m.Err
}

// MockFactory is a [services.ClientFactory] handing out one [MockPlayer] and remembering the
// credential it was given.
type MockFactory struct {
	Player   *MockPlayer
	LastCred *credentials.Credential
}

func (f *MockFactory) NewClient(cred *credentials.Credential) services.Player {
	f.LastCred = cred
	return f.Player
}

// CountingStore wraps a [credentials.Store] and counts loads and saves.
type CountingStore struct {
	credentials.Store
	mu    sync.Mutex
	Loads int
	Saves int
}

func (c *CountingStore) Load(ctx context.Context) (*credentials.Credential, error) {
	c.mu.Lock()
	c.Loads++
	c.mu.Unlock()
	return c.Store.Load(ctx)
}

func (c *CountingStore) Save(ctx context.Context, cred *credentials.Credential) error {
	c.mu.Lock()
	c.Saves++
	c.mu.Unlock()
	return c.Store.Save(ctx, cred)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.Calls++
	return m.response, m.err
}

// JSONResponse builds an [http.Response] carrying body as JSON.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
