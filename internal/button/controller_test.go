package button

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/neekaru/walletconnect/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alertRecorder struct {
	mu       sync.Mutex
	messages []string
	labels   []string
	display  client.Display
}

func (r *alertRecorder) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	r.labels = append(r.labels, r.display.Text())
}

func (r *alertRecorder) snapshot() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...), append([]string(nil), r.labels...)
}

type failingWallet struct{}

func (failingWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	return nil, errors.New("user rejected the request")
}

// newBackend serves a minimal cookie-less backend: /connect links a
// wallet for everyone, /disconnect clears it.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	linked := ""

	mux := http.NewServeMux()
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		json.NewEncoder(w).Encode(client.CheckResult{Success: linked != "", WalletAddress: linked})
	})
	mux.HandleFunc("/connect", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		linked = req["walletAddress"]
		mu.Unlock()
	})
	mux.HandleFunc("/disconnect", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		linked = ""
		mu.Unlock()
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSession(t *testing.T, url string) *client.SessionClient {
	t.Helper()
	session, err := client.New(url, nil, client.WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	return session
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestController_InitialLabel(t *testing.T) {
	srv := newBackend(t)
	b := NewController(newSession(t, srv.URL), WithLogger(quietLogger()))

	assert.Equal(t, "Connect", b.Label())
}

func TestController_ClickWithoutWallet(t *testing.T) {
	srv := newBackend(t)
	session := newSession(t, srv.URL)
	recorder := &alertRecorder{display: session.Display()}
	b := NewController(session,
		WithNotifier(recorder),
		WithAlertDelay(200*time.Millisecond),
		WithLogger(quietLogger()),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Click(context.Background())
	}()

	require.Eventually(t, func() bool {
		return b.Label() == "Connecting..."
	}, time.Second, 5*time.Millisecond)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("click did not settle")
	}

	messages, labels := recorder.snapshot()
	assert.Equal(t, []string{"Please install MetaMask"}, messages)
	assert.Equal(t, []string{"Connecting..."}, labels)
	assert.Equal(t, "Connect", b.Label())
	assert.False(t, session.IsConnected())
}

func TestController_ClickWithoutWalletCancelled(t *testing.T) {
	srv := newBackend(t)
	session := newSession(t, srv.URL)
	recorder := &alertRecorder{display: session.Display()}
	b := NewController(session,
		WithNotifier(recorder),
		WithAlertDelay(time.Hour),
		WithLogger(quietLogger()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b.Click(ctx)

	messages, _ := recorder.snapshot()
	assert.Empty(t, messages)
	assert.Equal(t, "Connect", b.Label())
}

func TestController_ClickWithWalletConnectsThenDisconnects(t *testing.T) {
	srv := newBackend(t)
	session := newSession(t, srv.URL)
	b := NewController(session,
		WithWallet(StaticWallet{"0x2222222222222222222222222222222222222222"}),
		WithLogger(quietLogger()),
	)

	b.Click(context.Background())
	assert.True(t, session.IsConnected())
	assert.Equal(t, "Disconnect", b.Label())
	assert.Equal(t, "0x2222222222222222222222222222222222222222", session.State().WalletAddress)

	b.Click(context.Background())
	assert.False(t, session.IsConnected())
	assert.Equal(t, "Connect", b.Label())
}

func TestController_ClickWalletErrors(t *testing.T) {
	tests := []struct {
		name   string
		wallet WalletProvider
	}{
		{name: "rejected", wallet: failingWallet{}},
		{name: "no accounts", wallet: StaticWallet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newBackend(t)
			session := newSession(t, srv.URL)
			b := NewController(session, WithWallet(tt.wallet), WithLogger(quietLogger()))

			b.Click(context.Background())

			assert.False(t, session.IsConnected())
			assert.Equal(t, "Connect", b.Label())
		})
	}
}

func TestController_Load(t *testing.T) {
	srv := newBackend(t)
	session := newSession(t, srv.URL)
	b := NewController(session, WithLogger(quietLogger()))

	b.Load(context.Background())

	assert.False(t, session.IsConnected())
	assert.Equal(t, "Connect", b.Label())
}

func TestStaticWallet(t *testing.T) {
	accounts, err := StaticWallet{"0xa", "0xb"}.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa", "0xb"}, accounts)

	_, err = StaticWallet(nil).RequestAccounts(context.Background())
	assert.ErrorIs(t, err, ErrNoAccounts)
}
