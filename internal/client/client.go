package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"sync"

	"golang.org/x/net/publicsuffix"
)

const (
	checkPath      = "/check"
	disconnectPath = "/disconnect"
	connectPath    = "/connect"
)

// State is a snapshot of the connection state
type State struct {
	Connected     bool
	Label         Label
	WalletAddress string
}

// CheckResult is the body returned by the session check endpoint
type CheckResult struct {
	Success       bool   `json:"success"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// SessionClient reconciles the local connection state with the backend
// and renders it into a Display.
//
// Operations are not serialized against each other. Each one writes the
// state and the label together when it settles, so the last operation to
// settle decides the final state.
type SessionClient struct {
	baseURL            *url.URL
	httpClient         *http.Client
	display            Display
	logger             *log.Logger
	legacySuccessLabel bool
	cookies            []*http.Cookie

	mu    sync.RWMutex
	state State

	observers     map[string][]Observer
	observersLock sync.RWMutex
}

// Option configures a SessionClient
type Option func(*SessionClient)

// WithHTTPClient replaces the HTTP client. If it has no cookie jar, the
// session client uses a copy of it with its own jar and leaves the given
// client untouched.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *SessionClient) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(c *SessionClient) {
		c.logger = logger
	}
}

// WithLegacySuccessLabel reproduces the browser build, where every check
// that reaches the backend fails while writing the label: the error is
// logged and the session settles as disconnected, whatever the backend
// answered.
func WithLegacySuccessLabel() Option {
	return func(c *SessionClient) {
		c.legacySuccessLabel = true
	}
}

// WithCookie seeds the cookie jar, e.g. to resume an existing backend session
func WithCookie(cookie *http.Cookie) Option {
	return func(c *SessionClient) {
		c.cookies = append(c.cookies, cookie)
	}
}

// New creates a session client for the backend at baseURL. A nil display
// is replaced by a MemoryDisplay. The display starts at "Connect".
func New(baseURL string, display Display, opts ...Option) (*SessionClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	if display == nil {
		display = NewMemoryDisplay()
	}

	c := &SessionClient{
		baseURL:    u,
		httpClient: &http.Client{Jar: jar},
		display:    display,
		logger:     log.New(os.Stdout, "SessionClient: ", log.LstdFlags),
		state:      State{Label: LabelConnect},
		observers:  make(map[string][]Observer),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		hc := *c.httpClient
		hc.Jar = jar
		c.httpClient = &hc
	}
	if len(c.cookies) > 0 {
		c.httpClient.Jar.SetCookies(c.baseURL, c.cookies)
	}

	c.display.SetText(LabelConnect.String())
	return c, nil
}

// IsConnected reports whether the last settled operation left the session connected
func (c *SessionClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Connected
}

// State returns a snapshot of the connection state
func (c *SessionClient) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Display returns the display the client renders into
func (c *SessionClient) Display() Display {
	return c.display
}

// Cookie returns the value of the named cookie held for the backend, or ""
func (c *SessionClient) Cookie(name string) string {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// CheckSession asks the backend whether the session is linked to a wallet.
// Failures are logged and settle the state as disconnected; they are never
// returned to the caller.
func (c *SessionClient) CheckSession(ctx context.Context) {
	c.logger.Println("Checking session...")

	result, err := c.fetchCheck(ctx)
	if err != nil {
		c.logger.Printf("Error checking session: %v", err)
		c.dispatchEvent(NewErrorEvent("check", err))
		c.settle(false, "")
		return
	}

	switch {
	case c.legacySuccessLabel:
		c.logger.Printf("Error checking session: %v", errLabelWrite)
		c.dispatchEvent(NewErrorEvent("check", errLabelWrite))
		c.settle(false, "")
	case result.Success:
		c.settle(true, result.WalletAddress)
	default:
		c.settle(false, "")
	}
}

// Disconnect ends the backend session. On failure the state and label are
// left untouched.
func (c *SessionClient) Disconnect(ctx context.Context) {
	resp, err := c.do(ctx, "disconnect", http.MethodGet, disconnectPath, nil)
	if err != nil {
		c.logger.Printf("Error during disconnect: %v", err)
		c.dispatchEvent(NewErrorEvent("disconnect", err))
		return
	}
	drain(resp)

	c.logger.Println("Disconnected successfully")
	c.settle(false, "")
}

// Link registers walletAddress with the backend session and then
// reconciles the local state with a session check.
func (c *SessionClient) Link(ctx context.Context, walletAddress string) {
	body, _ := json.Marshal(map[string]string{"walletAddress": walletAddress})

	resp, err := c.do(ctx, "connect", http.MethodPost, connectPath, body)
	if err != nil {
		c.logger.Printf("Error linking wallet %s: %v", walletAddress, err)
		c.dispatchEvent(NewErrorEvent("connect", err))
	} else {
		drain(resp)
		c.logger.Printf("Linked wallet %s", walletAddress)
	}

	c.CheckSession(ctx)
}

// MarkConnecting shows the transient "Connecting..." label without
// touching the connection state.
func (c *SessionClient) MarkConnecting() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display.SetText(LabelConnecting.String())
}

// RestoreLabel renders the label of the current state again, ending any
// transient label.
func (c *SessionClient) RestoreLabel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display.SetText(c.state.Label.String())
}

// RegisterObserver registers an observer for a specific event type
func (c *SessionClient) RegisterObserver(eventType string, observer Observer) {
	c.observersLock.Lock()
	defer c.observersLock.Unlock()
	c.observers[eventType] = append(c.observers[eventType], observer)
}

// UnregisterObserver unregisters an observer for a specific event type
func (c *SessionClient) UnregisterObserver(eventType string, observer Observer) {
	c.observersLock.Lock()
	defer c.observersLock.Unlock()

	observers := c.observers[eventType]
	for i, obs := range observers {
		if obs == observer {
			c.observers[eventType] = append(observers[:i:i], observers[i+1:]...)
			break
		}
	}
}

// dispatchEvent runs observers synchronously, outside of the state lock
func (c *SessionClient) dispatchEvent(event Event) {
	c.observersLock.RLock()
	observers := c.observers[event.GetType()]
	c.observersLock.RUnlock()

	for _, observer := range observers {
		observer.OnEvent(event)
	}
}

// settle writes the state and its label in one step
func (c *SessionClient) settle(connected bool, walletAddress string) State {
	label := LabelConnect
	if connected {
		label = LabelDisconnect
	}

	c.mu.Lock()
	c.state = State{Connected: connected, Label: label, WalletAddress: walletAddress}
	c.display.SetText(label.String())
	snapshot := c.state
	c.mu.Unlock()

	c.dispatchEvent(NewStatusEvent(snapshot))
	return snapshot
}

func (c *SessionClient) fetchCheck(ctx context.Context) (*CheckResult, error) {
	resp, err := c.do(ctx, "check", http.MethodGet, checkPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result CheckResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("check: decode response: %w", err)
	}
	return &result, nil
}

// do sends a request and returns the response only for 2xx statuses
func (c *SessionClient) do(ctx context.Context, op, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp)
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
