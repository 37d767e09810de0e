// Package button drives the connect button: it decides between the
// disconnect path, the wallet connect flow and the missing extension
// notice.
package button

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/neekaru/walletconnect/internal/client"
)

const (
	// MissingWalletMessage is shown when no wallet extension is injected
	MissingWalletMessage = "Please install MetaMask"

	// DefaultAlertDelay is how long "Connecting..." stays up before the
	// missing extension notice
	DefaultAlertDelay = time.Second
)

// ErrNoAccounts is returned by wallets that expose no account
var ErrNoAccounts = errors.New("wallet returned no accounts")

// WalletProvider is the injected wallet extension
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
}

// StaticWallet is a WalletProvider with a fixed account list
type StaticWallet []string

// RequestAccounts returns the configured accounts
func (w StaticWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	if len(w) == 0 {
		return nil, ErrNoAccounts
	}
	return w, nil
}

// Notifier shows a message to the user
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

// Alert calls f
func (f NotifierFunc) Alert(message string) {
	f(message)
}

// Controller handles clicks on the connect button
type Controller struct {
	session    *client.SessionClient
	wallet     WalletProvider
	notifier   Notifier
	alertDelay time.Duration
	logger     *log.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithWallet sets the wallet extension. Without one every connect
// attempt ends in the missing extension notice.
func WithWallet(wallet WalletProvider) Option {
	return func(b *Controller) {
		b.wallet = wallet
	}
}

// WithNotifier sets where alerts are shown
func WithNotifier(notifier Notifier) Option {
	return func(b *Controller) {
		b.notifier = notifier
	}
}

// WithAlertDelay overrides DefaultAlertDelay
func WithAlertDelay(delay time.Duration) Option {
	return func(b *Controller) {
		b.alertDelay = delay
	}
}

// WithLogger sets the controller logger
func WithLogger(logger *log.Logger) Option {
	return func(b *Controller) {
		b.logger = logger
	}
}

// NewController creates a controller for the session's button
func NewController(session *client.SessionClient, opts ...Option) *Controller {
	b := &Controller{
		session:    session,
		alertDelay: DefaultAlertDelay,
		logger:     log.New(os.Stdout, "Button: ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.notifier == nil {
		b.notifier = NotifierFunc(func(message string) {
			b.logger.Printf("ALERT: %s", message)
		})
	}
	return b
}

// Label returns the text currently shown on the button
func (b *Controller) Label() string {
	return b.session.Display().Text()
}

// Load reconciles the button with the backend, as done on page load
func (b *Controller) Load(ctx context.Context) {
	b.session.CheckSession(ctx)
}

// Click handles a press of the button. It returns once the triggered
// operation has settled.
func (b *Controller) Click(ctx context.Context) {
	if b.session.IsConnected() {
		b.session.Disconnect(ctx)
		return
	}

	b.session.MarkConnecting()

	if b.wallet == nil {
		b.logger.Println("No wallet extension detected")
		timer := time.NewTimer(b.alertDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
			b.notifier.Alert(MissingWalletMessage)
		case <-ctx.Done():
		}
		b.session.RestoreLabel()
		return
	}

	accounts, err := b.wallet.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = ErrNoAccounts
	}
	if err != nil {
		b.logger.Printf("Error requesting wallet accounts: %v", err)
		b.session.RestoreLabel()
		return
	}

	b.session.Link(ctx, accounts[0])
}
