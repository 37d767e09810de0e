package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/neekaru/walletconnect/internal/button"
	"github.com/neekaru/walletconnect/internal/client"
	"github.com/neekaru/walletconnect/internal/session"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	server      string
	sessionID   string
	legacyLabel bool
	verbose     bool
	timeout     time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "walletctl",
		Short:         "Check, connect and disconnect a wallet session",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", "http://localhost:5000", "backend base URL")
	cmd.PersistentFlags().StringVar(&opts.sessionID, "session", "", "resume an existing session id")
	cmd.PersistentFlags().BoolVar(&opts.legacyLabel, "legacy-success-label", false, "settle successful checks as disconnected, like the browser build")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests and state changes")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per request timeout")

	cmd.AddCommand(
		newCheckCmd(opts),
		newDisconnectCmd(opts),
		newConnectCmd(opts),
		newClickCmd(opts),
	)
	return cmd
}

// newSessionClient builds a client whose diagnostics go to stderr when verbose
func newSessionClient(cmd *cobra.Command, opts *rootOptions) (*client.SessionClient, *log.Logger, error) {
	var sink io.Writer = io.Discard
	if opts.verbose {
		sink = cmd.ErrOrStderr()
	}
	logger := log.New(sink, "walletctl: ", log.LstdFlags)

	clientOpts := []client.Option{
		client.WithLogger(logger),
		client.WithHTTPClient(&http.Client{Timeout: opts.timeout}),
	}
	if opts.legacyLabel {
		clientOpts = append(clientOpts, client.WithLegacySuccessLabel())
	}
	if opts.sessionID != "" {
		clientOpts = append(clientOpts, client.WithCookie(&http.Cookie{Name: session.CookieName, Value: opts.sessionID}))
	}

	sc, err := client.New(opts.server, nil, clientOpts...)
	if err != nil {
		return nil, nil, err
	}
	sc.RegisterObserver(client.EventTypeStatus, client.NewLoggingObserver(logger))
	sc.RegisterObserver(client.EventTypeError, client.NewLoggingObserver(logger))
	return sc, logger, nil
}

func printState(cmd *cobra.Command, sc *client.SessionClient) {
	state := sc.State()
	fmt.Fprintf(cmd.OutOrStdout(), "label=%s connected=%t", sc.Display().Text(), state.Connected)
	if state.WalletAddress != "" {
		fmt.Fprintf(cmd.OutOrStdout(), " wallet=%s", state.WalletAddress)
	}
	if id := sc.Cookie(session.CookieName); id != "" {
		fmt.Fprintf(cmd.OutOrStdout(), " session=%s", id)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Ask the backend whether the session is linked to a wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, _, err := newSessionClient(cmd, opts)
			if err != nil {
				return err
			}
			sc.CheckSession(cmd.Context())
			printState(cmd, sc)
			return nil
		},
	}
}

func newDisconnectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "End the backend session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, _, err := newSessionClient(cmd, opts)
			if err != nil {
				return err
			}
			sc.CheckSession(cmd.Context())
			sc.Disconnect(cmd.Context())
			printState(cmd, sc)
			return nil
		},
	}
}

func newConnectCmd(opts *rootOptions) *cobra.Command {
	var wallet string
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Link a wallet address to a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, _, err := newSessionClient(cmd, opts)
			if err != nil {
				return err
			}
			sc.Link(cmd.Context(), wallet)
			printState(cmd, sc)
			return nil
		},
	}
	cmd.Flags().StringVar(&wallet, "wallet", "", "wallet address (0x...)")
	_ = cmd.MarkFlagRequired("wallet")
	return cmd
}

func newClickCmd(opts *rootOptions) *cobra.Command {
	var (
		wallet     string
		alertDelay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "click",
		Short: "Simulate the connect button: load the page, then click once",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, logger, err := newSessionClient(cmd, opts)
			if err != nil {
				return err
			}

			buttonOpts := []button.Option{
				button.WithLogger(logger),
				button.WithAlertDelay(alertDelay),
				button.WithNotifier(button.NotifierFunc(func(message string) {
					fmt.Fprintf(cmd.ErrOrStderr(), "alert: %s\n", message)
				})),
			}
			if wallet != "" {
				buttonOpts = append(buttonOpts, button.WithWallet(button.StaticWallet{wallet}))
			}
			b := button.NewController(sc, buttonOpts...)

			b.Load(cmd.Context())
			b.Click(cmd.Context())
			printState(cmd, sc)
			return nil
		},
	}
	cmd.Flags().StringVar(&wallet, "wallet", "", "wallet account exposed by the simulated extension; empty means no extension")
	cmd.Flags().DurationVar(&alertDelay, "alert-delay", button.DefaultAlertDelay, "delay before the missing extension alert")
	return cmd
}
