package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Mobinshahidi/google-meet-generator/internal/config"
	"github.com/Mobinshahidi/google-meet-generator/internal/google"
	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var (
		o          config.Overrides
		listenAddr string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Grant the bot access to create Google Meet spaces",
		Long: `Run the Google OAuth consent flow once and write the token file.

A local callback server is started on the loopback interface and the
authorization URL is printed. Open it, approve access, and the resulting
refresh token is saved so "serve" can run unattended.

The OAuth client must be a Desktop app client; download its secrets as
credentials.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuth(cmd.Context(), o, listenAddr, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&o.CredentialsFile, "credentials-file", "", "Google OAuth client secrets file (default credentials.json). Can also use CREDENTIALS_FILE env var.")
	cmd.Flags().StringVar(&o.TokenFile, "token-file", "", "Where to write the token (default token.json). Can also use TOKEN_FILE env var.")
	cmd.Flags().StringVar(&listenAddr, "listen-addr", "", "Loopback address for the OAuth callback (default 127.0.0.1 on a random port)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug logging")

	return cmd
}

func runAuth(ctx context.Context, o config.Overrides, listenAddr string, out, errOut io.Writer) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	credentialsFile, tokenFile := config.GoogleFiles(o)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds := google.NewCredentialManager(google.ManagerConfig{
		TokenFile:       tokenFile,
		CredentialsFile: credentialsFile,
		Consent:         &google.LoopbackConsent{Out: out, ListenAddr: listenAddr},
		Logger:          logging.New(errOut, config.DefaultLogFormat, o.Debug),
	})
	if _, err := creds.Authorize(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "Authorization complete. Token saved to %s\n", creds.TokenPath())
	return nil
}
