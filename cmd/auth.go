package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailpurge/mailpurge/internal/google"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Run the OAuth consent flow and cache the token",
		Long: `Authorize mailpurge against the Gmail API. The auth URL is printed to
the terminal; paste the authorization code back to cache a token for
subsequent runs. Delete the token file to force a fresh consent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store := google.NewFileTokenStore(tokenPath)
			auth, err := google.NewAuthorizer(credentialsPath, store, google.StdinConsent(os.Stdin, os.Stdout))
			if err != nil {
				return fmt.Errorf("load credentials: %w", err)
			}
			if _, err := auth.Token(ctx); err != nil {
				return fmt.Errorf("authorize: %w", err)
			}
			fmt.Printf("Token cached at %s\n", tokenPath)
			return nil
		},
	}
}
