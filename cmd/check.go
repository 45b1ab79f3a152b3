package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inboxscribe/inboxscribe/internal/gmail"
	"github.com/inboxscribe/inboxscribe/internal/google"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the Gmail credentials and connection",
		Long: `Verify that the OAuth credentials and token are in place and that the
Gmail API is reachable. Fetches the account profile and counts unread
messages without modifying anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := google.ConfigFromEnv()

			fmt.Printf("Credentials file: %s\n", creds.CredentialsPath)
			if _, err := creds.AuthCodeURL(); err != nil {
				return err
			}
			fmt.Println("  ok: credentials parsed")

			fmt.Printf("Token file: %s\n", creds.TokenPath)
			if !creds.HasToken() {
				return fmt.Errorf("no token found at %s; run the auth command first", creds.TokenPath)
			}
			fmt.Println("  ok: token present")

			client, err := gmail.NewClient(cmd.Context(), creds)
			if err != nil {
				return err
			}

			profile, err := client.Profile()
			if err != nil {
				return fmt.Errorf("failed to fetch Gmail profile: %w", err)
			}
			fmt.Printf("Connected as %s (%d messages total)\n",
				profile.EmailAddress, profile.MessagesTotal)

			ids, err := client.ListMessageIDs(gmail.UnreadQuery, gmail.DefaultMaxResults)
			if err != nil {
				return fmt.Errorf("failed to list unread messages: %w", err)
			}
			fmt.Printf("Unread messages in inbox: %d", len(ids))
			if len(ids) == int(gmail.DefaultMaxResults) {
				fmt.Print(" or more")
			}
			fmt.Println()

			fmt.Println("Everything looks good.")
			return nil
		},
	}

	return cmd
}
