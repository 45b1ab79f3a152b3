package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inboxscribe/inboxscribe/internal/google"
)

func newAuthCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to the Gmail account",
		Long: `Run the OAuth authorization flow and persist the resulting token.

Prints a consent URL to open in a browser. After approving access,
Google displays an authorization code; paste it back here and the
token is written to the token file (GMAIL_TOKEN_PATH, default
token.json) for the server to use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := google.ConfigFromEnv()

			if creds.HasToken() && !force {
				fmt.Printf("Token already exists at %s. Use --force to re-authorize.\n", creds.TokenPath)
				return nil
			}

			url, err := creds.AuthCodeURL()
			if err != nil {
				return err
			}

			fmt.Println("Open the following URL in a browser and approve access:")
			fmt.Println()
			fmt.Println("  " + url)
			fmt.Println()
			fmt.Print("Enter the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code entered")
			}

			if err := creds.Exchange(cmd.Context(), code); err != nil {
				return err
			}

			fmt.Printf("Token saved to %s\n", creds.TokenPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-authorize even if a token already exists")

	return cmd
}
