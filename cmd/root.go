package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the inboxscribe application
var rootCmd = &cobra.Command{
	Use:   "inboxscribe",
	Short: "Gmail reading and draft-reply tools for AI assistants",
	Long: `inboxscribe is an MCP (Model Context Protocol) server that lets AI
assistants read unread Gmail messages and create correctly threaded
draft replies.

It exposes three tools: get_unread_emails, create_draft_reply and
get_email_details. Drafts are never sent; they stay in Gmail for review.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "inboxscribe version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
}
