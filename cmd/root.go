package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	credentialsPath string
	tokenPath       string
	verbose         bool
)

// rootCmd represents the base command for the mailpurge application
var rootCmd = &cobra.Command{
	Use:   "mailpurge",
	Short: "Search a Gmail mailbox and optionally delete the matching messages",
	Long: `mailpurge authenticates against the Gmail API with OAuth2, searches the
mailbox using Gmail's query syntax and optionally deletes the matching
messages. On the first run it opens an interactive consent flow and caches
the token for subsequent runs.

Maintenance helpers can mark all unread mail as read or move the whole
inbox into a timestamped archive label.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// defaultArgs inserts the sweep subcommand when the invocation starts with
// a flag, so the plain `mailpurge --search ... --delete` form works.
// Top-level help and version requests are left alone.
func defaultArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"sweep"}
	}
	switch args[0] {
	case "--help", "-h", "--version", "help", "completion":
		return args
	}
	if strings.HasPrefix(args[0], "-") {
		return append([]string{"sweep"}, args...)
	}
	return args
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailpurge version %s\n" .Version}}`)
	rootCmd.SetArgs(defaultArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&credentialsPath, "credentials",
		filepath.Join("volume", "credentials.json"), "path to the OAuth client secret file")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token",
		"token.json", "path to the cached OAuth token file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newSweepCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
