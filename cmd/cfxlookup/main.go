package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/cfxlookup/internal/app"
	"github.com/MrSnakeDoc/cfxlookup/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("❌ cfxlookup failed: %v", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cfxlookup",
	Short: "Look up game servers, chat users and platform players",
	Long: `cfxlookup resolves game server addresses, chat user ids and platform
hex ids from an interactive terminal shell.

Chat and platform lookups go through a relay that holds the platform API key;
run one with "cfxlookup serve" and point the shell at it with CFX_RELAY_URL.

Examples:
  cfxlookup                  # Start the interactive shell
  cfxlookup serve            # Run the relay server
  cfxlookup version          # Print build information`,
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay server",
	Long: `Run the relay server: chat profile, platform profile and avatar relay
endpoints, plus /healthz, /readyz and /infra. Configured through CFX_*
environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.NewRelay().Run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd, serveCmd, versionCmd)
}

func runShell() error {
	a, err := app.NewShell()
	if err != nil {
		return err
	}
	return a.Run()
}
