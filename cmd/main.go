/*
Package main is the entry point for the chatfront server.

The serve command loads configuration, initializes the global logging system,
builds the auth state store and its websocket hub, sets up the HTTP server and
gracefully handles SIGINT and SIGTERM. The remaining commands are operator
tools that share the same configuration.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chatfront",
		Short: "Front-end host for the chat admin console",
		Long: `chatfront serves the chat admin console and tracks who is signed in.

The current user is kept in memory and pushed to every open browser tab
over a websocket. In development it also proxies API calls to the admin
and gateway back ends.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		tokenCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}
