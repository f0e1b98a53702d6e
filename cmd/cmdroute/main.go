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
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "cmdroute",
		Short: "Compile and resolve command-line route patterns",
		Long: `cmdroute works with command-line route patterns like

  deploy {env} --force,-f {file?}

It compiles patterns into immutable routes with a specificity score,
and resolves tokenized invocations against a set of routes to find
the single best match.

Routes live in a YAML manifest (cmdroute.yaml by default):

  routes:
    - pattern: "deploy {env} --force,-f"
      summary: Deploy an environment`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to cmdroute.toml (default: ./cmdroute.toml)")

	rootCmd.AddCommand(
		checkCmd(&configPath),
		explainCmd(&configPath),
		resolveCmd(&configPath),
		serveCmd(&configPath),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
