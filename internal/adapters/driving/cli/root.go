// Package cli implements the reportqa command line using cobra.
// It implements a driving adapter: commands only talk to core services
// through driving ports injected by the binary.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reportqa/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "reportqa",
	Short: "Ask questions about medical lab reports",
	Long: `reportqa answers natural-language questions about a laboratory report.

Questions are answered from the report text you supply, or from a built-in
sample report when none is given. Relevant passages are retrieved with
embeddings and a language model writes the answer.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by `reportqa version`.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as serve and mcp serve.
func Execute(ctx context.Context) error {
	defer func() {
		_ = logger.Sync()
	}()
	// cobra prints to stderr unless told otherwise; answers belong on stdout
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}
