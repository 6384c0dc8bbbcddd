package main

import (
	"fmt"
	"io"
	"os"

	"blog-publishing-be/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type app struct {
	logFile string
	logger  logger.ILogger
}

// newRootCmd builds a fresh command tree so flags never leak between runs.
func newRootCmd() *cobra.Command {
	a := &app{logger: logger.NewNopLogger()}

	rootCmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Inspect and author blog post content from the terminal",
		Long: `blogctl renders stored editor documents, converts markdown into
documents, mints development tokens and tails published post events.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			if a.logFile != "" {
				a.logger = logger.NewIsolatedLogger(a.logFile)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write structured logs to this file")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newImportCmd(a),
		newTokenCmd(a),
		newEventsCmd(a),
	)
	return rootCmd
}

// Execute runs the command tree. Called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readInput reads the named file, or stdin when the name is empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}
