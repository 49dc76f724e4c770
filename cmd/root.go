// Package cmd implements the CLI commands for docspipe using Cobra.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the docspipe command tree. Running the root command
// performs a build.
func newRootCmd() *cobra.Command {
	opts := &buildOptions{}

	rootCmd := &cobra.Command{
		Use:   "docspipe",
		Short: "docspipe — render a docs.json description into HTML pages",
		Long: `docspipe reads a JSON documentation description (docs.json by default),
renders one HTML page per documented module and writes them to the docs
directory, creating it if needed.

Examples:
  docspipe
  docspipe --input build/docs.json --output_dir public
  docspipe --markdown --pdf --index`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	opts.register(rootCmd)
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command and exits 1 on failure.
func Execute() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command tree with args and returns the exit status.
// A failure is logged to stderr with slog.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		logger.Error("docspipe failed", slog.Any("error", err))
		return 1
	}
	return 0
}
