package main

import (
	"context"
	"os"

	"github.com/sha1n/gitm/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "gitm"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

const longDescription = `Search the commit history of the current git repository, and optionally its
GitHub issues, ranked by relevance to a free-text query. Author and time period
mentions in the query are turned into filters by a language model.`

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := &cobra.Command{
		Use:          programName + " [query...]",
		Short:        "Search git history and GitHub issues",
		Long:         longDescription,
		Version:      version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return searchWithFlags(cmd.Context(), cmd.Flags(), args)
		},
	}

	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	app.RegisterSearchFlags(rootCmd.Flags())

	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the search as an MCP tool",
		Long:         "Expose the search of the current repository as the search_history MCP tool over stdio or SSE.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveWithFlags(cmd.Context(), cmd.Flags(), version)
		},
	}
	app.RegisterServeFlags(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)

	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(context.Background())
}

func searchWithFlags(ctx context.Context, flags *pflag.FlagSet, args []string) error {
	return app.RunSearchWithDeps(ctx, app.DefaultSearchParams(), flags, args)
}

func serveWithFlags(ctx context.Context, flags *pflag.FlagSet, version string) error {
	return app.RunWithDeps(ctx, app.DefaultRunParams(), flags, version)
}
