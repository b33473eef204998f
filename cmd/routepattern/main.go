package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChillFish8/routepattern"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "routepattern",
		Short: "Compile and test typed route templates",
		Long: `routepattern compiles route templates such as /users/{id:int}/files/{rest:path}
into anchored regular expressions and matches request paths against them.

Placeholder types: alpha, alnum, string, int, uuid and path. A path placeholder
must end the route.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")

	logger := func(cmd *cobra.Command) *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}

	rootCmd.AddCommand(
		compileCmd(),
		matchCmd(),
		checkCmd(logger),
		convertersCmd(),
		versionCmd(),
	)

	return rootCmd
}

// optionFlags registers the compile options shared by several commands.
func optionFlags(cmd *cobra.Command, options *routepattern.Options) {
	cmd.Flags().BoolVarP(&options.IgnoreCase, "ignore-case", "i", false, "Match literal text case-insensitively")
	cmd.Flags().Var(&trailingSlashValue{&options.TrailingSlash}, "trailing-slash", "Trailing slash policy: strict or optional")
	cmd.Flags().BoolVar(&options.CanonicalizeLiterals, "canonicalize", false, "Percent-encode literal text like a URL pathname")
}

// trailingSlashValue adapts a TrailingSlashPolicy to a command line flag.
type trailingSlashValue struct {
	p *routepattern.TrailingSlashPolicy
}

func (v *trailingSlashValue) String() string {
	if v.p == nil {
		return routepattern.TrailingSlashStrict.String()
	}

	return v.p.String()
}

func (v *trailingSlashValue) Set(s string) error {
	return v.p.UnmarshalText([]byte(s))
}

func (v *trailingSlashValue) Type() string {
	return "policy"
}

func printParams(w io.Writer, params []routepattern.Param) {
	if len(params) == 0 {
		fmt.Fprintln(w, "Params:   (none)")
		return
	}

	fmt.Fprintln(w, "Params:")
	for i, p := range params {
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, p.Name, p.Converter)
	}
}
