package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitcore/cmd/ui"
	"github.com/utkarsh5026/gitcore/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	repoDir   string
	logLevel  string
	logFormat string
	verbose   bool
	verify    bool
	overrides []string

	logger *slog.Logger
}

// exitError ends the process with code without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintln(stderr, ui.ErrorMessage(fmt.Sprintf("Error: %v", err)))
		return 1
	}
	return 0
}

func newRootCmd(logOutput io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "gitcore",
		Short:         "gitcore - content-addressable object store plumbing",
		Long:          getBanner(),
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := setupLogging(flags, logOutput)
			if err != nil {
				return err
			}
			flags.logger = log
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.repoDir, "repo", "C", ".", "Run as if started in this directory")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log format (text, json)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")
	pf.BoolVar(&flags.verify, "verify", false, "Re-hash objects while reading them")
	pf.StringArrayVarP(&flags.overrides, "config", "c", nil, "Set a configuration value for this invocation (key=value)")

	rootCmd.AddCommand(newInitCmd(flags))
	rootCmd.AddCommand(newHashObjectCmd(flags))
	rootCmd.AddCommand(newCatFileCmd(flags))
	rootCmd.AddCommand(newLsTreeCmd(flags))
	rootCmd.AddCommand(newWriteTreeCmd(flags))
	rootCmd.AddCommand(newCommitTreeCmd(flags))
	rootCmd.AddCommand(newUpdateRefCmd(flags))
	rootCmd.AddCommand(newRevParseCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))

	return rootCmd
}

func getBanner() string {
	return `
  gitcore stores files, directory snapshots and commits as
  content-addressed objects under .source/objects.

  Get started with: gitcore init
  Snapshot a tree:  gitcore write-tree
  Need help? Run:   gitcore --help
`
}

func setupLogging(flags *globalFlags, out io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(flags.logLevel)
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		level = logger.LevelDebug
	}

	format, err := logger.ParseFormat(flags.logFormat)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: out,
	})
	logger.Default = log
	return log, nil
}
