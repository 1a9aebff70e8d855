// Package cli implements the pubwebgen command tree.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Quiet   bool

	logger *zap.Logger
}

// Logger returns the logger built for the running command.
func (o *RootOptions) Logger() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "pubwebgen",
		Short:         "Dynamic spatial graph generator",
		Long:          "Generates clustered graphs on the unit torus and evolves them step by step, emitting node and edge events.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(opts)
			if err != nil {
				return WrapExitError(ExitCommandError, "build logger", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.Logger().Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging, one line per event")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "disable logging")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))

	return cmd
}

func buildLogger(opts *RootOptions) (*zap.Logger, error) {
	switch {
	case opts.Quiet:
		return zap.NewNop(), nil
	case opts.Verbose:
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}
