package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/config"
	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/event"
	"github.com/katalvlaran/pubweb/stream"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	In     string
	Format string
	RunID  string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild the final graph from a stored event stream",
		Long: `Applies a JSON Lines file or a SQLite run to an empty graph and prints
the resulting graph statistics. The stream must start with the initial
snapshot, since later events refer to initial nodes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.In, "in", "i", "", "JSONL file or SQLite database (required)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", config.FormatJSONL, "input format (jsonl|sqlite)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id in the SQLite database; latest when empty")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runReplay(cmd *cobra.Command, opts *ReplayOptions) error {
	var (
		events []event.GraphEvent
		coords map[core.NodeID]r2.Vec
		err    error
	)
	switch opts.Format {
	case config.FormatJSONL:
		events, coords, err = loadJSONL(opts.In)
	case config.FormatSQLite:
		events, coords, err = loadRun(cmd, opts.In, opts.RunID)
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be jsonl or sqlite", opts.Format))
	}
	if err != nil {
		return err
	}

	g := core.NewGraph()
	steps, err := event.Replay(g, events, coords)
	if err != nil {
		return WrapExitError(ExitFailure, "replay", err)
	}
	opts.Logger().Info("replay finished",
		zap.String("input", opts.In),
		zap.Int("events", len(events)),
		zap.Int("steps", steps),
	)

	return printStats(cmd.OutOrStdout(), steps, g.Stats())
}

func loadJSONL(path string) ([]event.GraphEvent, map[core.NodeID]r2.Vec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open input", err)
	}
	defer f.Close()

	events, coords, err := stream.ReadJSONL(f)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "read events", err)
	}
	return events, coords, nil
}

func loadRun(cmd *cobra.Command, path, runID string) ([]event.GraphEvent, map[core.NodeID]r2.Vec, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open input", err)
	}
	ctx := cmd.Context()
	store, err := stream.Open(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open store", err)
	}
	defer store.Close()

	if runID == "" {
		runs, err := store.Runs(ctx)
		if err != nil {
			return nil, nil, WrapExitError(ExitFailure, "list runs", err)
		}
		if len(runs) == 0 {
			return nil, nil, NewExitError(ExitCommandError, "no runs in "+path)
		}
		runID = runs[len(runs)-1].ID
	}

	events, err := store.LoadEvents(ctx, runID)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load events", err)
	}
	coords, err := store.LoadCoordinates(ctx, runID)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load coordinates", err)
	}
	return events, coords, nil
}
