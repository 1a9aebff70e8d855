package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/config"
	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/dynamic"
	"github.com/katalvlaran/pubweb/event"
	"github.com/katalvlaran/pubweb/stream"
)

// metricsNamespace prefixes every exported metric.
const metricsNamespace = "pubweb"

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	ConfigPath  string
	Steps       int
	Seed        int64
	Format      string
	Out         string
	Name        string
	MetricsFile string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an evolving graph and write its event stream",
		Long: `Builds the initial clustered graph, runs the configured number of steps
and writes every event as DGS, JSON Lines or into a SQLite run.

Precedence, lowest first: defaults, config file, PUBWEB_* variables, flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "number of steps")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "output format (dgs|jsonl|sqlite)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output path; stdout when empty or - (not for sqlite)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "stream name in the DGS header")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	applyGenerateFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}

	logger := opts.Logger()
	reg := prometheus.NewRegistry()
	metrics, err := dynamic.NewMetrics(reg, metricsNamespace)
	if err != nil {
		return WrapExitError(ExitFailure, "register metrics", err)
	}

	start := time.Now()
	gen, err := cfg.NewGenerator(logger, metrics)
	if err != nil {
		return WrapExitError(ExitCommandError, "create generator", err)
	}
	events, err := gen.GenerateContext(cmd.Context(), cfg.Steps)
	if err != nil {
		return WrapExitError(ExitFailure, "generate", err)
	}

	coords := gen.InitialCoordinates()
	for id, p := range gen.NewCoordinates() {
		coords[id] = p
	}
	if err := writeEvents(cmd, cfg, events, coords); err != nil {
		return err
	}
	if cfg.Output.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.Output.MetricsFile, reg); err != nil {
			return WrapExitError(ExitCommandError, "write metrics", err)
		}
	}

	c := event.Count(events)
	logger.Info("generation finished",
		zap.Int("steps", cfg.Steps),
		zap.Int("events", c.Total()),
		zap.Int("node_additions", c.NodeAdditions),
		zap.Int("node_removals", c.NodeRemovals),
		zap.Int("edge_additions", c.EdgeAdditions),
		zap.Int("edge_removals", c.EdgeRemovals),
		zap.String("format", cfg.Output.Format),
		zap.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// applyGenerateFlags copies explicitly set flags over cfg.
func applyGenerateFlags(cmd *cobra.Command, opts *GenerateOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = opts.Steps
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.Seed
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.Format
	}
	if flags.Changed("out") {
		cfg.Output.Path = opts.Out
	}
	if flags.Changed("name") {
		cfg.Output.Name = opts.Name
	}
	if flags.Changed("metrics-file") {
		cfg.Output.MetricsFile = opts.MetricsFile
	}
}

func writeEvents(cmd *cobra.Command, cfg *config.Config, events []event.GraphEvent, coords map[core.NodeID]r2.Vec) error {
	if cfg.Output.Format == config.FormatSQLite {
		return writeSQLite(cmd, cfg, events, coords)
	}

	w, closeFn, err := openOutput(cmd.OutOrStdout(), cfg.Output.Path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open output", err)
	}
	defer closeFn()

	switch cfg.Output.Format {
	case config.FormatJSONL:
		jw := stream.NewJSONLWriter(w)
		if err = jw.Write(events, coords); err == nil {
			err = jw.Flush()
		}
	default:
		dw := stream.NewDGSWriter(w, cfg.Output.Name)
		if err = dw.Write(events, coords); err == nil {
			err = dw.Flush()
		}
	}
	if err != nil {
		return WrapExitError(ExitFailure, "write events", err)
	}

	return nil
}

// openOutput returns stdout for "" and "-", otherwise a created file.
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func writeSQLite(cmd *cobra.Command, cfg *config.Config, events []event.GraphEvent, coords map[core.NodeID]r2.Vec) error {
	ctx := cmd.Context()
	store, err := stream.Open(cfg.Output.Path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer store.Close()

	runID, err := store.CreateRun(ctx, stream.RunParams{
		Nodes:          cfg.Nodes,
		DenseAreas:     cfg.DenseAreas,
		Radius:         cfg.Radius,
		MaxNeighbors:   cfg.MaxNeighbors,
		Seed:           cfg.Seed,
		Snapshot:       cfg.Snapshot,
		DeleteFraction: cfg.DeleteFraction,
		InsertFraction: cfg.InsertFraction,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "create run", err)
	}
	if err := store.AppendEvents(ctx, runID, events); err != nil {
		return WrapExitError(ExitFailure, "store events", err)
	}
	if err := store.SaveCoordinates(ctx, runID, coords); err != nil {
		return WrapExitError(ExitFailure, "store coordinates", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), runID)
	return err
}
