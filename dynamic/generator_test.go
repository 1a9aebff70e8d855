package dynamic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/dynamic"
	"github.com/katalvlaran/pubweb/event"
	"github.com/katalvlaran/pubweb/static"
)

// GeneratorSuite exercises the step loop on the reference parameters:
// 100 nodes, 5 dense areas, radius 0.1, at most 3 neighbours.
type GeneratorSuite struct {
	suite.Suite
	gen *dynamic.Generator
}

func (s *GeneratorSuite) SetupTest() {
	gen, err := dynamic.New(100, 5, 0.1, 3, dynamic.WithSeed(17))
	require.NoError(s.T(), err)
	s.gen = gen
}

// TestSingleStepScenario: one step deletes 5, inserts 5 and leaves only mutual edges.
func (s *GeneratorSuite) TestSingleStepScenario() {
	events, err := s.gen.Generate(1)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), events)

	c := event.Count(events)
	require.Equal(s.T(), 1, c.TimeSteps)
	require.Equal(s.T(), event.TimeStep, events[len(events)-1].Type)
	require.Equal(s.T(), 5, c.NodeRemovals)
	require.Equal(s.T(), 5, c.NodeAdditions)

	g := s.gen.Graph()
	require.Equal(s.T(), 100, g.NodeCount())
	assertMutual(s.T(), g, s.gen.Static().NeighborhoodRadius(), 3)
}

// TestOrderingWithinStep: deletions, then insertions, then topology, then TimeStep.
func (s *GeneratorSuite) TestOrderingWithinStep() {
	events, err := s.gen.Generate(4)
	require.NoError(s.T(), err)

	for _, step := range event.SplitSteps(events) {
		assertStepOrder(s.T(), step)
	}
}

// TestConservationAndNoDuplicates replays each step and checks node
// bookkeeping and that no edge is added twice without an intermediate removal.
func (s *GeneratorSuite) TestConservationAndNoDuplicates() {
	before := s.gen.Graph()
	events, err := s.gen.Generate(6)
	require.NoError(s.T(), err)

	nodes := before.NodeCount()
	for _, step := range event.SplitSteps(events) {
		c := event.Count(step)
		nodes += c.NodeAdditions - c.NodeRemovals

		added := make(map[core.EdgeKey]bool)
		for _, ev := range step {
			switch ev.Type {
			case event.EdgeAddition:
				require.False(s.T(), added[ev.Key()], "edge %v added twice", ev.Key())
				require.False(s.T(), before.HasEdge(ev.U, ev.V), "edge %v already present", ev.Key())
				added[ev.Key()] = true
			case event.EdgeRemoval:
				delete(added, ev.Key())
			}
		}
		// advance the reference graph so HasEdge reflects the prior step
		_, err := event.Replay(before, step, s.gen.NewCoordinates())
		require.NoError(s.T(), err)
	}
	require.Equal(s.T(), nodes, s.gen.Graph().NodeCount())
}

// TestRoundTripReplay rebuilds the final graph from an empty one.
func (s *GeneratorSuite) TestRoundTripReplay() {
	gen, err := dynamic.New(100, 5, 0.1, 3, dynamic.WithSeed(23), dynamic.WithInitialSnapshot(true))
	require.NoError(s.T(), err)
	events, err := gen.Generate(5)
	require.NoError(s.T(), err)

	pos := gen.InitialCoordinates()
	for id, p := range gen.NewCoordinates() {
		pos[id] = p
	}
	replayed := core.NewGraph()
	steps, err := event.Replay(replayed, events, pos)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 6, steps)

	want := gen.Graph()
	require.Equal(s.T(), want.Nodes(), replayed.Nodes())
	require.Equal(s.T(), want.Edges(), replayed.Edges())
	require.Equal(s.T(), want.Points(), replayed.Points())
	require.Equal(s.T(), 5, gen.Steps())
}

// TestSnapshotOnce: the snapshot leads the first call and never repeats.
func (s *GeneratorSuite) TestSnapshotOnce() {
	gen, err := dynamic.New(60, 3, 0.15, 3, dynamic.WithSeed(5), dynamic.WithInitialSnapshot(true))
	require.NoError(s.T(), err)
	initial := gen.Graph()

	first, err := gen.Generate(0)
	require.NoError(s.T(), err)
	require.Len(s.T(), first, initial.NodeCount()+initial.EdgeCount()+1)
	for i, id := range initial.Nodes() {
		require.Equal(s.T(), event.AddNode(id), first[i])
	}
	for i, e := range initial.Edges() {
		require.Equal(s.T(), event.AddEdge(e.U, e.V, e.Weight), first[initial.NodeCount()+i])
	}
	require.Equal(s.T(), event.Step(), first[len(first)-1])

	second, err := gen.Generate(2)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, event.Count(second).TimeSteps)
	for _, ev := range second {
		if ev.Type == event.NodeAddition {
			require.GreaterOrEqual(s.T(), ev.U, initial.UpperNodeIDBound(), "snapshot repeated")
		}
	}

	third, err := gen.Generate(0)
	require.NoError(s.T(), err)
	require.Empty(s.T(), third)
}

// TestNewCoordinatesResetPerCall: the overlay only covers the latest call.
func (s *GeneratorSuite) TestNewCoordinatesResetPerCall() {
	events, err := s.gen.Generate(2)
	require.NoError(s.T(), err)

	coords := s.gen.NewCoordinates()
	require.Len(s.T(), coords, event.Count(events).NodeAdditions)
	for _, ev := range events {
		if ev.Type == event.NodeAddition {
			require.Contains(s.T(), coords, ev.U)
		}
	}
	coords[core.NodeID(-1)] = r2.Vec{}
	require.NotContains(s.T(), s.gen.NewCoordinates(), core.NodeID(-1))

	_, err = s.gen.Generate(0)
	require.NoError(s.T(), err)
	require.Empty(s.T(), s.gen.NewCoordinates())
}

// TestDeterministicPerSeed: equal seeds give equal streams.
func (s *GeneratorSuite) TestDeterministicPerSeed() {
	run := func() []event.GraphEvent {
		gen, err := dynamic.New(80, 4, 0.12, 3, dynamic.WithSeed(99), dynamic.WithInitialSnapshot(true))
		require.NoError(s.T(), err)
		events, err := gen.Generate(3)
		require.NoError(s.T(), err)
		return events
	}
	require.Equal(s.T(), run(), run())
}

// TestGraphIsCopy: mutating Graph() never reaches the generator.
func (s *GeneratorSuite) TestGraphIsCopy() {
	g := s.gen.Graph()
	g.Clear()
	require.Equal(s.T(), 100, s.gen.Graph().NodeCount())
	require.Equal(s.T(), 3, s.gen.Static().MaxNeighbors())
}

// TestCancelledContext: no step runs once ctx is done.
func (s *GeneratorSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events, err := s.gen.GenerateContext(ctx, 3)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.Empty(s.T(), events)
	require.Zero(s.T(), s.gen.Steps())
}

// TestStepLogging: one Info entry per step.
func (s *GeneratorSuite) TestStepLogging() {
	obs, logs := observer.New(zap.DebugLevel)
	gen, err := dynamic.New(50, 2, 0.1, 3, dynamic.WithSeed(3), dynamic.WithLogger(zap.New(obs)))
	require.NoError(s.T(), err)

	events, err := gen.Generate(3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, logs.FilterMessage("step completed").Len())
	require.Equal(s.T(), len(events), logs.FilterMessage("event").Len())
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

// assertMutual checks that the edge set equals the mutual pairs of the
// current coordinates.
func assertMutual(t *testing.T, g *core.Graph, radius float64, k int) {
	t.Helper()
	eligible := dynamic.Eligibility(g.Points(), radius*radius, k)
	for _, e := range g.Edges() {
		require.Equal(t, 2, eligible[e.Key()], "edge %v is not mutual", e.Key())
	}
	for key, c := range eligible {
		if c == 2 {
			require.True(t, g.HasEdge(key.U, key.V), "mutual pair %v missing", key)
		}
	}
}

// assertStepOrder checks the block order of one step.
func assertStepOrder(t *testing.T, step []event.GraphEvent) {
	t.Helper()
	const (
		deleting = iota
		inserting
		resolving
	)
	phase := deleting
	var pending []core.NodeID // edge removals awaiting their NodeRemoval
	for i, ev := range step {
		last := i == len(step)-1
		require.Equal(t, last, ev.Type == event.TimeStep, "TimeStep must close the step only")
		switch ev.Type {
		case event.NodeRemoval:
			require.Equal(t, deleting, phase, "node removal after deletion block")
			for _, u := range pending {
				require.Equal(t, ev.U, u, "cascade edge belongs to another victim")
			}
			pending = pending[:0]
		case event.EdgeRemoval:
			if phase == deleting {
				pending = append(pending, ev.U)
			} else {
				phase = resolving
			}
		case event.NodeAddition:
			require.LessOrEqual(t, phase, inserting, "node addition after topology block")
			require.Empty(t, pending)
			phase = inserting
		case event.EdgeAddition:
			phase = resolving
		}
	}
}

// constSource always draws 0, placing every sampled node on the area centre.
type constSource struct{}

func (constSource) Intn(int) int     { return 0 }
func (constSource) Float64() float64 { return 0 }

// TestCoincidentNodesGetClampedWeight: zero distance yields base/minSquaredDistance.
func TestCoincidentNodesGetClampedWeight(t *testing.T) {
	sg, err := static.New(6, 1, 0.1, 3,
		static.WithRand(constSource{}),
		static.WithDenseAreas(static.DenseArea{Center: r2.Vec{X: 0.5, Y: 0.5}, Radius: 0.1}),
	)
	require.NoError(t, err)
	gen, err := dynamic.NewFromGenerator(sg, dynamic.WithChurnFraction(0))
	require.NoError(t, err)

	// one-sided initial links: a clique on 0..3 plus 4 and 5 towards 0,1,2
	require.Equal(t, 12, gen.Graph().EdgeCount())

	events, err := gen.Generate(1)
	require.NoError(t, err)
	require.Equal(t, []event.GraphEvent{
		event.RemoveEdge(0, 4), event.RemoveEdge(0, 5),
		event.RemoveEdge(1, 4), event.RemoveEdge(1, 5),
		event.RemoveEdge(2, 4), event.RemoveEdge(2, 5),
		event.Step(),
	}, events)

	want := static.DefaultBaseWeight / static.DefaultMinSquaredDistance
	for _, e := range gen.Graph().Edges() {
		require.Equal(t, want, e.Weight)
	}
	require.Equal(t, 6, gen.Graph().EdgeCount())
}

// TestDeletionOnEmptyGraphIsNoop: once every node is gone, later steps only mark time.
func TestDeletionOnEmptyGraphIsNoop(t *testing.T) {
	gen, err := dynamic.New(10, 1, 0.2, 3, dynamic.WithSeed(8),
		dynamic.WithDeleteFraction(1), dynamic.WithInsertFraction(0))
	require.NoError(t, err)

	events, err := gen.Generate(3)
	require.NoError(t, err)

	c := event.Count(events)
	require.Equal(t, 10, c.NodeRemovals)
	require.Equal(t, 3, c.TimeSteps)
	require.Zero(t, c.NodeAdditions)
	require.Zero(t, c.EdgeAdditions)
	require.Equal(t, []event.GraphEvent{event.Step(), event.Step()}, events[len(events)-2:])
	require.Zero(t, gen.Graph().NodeCount())
}

func TestNew_Errors(t *testing.T) {
	_, err := dynamic.New(100, 5, 0.1, 3)
	require.ErrorIs(t, err, static.ErrNeedRandSource)

	_, err = dynamic.New(100, 5, 0.1, 3, dynamic.WithSeed(1), dynamic.WithDeleteFraction(1.5))
	require.ErrorIs(t, err, dynamic.ErrBadFraction)

	_, err = dynamic.New(100, 5, 0.1, 3, dynamic.WithSeed(1), dynamic.WithInsertFraction(-0.1))
	require.ErrorIs(t, err, dynamic.ErrBadFraction)

	_, err = dynamic.New(100, 5, 0.1, 3, dynamic.WithSeed(1), dynamic.WithBaseWeight(0))
	require.ErrorIs(t, err, dynamic.ErrBadWeightPolicy)

	_, err = dynamic.New(100, 5, -1, 3, dynamic.WithSeed(1))
	require.ErrorIs(t, err, static.ErrBadRadius)

	_, err = dynamic.NewFromGenerator(nil)
	require.ErrorIs(t, err, dynamic.ErrNilGenerator)

	gen, err := dynamic.New(20, 1, 0.1, 3, dynamic.WithStaticOptions(static.WithSeed(4)))
	require.NoError(t, err)
	_, err = gen.Generate(-1)
	require.ErrorIs(t, err, dynamic.ErrBadStepCount)

	require.Panics(t, func() { dynamic.WithLogger(nil) })
	require.Panics(t, func() { dynamic.WithRand(nil) })
	require.Panics(t, func() { dynamic.WithMetrics(nil) })
}

func TestWeightsOverride(t *testing.T) {
	gen, err := dynamic.New(50, 2, 0.1, 3, dynamic.WithSeed(2),
		dynamic.WithBaseWeight(1), dynamic.WithMinSquaredDistance(1e-6))
	require.NoError(t, err)
	require.Equal(t, static.WeightPolicy{Base: 1, MinSquaredDistance: 1e-6}, gen.Weights())
	require.Equal(t, gen.Weights(), gen.Static().Weights())
}
