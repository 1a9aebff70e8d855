// Package pubweb generates dynamic spatial graphs: clustered random graphs on
// the unit torus that evolve step by step, with every structural change
// reported as an ordered event stream.
//
// What is pubweb?
//
//	A deterministic, seedable generator for benchmarking algorithms that
//	track changing graphs. Each step deletes and inserts a small share of
//	nodes, then recomputes edges under a mutual k-nearest-neighbour rule
//	within a fixed radius, emitting only the edges that changed.
//
// Packages:
//
//	core/          thread-safe Graph with coordinates, stable ids, live-node index
//	geometry/      toroidal distance and wrap-around helpers
//	static/        initial clustered graph, cluster sampler, kNN, weight policy
//	event/         GraphEvent values, Replay, per-step splitting
//	dynamic/       the step engine: churn, topology resolution, snapshot, metrics
//	stream/        DGS and JSON Lines writers, SQLite run store
//	config/        YAML + environment configuration with validation
//	cmd/pubwebgen  CLI: generate and replay
//
// Quick example:
//
//	gen, err := dynamic.New(1000, 10, 0.05, 5,
//		dynamic.WithSeed(42),
//		dynamic.WithInitialSnapshot(true),
//	)
//	if err != nil { ... }
//	events, err := gen.Generate(20)
//	// events: snapshot, then per step deletions, insertions, edge diff, TimeStep
//
// Replaying the full stream onto an empty core.Graph with event.Replay
// reproduces the generator's final graph exactly.
package pubweb
