// Package dynamic evolves a spatially clustered graph step by step and emits
// the structural changes as an ordered stream of event.GraphEvent values.
//
// What:
//
//	The initial graph comes from a static.Generator. Every step then
//	  1. deletes floor(n·deleteFraction) uniformly chosen live nodes, each
//	     preceded by the removal of its incident edges,
//	  2. inserts floor(n·insertFraction) nodes drawn from the same dense areas,
//	  3. recomputes which edges should exist: {u,v} is eligible when each of
//	     u and v lists the other among its maxNeighbors nearest nodes within
//	     the neighbourhood radius (toroidal distance),
//	  4. removes current edges that are no longer eligible, adds eligible
//	     edges that are missing, and closes the step with a TimeStep marker.
//
//	n is the node count at the start of the step.
//
// Determinism:
//
//	One Source drives both the initial graph and the churn. Given equal
//	parameters and seed, Generate returns identical streams. Edge removals
//	and additions are emitted in ascending canonical (min,max) order.
//
// Snapshot:
//
//	WithInitialSnapshot(true) prefixes the first call's stream with a
//	NodeAddition for every initial node, an EdgeAddition for every initial
//	edge and one TimeStep. Later calls never repeat it.
//
// Concurrency:
//
//	Generate calls on one Generator are serialised by a mutex. Graph returns
//	a deep copy, so readers never observe a step in progress.
//
// Complexity:
//
//	Each step costs O(n² log k) for the neighbourhood scan.
package dynamic
