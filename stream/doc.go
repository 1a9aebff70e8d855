// Package stream persists and reloads event streams.
//
// Formats:
//
//   - DGS (DGSWriter): the GraphStream text format, version DGS004. Node
//     additions carry x/y attributes when a coordinate is known, edge
//     additions a weight attribute, and each TimeStep becomes "st <n>".
//   - JSON Lines (JSONLWriter, ReadJSONL): one event object per line, with
//     optional x/y on node additions. Lossless, so it is the replay format.
//   - SQLite (Store): runs keyed by UUID, events with sequence and step
//     numbers, and node coordinates.
//
// Edge ids in DGS output are the canonical "min-max" pair, so an edge
// removed from either end matches its addition.
package stream
