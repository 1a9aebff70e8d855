// Package event defines the graph mutation events the dynamic generator emits
// and the replay logic that applies them to a core.Graph.
//
// A stream is a flat slice ordered by time. A TimeStep marker closes each
// step; events between two markers belong to the same step.
package event

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/pubweb/core"
)

// ErrUnknownType indicates an event type outside the known set.
var ErrUnknownType = errors.New("event: unknown event type")

// Type tags a GraphEvent.
type Type uint8

// Event types. The zero value is invalid so an unset field is caught on replay.
const (
	NodeAddition Type = iota + 1
	NodeRemoval
	EdgeAddition
	EdgeRemoval
	TimeStep
)

var typeNames = [...]string{
	NodeAddition: "node_addition",
	NodeRemoval:  "node_removal",
	EdgeAddition: "edge_addition",
	EdgeRemoval:  "edge_removal",
	TimeStep:     "time_step",
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool { return t >= NodeAddition && t <= TimeStep }

func (t Type) String() string {
	if !t.Valid() {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// MarshalText encodes t by name, so JSON streams stay readable.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("MarshalText: %d: %w", t, ErrUnknownType)
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (t *Type) UnmarshalText(b []byte) error {
	p, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = p
	return nil
}

// ParseType maps a name produced by String back to its Type.
func ParseType(s string) (Type, error) {
	for i := NodeAddition; i <= TimeStep; i++ {
		if typeNames[i] == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("ParseType: %q: %w", s, ErrUnknownType)
}

// GraphEvent is one structural mutation. U is set for node and edge events,
// V and Weight only for edge events. EdgeRemoval carries no weight.
type GraphEvent struct {
	Type   Type        `json:"type"`
	U      core.NodeID `json:"u,omitempty"`
	V      core.NodeID `json:"v,omitempty"`
	Weight float64     `json:"w,omitempty"`
}

// AddNode returns a NodeAddition event.
func AddNode(u core.NodeID) GraphEvent { return GraphEvent{Type: NodeAddition, U: u} }

// RemoveNode returns a NodeRemoval event.
func RemoveNode(u core.NodeID) GraphEvent { return GraphEvent{Type: NodeRemoval, U: u} }

// AddEdge returns an EdgeAddition event.
func AddEdge(u, v core.NodeID, w float64) GraphEvent {
	return GraphEvent{Type: EdgeAddition, U: u, V: v, Weight: w}
}

// RemoveEdge returns an EdgeRemoval event.
func RemoveEdge(u, v core.NodeID) GraphEvent { return GraphEvent{Type: EdgeRemoval, U: u, V: v} }

// Step returns a TimeStep marker.
func Step() GraphEvent { return GraphEvent{Type: TimeStep} }

// Key returns the canonical edge key of an edge event.
func (e GraphEvent) Key() core.EdgeKey { return core.Key(e.U, e.V) }

// IsEdge reports whether e is an EdgeAddition or EdgeRemoval.
func (e GraphEvent) IsEdge() bool { return e.Type == EdgeAddition || e.Type == EdgeRemoval }

func (e GraphEvent) String() string {
	switch e.Type {
	case NodeAddition, NodeRemoval:
		return fmt.Sprintf("%s(%d)", e.Type, e.U)
	case EdgeAddition:
		return fmt.Sprintf("%s(%d,%d,%g)", e.Type, e.U, e.V, e.Weight)
	case EdgeRemoval:
		return fmt.Sprintf("%s(%d,%d)", e.Type, e.U, e.V)
	default:
		return e.Type.String()
	}
}
