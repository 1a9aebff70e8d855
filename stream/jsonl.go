package stream

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/event"
)

// ErrMalformed indicates a JSONL line that does not decode to a known event.
var ErrMalformed = errors.New("stream: malformed event line")

// maxLineBytes bounds one JSONL line.
const maxLineBytes = 1 << 20

// record is the JSONL line shape: the event plus an optional coordinate.
type record struct {
	event.GraphEvent
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// JSONLWriter encodes one event per line.
type JSONLWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter wraps w. Call Flush when done.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	return &JSONLWriter{w: bw, enc: json.NewEncoder(bw)}
}

// Write encodes events; node additions found in coords carry x and y.
func (j *JSONLWriter) Write(events []event.GraphEvent, coords map[core.NodeID]r2.Vec) error {
	for i, ev := range events {
		rec := record{GraphEvent: ev}
		if ev.Type == event.NodeAddition {
			if p, ok := coords[ev.U]; ok {
				x, y := p.X, p.Y
				rec.X, rec.Y = &x, &y
			}
		}
		if err := j.enc.Encode(rec); err != nil {
			return fmt.Errorf("jsonl event %d: %w", i, err)
		}
	}

	return nil
}

// Flush writes any buffered output.
func (j *JSONLWriter) Flush() error { return j.w.Flush() }

// ReadJSONL decodes a stream written by JSONLWriter. Blank lines are
// skipped. The coordinate map holds every node addition that carried x and y.
//
// Errors: ErrMalformed with the 1-based line number, or the reader's error.
func ReadJSONL(r io.Reader) ([]event.GraphEvent, map[core.NodeID]r2.Vec, error) {
	var events []event.GraphEvent
	coords := make(map[core.NodeID]r2.Vec)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, nil, fmt.Errorf("line %d: %v: %w", line, err, ErrMalformed)
		}
		if !rec.Type.Valid() {
			return nil, nil, fmt.Errorf("line %d: missing type: %w", line, ErrMalformed)
		}
		if rec.Type == event.NodeAddition && rec.X != nil && rec.Y != nil {
			coords[rec.U] = r2.Vec{X: *rec.X, Y: *rec.Y}
		}
		events = append(events, rec.GraphEvent)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read jsonl: %w", err)
	}

	return events, coords, nil
}
