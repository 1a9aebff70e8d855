package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/event"
)

// dgsMagic is the first line of every DGS file this package writes.
const dgsMagic = "DGS004"

// DGSWriter encodes events as GraphStream DGS. The header is written before
// the first event; step numbers continue across Write calls.
type DGSWriter struct {
	w       *bufio.Writer
	name    string
	started bool
	step    int
}

// NewDGSWriter returns a writer that names the stream name in its header.
func NewDGSWriter(w io.Writer, name string) *DGSWriter {
	return &DGSWriter{w: bufio.NewWriter(w), name: name}
}

// Write encodes events. coords supplies positions for node additions; ids
// missing from it are written without attributes. Call Flush when done.
func (d *DGSWriter) Write(events []event.GraphEvent, coords map[core.NodeID]r2.Vec) error {
	if !d.started {
		if _, err := fmt.Fprintf(d.w, "%s\n%q 0 0\n", dgsMagic, d.name); err != nil {
			return fmt.Errorf("dgs header: %w", err)
		}
		d.started = true
	}
	for i, ev := range events {
		if err := d.writeEvent(ev, coords); err != nil {
			return fmt.Errorf("dgs event %d: %w", i, err)
		}
	}

	return nil
}

func (d *DGSWriter) writeEvent(ev event.GraphEvent, coords map[core.NodeID]r2.Vec) error {
	var err error
	switch ev.Type {
	case event.NodeAddition:
		if p, ok := coords[ev.U]; ok {
			_, err = fmt.Fprintf(d.w, "an %d x=%s y=%s\n", ev.U, formatFloat(p.X), formatFloat(p.Y))
		} else {
			_, err = fmt.Fprintf(d.w, "an %d\n", ev.U)
		}
	case event.NodeRemoval:
		_, err = fmt.Fprintf(d.w, "dn %d\n", ev.U)
	case event.EdgeAddition:
		_, err = fmt.Fprintf(d.w, "ae %q %d %d weight=%s\n", edgeID(ev), ev.U, ev.V, formatFloat(ev.Weight))
	case event.EdgeRemoval:
		_, err = fmt.Fprintf(d.w, "de %q\n", edgeID(ev))
	case event.TimeStep:
		d.step++
		_, err = fmt.Fprintf(d.w, "st %d\n", d.step)
	default:
		err = event.ErrUnknownType
	}

	return err
}

// Flush writes any buffered output.
func (d *DGSWriter) Flush() error { return d.w.Flush() }

func edgeID(ev event.GraphEvent) string {
	k := ev.Key()
	return strconv.Itoa(int(k.U)) + "-" + strconv.Itoa(int(k.V))
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
