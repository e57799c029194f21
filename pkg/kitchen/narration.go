package kitchen

import (
	"fmt"
	"io"
)

// NarrationKind identifies a step of the fulfillment loop.
type NarrationKind string

const (
	NarrationOrderStarted    NarrationKind = "order_started"
	NarrationAttempting      NarrationKind = "attempting"
	NarrationNotAvailable    NarrationKind = "not_available"
	NarrationReplenishing    NarrationKind = "replenishing"
	NarrationReplenished     NarrationKind = "replenished"
	NarrationReplenishFailed NarrationKind = "replenish_failed"
	NarrationPrepared        NarrationKind = "prepared"
	NarrationNotPrepared     NarrationKind = "not_prepared"
	NarrationSummary         NarrationKind = "summary"
)

// Narration is one human-readable step reported by the fulfillment loop.
type Narration struct {
	Kind    NarrationKind `json:"kind"`
	OrderID string        `json:"order_id,omitempty"`
	Item    string        `json:"item,omitempty"`
	Station string        `json:"station,omitempty"`

	// Outcome and Remaining are set on summary narrations only.
	Outcome   DrainOutcome `json:"outcome,omitempty"`
	Remaining int          `json:"remaining,omitempty"`
}

// String renders the narration as a single line.
func (n Narration) String() string {
	switch n.Kind {
	case NarrationOrderStarted:
		return fmt.Sprintf("PREPARING ORDER: %s", n.Item)
	case NarrationAttempting:
		return fmt.Sprintf("%s attempting to prepare %s...", n.Station, n.Item)
	case NarrationNotAvailable:
		return fmt.Sprintf("%s: %s not available. Moving to next station...", n.Station, n.Item)
	case NarrationReplenishing:
		return fmt.Sprintf("%s: Insufficient ingredients. Replenishing ingredients...", n.Station)
	case NarrationReplenished:
		return fmt.Sprintf("%s: Ingredients replenished.", n.Station)
	case NarrationReplenishFailed:
		return fmt.Sprintf("%s: Unable to replenish ingredients. Failed to prepare %s.", n.Station, n.Item)
	case NarrationPrepared:
		return fmt.Sprintf("%s: Successfully prepared %s.", n.Station, n.Item)
	case NarrationNotPrepared:
		return fmt.Sprintf("%s was not prepared.", n.Item)
	case NarrationSummary:
		if n.Outcome == DrainOutcomeHalted {
			return fmt.Sprintf("No progress possible. %d orders remain in the queue.", n.Remaining)
		}
		return "All orders have been processed."
	default:
		return string(n.Kind)
	}
}

// Narrator receives narration from the fulfillment loop.
type Narrator interface {
	Narrate(n Narration)
}

// NarratorFunc adapts a function to the Narrator interface.
type NarratorFunc func(n Narration)

// Narrate calls f(n).
func (f NarratorFunc) Narrate(n Narration) {
	f(n)
}

// WriterNarrator writes one line per narration to an io.Writer.
type WriterNarrator struct {
	w io.Writer
}

// NewWriterNarrator creates a narrator writing to w.
func NewWriterNarrator(w io.Writer) *WriterNarrator {
	return &WriterNarrator{w: w}
}

// Narrate writes the narration line. A blank line follows each order's
// terminal line.
func (wn *WriterNarrator) Narrate(n Narration) {
	fmt.Fprintln(wn.w, n.String())
	if n.Kind == NarrationPrepared || n.Kind == NarrationNotPrepared {
		fmt.Fprintln(wn.w)
	}
}

type multiNarrator []Narrator

func (m multiNarrator) Narrate(n Narration) {
	for _, nr := range m {
		nr.Narrate(n)
	}
}

// MultiNarrator fans narration out to every non-nil narrator, in order.
func MultiNarrator(narrators ...Narrator) Narrator {
	out := make(multiNarrator, 0, len(narrators))
	for _, n := range narrators {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type discardNarrator struct{}

func (discardNarrator) Narrate(Narration) {}
