package runtime

import (
	"iter"
	"slices"

	"github.com/ezrec/hvi/sequencer"
)

// Event is an externally visible effect of a statement.
type Event struct {
	Clock     int64          // Engine clock when the statement ran, in ns.
	Engine    string         // Engine name.
	Statement string         // Statement name.
	Kind      sequencer.Kind // Statement kind.
	Detail    string         // Action name, channel setting or waveform.
}

// AlertChannel is the ordered log of events raised by one engine.
type AlertChannel struct {
	ToDevice []Event
}

// Reset clears the log.
func (ac *AlertChannel) Reset() {
	ac.ToDevice = nil
}

// SetAlert appends an event.
func (ac *AlertChannel) SetAlert(ev Event) {
	ac.ToDevice = append(ac.ToDevice, ev)
}

// Alerts iterates over the logged events, oldest first.
func (ac *AlertChannel) Alerts() iter.Seq[Event] {
	return slices.Values(ac.ToDevice)
}

// Count returns the number of logged events matching kind and detail.
func (ac *AlertChannel) Count(kind sequencer.Kind, detail string) (count int) {
	for _, ev := range ac.ToDevice {
		if ev.Kind == kind && ev.Detail == detail {
			count++
		}
	}
	return
}
