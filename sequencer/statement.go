package sequencer

import (
	"iter"
	"slices"

	"github.com/ezrec/hvi/engine"
	"github.com/ezrec/hvi/internal"
)

type SequenceID int

// Statement is one instruction of an engine's sequence. Only the fields
// relevant to its Kind are set.
type Statement struct {
	Name   string
	Kind   Kind
	Delay  int // Start delay, in ns. For KIND_DELAY, the idle duration.
	Engine engine.EngineID

	Register engine.RegisterID       // Destination sequencer register.
	Device   engine.DeviceRegisterID // Device register.
	Value    Operand                 // Source value, delta, or waveform start delay.
	Actions  []engine.ActionID       // KIND_EXECUTE_ACTIONS
	Channel  int                     // KIND_SET_AMPLITUDE, KIND_QUEUE_WAVEFORM
	Waveform int                     // KIND_QUEUE_WAVEFORM
	Trigger  int                     // KIND_QUEUE_WAVEFORM trigger mode
	Amount   float64                 // KIND_SET_AMPLITUDE
	Block    BlockID                 // KIND_IF
}

// Sequence is the ordered statement list of one engine within one block.
type Sequence struct {
	Id         SequenceID
	Engine     engine.EngineID
	Block      BlockID // Owning multi-sequence or if block.
	Statements []Statement
}

// Names iterates over the statement names of the sequence.
func (seq *Sequence) Names() iter.Seq[string] {
	return internal.IterSeqMap(slices.Values(seq.Statements), func(st Statement) string {
		return st.Name
	})
}

// Empty returns true if the sequence has no statements.
func (seq *Sequence) Empty() bool {
	return len(seq.Statements) == 0
}
