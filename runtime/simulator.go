// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package runtime

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/hvi/engine"
	"github.com/ezrec/hvi/internal"
	"github.com/ezrec/hvi/sequencer"
)

const (
	DEFAULT_ITERATION_LIMIT = 1 << 16 // Default bound on iterations of one loop entry.
	NO_ITERATION_LIMIT      = -1      // Loops may run until the timeout.
)

// engineState is the simulated state of one engine.
type engineState struct {
	eng       *engine.Engine
	clock     int64
	registers map[engine.RegisterID]int16
	device    []int32
	amplitude map[int]float64
	alerts    AlertChannel
}

// Simulator compiles Programs and runs them in process.
type Simulator struct {
	Verbose        bool // If set, logs every executed statement.
	IterationLimit int  // Iterations per loop entry; 0 for DEFAULT_ITERATION_LIMIT.

	loaded   *Artifact
	released map[uuid.UUID]bool
	state    []engineState
}

var _ Compiler = (*Simulator)(nil)
var _ Runtime = (*Simulator)(nil)

// NewSimulator creates a new simulator.
func NewSimulator() (sim *Simulator) {
	sim = &Simulator{
		released: map[uuid.UUID]bool{},
	}
	return
}

// Compile compiles a Program. See Compile.
func (sim *Simulator) Compile(prog *sequencer.Program) (art *Artifact, err error) {
	art, err = Compile(prog)
	if err != nil {
		return
	}

	if sim.Verbose {
		log.Printf("compile %v: artifact %v, %d lines", prog.Name, art.ID, len(art.Listing))
	}

	return
}

// Load loads an artifact. Only one artifact may be loaded at a time.
func (sim *Simulator) Load(art *Artifact) (err error) {
	switch {
	case sim.released[art.ID]:
		err = ErrReleased
	case sim.loaded != nil:
		err = ErrAlreadyLoaded
	default:
		sim.loaded = art
		sim.reset()
	}
	return
}

// Release unloads an artifact. A released artifact cannot be loaded again.
func (sim *Simulator) Release(art *Artifact) (err error) {
	switch {
	case sim.released[art.ID]:
		err = ErrReleased
	case sim.loaded != art:
		err = ErrNotLoaded
	default:
		sim.loaded = nil
		sim.released[art.ID] = true
	}
	return
}

// reset sets every engine to its initial state.
func (sim *Simulator) reset() {
	table := sim.loaded.Program.Table

	sim.state = make([]engineState, table.Len())
	for eng := range table.Engines() {
		state := &sim.state[eng.Id]
		state.eng = eng
		state.registers = make(map[engine.RegisterID]int16, len(eng.Registers))
		for _, id := range eng.Registers {
			state.registers[id] = table.Register(id).Initial
		}
		state.device = make([]int32, eng.DeviceRegisters.Len())
		state.amplitude = map[int]float64{}
	}
}

// Run executes a loaded artifact from its initial state. A timeout of
// NO_TIMEOUT runs until the program ends or ctx is cancelled.
func (sim *Simulator) Run(ctx context.Context, art *Artifact, timeout time.Duration) (err error) {
	switch {
	case sim.released[art.ID]:
		err = ErrReleased
		return
	case sim.loaded != art:
		err = ErrNotLoaded
		return
	}

	if timeout != NO_TIMEOUT {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sim.reset()

	err = sim.blocks(ctx, art.Program.Top)
	if err != nil {
		return
	}

	if sim.Verbose {
		log.Printf("run %v: done at %v ns", art.Program.Name, sim.Clock())
	}

	return
}

// cause maps a finished context to the run error.
func cause(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ctx.Err()
}

func (sim *Simulator) program() *sequencer.Program {
	return sim.loaded.Program
}

// advance moves every engine clock forward by delay.
func (sim *Simulator) advance(delay int) {
	for n := range sim.state {
		sim.state[n].clock += int64(delay)
	}
}

// barrier moves every engine clock to the latest one.
func (sim *Simulator) barrier() {
	var latest int64
	for n := range sim.state {
		latest = max(latest, sim.state[n].clock)
	}
	for n := range sim.state {
		sim.state[n].clock = latest
	}
}

// blocks runs a sync sequence.
func (sim *Simulator) blocks(ctx context.Context, ids []sequencer.BlockID) (err error) {
	prog := sim.program()
	for _, id := range ids {
		if ctx.Err() != nil {
			err = &ErrRuntime{Engine: "-", Statement: prog.Block(id).Name, Err: cause(ctx)}
			return
		}

		blk := prog.Block(id)
		switch blk.Kind {
		case sequencer.BLOCK_MULTI_SEQUENCE:
			err = sim.multiSequence(ctx, blk)
		case sequencer.BLOCK_SYNC_WHILE:
			err = sim.syncWhile(ctx, blk)
		}
		if err != nil {
			return
		}
	}

	return
}

// multiSequence runs every engine's sequence of blk concurrently, then
// waits at the barrier.
func (sim *Simulator) multiSequence(ctx context.Context, blk *sequencer.Block) (err error) {
	prog := sim.program()

	sim.advance(blk.Delay)

	g, gctx := errgroup.WithContext(ctx)
	for _, seq := range blk.Sequences {
		sequence := prog.Sequence(seq)
		state := &sim.state[sequence.Engine]
		g.Go(func() error {
			return sim.sequence(gctx, state, sequence)
		})
	}

	err = g.Wait()
	if err != nil {
		return
	}

	sim.barrier()

	if sim.Verbose {
		log.Printf("%v %v: barrier at %v ns", blk.Kind, blk.Name, sim.Clock())
	}

	return
}

// syncWhile runs the body of blk while its condition holds. All engines are
// synchronized at every evaluation.
func (sim *Simulator) syncWhile(ctx context.Context, blk *sequencer.Block) (err error) {
	cond := blk.Condition
	state := &sim.state[cond.Engine]

	limit := sim.IterationLimit
	if limit == 0 {
		limit = DEFAULT_ITERATION_LIMIT
	}

	for n := 0; ; n++ {
		if ctx.Err() != nil {
			err = &ErrRuntime{Engine: state.eng.Name, Statement: blk.Name, Err: cause(ctx)}
			return
		}

		sim.advance(blk.Delay)
		if !cond.Comparator.Compare(state.registers[cond.Register], cond.Bound) {
			break
		}

		if limit > 0 && n >= limit {
			err = &ErrRuntime{Engine: state.eng.Name, Statement: blk.Name, Err: ErrIterationLimit}
			return
		}

		err = sim.blocks(ctx, blk.Body)
		if err != nil {
			return
		}
	}

	return
}

// value evaluates an operand on an engine.
func (state *engineState) value(op sequencer.Operand) int {
	if op.IsRegister {
		return int(state.registers[op.Register])
	}
	return op.Value
}

func (state *engineState) alert(st *sequencer.Statement, detail string) {
	state.alerts.SetAlert(Event{
		Clock:     state.clock,
		Engine:    state.eng.Name,
		Statement: st.Name,
		Kind:      st.Kind,
		Detail:    detail,
	})
}

// sequence runs the statements of one engine's sequence. It only touches
// the state of that engine.
func (sim *Simulator) sequence(ctx context.Context, state *engineState, seq *sequencer.Sequence) (err error) {
	prog := sim.program()

	for n := range seq.Statements {
		st := &seq.Statements[n]
		if ctx.Err() != nil {
			err = &ErrRuntime{Engine: state.eng.Name, Statement: st.Name, Err: cause(ctx)}
			return
		}

		state.clock += int64(st.Delay)

		if sim.Verbose {
			log.Printf("%v ns: %v: %v %v", state.clock, state.eng.Name, st.Kind, st.Name)
		}

		switch st.Kind {
		case sequencer.KIND_SET_REGISTER:
			state.registers[st.Register] = engine.Wrap(st.Value.Value)
		case sequencer.KIND_ADD_TO_REGISTER:
			state.registers[st.Register] = engine.Wrap(int(state.registers[st.Register]) + state.value(st.Value))
		case sequencer.KIND_SUBTRACT_FROM_REGISTER:
			state.registers[st.Register] = engine.Wrap(int(state.registers[st.Register]) - state.value(st.Value))
		case sequencer.KIND_WRITE_DEVICE_REGISTER:
			state.device[st.Device] = int32(state.value(st.Value))
		case sequencer.KIND_READ_DEVICE_REGISTER:
			state.registers[st.Register] = engine.Wrap(int(state.device[st.Device]))
		case sequencer.KIND_EXECUTE_ACTIONS:
			for _, action := range st.Actions {
				state.alert(st, state.eng.Actions[action])
			}
		case sequencer.KIND_DELAY:
		case sequencer.KIND_SET_AMPLITUDE:
			state.amplitude[st.Channel] = st.Amount
			state.alert(st, fmt.Sprintf("channel %d = %v", st.Channel, strconv.FormatFloat(st.Amount, 'g', -1, 64)))
		case sequencer.KIND_QUEUE_WAVEFORM:
			state.alert(st, fmt.Sprintf("waveform %d on channel %d, trigger %d, start %d",
				st.Waveform, st.Channel, st.Trigger, state.value(st.Value)))
		case sequencer.KIND_IF:
			blk := prog.Block(st.Block)
			if blk.Condition.Comparator.Compare(state.registers[blk.Condition.Register], blk.Condition.Bound) {
				err = sim.sequence(ctx, state, prog.Sequence(blk.Then()))
				if err != nil {
					return
				}
			}
		}
	}

	return
}

// Clock returns the simulated time, in ns, of the latest engine.
func (sim *Simulator) Clock() (clock int64) {
	for n := range sim.state {
		clock = max(clock, sim.state[n].clock)
	}
	return
}

// EngineClock returns the simulated time of an engine, in ns.
func (sim *Simulator) EngineClock(eng string) (clock int64, err error) {
	state, err := sim.engine(eng)
	if err != nil {
		return
	}

	clock = state.clock
	return
}

func (sim *Simulator) engine(name string) (state *engineState, err error) {
	if sim.loaded == nil {
		err = ErrNotLoaded
		return
	}

	eng, err := sim.program().Table.Engine(name)
	if err != nil {
		return
	}

	state = &sim.state[eng.Id]
	return
}

// ReadRegister returns the value of a sequencer register of the loaded
// artifact, as left by the last run.
func (sim *Simulator) ReadRegister(eng string, name string) (value int16, err error) {
	state, err := sim.engine(eng)
	if err != nil {
		return
	}

	id, err := state.eng.Register(name)
	if err != nil {
		return
	}

	value = state.registers[id]
	return
}

// ReadDeviceRegister returns the value of a device register of an engine.
func (sim *Simulator) ReadDeviceRegister(eng string, name string) (value int32, err error) {
	state, err := sim.engine(eng)
	if err != nil {
		return
	}

	id, err := state.eng.DeviceRegister(name)
	if err != nil {
		return
	}

	value = state.device[id]
	return
}

// Amplitude returns the output amplitude last set on a channel of an engine.
func (sim *Simulator) Amplitude(eng string, channel int) (value float64, err error) {
	state, err := sim.engine(eng)
	if err != nil {
		return
	}

	value = state.amplitude[channel]
	return
}

// Alerts returns the event log of an engine.
func (sim *Simulator) Alerts(eng string) (ac *AlertChannel, err error) {
	state, err := sim.engine(eng)
	if err != nil {
		return
	}

	ac = &state.alerts
	return
}

// Trace iterates over the events of the last run, grouped by engine in
// declaration order.
func (sim *Simulator) Trace() iter.Seq[Event] {
	seqs := make([]iter.Seq[Event], len(sim.state))
	for n := range sim.state {
		seqs[n] = sim.state[n].alerts.Alerts()
	}
	return internal.IterSeqConcat(seqs...)
}
