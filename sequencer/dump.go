package sequencer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/hvi/engine"
)

// dumper writes an indented trace, keeping the first write error.
type dumper struct {
	prog *Program
	w    io.Writer
	err  error
}

func (d *dumper) line(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, strings.Repeat("  ", depth)+format+"\n", args...)
}

func list(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

// Dump writes a readable, deterministic trace of the program: the engine
// declarations, then the block tree in program order.
func (prog *Program) Dump(w io.Writer) error {
	d := &dumper{prog: prog, w: w}

	d.line(0, "program %q", prog.Name)
	for eng := range prog.Table.Engines() {
		d.line(0, "engine %v", eng.Name)
		d.line(1, "actions: %v", list(eng.Actions))
		d.line(1, "events: %v", list(eng.Events))
		if eng.DeviceRegisters != nil {
			d.line(1, "device registers (%v): %v", eng.DeviceRegisters.Image, list(eng.DeviceRegisters.Registers))
		}
		for _, id := range eng.Registers {
			reg := prog.Table.Register(id)
			d.line(1, "register %v = %d", reg.Name, reg.Initial)
		}
	}

	d.line(0, "sync sequence")
	d.blocks(1, prog.Top)

	return d.err
}

// String returns the Dump of the program.
func (prog *Program) String() string {
	var sb strings.Builder
	_ = prog.Dump(&sb)
	return sb.String()
}

func (d *dumper) condition(cond Condition) string {
	eng := d.prog.Table.EngineOf(cond.Engine)
	reg := d.prog.Table.Register(cond.Register)
	return fmt.Sprintf("%v.%v %v %d", eng.Name, reg.Name, cond.Comparator.Symbol(), cond.Bound)
}

func (d *dumper) blocks(depth int, ids []BlockID) {
	for _, id := range ids {
		blk := d.prog.Block(id)
		switch blk.Kind {
		case BLOCK_MULTI_SEQUENCE:
			d.line(depth, "%v %q delay %d", blk.Kind, blk.Name, blk.Delay)
			for _, seq := range blk.Sequences {
				sequence := d.prog.Sequence(seq)
				d.line(depth+1, "sequence %v", d.prog.Table.EngineOf(sequence.Engine).Name)
				d.statements(depth+2, sequence)
			}
		case BLOCK_SYNC_WHILE:
			d.line(depth, "%v %q delay %d: while %v", blk.Kind, blk.Name, blk.Delay, d.condition(blk.Condition))
			d.blocks(depth+1, blk.Body)
		}
	}
}

func (d *dumper) statements(depth int, seq *Sequence) {
	eng := d.prog.Table.EngineOf(seq.Engine)
	for n := range seq.Statements {
		st := &seq.Statements[n]
		detail := d.detail(eng, st)
		if len(detail) > 0 {
			d.line(depth, "%q %v delay %d: %v", st.Name, st.Kind, st.Delay, detail)
		} else {
			d.line(depth, "%q %v delay %d", st.Name, st.Kind, st.Delay)
		}
		if st.Kind == KIND_IF {
			d.statements(depth+1, d.prog.Sequence(d.prog.Block(st.Block).Then()))
		}
	}
}

func (d *dumper) detail(eng *engine.Engine, st *Statement) string {
	switch st.Kind {
	case KIND_SET_REGISTER:
		return fmt.Sprintf("%v = %v", d.prog.Table.Register(st.Register).Name, st.Value)
	case KIND_ADD_TO_REGISTER:
		return fmt.Sprintf("%v += %v", d.prog.Table.Register(st.Register).Name, st.Value)
	case KIND_SUBTRACT_FROM_REGISTER:
		return fmt.Sprintf("%v -= %v", d.prog.Table.Register(st.Register).Name, st.Value)
	case KIND_WRITE_DEVICE_REGISTER:
		return fmt.Sprintf("%v <- %v", eng.DeviceRegisters.Name(st.Device), st.Value)
	case KIND_READ_DEVICE_REGISTER:
		return fmt.Sprintf("%v -> %v", eng.DeviceRegisters.Name(st.Device), d.prog.Table.Register(st.Register).Name)
	case KIND_EXECUTE_ACTIONS:
		names := make([]string, len(st.Actions))
		for n, id := range st.Actions {
			names[n] = eng.Actions[id]
		}
		return list(names)
	case KIND_SET_AMPLITUDE:
		return fmt.Sprintf("channel %d = %v", st.Channel, strconv.FormatFloat(st.Amount, 'g', -1, 64))
	case KIND_QUEUE_WAVEFORM:
		return fmt.Sprintf("waveform %d on channel %d, trigger %d, start %v", st.Waveform, st.Channel, st.Trigger, st.Value)
	case KIND_IF:
		return fmt.Sprintf("if %v", d.condition(d.prog.Block(st.Block).Condition))
	}
	return ""
}
