// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package script

import (
	"log"
	"maps"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/hvi/sequencer"
)

type builtin func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// Script runs build scripts against a Builder.
type Script struct {
	Verbose   bool               // If set, logs script print() output.
	Builder   *sequencer.Builder // Builder receiving the calls.
	Constants map[string]int     // Predeclared integer constants.
}

// New creates a script runner for b.
func New(b *sequencer.Builder, constants map[string]int) (s *Script) {
	s = &Script{
		Builder:   b,
		Constants: constants,
	}
	return
}

// Exec runs a build script. src may be a string, a []byte or an io.Reader.
// A failed builtin stops the script with an *ErrScript.
func (s *Script) Exec(filename string, src any) (err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(thread *starlark.Thread, msg string) {
			if s.Verbose {
				log.Printf("%v: %v", thread.CallFrame(1).Pos, msg)
			}
		},
	}
	opts := syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, s.Predeclared())
	return
}

// Predeclared returns the builtins and constants visible to a script.
func (s *Script) Predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}
	for _, name := range slices.Sorted(maps.Keys(s.Constants)) {
		pred[name] = starlark.MakeInt(s.Constants[name])
	}

	builtins := map[string]builtin{
		"start_sync_multi_sequence_block": s.startSyncMultiSequenceBlock,
		"end_sync_multi_sequence_block":   s.endSyncMultiSequenceBlock,
		"start_sync_while_register":       s.startSyncWhileRegister,
		"end_sync_while":                  s.endSyncWhile,
		"if_register_comparison":          s.ifRegisterComparison,
		"end_if":                          s.endIf,
		"set_register":                    s.setRegister,
		"add_to_register":                 s.addToRegister,
		"subtract_from_register":          s.subtractFromRegister,
		"increment_register":              s.incrementRegister,
		"decrement_register":              s.decrementRegister,
		"write_fpga_register":             s.writeFpgaRegister,
		"read_fpga_register":              s.readFpgaRegister,
		"execute_actions":                 s.executeActions,
		"delay":                           s.delay,
		"awg_set_amplitude":               s.awgSetAmplitude,
		"awg_queue_wave":                  s.awgQueueWave,
		"constant":                        s.constant,
	}
	for name, fn := range builtins {
		pred[name] = starlark.NewBuiltin(name, s.located(fn))
	}

	return
}

// located wraps builtin failures with the calling script position.
func (s *Script) located(fn builtin) builtin {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
		v, err = fn(thread, b, args, kwargs)
		if err != nil {
			err = &ErrScript{Pos: thread.CallFrame(1).Pos, Func: b.Name(), Err: err}
		}
		return
	}
}

// operand converts an int literal or register name.
func operand(v starlark.Value) (op sequencer.Operand, err error) {
	switch v := v.(type) {
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			err = sequencer.ErrValueRange
			return
		}
		op = sequencer.Literal(int(i))
	case starlark.String:
		op = sequencer.Register(string(v))
	default:
		err = ErrOperandType
	}
	return
}

// statement converts a builder statement result.
func statement(name string, err error) (starlark.Value, error) {
	if err != nil {
		return nil, err
	}
	return starlark.String(name), nil
}

func (s *Script) startSyncMultiSequenceBlock(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var name string
	delay := sequencer.DELAY_MULTI_SEQUENCE_BLOCK
	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "delay?", &delay)
	if err != nil {
		return
	}

	_, err = s.Builder.StartMultiSequenceBlock(name, delay)
	v = starlark.None
	return
}

func (s *Script) endSyncMultiSequenceBlock(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	err = starlark.UnpackArgs(fn.Name(), args, kwargs)
	if err != nil {
		return
	}

	err = s.Builder.EndMultiSequenceBlock()
	v = starlark.None
	return
}

// comparison unpacks the common arguments of a register comparison.
type comparison struct {
	name     string
	engine   string
	register string
	cmp      sequencer.Comparator
	value    int
	delay    int
}

func unpackComparison(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, delay int) (c comparison, err error) {
	var cmp string
	c.delay = delay
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &c.name,
		"engine", &c.engine,
		"register", &c.register,
		"comparison", &cmp,
		"value", &c.value,
		"delay?", &c.delay)
	if err != nil {
		return
	}

	c.cmp, err = sequencer.ParseComparator(cmp)
	return
}

func (s *Script) startSyncWhileRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	c, err := unpackComparison(fn, args, kwargs, sequencer.DELAY_SYNC_WHILE)
	if err != nil {
		return
	}

	_, err = s.Builder.StartSyncWhile(c.name, c.engine, c.register, c.cmp, c.value, c.delay)
	v = starlark.None
	return
}

func (s *Script) endSyncWhile(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	err = starlark.UnpackArgs(fn.Name(), args, kwargs)
	if err != nil {
		return
	}

	err = s.Builder.EndSyncWhile()
	v = starlark.None
	return
}

func (s *Script) ifRegisterComparison(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	c, err := unpackComparison(fn, args, kwargs, sequencer.DELAY_STATEMENT)
	if err != nil {
		return
	}

	_, err = s.Builder.StartIf(c.name, c.engine, c.register, c.cmp, c.value, c.delay)
	v = starlark.None
	return
}

func (s *Script) endIf(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var engine string
	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "engine", &engine)
	if err != nil {
		return
	}

	err = s.Builder.EndIf(engine)
	v = starlark.None
	return
}

func (s *Script) setRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, engine, register string
	var value int
	delay := sequencer.DELAY_STATEMENT
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "register", &register, "value", &value, "delay?", &delay)
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.SetRegister(name, engine, register, value, delay))
}

// unpackDelta unpacks name, engine, register, an operand and a delay.
func unpackDelta(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, param string) (name, engine, register string, op sequencer.Operand, delay int, err error) {
	var value starlark.Value
	delay = sequencer.DELAY_STATEMENT
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "register", &register, param, &value, "delay?", &delay)
	if err != nil {
		return
	}

	op, err = operand(value)
	return
}

func (s *Script) addToRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	name, engine, register, op, delay, err := unpackDelta(fn, args, kwargs, "value")
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.AddToRegister(name, engine, register, op, delay))
}

func (s *Script) subtractFromRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	name, engine, register, op, delay, err := unpackDelta(fn, args, kwargs, "value")
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.SubtractFromRegister(name, engine, register, op, delay))
}

func (s *Script) incrementRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, engine, register string
	delay := sequencer.DELAY_STATEMENT
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "register", &register, "delay?", &delay)
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.IncrementRegister(name, engine, register, delay))
}

func (s *Script) decrementRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, engine, register string
	delay := sequencer.DELAY_STATEMENT
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "register", &register, "delay?", &delay)
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.DecrementRegister(name, engine, register, delay))
}

func (s *Script) writeFpgaRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	name, engine, register, op, delay, err := unpackDelta(fn, args, kwargs, "value")
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.WriteDeviceRegister(name, engine, register, op, delay))
}

func (s *Script) readFpgaRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, engine, register, destination string
	delay := sequencer.DELAY_STATEMENT
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "register", &register, "destination", &destination, "delay?", &delay)
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.ReadDeviceRegister(name, engine, register, destination, delay))
}

func (s *Script) executeActions(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, engine string
	var list starlark.Iterable
	delay := sequencer.DELAY_STATEMENT
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "actions", &list, "delay?", &delay)
	if err != nil {
		return nil, err
	}

	var actions []string
	iter := list.Iterate()
	defer iter.Done()
	var x starlark.Value
	for iter.Next(&x) {
		action, ok := starlark.AsString(x)
		if !ok {
			return nil, sequencer.ErrUnknownAction
		}
		actions = append(actions, action)
	}

	return statement(s.Builder.ExecuteActions(name, engine, actions, delay))
}

func (s *Script) delay(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, engine string
	var duration int
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "duration", &duration)
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.Delay(name, engine, duration))
}

func (s *Script) awgSetAmplitude(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, engine string
	var channel int
	var value starlark.Value
	delay := sequencer.DELAY_STATEMENT
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "channel", &channel, "value", &value, "delay?", &delay)
	if err != nil {
		return nil, err
	}

	amount, ok := starlark.AsFloat(value)
	if !ok {
		return nil, ErrAmountType
	}

	return statement(s.Builder.SetAmplitude(name, engine, channel, amount, delay))
}

func (s *Script) awgQueueWave(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, engine string
	var waveform, channel, trigger int
	var start starlark.Value = starlark.MakeInt(0)
	delay := sequencer.DELAY_STATEMENT
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "engine", &engine, "waveform", &waveform, "channel", &channel,
		"trigger?", &trigger, "start?", &start, "delay?", &delay)
	if err != nil {
		return nil, err
	}

	op, err := operand(start)
	if err != nil {
		return nil, err
	}

	return statement(s.Builder.QueueWaveform(name, engine, waveform, channel, trigger, op, delay))
}

func (s *Script) constant(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name)
	if err != nil {
		return nil, err
	}

	value, ok := s.Constants[name]
	if !ok {
		return nil, ErrUnknownConstant
	}

	return starlark.MakeInt(value), nil
}
