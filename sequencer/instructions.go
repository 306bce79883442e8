package sequencer

import (
	"github.com/ezrec/hvi/engine"
)

// statement validates and appends a statement to the current sequence of
// an engine. fill sets the kind specific fields.
func (b *Builder) statement(name string, eng string, delay int, fill func(e *engine.Engine, st *Statement) error) (unique string, err error) {
	if err = b.mutable(); err != nil {
		return
	}
	if len(name) == 0 {
		err = ErrNameEmpty
		return
	}
	if delay < 0 {
		err = ErrDelayInvalid
		return
	}

	e, seq, err := b.current(eng)
	if err != nil {
		return
	}

	st := Statement{
		Name:   name,
		Delay:  delay,
		Engine: e.Id,
	}
	err = fill(e, &st)
	if err != nil {
		return
	}

	unique = b.append(seq, st)
	return
}

// SetRegister assigns a literal to a sequencer register.
func (b *Builder) SetRegister(name string, eng string, register string, value int, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "set_register", Engine: eng, Name: name})

	return b.statement(name, eng, delay, func(e *engine.Engine, st *Statement) (err error) {
		st.Kind = KIND_SET_REGISTER
		st.Register, err = e.Register(register)
		if err != nil {
			return
		}
		st.Value, err = Literal(value).resolve(e, false)
		return
	})
}

func (b *Builder) addTo(kind Kind, name string, eng string, register string, delta Operand, delay int) (string, error) {
	return b.statement(name, eng, delay, func(e *engine.Engine, st *Statement) (err error) {
		st.Kind = kind
		st.Register, err = e.Register(register)
		if err != nil {
			return
		}
		st.Value, err = delta.resolve(e, false)
		return
	})
}

// AddToRegister adds a literal or another register of the same engine to
// a sequencer register.
func (b *Builder) AddToRegister(name string, eng string, register string, delta Operand, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "add_to_register", Engine: eng, Name: name})

	return b.addTo(KIND_ADD_TO_REGISTER, name, eng, register, delta, delay)
}

// SubtractFromRegister subtracts a literal or another register of the same
// engine from a sequencer register.
func (b *Builder) SubtractFromRegister(name string, eng string, register string, delta Operand, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "subtract_from_register", Engine: eng, Name: name})

	return b.addTo(KIND_SUBTRACT_FROM_REGISTER, name, eng, register, delta, delay)
}

// IncrementRegister adds one to a sequencer register.
func (b *Builder) IncrementRegister(name string, eng string, register string, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "increment_register", Engine: eng, Name: name})

	return b.addTo(KIND_ADD_TO_REGISTER, name, eng, register, Literal(1), delay)
}

// DecrementRegister subtracts one from a sequencer register.
func (b *Builder) DecrementRegister(name string, eng string, register string, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "decrement_register", Engine: eng, Name: name})

	return b.addTo(KIND_ADD_TO_REGISTER, name, eng, register, Literal(-1), delay)
}

// WriteDeviceRegister writes a literal, or a sequencer register's value,
// through to the engine's device register file.
func (b *Builder) WriteDeviceRegister(name string, eng string, device string, value Operand, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "write_fpga_register", Engine: eng, Name: name})

	return b.statement(name, eng, delay, func(e *engine.Engine, st *Statement) (err error) {
		st.Kind = KIND_WRITE_DEVICE_REGISTER
		st.Device, err = e.DeviceRegister(device)
		if err != nil {
			return
		}
		st.Value, err = value.resolve(e, true)
		return
	})
}

// ReadDeviceRegister reads a device register back into a sequencer
// register of the same engine.
func (b *Builder) ReadDeviceRegister(name string, eng string, device string, register string, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "read_fpga_register", Engine: eng, Name: name})

	return b.statement(name, eng, delay, func(e *engine.Engine, st *Statement) (err error) {
		st.Kind = KIND_READ_DEVICE_REGISTER
		st.Device, err = e.DeviceRegister(device)
		if err != nil {
			return
		}
		st.Register, err = e.Register(register)
		return
	})
}

// ExecuteActions triggers all the named actions of the engine at once.
func (b *Builder) ExecuteActions(name string, eng string, actions []string, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "execute_actions", Engine: eng, Name: name})

	return b.statement(name, eng, delay, func(e *engine.Engine, st *Statement) (err error) {
		if len(actions) == 0 {
			err = ErrActionsEmpty
			return
		}

		st.Kind = KIND_EXECUTE_ACTIONS
		st.Actions = make([]engine.ActionID, 0, len(actions))
		seen := map[engine.ActionID]bool{}
		for _, action := range actions {
			var id engine.ActionID
			id, err = e.Action(action)
			if err != nil {
				return
			}
			if seen[id] {
				err = ErrDuplicateAction
				return
			}
			seen[id] = true
			st.Actions = append(st.Actions, id)
		}
		return
	})
}

// Delay idles the engine for duration ns.
func (b *Builder) Delay(name string, eng string, duration int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "delay", Engine: eng, Name: name})

	return b.statement(name, eng, duration, func(e *engine.Engine, st *Statement) (err error) {
		st.Kind = KIND_DELAY
		return
	})
}

// SetAmplitude sets the output amplitude of a signal generator channel.
func (b *Builder) SetAmplitude(name string, eng string, channel int, value float64, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "awg_set_amplitude", Engine: eng, Name: name})

	return b.statement(name, eng, delay, func(e *engine.Engine, st *Statement) (err error) {
		if channel < 1 {
			err = ErrChannelInvalid
			return
		}
		st.Kind = KIND_SET_AMPLITUDE
		st.Channel = channel
		st.Amount = value
		return
	})
}

// QueueWaveform queues a waveform on a signal generator channel, to start
// on trigger after start (a literal or register) ns.
func (b *Builder) QueueWaveform(name string, eng string, waveform int, channel int, trigger int, start Operand, delay int) (unique string, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "awg_queue_wave", Engine: eng, Name: name})

	return b.statement(name, eng, delay, func(e *engine.Engine, st *Statement) (err error) {
		if channel < 1 {
			err = ErrChannelInvalid
			return
		}
		if waveform < 0 || trigger < 0 {
			err = ErrValueRange
			return
		}
		st.Kind = KIND_QUEUE_WAVEFORM
		st.Waveform = waveform
		st.Channel = channel
		st.Trigger = trigger
		st.Value, err = start.resolve(e, false)
		return
	})
}
