package sequencer

import (
	"strconv"

	"github.com/ezrec/hvi/engine"
)

// Operand is a statement source value: either a literal or a sequencer
// register of the statement's engine.
type Operand struct {
	IsRegister bool
	Value      int               // Literal value.
	Name       string            // Register name.
	Register   engine.RegisterID // Resolved register.
}

// Literal makes a literal operand.
func Literal(value int) Operand {
	return Operand{Value: value}
}

// Register makes a sequencer register operand.
func Register(name string) Operand {
	return Operand{IsRegister: true, Name: name}
}

// resolve binds a register operand to eng, or range checks a literal.
func (op Operand) resolve(eng *engine.Engine, device bool) (out Operand, err error) {
	out = op
	if op.IsRegister {
		out.Register, err = eng.Register(op.Name)
		return
	}

	if device {
		_, err = engine.CheckDeviceValue(op.Value)
	} else {
		_, err = engine.CheckValue(op.Value)
	}
	return
}

// String returns the register name, or the literal value.
func (op Operand) String() string {
	if op.IsRegister {
		return op.Name
	}
	return strconv.Itoa(op.Value)
}
