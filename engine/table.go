// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package engine

import (
	"iter"
	"log"
	"slices"
)

type RegisterID int

// Register is a sequencer register, visible to loop and condition
// comparisons of its owning engine only.
type Register struct {
	Id      RegisterID
	Engine  EngineID
	Name    string
	Initial int16
}

// Table is the per-system namespace of engines and their registers.
type Table struct {
	Verbose bool // If set, logs every declaration.

	engines     []*Engine
	engineIndex map[string]EngineID
	registers   []Register
	sealed      bool
}

// NewTable creates an empty declaration table.
func NewTable() *Table {
	return &Table{
		engineIndex: map[string]EngineID{},
	}
}

// DeclareEngine adds an engine to the table.
func (tbl *Table) DeclareEngine(desc Descriptor) (id EngineID, err error) {
	switch {
	case tbl.sealed:
		err = &ErrDeclare{Engine: desc.Name, Err: ErrDeclarationsSealed}
		return
	case len(desc.Name) == 0:
		err = &ErrDeclare{Err: ErrNameEmpty}
		return
	}

	if _, dup := tbl.engineIndex[desc.Name]; dup {
		err = &ErrDeclare{Engine: desc.Name, Err: ErrDuplicateEngine}
		return
	}

	id = EngineID(len(tbl.engines))
	eng, err := newEngine(id, desc)
	if err != nil {
		return
	}

	if tbl.Verbose {
		log.Printf("engine %v: %d actions, %d events, %d device registers",
			eng.Name, len(eng.Actions), len(eng.Events), eng.DeviceRegisters.Len())
	}

	tbl.engines = append(tbl.engines, eng)
	tbl.engineIndex[desc.Name] = id

	return
}

// DeclareRegister adds a sequencer register to an engine's scope.
func (tbl *Table) DeclareRegister(engine string, name string, initial int) (id RegisterID, err error) {
	defer func() {
		if err != nil {
			err = &ErrDeclare{Engine: engine, Name: name, Err: err}
		}
	}()

	if tbl.sealed {
		err = ErrDeclarationsSealed
		return
	}

	if len(name) == 0 {
		err = ErrNameEmpty
		return
	}

	eng, err := tbl.lookupEngine(engine)
	if err != nil {
		return
	}

	if _, missing := eng.Register(name); missing == nil {
		err = ErrDuplicateRegister
		return
	}

	value, err := CheckValue(initial)
	if err != nil {
		return
	}

	if tbl.Verbose {
		log.Printf("engine %v: register %v, initial value %v", engine, name, value)
	}

	id = RegisterID(len(tbl.registers))
	tbl.registers = append(tbl.registers, Register{
		Id:      id,
		Engine:  eng.Id,
		Name:    name,
		Initial: value,
	})
	eng.Registers = append(eng.Registers, id)
	eng.registerIndex[name] = id

	return
}

// Lookup resolves a sequencer register within one engine's scope.
func (tbl *Table) Lookup(engine string, name string) (id RegisterID, err error) {
	eng, err := tbl.lookupEngine(engine)
	if err != nil {
		err = &ErrDeclare{Engine: engine, Name: name, Err: err}
		return
	}

	id, err = eng.Register(name)
	if err != nil {
		err = &ErrDeclare{Engine: engine, Name: name, Err: err}
		return
	}

	return
}

// Engine returns a declared engine by name.
func (tbl *Table) Engine(name string) (eng *Engine, err error) {
	eng, err = tbl.lookupEngine(name)
	if err != nil {
		err = &ErrDeclare{Engine: name, Err: err}
	}
	return
}

func (tbl *Table) lookupEngine(name string) (eng *Engine, err error) {
	id, ok := tbl.engineIndex[name]
	if !ok {
		err = ErrUnknownEngine
		return
	}

	eng = tbl.engines[id]
	return
}

// EngineOf returns the engine with the given id.
func (tbl *Table) EngineOf(id EngineID) *Engine {
	return tbl.engines[id]
}

// Register returns the register with the given id.
func (tbl *Table) Register(id RegisterID) Register {
	return tbl.registers[id]
}

// Engines iterates over the engines, in declaration order.
func (tbl *Table) Engines() iter.Seq[*Engine] {
	return slices.Values(tbl.engines)
}

// Registers iterates over all registers, in declaration order.
func (tbl *Table) Registers() iter.Seq[Register] {
	return slices.Values(tbl.registers)
}

// Len returns the number of engines.
func (tbl *Table) Len() int {
	return len(tbl.engines)
}

// Seal prohibits further declarations.
func (tbl *Table) Seal() {
	tbl.sealed = true
}

// Sealed returns true if declarations are closed.
func (tbl *Table) Sealed() bool {
	return tbl.sealed
}
