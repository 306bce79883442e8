package engine

import (
	"slices"
)

type EngineID int
type ActionID int
type EventID int

// Descriptor is the capability description of an engine, as handed over
// by the device registry.
type Descriptor struct {
	Name            string              // Unique engine name.
	Actions         []string            // Action (trigger) names, in declaration order.
	Events          []string            // Event names, in declaration order.
	DeviceRegisters *DeviceRegisterFile // Optional attached register file.
}

// Engine is a declared execution engine.
type Engine struct {
	Id              EngineID
	Name            string
	Actions         []string
	Events          []string
	DeviceRegisters *DeviceRegisterFile
	Registers       []RegisterID // Sequencer registers, in declaration order.

	actionIndex   map[string]ActionID
	eventIndex    map[string]EventID
	registerIndex map[string]RegisterID
}

func newEngine(id EngineID, desc Descriptor) (eng *Engine, err error) {
	eng = &Engine{
		Id:              id,
		Name:            desc.Name,
		DeviceRegisters: desc.DeviceRegisters,
		actionIndex:     make(map[string]ActionID, len(desc.Actions)),
		eventIndex:      make(map[string]EventID, len(desc.Events)),
		registerIndex:   map[string]RegisterID{},
	}

	for _, action := range desc.Actions {
		if len(action) == 0 {
			return nil, &ErrDeclare{Engine: desc.Name, Err: ErrNameEmpty}
		}
		if _, dup := eng.actionIndex[action]; dup {
			return nil, &ErrDeclare{Engine: desc.Name, Name: action, Err: ErrDuplicateAction}
		}
		eng.actionIndex[action] = ActionID(len(eng.Actions))
		eng.Actions = append(eng.Actions, action)
	}

	for _, event := range desc.Events {
		if len(event) == 0 {
			return nil, &ErrDeclare{Engine: desc.Name, Err: ErrNameEmpty}
		}
		if _, dup := eng.eventIndex[event]; dup {
			return nil, &ErrDeclare{Engine: desc.Name, Name: event, Err: ErrDuplicateEvent}
		}
		eng.eventIndex[event] = EventID(len(eng.Events))
		eng.Events = append(eng.Events, event)
	}

	return
}

// Action resolves an action name.
func (eng *Engine) Action(name string) (id ActionID, err error) {
	id, ok := eng.actionIndex[name]
	if !ok {
		err = ErrUnknownAction
	}
	return
}

// Event resolves an event name.
func (eng *Engine) Event(name string) (id EventID, err error) {
	id, ok := eng.eventIndex[name]
	if !ok {
		err = ErrUnknownEvent
	}
	return
}

// DeviceRegister resolves a register in the attached device register file.
func (eng *Engine) DeviceRegister(name string) (id DeviceRegisterID, err error) {
	return eng.DeviceRegisters.Lookup(name)
}

// HasRegister returns true if the engine declares the sequencer register.
func (eng *Engine) HasRegister(id RegisterID) bool {
	return slices.Contains(eng.Registers, id)
}

// Register resolves a sequencer register declared on this engine.
func (eng *Engine) Register(name string) (id RegisterID, err error) {
	id, ok := eng.registerIndex[name]
	if !ok {
		err = ErrUnknownRegister
	}
	return
}
