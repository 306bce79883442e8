// Package engine holds the declaration table of a synchronized sequencer
// system: the execution engines taking part, the actions and events each
// engine exposes, the device register file attached to an engine, and the
// 16-bit sequencer registers scoped to each engine.
//
// Declarations happen once, before any sequence is built. A Table is sealed
// by the sequencer builder when the first block opens; after that only
// lookups are permitted. Lookups are pure and idempotent.
package engine
