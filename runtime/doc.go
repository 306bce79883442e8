// Package runtime is the hand-off point for a built sequencer Program: a
// Compiler turns it into an Artifact, and a Runtime loads, runs and
// releases that Artifact on the hardware.
//
// The Simulator implements both interfaces in process. Every engine keeps
// its own 16-bit sequencer registers, device register values and clock.
// The sequences of a multi-sequence block run concurrently, one goroutine
// per engine, and the block ends at a barrier that advances every clock to
// the latest finisher.
package runtime
