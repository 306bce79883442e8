// Package sequencer builds the instruction streams of several hardware
// execution engines that stay time-aligned at synchronization points.
//
// A Builder is driven by an ordered series of calls. Multi-sequence blocks
// are barriers: every engine gets its own Sequence inside the block, and no
// engine leaves the block before all of them finish. Synchronized while
// loops wrap further blocks and re-evaluate a condition on one engine's
// register at every iteration boundary. If statements are local to a single
// engine's sequence.
//
// Build closes the implicit root scope and returns the immutable Program,
// which is then handed to a compiler and runtime.
package sequencer
