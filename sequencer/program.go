package sequencer

import (
	"iter"

	"github.com/ezrec/hvi/engine"
)

// Program is the finished tree of blocks, with the engine and register
// declarations it was built against. Blocks and sequences live in arenas
// addressed by BlockID and SequenceID.
type Program struct {
	Name      string
	Table     *engine.Table
	Blocks    []Block
	Sequences []Sequence
	Top       []BlockID // Root sync sequence.
}

// Block returns a block by id.
func (prog *Program) Block(id BlockID) *Block {
	return &prog.Blocks[id]
}

// Sequence returns a sequence by id.
func (prog *Program) Sequence(id SequenceID) *Sequence {
	return &prog.Sequences[id]
}

// SyncSequence returns the sync-level blocks directly inside parent, which
// is either NO_BLOCK for the root or a BLOCK_SYNC_WHILE.
func (prog *Program) SyncSequence(parent BlockID) []BlockID {
	if parent == NO_BLOCK {
		return prog.Top
	}
	return prog.Block(parent).Body
}

// Walk iterates depth first, in program order, over the sync-level blocks
// with their nesting depth.
func (prog *Program) Walk() iter.Seq2[int, *Block] {
	return func(yield func(int, *Block) bool) {
		var walk func(depth int, ids []BlockID) bool
		walk = func(depth int, ids []BlockID) bool {
			for _, id := range ids {
				blk := prog.Block(id)
				if !yield(depth, blk) {
					return false
				}
				if blk.Kind == BLOCK_SYNC_WHILE && !walk(depth+1, blk.Body) {
					return false
				}
			}
			return true
		}
		walk(0, prog.Top)
	}
}

// Statements iterates over every statement, grouped by sequence in
// allocation order.
func (prog *Program) Statements() iter.Seq2[SequenceID, *Statement] {
	return func(yield func(SequenceID, *Statement) bool) {
		for n := range prog.Sequences {
			seq := &prog.Sequences[n]
			for i := range seq.Statements {
				if !yield(seq.Id, &seq.Statements[i]) {
					return
				}
			}
		}
	}
}

// EngineSequence returns the sequence of an engine within a multi-sequence
// block.
func (prog *Program) EngineSequence(blk *Block, eng engine.EngineID) *Sequence {
	return prog.Sequence(blk.Sequences[eng])
}
