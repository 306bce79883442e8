package sequencer

import (
	"github.com/ezrec/hvi/engine"
)

type BlockID int

const (
	NO_BLOCK = BlockID(-1) // The root sync sequence.
)

// Condition compares an engine's sequencer register against a bound.
type Condition struct {
	Engine     engine.EngineID
	Register   engine.RegisterID
	Comparator Comparator
	Bound      int16
}

// Block is a scope node of the program tree.
//
// A BLOCK_MULTI_SEQUENCE has one Sequence per declared engine, indexed by
// EngineID. A BLOCK_SYNC_WHILE has a Body of nested sync-level blocks. A
// BLOCK_IF has a single then-branch Sequence, and is referenced by a KIND_IF
// statement in its Owner sequence.
type Block struct {
	Id        BlockID
	Kind      BlockKind
	Name      string
	Delay     int
	Parent    BlockID      // Enclosing block, or NO_BLOCK.
	Sequences []SequenceID // BLOCK_MULTI_SEQUENCE, BLOCK_IF
	Condition Condition    // BLOCK_SYNC_WHILE, BLOCK_IF
	Body      []BlockID    // BLOCK_SYNC_WHILE
	Owner     SequenceID   // BLOCK_IF
	Closed    bool
}

// Then returns the then-branch sequence of a BLOCK_IF.
func (blk *Block) Then() SequenceID {
	return blk.Sequences[0]
}
