// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sequencer

import (
	"errors"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"

	"github.com/ezrec/hvi/engine"
)

// seqFrame is an entry of an engine's current-sequence stack.
type seqFrame struct {
	sequence SequenceID
	branch   BlockID // BLOCK_IF that opened the frame, or NO_BLOCK.
}

// Builder constructs a Program from an ordered series of calls.
//
// One stack of open sync-level scopes (the root, multi-sequence blocks and
// synchronized while loops) is shared by all engines, and each engine has
// its own stack of current sequences. Statements are appended to the top
// of their engine's stack.
//
// A rejected call returns an *ErrBuild and leaves the builder unchanged.
type Builder struct {
	Verbose bool // If set, logs every accepted call.

	prog      *Program
	scopes    Stack[BlockID]
	engines   []Stack[seqFrame]
	finalized bool
}

// NewBuilder creates a builder for a program named name. If table is nil,
// an empty table is created; engines and registers may be declared through
// the builder until the first block opens.
func NewBuilder(name string, table *engine.Table) (b *Builder) {
	if table == nil {
		table = engine.NewTable()
	}

	b = &Builder{
		prog: &Program{Name: name, Table: table},
	}
	b.scopes.Push(NO_BLOCK)

	return
}

// Table returns the engine table of the program being built.
func (b *Builder) Table() *engine.Table {
	return b.prog.Table
}

// wrap converts a failure into an *ErrBuild, recording the builder's
// caller. It must be deferred directly by an exported method.
func (b *Builder) wrap(err *error, ctx *ErrBuild) {
	if *err == nil {
		return
	}

	ctx.Err = *err
	var decl *engine.ErrDeclare
	if errors.As(ctx.Err, &decl) {
		ctx.Err = decl.Err
	}

	ctx.Caller = "?"
	if _, file, line, ok := runtime.Caller(2); ok {
		ctx.Caller = filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	*err = ctx
}

func (b *Builder) mutable() (err error) {
	if b.finalized {
		err = ErrProgramFinalized
	}
	return
}

// seal closes the declarations when the first block opens.
func (b *Builder) seal() {
	if b.engines != nil {
		return
	}

	b.prog.Table.Seal()
	b.engines = make([]Stack[seqFrame], b.prog.Table.Len())
}

// DeclareEngine declares an engine. See engine.Table.DeclareEngine.
func (b *Builder) DeclareEngine(desc engine.Descriptor) (id engine.EngineID, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "declare_engine", Engine: desc.Name})

	if err = b.mutable(); err != nil {
		return
	}

	id, err = b.prog.Table.DeclareEngine(desc)
	return
}

// DeclareRegister declares a sequencer register on an engine. See
// engine.Table.DeclareRegister.
func (b *Builder) DeclareRegister(eng string, name string, initial int) (id engine.RegisterID, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "declare_register", Engine: eng, Name: name})

	if err = b.mutable(); err != nil {
		return
	}

	id, err = b.prog.Table.DeclareRegister(eng, name, initial)
	return
}

// Lookup resolves a sequencer register of an engine.
func (b *Builder) Lookup(eng string, name string) (id engine.RegisterID, err error) {
	defer b.wrap(&err, &ErrBuild{Op: "lookup", Engine: eng, Name: name})

	id, err = b.prog.Table.Lookup(eng, name)
	return
}

// syncParent returns the innermost sync scope, if a sync-level block can be
// opened inside it.
func (b *Builder) syncParent() (parent BlockID, err error) {
	parent, _ = b.scopes.Peek()
	if parent != NO_BLOCK && b.prog.Block(parent).Kind != BLOCK_SYNC_WHILE {
		err = ErrScopeMismatch
	}
	return
}

func (b *Builder) newBlock(kind BlockKind, name string, delay int, parent BlockID) (id BlockID) {
	id = BlockID(len(b.prog.Blocks))
	b.prog.Blocks = append(b.prog.Blocks, Block{
		Id:     id,
		Kind:   kind,
		Name:   name,
		Delay:  delay,
		Parent: parent,
		Owner:  -1,
	})
	return
}

// newSyncBlock allocates a block in the sync sequence of parent, with a
// name unique among its siblings.
func (b *Builder) newSyncBlock(kind BlockKind, name string, delay int, parent BlockID) (id BlockID) {
	siblings := b.prog.SyncSequence(parent)
	names := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		names = append(names, b.prog.Block(sibling).Name)
	}

	id = b.newBlock(kind, UniqueName(slices.Values(names), name), delay, parent)
	if parent == NO_BLOCK {
		b.prog.Top = append(b.prog.Top, id)
	} else {
		blk := b.prog.Block(parent)
		blk.Body = append(blk.Body, id)
	}
	return
}

func (b *Builder) newSequence(eng engine.EngineID, owner BlockID) (id SequenceID) {
	id = SequenceID(len(b.prog.Sequences))
	b.prog.Sequences = append(b.prog.Sequences, Sequence{
		Id:     id,
		Engine: eng,
		Block:  owner,
	})
	return
}

// mismatch classifies a close of the wrong scope kind: closing a scope
// that is open further out is a non-LIFO close, anything else a mismatch.
func (b *Builder) mismatch(kind BlockKind) error {
	open := b.scopes.Any(func(id BlockID) bool {
		return id != NO_BLOCK && b.prog.Block(id).Kind == kind
	})
	if open {
		return ErrUnclosedChildScope
	}
	return ErrScopeMismatch
}

// StartMultiSequenceBlock opens a synchronization barrier, with an empty
// sequence for every declared engine.
func (b *Builder) StartMultiSequenceBlock(name string, delay int) (id BlockID, err error) {
	ctx := &ErrBuild{Op: "start_sync_multi_sequence_block", Name: name}
	defer b.wrap(&err, ctx)

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

	parent, err := b.syncParent()
	if err != nil {
		return
	}

	b.seal()

	id = b.newSyncBlock(BLOCK_MULTI_SEQUENCE, name, delay, parent)
	sequences := make([]SequenceID, 0, b.prog.Table.Len())
	for eng := range b.prog.Table.Engines() {
		seq := b.newSequence(eng.Id, id)
		sequences = append(sequences, seq)
		b.engines[eng.Id].Push(seqFrame{sequence: seq, branch: NO_BLOCK})
	}
	b.prog.Block(id).Sequences = sequences
	b.scopes.Push(id)

	if b.Verbose {
		log.Printf("start %v %v, delay %v", BLOCK_MULTI_SEQUENCE, b.prog.Block(id).Name, delay)
	}

	return
}

// EndMultiSequenceBlock closes the innermost scope, which must be a
// multi-sequence block with no open if branches.
func (b *Builder) EndMultiSequenceBlock() (err error) {
	ctx := &ErrBuild{Op: "end_sync_multi_sequence_block"}
	defer b.wrap(&err, ctx)

	if err = b.mutable(); err != nil {
		return
	}

	top, _ := b.scopes.Peek()
	if top == NO_BLOCK || b.prog.Block(top).Kind != BLOCK_MULTI_SEQUENCE {
		err = b.mismatch(BLOCK_MULTI_SEQUENCE)
		return
	}

	blk := b.prog.Block(top)
	ctx.Name = blk.Name

	for n := range b.engines {
		frame, ok := b.engines[n].Peek()
		if ok && frame.branch != NO_BLOCK {
			ctx.Engine = b.prog.Table.EngineOf(engine.EngineID(n)).Name
			ctx.Name = b.prog.Block(frame.branch).Name
			err = ErrUnclosedChildScope
			return
		}
	}

	for n := range b.engines {
		b.engines[n].Pop()
	}
	b.scopes.Pop()
	blk.Closed = true

	if b.Verbose {
		log.Printf("end %v %v", blk.Kind, blk.Name)
	}

	return
}

// StartSyncWhile opens a synchronized loop, which runs while the engine's
// register compares true against bound.
func (b *Builder) StartSyncWhile(name string, eng string, register string, cmp Comparator, bound int, delay int) (id BlockID, err error) {
	ctx := &ErrBuild{Op: "start_sync_while_register", Engine: eng, Name: name}
	defer b.wrap(&err, ctx)

	if err = b.mutable(); err != nil {
		return
	}

	cond, err := b.condition(name, eng, register, cmp, bound, delay)
	if err != nil {
		return
	}

	parent, err := b.syncParent()
	if err != nil {
		return
	}

	b.seal()

	id = b.newSyncBlock(BLOCK_SYNC_WHILE, name, delay, parent)
	b.prog.Block(id).Condition = cond
	b.scopes.Push(id)

	if b.Verbose {
		log.Printf("start %v %v, while %v.%v %v %v, delay %v",
			BLOCK_SYNC_WHILE, b.prog.Block(id).Name, eng, register, cmp.Symbol(), bound, delay)
	}

	return
}

// condition validates the common arguments of a register comparison.
func (b *Builder) condition(name string, eng string, register string, cmp Comparator, bound int, delay int) (cond Condition, err error) {
	switch {
	case len(name) == 0:
		err = ErrNameEmpty
		return
	case delay < 0:
		err = ErrDelayInvalid
		return
	case cmp < COMPARATOR_EQUAL || cmp > COMPARATOR_GREATER_THAN_OR_EQUAL:
		err = ErrComparatorInvalid
		return
	}

	e, err := b.prog.Table.Engine(eng)
	if err != nil {
		return
	}

	reg, err := e.Register(register)
	if err != nil {
		return
	}

	value, err := engine.CheckValue(bound)
	if err != nil {
		return
	}

	cond = Condition{
		Engine:     e.Id,
		Register:   reg,
		Comparator: cmp,
		Bound:      value,
	}
	return
}

// EndSyncWhile closes the innermost scope, which must be a synchronized
// while loop.
func (b *Builder) EndSyncWhile() (err error) {
	ctx := &ErrBuild{Op: "end_sync_while"}
	defer b.wrap(&err, ctx)

	if err = b.mutable(); err != nil {
		return
	}

	top, _ := b.scopes.Peek()
	if top == NO_BLOCK || b.prog.Block(top).Kind != BLOCK_SYNC_WHILE {
		if top != NO_BLOCK {
			ctx.Name = b.prog.Block(top).Name
		}
		err = b.mismatch(BLOCK_SYNC_WHILE)
		return
	}

	blk := b.prog.Block(top)
	ctx.Name = blk.Name
	b.scopes.Pop()
	blk.Closed = true

	if b.Verbose {
		log.Printf("end %v %v", blk.Kind, blk.Name)
	}

	return
}

// current returns the engine and its open sequence.
func (b *Builder) current(name string) (eng *engine.Engine, seq SequenceID, err error) {
	eng, err = b.prog.Table.Engine(name)
	if err != nil {
		return
	}

	if int(eng.Id) >= len(b.engines) {
		err = ErrNoOpenSequence
		return
	}

	frame, ok := b.engines[eng.Id].Peek()
	if !ok {
		err = ErrNoOpenSequence
		return
	}

	seq = frame.sequence
	return
}

// StartIf appends an if statement to the engine's current sequence, and
// makes its then-branch the engine's current sequence. Other engines are
// not affected.
func (b *Builder) StartIf(name string, eng string, register string, cmp Comparator, bound int, delay int) (id BlockID, err error) {
	ctx := &ErrBuild{Op: "if_register_comparison", Engine: eng, Name: name}
	defer b.wrap(&err, ctx)

	if err = b.mutable(); err != nil {
		return
	}

	cond, err := b.condition(name, eng, register, cmp, bound, delay)
	if err != nil {
		return
	}

	e, owner, err := b.current(eng)
	if err != nil {
		return
	}

	parent := b.prog.Sequence(owner).Block
	unique := UniqueName(b.prog.Sequence(owner).Names(), name)

	id = b.newBlock(BLOCK_IF, unique, delay, parent)
	then := b.newSequence(e.Id, id)
	blk := b.prog.Block(id)
	blk.Condition = cond
	blk.Sequences = []SequenceID{then}
	blk.Owner = owner

	b.append(owner, Statement{
		Name:   unique,
		Kind:   KIND_IF,
		Delay:  delay,
		Engine: e.Id,
		Block:  id,
	})
	b.engines[e.Id].Push(seqFrame{sequence: then, branch: id})

	return
}

// EndIf closes the engine's innermost if branch.
func (b *Builder) EndIf(eng string) (err error) {
	ctx := &ErrBuild{Op: "end_if", Engine: eng}
	defer b.wrap(&err, ctx)

	if err = b.mutable(); err != nil {
		return
	}

	e, err := b.prog.Table.Engine(eng)
	if err != nil {
		return
	}

	if int(e.Id) >= len(b.engines) {
		err = ErrScopeMismatch
		return
	}

	frame, ok := b.engines[e.Id].Peek()
	if !ok || frame.branch == NO_BLOCK {
		err = ErrScopeMismatch
		return
	}

	blk := b.prog.Block(frame.branch)
	ctx.Name = blk.Name
	b.engines[e.Id].Pop()
	blk.Closed = true

	if b.Verbose {
		log.Printf("......%v: end %v %v", eng, blk.Kind, blk.Name)
	}

	return
}

// append adds a statement to a sequence, returning its unique name.
func (b *Builder) append(seq SequenceID, st Statement) (name string) {
	sequence := b.prog.Sequence(seq)
	st.Name = UniqueName(sequence.Names(), st.Name)
	sequence.Statements = append(sequence.Statements, st)

	if b.Verbose {
		log.Printf("......%v: %v %v", b.prog.Table.EngineOf(st.Engine).Name, st.Kind, st.Name)
	}

	return st.Name
}

// Build closes the root scope and returns the finished Program. All other
// scopes must be closed. After Build, every builder call fails with
// ErrProgramFinalized.
func (b *Builder) Build() (prog *Program, err error) {
	ctx := &ErrBuild{Op: "build", Name: b.prog.Name}
	defer b.wrap(&err, ctx)

	if err = b.mutable(); err != nil {
		return
	}

	top, _ := b.scopes.Peek()
	if top != NO_BLOCK {
		ctx.Name = b.prog.Block(top).Name
		err = ErrUnclosedChildScope
		return
	}

	b.seal()
	b.scopes.Pop()
	b.finalized = true
	prog = b.prog

	if b.Verbose {
		log.Printf("program %v: %d blocks, %d sequences", prog.Name, len(prog.Blocks), len(prog.Sequences))
	}

	return
}

// Finalized returns true once Build has succeeded.
func (b *Builder) Finalized() bool {
	return b.finalized
}

// Dump writes a readable trace of the program built so far.
func (b *Builder) Dump(w io.Writer) error {
	return b.prog.Dump(w)
}
