package runtime

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ezrec/hvi/sequencer"
)

const (
	NO_TIMEOUT = time.Duration(0) // Run until the program ends.
)

// Artifact is a compiled Program, ready to be loaded.
type Artifact struct {
	ID      uuid.UUID          // Time ordered artifact id.
	Program *sequencer.Program // Program the artifact was compiled from.
	Listing []string           // Readable listing of the program.
}

// Compiler translates a finished Program into an Artifact.
type Compiler interface {
	Compile(prog *sequencer.Program) (*Artifact, error)
}

// Runtime loads, runs and releases Artifacts.
type Runtime interface {
	Load(art *Artifact) error
	Run(ctx context.Context, art *Artifact, timeout time.Duration) error
	Release(art *Artifact) error
}

// Compile verifies prog was built to completion, and wraps it in an
// Artifact with a fresh id.
func Compile(prog *sequencer.Program) (art *Artifact, err error) {
	if prog == nil || prog.Table == nil || !prog.Table.Sealed() {
		err = ErrProgramOpen
		return
	}

	for _, blk := range prog.Blocks {
		if !blk.Closed {
			err = &ErrRuntime{Engine: "-", Statement: blk.Name, Err: ErrProgramOpen}
			return
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return
	}

	art = &Artifact{
		ID:      id,
		Program: prog,
		Listing: strings.Split(strings.TrimSuffix(prog.String(), "\n"), "\n"),
	}

	return
}
