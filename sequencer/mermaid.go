package sequencer

import (
	"fmt"
	"io"
	"strings"
)

type mermaid struct {
	prog *Program
	w    io.Writer
	num  int
	err  error
}

func (m *mermaid) printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

func mermaidText(text string) string {
	return strings.ReplaceAll(text, `"`, "#quot;")
}

// node emits a node with the given shape, such as ["%s"], and returns its id.
func (m *mermaid) node(shape string, text string) (nid string) {
	m.num++
	nid = fmt.Sprintf("n%d", m.num)
	m.printf("  %s"+shape+"\n", nid, mermaidText(text))
	return
}

func (m *mermaid) edge(from, to, label string) {
	if len(label) == 0 {
		m.printf("  %s --> %s\n", from, to)
	} else {
		m.printf("  %s -->|%s| %s\n", from, label, to)
	}
}

// emit draws a sync sequence after node prev, returning the node and edge
// label the next block continues from.
func (m *mermaid) emit(ids []BlockID, prev string, label string) (string, string) {
	d := &dumper{prog: m.prog}
	for _, id := range ids {
		blk := m.prog.Block(id)
		switch blk.Kind {
		case BLOCK_MULTI_SEQUENCE:
			engines := 0
			for _, seq := range blk.Sequences {
				if !m.prog.Sequence(seq).Empty() {
					engines++
				}
			}
			nid := m.node(`["%s"]`, fmt.Sprintf("%v<br/>%d ns, %d active engines", blk.Name, blk.Delay, engines))
			m.edge(prev, nid, label)
			prev, label = nid, ""
		case BLOCK_SYNC_WHILE:
			nid := m.node(`{"%s"}`, fmt.Sprintf("%v<br/>%v", blk.Name, d.condition(blk.Condition)))
			m.edge(prev, nid, label)
			last, lastLabel := m.emit(blk.Body, nid, "true")
			if last == nid {
				m.edge(nid, nid, "true")
			} else {
				m.edge(last, nid, lastLabel)
			}
			prev, label = nid, "false"
		}
	}
	return prev, label
}

// Mermaid writes a Mermaid (https://mermaid.js.org/) flowchart of the
// sync-level block tree.
func (prog *Program) Mermaid(w io.Writer) error {
	m := &mermaid{prog: prog, w: w}

	m.printf("graph TB\n")
	start := m.node(`(("%s"))`, "start")
	last, label := m.emit(prog.Top, start, "")
	end := m.node(`(("%s"))`, "end")
	m.edge(last, end, label)

	return m.err
}
