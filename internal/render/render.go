// Package render writes display trees and decorated line streams to an
// output sink.
//
// Both entry points treat a failed write as the consumer disconnecting:
// rendering stops silently and reports success, matching the semantics
// of piping into a pager that exits early.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/lstree/internal/tree"
)

// Config controls tree rendering: how wide each indent step is and the
// styles applied to branch connectors and leaf labels.
type Config struct {
	// Indent is the number of columns per tree level. Values below 2
	// are raised to 2 so the connector glyphs always fit.
	Indent int

	// Branch styles the connector glyphs.
	Branch *color.Color

	// Leaf styles node labels.
	Leaf *color.Color
}

// DefaultConfig mirrors the stock styling: four-column indent, faint
// green branches, bold leaves.
func DefaultConfig() Config {
	return Config{
		Indent: 4,
		Branch: color.New(color.FgGreen, color.Faint),
		Leaf:   color.New(color.Bold),
	}
}

func (c Config) indent() int {
	if c.Indent < 2 {
		return 2
	}
	return c.Indent
}

// Tree writes the node and its descendants depth-first, preserving
// child order. A root with an empty label is treated as synthetic: its
// own line is suppressed and its children start at depth zero.
func Tree(w io.Writer, root tree.Node, cfg Config) {
	tw := &treeWriter{w: w, cfg: cfg}
	if root.Label == "" {
		tw.children(root.Children, "")
		return
	}
	if !tw.line("", "", root.Label) {
		return
	}
	tw.children(root.Children, "")
}

type treeWriter struct {
	w      io.Writer
	cfg    Config
	closed bool
}

// children renders a sibling run under the given prefix. The last
// sibling gets a closing connector and a blank continuation column.
func (t *treeWriter) children(nodes []tree.Node, prefix string) {
	step := t.cfg.indent()
	for i, n := range nodes {
		if t.closed {
			return
		}
		last := i == len(nodes)-1
		connector := "├" + strings.Repeat("─", step-2) + " "
		continuation := "│" + strings.Repeat(" ", step-1)
		if last {
			connector = "└" + strings.Repeat("─", step-2) + " "
			continuation = strings.Repeat(" ", step)
		}
		if !t.line(prefix, connector, n.Label) {
			return
		}
		t.children(n.Children, prefix+continuation)
	}
}

// line writes one node line; returns false once the sink is closed.
func (t *treeWriter) line(prefix, connector, label string) bool {
	if t.closed {
		return false
	}
	branch := prefix + connector
	if t.cfg.Branch != nil {
		branch = t.cfg.Branch.Sprint(branch)
	}
	if t.cfg.Leaf != nil {
		label = t.cfg.Leaf.Sprint(label)
	}
	if _, err := fmt.Fprintln(t.w, branch+label); err != nil {
		t.closed = true
		return false
	}
	return true
}

// Lines writes each precomputed line verbatim in order, then a blank
// line and the summary. A failed write stops output silently.
func Lines(w io.Writer, lines []string, summary string) {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return
		}
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", summary); err != nil {
		return
	}
}
