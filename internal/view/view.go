// Package view implements the directory tree view: a deterministic
// walk over a root directory that decorates each surviving entry with
// git status, permissions, icon, styled name, and size.
//
// Filters run before any decoration work, so filtered entries cost no
// stat or status lookups. Per-entry traversal errors go to a diagnostic
// writer and never abort the walk; decoration misses degrade silently.
package view

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/danieljhkim/lstree/internal/gitstatus"
	"github.com/danieljhkim/lstree/internal/icons"
	"github.com/danieljhkim/lstree/internal/lscolors"
	"github.com/danieljhkim/lstree/internal/render"
)

// ErrNotDirectory indicates the walk root is not a directory.
var ErrNotDirectory = errors.New("is not a directory")

// indentUnit is the per-level indentation in path mode.
const indentUnit = "    "

// Options control the walk and which decorations are resolved. Each
// toggle is independent; decorations that are off cost nothing.
type Options struct {
	// Level is the maximum depth to descend; 0 means unbounded. The
	// root is depth 0 and is never emitted.
	Level int

	// DirsOnly drops file entries, keeping only directories.
	DirsOnly bool

	// Size appends a human-readable byte size to file entries.
	Size bool

	// Permissions prefixes each entry with a permission string.
	Permissions bool

	// All includes hidden (dot-prefixed) entries.
	All bool

	// Gitignore honors .gitignore files found during the walk.
	Gitignore bool

	// GitStatus decorates entries with their git working-tree status.
	GitStatus bool

	// Icons prefixes names with a type glyph.
	Icons bool

	// Git overrides the status source; nil uses the git binary.
	Git gitstatus.GitClient

	// Colors styles file names by type; nil leaves names unstyled.
	Colors *lscolors.Map
}

// Line is one fully decorated walk result. Every field is resolved
// before rendering; the renderer does no further lookups.
type Line struct {
	Depth       int
	IsDir       bool
	Status      string
	Permissions string
	Icon        string
	Name        string
	Size        string
}

// String assembles the rendered line. Entries at depth 1 start flush
// with the connector.
func (l Line) String() string {
	indent := strings.Repeat(indentUnit, l.Depth-1)
	return l.Status + l.Permissions + indent + "└── " + l.Icon + l.Name + l.Size
}

// Summary holds the running totals emitted after the last entry.
type Summary struct {
	Dirs  int
	Files int
}

// String formats the trailing summary line.
func (s Summary) String() string {
	return fmt.Sprintf("%d directories, %d files", s.Dirs, s.Files)
}

// Walk traverses root depth-first in lexicographic order and returns
// one decorated line per surviving entry plus the dir/file totals.
// A root that is not a directory is a fatal precondition failure;
// everything after that is best-effort.
func Walk(root string, opts Options, diag io.Writer) ([]Line, Summary, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, Summary{}, fmt.Errorf("'%s' %w", root, ErrNotDirectory)
	}

	w := &walker{opts: opts, diag: diag, dim: color.New(color.Faint)}

	if opts.GitStatus {
		client := opts.Git
		if client == nil {
			client = gitstatus.NewRealGitClient()
		}
		// Best-effort: outside a repository every entry renders with
		// no status rather than failing the walk.
		if idx, err := gitstatus.Load(root, client); err == nil {
			w.index = idx
		}
	}

	w.dir(root, 0)
	return w.lines, Summary{Dirs: w.dirs, Files: w.files}, nil
}

// Run walks root and writes the header, each line, and the summary to
// w. Output stops silently if the sink closes mid-write.
func Run(w io.Writer, diag io.Writer, root string, opts Options) error {
	lines, summary, err := Walk(root, opts, diag)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, color.New(color.Bold).Sprint(root)); err != nil {
		return nil
	}
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = l.String()
	}
	render.Lines(w, rendered, summary.String())
	return nil
}

type ignoreScope struct {
	base    string
	matcher *ignore.GitIgnore
}

type walker struct {
	opts    Options
	diag    io.Writer
	dim     *color.Color
	index   *gitstatus.Index
	ignores []ignoreScope
	lines   []Line
	dirs    int
	files   int
}

// dir visits one directory. Children are emitted at depth+1; the depth
// limit is checked first so capped subtrees cost no directory read.
func (w *walker) dir(path string, depth int) {
	if w.opts.Level > 0 && depth+1 > w.opts.Level {
		return
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		fmt.Fprintf(w.diag, "ERROR: %v\n", err)
		return
	}

	if w.opts.Gitignore {
		if m, err := ignore.CompileIgnoreFile(filepath.Join(path, ".gitignore")); err == nil {
			w.ignores = append(w.ignores, ignoreScope{base: path, matcher: m})
			defer func() { w.ignores = w.ignores[:len(w.ignores)-1] }()
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		child := filepath.Join(path, name)
		isDir := entry.IsDir()

		// Filters first: a filtered entry costs no decoration work and
		// is never descended into.
		if !w.opts.All && strings.HasPrefix(name, ".") {
			continue
		}
		if w.ignored(child, isDir) {
			continue
		}

		if !w.opts.DirsOnly || isDir {
			w.lines = append(w.lines, w.decorate(child, name, entry, depth+1, isDir))
			if isDir {
				w.dirs++
			} else {
				w.files++
			}
		}

		if isDir {
			w.dir(child, depth+1)
		}
	}
}

// ignored checks the entry against every .gitignore scope on the walk
// path, innermost last. Each matcher sees the path relative to its own
// directory, with a trailing slash for directories so dir-only
// patterns apply.
func (w *walker) ignored(path string, isDir bool) bool {
	for _, scope := range w.ignores {
		rel, err := filepath.Rel(scope.base, path)
		if err != nil {
			continue
		}
		p := filepath.ToSlash(rel)
		if isDir {
			p += "/"
		}
		if scope.matcher.MatchesPath(p) {
			return true
		}
	}
	return false
}

// decorate resolves every requested decoration for one entry. Metadata
// is only read when size or permission display needs it; any resolution
// failure degrades to a blank decoration.
func (w *walker) decorate(path, name string, entry fs.DirEntry, depth int, isDir bool) Line {
	line := Line{Depth: depth, IsDir: isDir, Name: name}

	if w.opts.GitStatus {
		line.Status = "  "
		if w.index != nil {
			if st, ok := w.index.Lookup(path); ok {
				line.Status = st.Color().Sprint(st.Glyph() + " ")
			}
		}
	}

	var info fs.FileInfo
	if w.opts.Size || w.opts.Permissions {
		info, _ = entry.Info()
	}

	if w.opts.Permissions {
		perms := "----------"
		if info != nil {
			typeChar := "-"
			if isDir {
				typeChar = "d"
			}
			perms = typeChar + formatPermissions(info.Mode())
		}
		line.Permissions = w.dim.Sprint(perms + " ")
	}

	if w.opts.Icons {
		ic := icons.Lookup(name, isDir)
		line.Icon = ic.Style().Sprint(ic.Glyph + " ")
	}

	if style := w.opts.Colors.StyleFor(name, isDir); style != nil {
		line.Name = style.Sprint(name)
	}

	if w.opts.Size && !isDir && info != nil {
		line.Size = w.dim.Sprintf(" (%s)", formatSize(info.Size()))
	}

	return line
}
