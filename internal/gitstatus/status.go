// Package gitstatus builds a read-only index of git working-tree
// statuses and answers per-path lookups during a walk.
//
// The status source is the external git binary; this package only
// translates its repo-relative output into lookups keyed by the
// walker's canonicalized absolute paths. Every lookup is best-effort:
// paths outside the repository, canonicalization failures, and plain
// misses all degrade to "no status".
package gitstatus

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/ini.v1"
)

// ErrNotInRepo indicates the walk root is not inside a git repository.
var ErrNotInRepo = errors.New("not in a git repository")

// FileStatus classifies one path in the working tree.
type FileStatus int

const (
	// StatusNew is a path added to the index.
	StatusNew FileStatus = iota
	// StatusModified is a path with content changes.
	StatusModified
	// StatusDeleted is a path removed from the working tree or index.
	StatusDeleted
	// StatusRenamed is a path recorded as a rename destination.
	StatusRenamed
	// StatusTypechange is a path whose file type changed.
	StatusTypechange
	// StatusConflicted is a path with unresolved merge conflicts.
	StatusConflicted
	// StatusUntracked is a path git does not track.
	StatusUntracked
)

// Glyph returns the single-character marker rendered next to an entry.
func (s FileStatus) Glyph() string {
	switch s {
	case StatusNew:
		return "N"
	case StatusModified:
		return "M"
	case StatusDeleted:
		return "D"
	case StatusRenamed:
		return "R"
	case StatusTypechange:
		return "T"
	case StatusConflicted:
		return "C"
	case StatusUntracked:
		return "?"
	default:
		return " "
	}
}

// Color returns the style for the glyph.
func (s FileStatus) Color() *color.Color {
	switch s {
	case StatusNew, StatusRenamed:
		return color.New(color.FgGreen)
	case StatusModified, StatusTypechange:
		return color.New(color.FgYellow)
	case StatusDeleted:
		return color.New(color.FgRed)
	case StatusConflicted:
		return color.New(color.FgHiRed)
	case StatusUntracked:
		return color.New(color.FgMagenta)
	default:
		return color.New()
	}
}

// GitClient provides the git operations the index depends on.
type GitClient interface {
	// Discover finds the repository root containing dir.
	Discover(dir string) (root string, err error)

	// Status returns working-tree statuses keyed by repo-root-relative
	// slash-separated path.
	Status(root string) (map[string]FileStatus, error)
}

// Index is the immutable status lookup built once per walk.
type Index struct {
	root   string
	byPath map[string]FileStatus
}

// Load discovers the repository containing dir and builds its status
// index. A dir outside any repository returns ErrNotInRepo.
func Load(dir string, client GitClient) (*Index, error) {
	root, err := client.Discover(dir)
	if err != nil {
		return nil, err
	}

	// Lookups compare canonicalized entry paths against the root, so
	// the root itself must be canonical too.
	canonical, err := filepath.EvalSymlinks(root)
	if err != nil {
		canonical = root
	}
	canonical, err = filepath.Abs(canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository root: %w", err)
	}

	statuses, err := client.Status(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository status: %w", err)
	}

	return &Index{root: canonical, byPath: statuses}, nil
}

// Lookup canonicalizes absPath, strips the repository root prefix, and
// queries the index. Any failure along the way reports a miss.
func (ix *Index) Lookup(absPath string) (FileStatus, bool) {
	canonical, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return 0, false
	}

	rel, err := filepath.Rel(ix.root, canonical)
	if err != nil {
		return 0, false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return 0, false
	}

	st, ok := ix.byPath[filepath.ToSlash(rel)]
	return st, ok
}

// RealGitClient implements GitClient using the git binary.
type RealGitClient struct{}

// NewRealGitClient creates a new RealGitClient.
func NewRealGitClient() *RealGitClient {
	return &RealGitClient{}
}

// Discover finds the repository root by walking up from dir looking for
// a .git entry. A .git directory must hold a parseable config to count;
// a plain .git file (worktrees, submodules) is accepted as-is.
func (g *RealGitClient) Discover(dir string) (string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		gitPath := filepath.Join(current, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() && hasGitConfig(gitPath) {
				return current, nil
			}
			if info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotInRepo
		}
		current = parent
	}
}

// hasGitConfig reports whether dir contains a config file that parses
// as git configuration. Bare repositories are rejected: they have no
// working tree to report statuses for.
func hasGitConfig(gitDir string) bool {
	cfg, err := ini.Load(filepath.Join(gitDir, "config"))
	if err != nil {
		return false
	}
	return !cfg.Section("core").Key("bare").MustBool(false)
}

// Status runs git status and parses its porcelain output.
func (g *RealGitClient) Status(root string) (map[string]FileStatus, error) {
	cmd := exec.Command("git", "status", "--porcelain", "-z", "--untracked-files=all")
	cmd.Dir = root
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}
	return parsePorcelain(output), nil
}

// parsePorcelain decodes NUL-terminated porcelain v1 records. Rename
// records carry the origin path in a second NUL-separated field, which
// is consumed and dropped: only the destination path is decorated.
func parsePorcelain(output []byte) map[string]FileStatus {
	statuses := make(map[string]FileStatus)

	fields := bytes.Split(output, []byte{0})
	for i := 0; i < len(fields); i++ {
		record := fields[i]
		if len(record) < 4 {
			continue
		}
		x, y := record[0], record[1]
		path := strings.TrimSuffix(string(record[3:]), "/")

		st, ok := classify(x, y)
		if !ok {
			continue
		}
		if st == StatusRenamed && i+1 < len(fields) {
			i++
		}
		statuses[path] = st
	}

	return statuses
}

// classify maps a porcelain XY code pair to a FileStatus. The index
// column wins over the worktree column except for conflicts, which win
// over everything.
func classify(x, y byte) (FileStatus, bool) {
	switch {
	case x == '?' || y == '?':
		return StatusUntracked, true
	case x == 'U' || y == 'U', x == 'A' && y == 'A', x == 'D' && y == 'D':
		return StatusConflicted, true
	case x == 'R' || y == 'R':
		return StatusRenamed, true
	case x == 'T' || y == 'T':
		return StatusTypechange, true
	case x == 'A':
		return StatusNew, true
	case x == 'D' || y == 'D':
		return StatusDeleted, true
	case x == 'M' || y == 'M':
		return StatusModified, true
	default:
		return 0, false
	}
}

// FakeGitClient implements GitClient with predetermined values for
// testing.
type FakeGitClient struct {
	root     string
	statuses map[string]FileStatus
	err      error
}

// NewFakeGitClient creates a FakeGitClient reporting the given root and
// statuses.
func NewFakeGitClient(root string, statuses map[string]FileStatus) *FakeGitClient {
	return &FakeGitClient{root: root, statuses: statuses}
}

// SetError sets an error to be returned by all methods.
func (g *FakeGitClient) SetError(err error) {
	g.err = err
}

// Discover returns the predetermined root.
func (g *FakeGitClient) Discover(dir string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.root, nil
}

// Status returns the predetermined statuses.
func (g *FakeGitClient) Status(root string) (map[string]FileStatus, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.statuses, nil
}
