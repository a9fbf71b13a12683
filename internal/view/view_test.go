package view

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/danieljhkim/lstree/internal/gitstatus"
)

// writeFile creates a file with parents under root.
func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dirs: %v", err)
	}
	if err := os.WriteFile(path, []byte("content\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func names(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Name
	}
	return out
}

func TestWalkNotADirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.txt")

	lines, _, err := Walk(filepath.Join(root, "file.txt"), Options{}, os.Stderr)
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("got %v, want ErrNotDirectory", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected zero lines, got %d", len(lines))
	}
}

func TestWalkMissingPath(t *testing.T) {
	_, _, err := Walk(filepath.Join(t.TempDir(), "nope"), Options{}, os.Stderr)
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("got %v, want ErrNotDirectory", err)
	}
}

func TestWalkSummaryCounts(t *testing.T) {
	// One file and one non-empty subdirectory whose only content is
	// hidden: default options count exactly one of each.
	root := t.TempDir()
	writeFile(t, root, "file.txt")
	writeFile(t, root, "sub/.hidden")

	_, summary, err := Walk(root, Options{}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := summary.String(); got != "1 directories, 1 files" {
		t.Errorf("got %q, want %q", got, "1 directories, 1 files")
	}
}

func TestWalkLexicographicDepthFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "zebra.txt")
	writeFile(t, root, "apple/inner.txt")
	writeFile(t, root, "mango.txt")

	lines, _, err := Walk(root, Options{}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"apple", "inner.txt", "mango.txt", "zebra.txt"}
	got := names(lines)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalkDepthLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/c/deep.txt")
	writeFile(t, root, "top.txt")

	lines, _, err := Walk(root, Options{Level: 1, All: true}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, l := range lines {
		if l.Depth > 1 {
			t.Errorf("entry %q emitted at depth %d with level 1", l.Name, l.Depth)
		}
	}
	if len(lines) != 2 {
		t.Errorf("got %d entries, want 2 (a, top.txt): %v", len(lines), names(lines))
	}
}

func TestWalkHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".secret")
	writeFile(t, root, "visible.txt")
	writeFile(t, root, ".hiddendir/inside.txt")

	t.Run("hidden excluded by default", func(t *testing.T) {
		lines, _, err := Walk(root, Options{}, os.Stderr)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := names(lines); len(got) != 1 || got[0] != "visible.txt" {
			t.Errorf("got %v, want [visible.txt]", got)
		}
	})

	t.Run("hidden included with all", func(t *testing.T) {
		lines, _, err := Walk(root, Options{All: true}, os.Stderr)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(lines) != 4 {
			t.Errorf("got %v, want 4 entries", names(lines))
		}
	})
}

func TestWalkDirsOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "one.txt")
	writeFile(t, root, "two.txt")
	writeFile(t, root, "sub/three.txt")
	writeFile(t, root, "sub/nested/four.txt")

	lines, summary, err := Walk(root, Options{DirsOnly: true}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Files != 0 {
		t.Errorf("expected no files, got %d", summary.Files)
	}
	if summary.Dirs != 2 {
		t.Errorf("expected 2 directories, got %d", summary.Dirs)
	}
	for _, l := range lines {
		if !l.IsDir {
			t.Errorf("entry %q is not a directory", l.Name)
		}
	}
}

func TestWalkGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.txt")
	writeFile(t, root, "drop.log")
	writeFile(t, root, "build/out.bin")
	writeFile(t, root, "sub/local.tmp")
	writeFile(t, root, "sub/keep.tmp.txt")
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\nbuild/\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", ".gitignore"), []byte("*.tmp\n"), 0644); err != nil {
		t.Fatal(err)
	}

	lines, _, err := Walk(root, Options{Gitignore: true}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := strings.Join(names(lines), " ")
	for _, unwanted := range []string{"drop.log", "build", "out.bin", "local.tmp"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("ignored entry %q was emitted: %v", unwanted, got)
		}
	}
	for _, wanted := range []string{"keep.txt", "keep.tmp.txt"} {
		if !strings.Contains(got, wanted) {
			t.Errorf("entry %q missing: %v", wanted, got)
		}
	}
}

func TestWalkStatusDecoration(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	root := t.TempDir()
	writeFile(t, root, "changed.go")
	writeFile(t, root, "clean.go")

	opts := Options{
		GitStatus: true,
		Git: gitstatus.NewFakeGitClient(root, map[string]gitstatus.FileStatus{
			"changed.go": gitstatus.StatusModified,
		}),
	}
	lines, _, err := Walk(root, opts, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byName := map[string]Line{}
	for _, l := range lines {
		byName[l.Name] = l
	}
	if got := byName["changed.go"].Status; got != "M " {
		t.Errorf("changed.go status: got %q, want %q", got, "M ")
	}
	if got := byName["clean.go"].Status; got != "  " {
		t.Errorf("clean.go status: got %q, want two blanks", got)
	}
}

func TestWalkStatusOutsideRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt")

	client := gitstatus.NewFakeGitClient("", nil)
	client.SetError(gitstatus.ErrNotInRepo)

	lines, _, err := Walk(root, Options{GitStatus: true, Git: client}, os.Stderr)
	if err != nil {
		t.Fatalf("walk must not fail outside a repository: %v", err)
	}
	for _, l := range lines {
		if l.Status != "  " {
			t.Errorf("entry %q: got status %q, want no status", l.Name, l.Status)
		}
	}
}

func TestWalkLazyDecoration(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	root := t.TempDir()
	writeFile(t, root, "plain.txt")

	lines, _, err := Walk(root, Options{}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := lines[0]
	if l.Status != "" || l.Permissions != "" || l.Icon != "" || l.Size != "" {
		t.Errorf("decorations resolved without being requested: %+v", l)
	}
}

func TestWalkSizeAndPermissions(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	root := t.TempDir()
	writeFile(t, root, "sub/f.txt")

	lines, _, err := Walk(root, Options{Size: true, Permissions: true}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, l := range lines {
		if l.IsDir {
			if !strings.HasPrefix(l.Permissions, "d") {
				t.Errorf("directory permissions %q should start with d", l.Permissions)
			}
			if l.Size != "" {
				t.Errorf("directories carry no size suffix, got %q", l.Size)
			}
		} else {
			if !strings.HasPrefix(l.Permissions, "-") {
				t.Errorf("file permissions %q should start with -", l.Permissions)
			}
			if l.Size != " (8 B)" {
				t.Errorf("got size %q, want %q", l.Size, " (8 B)")
			}
		}
	}
}

func TestLineString(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want string
	}{
		{
			name: "depth one",
			line: Line{Depth: 1, Name: "file.txt"},
			want: "└── file.txt",
		},
		{
			name: "depth three indents twice",
			line: Line{Depth: 3, Name: "deep.txt"},
			want: "        └── deep.txt",
		},
		{
			name: "all decorations",
			line: Line{Depth: 1, Status: "M ", Permissions: "-rw-r--r-- ", Icon: "* ", Name: "x", Size: " (1 B)"},
			want: "M -rw-r--r-- └── * x (1 B)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunWritesHeaderAndSummary(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	root := t.TempDir()
	writeFile(t, root, "a.txt")

	var out, diag bytes.Buffer
	if err := Run(&out, &diag, root, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, root+"\n") {
		t.Errorf("output should start with the root header: %q", got)
	}
	if !strings.HasSuffix(got, "\n0 directories, 1 files\n") {
		t.Errorf("output should end with the summary: %q", got)
	}
	if !strings.Contains(got, "└── a.txt\n") {
		t.Errorf("missing entry line: %q", got)
	}
}

func TestRunFatalOnFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "f.txt")

	var out bytes.Buffer
	err := Run(&out, os.Stderr, filepath.Join(root, "f.txt"), Options{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if out.Len() != 0 {
		t.Errorf("fatal error must produce zero output, got %q", out.String())
	}
}

func TestWalkUnreadableDirReportsAndContinues(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	writeFile(t, root, "ok.txt")
	locked := filepath.Join(root, "locked")
	if err := os.Mkdir(locked, 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	var diag bytes.Buffer
	lines, _, err := Walk(root, Options{}, &diag)
	if err != nil {
		t.Fatalf("per-entry errors must not abort the walk: %v", err)
	}

	if !strings.Contains(diag.String(), "ERROR:") {
		t.Errorf("expected a diagnostic line, got %q", diag.String())
	}
	got := strings.Join(names(lines), " ")
	if !strings.Contains(got, "ok.txt") || !strings.Contains(got, "locked") {
		t.Errorf("walk should continue past the unreadable dir: %v", got)
	}
}
