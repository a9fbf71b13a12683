package lscolors

import (
	"testing"

	"github.com/fatih/color"
)

func TestParseAndStyleFor(t *testing.T) {
	m := Parse("di=01;34:*.go=00;32:*.tar.gz=31:fi=00;37:ln=36")

	tests := []struct {
		name  string
		isDir bool
		want  *color.Color
	}{
		{name: "src", isDir: true, want: color.New(color.Attribute(1), color.Attribute(34))},
		{name: "main.go", want: color.New(color.Attribute(32))},
		{name: "dist.tar.gz", want: color.New(color.Attribute(31))},
		{name: "plain.txt", want: color.New(color.Attribute(37))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.StyleFor(tt.name, tt.isDir)
			if got == nil {
				t.Fatal("expected a style")
			}
			if !got.Equals(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStyleForNoMatch(t *testing.T) {
	m := Parse("*.go=32")

	if got := m.StyleFor("readme.txt", false); got != nil {
		t.Errorf("expected nil style, got %v", got)
	}
	if got := m.StyleFor("src", true); got != nil {
		t.Errorf("expected nil dir style, got %v", got)
	}
}

func TestStyleForNilMap(t *testing.T) {
	var m *Map
	if got := m.StyleFor("anything", false); got != nil {
		t.Errorf("nil map must style nothing, got %v", got)
	}
}

func TestParseMalformedEntries(t *testing.T) {
	// Junk entries are skipped; the valid one still applies.
	m := Parse("garbage:no-equals:di=notanumber:*.go=32:=01")

	if got := m.StyleFor("main.go", false); got == nil {
		t.Error("valid entry should survive malformed neighbors")
	}
	if got := m.StyleFor("dir", true); got != nil {
		t.Errorf("malformed di entry should be skipped, got %v", got)
	}
}

func TestParseEmpty(t *testing.T) {
	m := Parse("")
	if got := m.StyleFor("file.txt", false); got != nil {
		t.Errorf("empty LS_COLORS must style nothing, got %v", got)
	}
}

func TestParseRGB(t *testing.T) {
	m := Parse("*.rs=38;2;222;165;132")

	got := m.StyleFor("lib.rs", false)
	if got == nil {
		t.Fatal("expected an RGB style")
	}
	if got.Equals(color.New()) {
		t.Error("RGB entry should produce a styled color")
	}
}

func TestParse256PaletteSkipped(t *testing.T) {
	// 38;5;n entries carry no representable attributes but must not
	// poison the rest of the sequence.
	m := Parse("*.py=38;5;220;01")

	got := m.StyleFor("app.py", false)
	if got == nil {
		t.Fatal("expected a style from the trailing bold parameter")
	}
	if !got.Equals(color.New(color.Bold)) {
		t.Errorf("got %v, want bold only", got)
	}
}
