// Package icons maps file names to display glyphs and colors.
//
// Glyphs come from the Nerd Fonts devicon set; rendering them requires
// a patched font, which is the caller's concern. Lookup is a pure table
// match on name and extension with a fixed fallback, so a miss can
// never fail a caller.
package icons

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Icon is one glyph plus its color, expressed as a #rrggbb hex string.
type Icon struct {
	Glyph string
	Hex   string
}

var (
	dirIcon     = Icon{Glyph: "", Hex: "#7e8e91"} //
	defaultIcon = Icon{Glyph: "", Hex: "#7e8e91"} //

	// byName matches whole file names before extensions are tried.
	byName = map[string]Icon{
		"Makefile":       {Glyph: "", Hex: "#6d8086"},
		"Dockerfile":     {Glyph: "", Hex: "#458ee6"},
		"LICENSE":        {Glyph: "", Hex: "#cbcb41"},
		"README.md":      {Glyph: "", Hex: "#42a5f5"},
		".gitignore":     {Glyph: "", Hex: "#f54d27"},
		".gitattributes": {Glyph: "", Hex: "#f54d27"},
		"go.mod":         {Glyph: "", Hex: "#00add8"},
		"go.sum":         {Glyph: "", Hex: "#00add8"},
	}

	byExt = map[string]Icon{
		".go":   {Glyph: "", Hex: "#00add8"},
		".rs":   {Glyph: "", Hex: "#dea584"},
		".py":   {Glyph: "", Hex: "#ffbc03"},
		".js":   {Glyph: "", Hex: "#cbcb41"},
		".ts":   {Glyph: "", Hex: "#519aba"},
		".c":    {Glyph: "", Hex: "#599eff"},
		".h":    {Glyph: "", Hex: "#a074c4"},
		".sh":   {Glyph: "", Hex: "#4d5a5e"},
		".md":   {Glyph: "", Hex: "#42a5f5"},
		".json": {Glyph: "", Hex: "#cbcb41"},
		".yaml": {Glyph: "", Hex: "#6d8086"},
		".yml":  {Glyph: "", Hex: "#6d8086"},
		".toml": {Glyph: "", Hex: "#9c4221"},
		".txt":  {Glyph: "", Hex: "#89e051"},
		".html": {Glyph: "", Hex: "#e44d26"},
		".css":  {Glyph: "", Hex: "#42a5f5"},
		".png":  {Glyph: "", Hex: "#a074c4"},
		".jpg":  {Glyph: "", Hex: "#a074c4"},
		".svg":  {Glyph: "", Hex: "#ffb13b"},
		".zip":  {Glyph: "", Hex: "#afbac5"},
		".gz":   {Glyph: "", Hex: "#afbac5"},
		".lock": {Glyph: "", Hex: "#bbbbbb"},
	}
)

// Lookup returns the icon for a file name. Directories share one icon;
// files match by exact name, then extension, then a generic fallback.
func Lookup(name string, isDir bool) Icon {
	if isDir {
		return dirIcon
	}
	if ic, ok := byName[name]; ok {
		return ic
	}
	if ic, ok := byExt[strings.ToLower(filepath.Ext(name))]; ok {
		return ic
	}
	return defaultIcon
}

// Style converts the icon's hex color into a printable style. Anything
// that is not a #rrggbb string yields an unstyled color.
func (ic Icon) Style() *color.Color {
	return ColorFromHex(ic.Hex)
}

// ColorFromHex parses a #rrggbb string into an RGB color. Malformed
// input degrades to an unstyled color rather than an error.
func ColorFromHex(hex string) *color.Color {
	trimmed := strings.TrimPrefix(hex, "#")
	if len(trimmed) != 6 {
		return color.New()
	}
	r, err1 := strconv.ParseUint(trimmed[0:2], 16, 8)
	g, err2 := strconv.ParseUint(trimmed[2:4], 16, 8)
	b, err3 := strconv.ParseUint(trimmed[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.New()
	}
	return color.RGB(int(r), int(g), int(b))
}
