// Package lscolors applies LS_COLORS-style filename coloring.
//
// The input contract is the GNU dircolors format: colon-separated
// entries of key=SGR-parameters, where keys are two-letter type codes
// (di, ln, ex, fi) or *.ext glob patterns. An absent or malformed
// variable means no extra coloring, never an error.
package lscolors

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

type pattern struct {
	glob  string
	style *color.Color
}

// Map resolves per-name styles. The zero value styles nothing.
type Map struct {
	dir      *color.Color
	file     *color.Color
	patterns []pattern
}

// Parse builds a Map from an LS_COLORS value. Unrecognized keys and
// unparseable SGR sequences are skipped.
func Parse(env string) *Map {
	m := &Map{}
	for _, entry := range strings.Split(env, ":") {
		key, params, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		style := styleFromSGR(params)
		if style == nil {
			continue
		}
		switch {
		case key == "di":
			m.dir = style
		case key == "fi":
			m.file = style
		case strings.HasPrefix(key, "*"):
			m.patterns = append(m.patterns, pattern{glob: key[1:], style: style})
		}
	}
	return m
}

// StyleFor returns the style for a name, or nil when nothing matches.
// Pattern matches win over the generic file/dir styles; patterns are
// suffix globs, so "*.tar" matches by trailing comparison first and
// falls back to filepath.Match for patterns with other metacharacters.
func (m *Map) StyleFor(name string, isDir bool) *color.Color {
	if m == nil {
		return nil
	}
	if isDir {
		return m.dir
	}
	for _, p := range m.patterns {
		if strings.HasSuffix(name, p.glob) {
			return p.style
		}
		if ok, err := filepath.Match("*"+p.glob, name); err == nil && ok {
			return p.style
		}
	}
	return m.file
}

// styleFromSGR converts a semicolon-separated SGR parameter list into a
// color. Returns nil when no parameter is usable.
func styleFromSGR(params string) *color.Color {
	parts := strings.Split(params, ";")

	var c *color.Color
	add := func(attr color.Attribute) {
		if c == nil {
			c = color.New(attr)
		} else {
			c.Add(attr)
		}
	}

	for i := 0; i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil
		}
		switch {
		case n == 0:
			// reset; ignore
		case n == 38 || n == 48:
			// Extended color introducer: 38;2;r;g;b or 38;5;n.
			if i+1 >= len(parts) {
				return c
			}
			mode := parts[i+1]
			if mode == "2" && i+4 < len(parts) && n == 38 {
				r, errR := strconv.Atoi(parts[i+2])
				g, errG := strconv.Atoi(parts[i+3])
				b, errB := strconv.Atoi(parts[i+4])
				if errR == nil && errG == nil && errB == nil {
					if c == nil {
						c = color.RGB(r, g, b)
					} else {
						c = c.AddRGB(r, g, b)
					}
				}
				i += 4
			} else if mode == "5" && i+2 < len(parts) {
				// 256-color palette entries are not representable as
				// attributes here; skip the parameter.
				i += 2
			} else {
				return c
			}
		case n >= 1 && n <= 9, n >= 30 && n <= 37, n >= 40 && n <= 47,
			n >= 90 && n <= 97, n >= 100 && n <= 107:
			// SGR codes and fatih/color attributes share numbering.
			add(color.Attribute(n))
		}
	}
	return c
}
