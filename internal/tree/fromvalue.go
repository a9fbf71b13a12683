package tree

import "github.com/danieljhkim/lstree/internal/value"

// FromValue converts one structured value into a display tree rooted at
// a synthetic unlabeled node. Scalars become leaf labels, each mapping
// entry becomes a labeled child wrapping its converted value, and
// sequence elements become siblings at the same level. The sequence
// flattening is a deliberate rule: sequences never add a nesting level,
// while mappings add one level per key.
func FromValue(v value.Value) Node {
	b := NewBuilder("")
	addValue(b, v)
	return b.Build()
}

func addValue(b *Builder, v value.Value) {
	switch v.Kind {
	case value.KindMapping:
		for _, e := range v.Map {
			b.Begin(e.Key)
			addValue(b, e.Val)
			b.End()
		}
	case value.KindSequence:
		for _, elem := range v.Seq {
			addValue(b, elem)
		}
	default:
		b.AddLeaf(v.Text())
	}
}
