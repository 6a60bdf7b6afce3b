package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"richtext/pkg/attrtext"
)

// fakeElement is a minimal attrtext.Element for resolution tests.
type fakeElement struct {
	tag   string
	attrs map[string]string
}

func (f fakeElement) TagName() string { return f.tag }
func (f fakeElement) Attr(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}
func (f fakeElement) Attributes() map[string]string { return f.attrs }
func (f fakeElement) Text() string                  { return "" }

func TestDefaultsInstalled(t *testing.T) {
	r := NewRegistry()

	for _, tag := range []string{"h1", "h6", "strong", "b", "em", "i", "u", "s", "del",
		"big", "sup", "sub", "a", "p", "code", "pre", "blockquote", "small", "mark"} {
		assert.True(t, r.Has(tag), "default descriptor missing for %s", tag)
	}

	// Headings decrease in size by level.
	h1, _ := r.Get("h1")
	h2, _ := r.Get("h2")
	assert.Greater(t, h1.Font.Size, h2.Font.Size)

	sup, _ := r.Get("sup")
	sub, _ := r.Get("sub")
	assert.Equal(t, 5.0, sup.Font.BaselineOffset)
	assert.Equal(t, -5.0, sub.Font.BaselineOffset)
}

func TestRegisterIsCaseInsensitiveAndLastWriteWins(t *testing.T) {
	r := NewEmptyRegistry()

	r.Register("A", attrtext.StyleDescriptor{Font: attrtext.FontStyle{Color: "#111111"}})
	r.Register("a", attrtext.StyleDescriptor{Font: attrtext.FontStyle{Color: "#222222"}})

	d, ok := r.Get("A")
	require.True(t, ok)
	assert.Equal(t, "#222222", d.Font.Color)
	// No stacking: the first registration's fields are gone entirely.
	assert.Nil(t, d.Decoration)
	assert.Equal(t, 1, r.Count())
}

func TestRemoveHasClearTagNames(t *testing.T) {
	r := NewEmptyRegistry()
	r.Register("b", attrtext.StyleDescriptor{Font: attrtext.FontStyle{Weight: "bold"}})
	r.Register("a", attrtext.StyleDescriptor{Font: attrtext.FontStyle{Color: "#000"}})

	assert.Equal(t, []string{"a", "b"}, r.TagNames())

	r.Remove("B")
	assert.False(t, r.Has("b"))
	assert.True(t, r.Has("a"))

	r.Clear()
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.TagNames())
}

func TestResolveEntryGrouping(t *testing.T) {
	tests := []struct {
		name      string
		desc      attrtext.StyleDescriptor
		wantKinds []attrtext.RangeKind
	}{
		{
			name: "font fields merge into one entry",
			desc: attrtext.StyleDescriptor{
				Font: attrtext.FontStyle{Size: 20, Weight: "bold", Color: "#333"},
			},
			wantKinds: []attrtext.RangeKind{attrtext.KindFont},
		},
		{
			name: "font and decoration are separate entries",
			desc: attrtext.StyleDescriptor{
				Font:       attrtext.FontStyle{Color: "#0969DA"},
				Decoration: &attrtext.DecorationStyle{Line: attrtext.DecorationUnderline},
			},
			wantKinds: []attrtext.RangeKind{attrtext.KindFont, attrtext.KindDecoration},
		},
		{
			name: "all three groups",
			desc: attrtext.StyleDescriptor{
				Font:       attrtext.FontStyle{Italic: true},
				Decoration: &attrtext.DecorationStyle{Line: attrtext.DecorationLineThrough},
				Background: &attrtext.BackgroundStyle{Color: "#EEE"},
			},
			wantKinds: []attrtext.RangeKind{attrtext.KindFont, attrtext.KindDecoration, attrtext.KindBackground},
		},
		{
			name:      "empty descriptor yields nothing",
			desc:      attrtext.StyleDescriptor{},
			wantKinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEmptyRegistry()
			r.Register("x", tt.desc)

			entries := r.Resolve(fakeElement{tag: "x"})
			var kinds []attrtext.RangeKind
			for _, e := range entries {
				kinds = append(kinds, e.Kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestResolveUnknownTag(t *testing.T) {
	r := NewEmptyRegistry()
	assert.Nil(t, r.Resolve(fakeElement{tag: "zzz"}))
}

func TestResolveCustomResolver(t *testing.T) {
	r := NewEmptyRegistry()
	r.Register("x", attrtext.StyleDescriptor{
		// The descriptor's fixed fields are ignored once a resolver is set.
		Font: attrtext.FontStyle{Size: 99},
		Resolver: attrtext.StyleResolverFunc(func(el attrtext.Element) []attrtext.StyleEntry {
			color, _ := el.Attr("color")
			return []attrtext.StyleEntry{{
				Kind: attrtext.KindFont,
				Font: &attrtext.FontStyle{Color: color},
			}}
		}),
	})

	entries := r.Resolve(fakeElement{tag: "x", attrs: map[string]string{"color": "#ABCDEF"}})
	require.Len(t, entries, 1)
	assert.Equal(t, "#ABCDEF", entries[0].Font.Color)
	assert.Zero(t, entries[0].Font.Size)
}
