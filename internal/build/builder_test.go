package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"richtext/internal/config"
	"richtext/internal/markup"
	"richtext/internal/style"
	"richtext/pkg/attrtext"
)

func parseForest(t *testing.T, input string, opts config.Options) []*markup.Node {
	t.Helper()
	p := markup.NewDefaultParser()
	policy := markup.NewPolicy(opts.AllowedTags, opts.DeniedTags)
	forest, err := p.Parse(markup.NewHTMLEventStream(input), policy, opts)
	require.NoError(t, err)
	return forest
}

func buildString(t *testing.T, input string, handlers attrtext.Handlers, opts config.Options) *attrtext.AttributedText {
	t.Helper()
	forest := parseForest(t, input, opts)
	result, err := NewDefaultBuilder().Build(forest, style.NewRegistry(), handlers, opts)
	require.NoError(t, err)
	return result
}

func rawOptions() config.Options {
	opts := config.Default()
	opts.OptimizeWhitespace = false
	return opts
}

func TestBuildTextConcatenation(t *testing.T) {
	at := buildString(t, "plain <b>bold</b> tail", attrtext.Handlers{}, rawOptions())
	assert.Equal(t, "plain bold tail", at.Text)
}

func TestBuildLineBreak(t *testing.T) {
	at := buildString(t, "one<br>two", attrtext.Handlers{}, rawOptions())
	assert.Equal(t, "one\ntwo", at.Text)
	assert.Empty(t, at.Styles)
}

func TestBuildHorizontalRule(t *testing.T) {
	at := buildString(t, "a<hr>b", attrtext.Handlers{}, rawOptions())
	assert.Equal(t, "a"+HorizontalRuleMarker+"b", at.Text)
}

func TestBuildImagePlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"alt preferred", `<img src="a/b.png" alt="a cat">`, "[a cat]"},
		{"src basename", `<img src="https://h/images/cat.png">`, "[cat.png]"},
		{"query string stripped", `<img src="https://h/cat.png?w=100&h=50">`, "[cat.png]"},
		{"generic fallback", `<img>`, "[image]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := buildString(t, tt.input, attrtext.Handlers{}, rawOptions())
			assert.Equal(t, tt.want, at.Text)
		})
	}
}

func TestBuildStyleOffsets(t *testing.T) {
	at := buildString(t, "plain <b>bold</b> tail", attrtext.Handlers{}, rawOptions())

	require.Len(t, at.Styles, 1)
	sr := at.Styles[0]
	assert.Equal(t, attrtext.KindFont, sr.Kind)
	assert.Equal(t, "bold", at.Text[sr.Start:sr.End()])
	assert.Equal(t, "bold", sr.Font.Weight)
}

func TestBuildAnchorRanges(t *testing.T) {
	var clicked string
	handlers := attrtext.Handlers{OnLinkClick: func(href string) { clicked = href }}

	at := buildString(t, `<a href="https://x">label</a>`, handlers, rawOptions())
	assert.Equal(t, "label", at.Text)

	// One font (color) and one decoration (underline) range over the label.
	require.Len(t, at.Styles, 2)
	assert.Equal(t, attrtext.KindFont, at.Styles[0].Kind)
	assert.NotEmpty(t, at.Styles[0].Font.Color)
	assert.Equal(t, attrtext.KindDecoration, at.Styles[1].Kind)
	assert.Equal(t, attrtext.DecorationUnderline, at.Styles[1].Decoration.Line)
	for _, sr := range at.Styles {
		assert.Equal(t, "label", at.Text[sr.Start:sr.End()])
	}

	require.Len(t, at.Interactions, 1)
	ir := at.Interactions[0]
	assert.Equal(t, attrtext.InteractionClick, ir.Kind)
	assert.Equal(t, "https://x", ir.Target)
	assert.Equal(t, "label", at.Text[ir.Start:ir.End()])

	ir.Activate()
	assert.Equal(t, "https://x", clicked)
}

func TestBuildAnchorFallsBackToOpener(t *testing.T) {
	var opened string
	handlers := attrtext.Handlers{
		Opener: attrtext.LinkOpenerFunc(func(url string) error {
			opened = url
			return nil
		}),
	}

	at := buildString(t, `<a href="https://y">go</a>`, handlers, rawOptions())
	require.Len(t, at.Interactions, 1)
	at.Interactions[0].Activate()
	assert.Equal(t, "https://y", opened)
}

func TestBuildImageInteraction(t *testing.T) {
	t.Run("emitted with handler", func(t *testing.T) {
		var clicked string
		handlers := attrtext.Handlers{OnImageClick: func(src string) { clicked = src }}

		at := buildString(t, `<img src="cat.png" alt="cat">`, handlers, rawOptions())
		require.Len(t, at.Interactions, 1)
		assert.Equal(t, "[cat]", at.Text[at.Interactions[0].Start:at.Interactions[0].End()])
		at.Interactions[0].Activate()
		assert.Equal(t, "cat.png", clicked)
	})

	t.Run("absent without handler", func(t *testing.T) {
		at := buildString(t, `<img src="cat.png">`, attrtext.Handlers{}, rawOptions())
		assert.Empty(t, at.Interactions)
	})
}

func TestBuildAnyTagHandler(t *testing.T) {
	var tags []string
	handlers := attrtext.Handlers{OnTagClick: func(tag string) { tags = append(tags, tag) }}

	at := buildString(t, "<b>x</b><u>y</u>", handlers, rawOptions())
	require.Len(t, at.Interactions, 2)
	for _, ir := range at.Interactions {
		ir.Activate()
	}
	assert.Equal(t, []string{"b", "u"}, tags)
}

func TestBuildChildRangesPrecedeParent(t *testing.T) {
	// The inner tag's range must be appended before the enclosing tag's own
	// range: the later (outer) range governs overlapping offsets when the
	// host applies same-kind ranges in order.
	at := buildString(t, "<small>muted <b>both</b></small>", attrtext.Handlers{}, rawOptions())

	require.Len(t, at.Styles, 2)
	inner, outer := at.Styles[0], at.Styles[1]
	assert.Equal(t, "bold", inner.Font.Weight)
	assert.Equal(t, "both", at.Text[inner.Start:inner.End()])
	assert.Equal(t, "muted both", at.Text[outer.Start:outer.End()])
	assert.GreaterOrEqual(t, inner.Start, outer.Start)
	assert.LessOrEqual(t, inner.End(), outer.End())
}

func TestBuildEmptySpanEmitsNoRanges(t *testing.T) {
	at := buildString(t, "<b></b>text", attrtext.Handlers{}, rawOptions())
	assert.Equal(t, "text", at.Text)
	assert.Empty(t, at.Styles)
}

func TestBuildRangeBoundsInvariant(t *testing.T) {
	inputs := []string{
		"<h1>Title</h1><p>A <b>bold</b> word.</p>",
		`<p><a href="u">x</a><br><img alt="i"></p>`,
		"<blockquote><code>q</code></blockquote>",
	}
	for _, input := range inputs {
		for _, optimize := range []bool{false, true} {
			opts := rawOptions()
			opts.OptimizeWhitespace = optimize
			at := buildString(t, input, attrtext.Handlers{}, opts)
			for _, sr := range at.Styles {
				assert.GreaterOrEqual(t, sr.Start, 0)
				assert.Positive(t, sr.Length)
				assert.LessOrEqual(t, sr.End(), len(at.Text))
			}
			for _, ir := range at.Interactions {
				assert.GreaterOrEqual(t, ir.Start, 0)
				assert.Positive(t, ir.Length)
				assert.LessOrEqual(t, ir.End(), len(at.Text))
			}
		}
	}
}

func TestBuildPanicDegradesToPlainText(t *testing.T) {
	opts := rawOptions()
	forest := parseForest(t, "<p>keep <b>this</b> text</p>", opts)

	reg := style.NewRegistry()
	reg.Register("b", attrtext.StyleDescriptor{
		Resolver: attrtext.StyleResolverFunc(func(attrtext.Element) []attrtext.StyleEntry {
			panic("custom handler exploded")
		}),
	})

	at, err := NewDefaultBuilder().Build(forest, reg, attrtext.Handlers{}, opts)
	assert.Error(t, err)
	require.NotNil(t, at)
	assert.Equal(t, "keep this text", at.Text)
	assert.Empty(t, at.Styles)
	assert.Empty(t, at.Interactions)
}
