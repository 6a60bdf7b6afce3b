package style

import "richtext/pkg/attrtext"

// Default palette. Hosts interpret colors; values here follow common
// renderer conventions.
const (
	linkColor      = "#0969DA"
	mutedColor     = "#6E7781"
	codeBackground = "#F6F8FA"
	quoteBarColor  = "#D0D7DE"
	markBackground = "#FFF8C5"
)

// registerDefaults installs the bootstrap descriptor set: headings, emphasis,
// decoration, sizing, hyperlink, paragraph, code, blockquote, small and mark.
func registerDefaults(r *Registry) {
	// Headings decrease in size and vertical margin by level.
	headingSizes := []float64{32, 28, 24, 20, 18, 16}
	headingTags := []string{"h1", "h2", "h3", "h4", "h5", "h6"}
	for i, tag := range headingTags {
		r.Register(tag, attrtext.StyleDescriptor{
			Font: attrtext.FontStyle{Size: headingSizes[i], Weight: "bold"},
			Background: &attrtext.BackgroundStyle{
				Margin: attrtext.Insets{Top: 16 - float64(i)*2, Bottom: 16 - float64(i)*2},
			},
		})
	}

	bold := attrtext.StyleDescriptor{Font: attrtext.FontStyle{Weight: "bold"}}
	r.Register("strong", bold)
	r.Register("b", bold)

	italic := attrtext.StyleDescriptor{Font: attrtext.FontStyle{Italic: true}}
	r.Register("em", italic)
	r.Register("i", italic)

	r.Register("u", attrtext.StyleDescriptor{
		Decoration: &attrtext.DecorationStyle{Line: attrtext.DecorationUnderline},
	})
	strike := attrtext.StyleDescriptor{
		Decoration: &attrtext.DecorationStyle{Line: attrtext.DecorationLineThrough},
	}
	r.Register("s", strike)
	r.Register("del", strike)

	r.Register("big", attrtext.StyleDescriptor{Font: attrtext.FontStyle{Size: 19}})
	r.Register("sup", attrtext.StyleDescriptor{
		Font: attrtext.FontStyle{Size: 11, BaselineOffset: 5},
	})
	r.Register("sub", attrtext.StyleDescriptor{
		Font: attrtext.FontStyle{Size: 11, BaselineOffset: -5},
	})

	r.Register("a", attrtext.StyleDescriptor{
		Font:       attrtext.FontStyle{Color: linkColor},
		Decoration: &attrtext.DecorationStyle{Line: attrtext.DecorationUnderline, Color: linkColor},
	})

	r.Register("p", attrtext.StyleDescriptor{
		Background: &attrtext.BackgroundStyle{
			Margin: attrtext.Insets{Top: 8, Bottom: 8},
		},
	})

	code := attrtext.StyleDescriptor{
		Font: attrtext.FontStyle{Family: "monospace"},
		Background: &attrtext.BackgroundStyle{
			Color:        codeBackground,
			Padding:      attrtext.Insets{Top: 2, Right: 4, Bottom: 2, Left: 4},
			CornerRadius: 4,
		},
	}
	r.Register("code", code)
	r.Register("pre", code)

	r.Register("blockquote", attrtext.StyleDescriptor{
		Font: attrtext.FontStyle{Italic: true},
		Background: &attrtext.BackgroundStyle{
			Border:  &attrtext.Border{Width: 3, Color: quoteBarColor, Side: "left"},
			Padding: attrtext.Insets{Left: 12},
		},
	})

	r.Register("small", attrtext.StyleDescriptor{
		Font: attrtext.FontStyle{Size: 12, Color: mutedColor},
	})

	r.Register("mark", attrtext.StyleDescriptor{
		Background: &attrtext.BackgroundStyle{
			Color:   markBackground,
			Padding: attrtext.Insets{Left: 2, Right: 2},
		},
	})
}
