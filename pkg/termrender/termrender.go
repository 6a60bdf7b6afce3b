// Package termrender is a reference host renderer: it applies attributed-text
// ranges as ANSI styled runs via lipgloss. Real hosts translate the ranges
// into their platform's native attributed-string type; this one exists so the
// CLI can preview results and so the range application order has an
// executable consumer.
package termrender

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"richtext/pkg/attrtext"
)

// Renderer draws an AttributedText as ANSI styled text.
type Renderer struct{}

// New returns a terminal renderer.
func New() *Renderer {
	return &Renderer{}
}

// effective is the per-byte style state. Ranges are applied in slice order,
// so a later same-kind range overwrites an earlier one on overlapping
// offsets, which is the precedence contract the builder's append order
// encodes.
type effective struct {
	font *attrtext.FontStyle
	deco *attrtext.DecorationStyle
	back *attrtext.BackgroundStyle
}

// Render returns the text with ANSI styling applied per range.
func (r *Renderer) Render(at *attrtext.AttributedText) string {
	if at == nil || at.Text == "" {
		return ""
	}
	if len(at.Styles) == 0 {
		return at.Text
	}

	states := make([]effective, len(at.Text))
	for _, sr := range at.Styles {
		if sr.Start < 0 || sr.End() > len(at.Text) {
			continue
		}
		for i := sr.Start; i < sr.End(); i++ {
			switch sr.Kind {
			case attrtext.KindFont:
				states[i].font = sr.Font
			case attrtext.KindDecoration:
				states[i].deco = sr.Decoration
			case attrtext.KindBackground:
				states[i].back = sr.Background
			}
		}
	}

	var out strings.Builder
	runStart := 0
	for i := 1; i <= len(at.Text); i++ {
		if i < len(at.Text) && states[i] == states[runStart] {
			continue
		}
		out.WriteString(renderRun(at.Text[runStart:i], states[runStart]))
		runStart = i
	}
	return out.String()
}

func renderRun(text string, st effective) string {
	if st.font == nil && st.deco == nil && st.back == nil {
		return text
	}

	ls := lipgloss.NewStyle()
	if f := st.font; f != nil {
		if f.Weight == "bold" {
			ls = ls.Bold(true)
		}
		if f.Italic {
			ls = ls.Italic(true)
		}
		if f.Color != "" {
			ls = ls.Foreground(lipgloss.Color(f.Color))
		}
	}
	if d := st.deco; d != nil {
		switch d.Line {
		case attrtext.DecorationUnderline:
			ls = ls.Underline(true)
		case attrtext.DecorationLineThrough:
			ls = ls.Strikethrough(true)
		}
	}
	if b := st.back; b != nil && b.Color != "" {
		ls = ls.Background(lipgloss.Color(b.Color))
	}

	return ls.Render(text)
}
