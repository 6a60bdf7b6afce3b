// Package normalize turns a raw, possibly malformed markup fragment into a
// well-formed, balanced tag stream wrapped in the synthetic root element the
// parser expects. Any DOCTYPE declaration is dropped so parsing never
// triggers external-resource fetches.
package normalize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"richtext/internal/markup"
)

// Normalizer balances markup fragments via a DOM round-trip.
type Normalizer struct{}

// New returns a fragment normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize parses the raw fragment with a forgiving DOM parser and
// re-serializes the body content, which closes unclosed tags, drops stray
// end tags and strips any DOCTYPE. The result is wrapped in the synthetic
// root element.
func (n *Normalizer) Normalize(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse fragment: %w", err)
	}

	body := doc.Find("body").First()
	inner, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize fragment: %w", err)
	}

	return "<" + markup.WrapperTag + ">" + inner + "</" + markup.WrapperTag + ">", nil
}
