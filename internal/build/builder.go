// Package build walks an element forest depth-first and produces attributed
// text: the concatenated plain text plus style and interaction ranges
// anchored to absolute byte offsets of that text.
package build

import (
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"richtext/internal/config"
	"richtext/internal/logging"
	"richtext/internal/markup"
	"richtext/internal/style"
	"richtext/pkg/attrtext"
)

// HorizontalRuleMarker is the fixed textual contribution of an hr element.
// Drawing an actual rule is a host concern.
const HorizontalRuleMarker = "\n──────────\n"

// ImagePlaceholder is the textual contribution of an image with neither an
// alt text nor a usable src.
const ImagePlaceholder = "[image]"

// blockTags append one line break after their covered span so sibling blocks
// do not fuse into a single run of text.
var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "div": true, "blockquote": true, "pre": true,
	"ul": true, "ol": true, "li": true,
}

// Builder converts element forests into attributed text.
type Builder struct {
	log zerolog.Logger
}

// NewBuilder returns a builder logging to the given sink.
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{log: log}
}

// NewDefaultBuilder returns a builder with logging discarded.
func NewDefaultBuilder() *Builder {
	return &Builder{log: logging.Discard()}
}

// Build walks the forest and returns the attributed text. Style ranges are
// appended children-first: a tag resolves its own entries only after its
// children's ranges are already in the list, so an ancestor's range comes
// later and governs overlapping offsets when the host applies same-kind
// ranges in order. Any panic during the walk degrades to a plain-text result
// holding only the forest's text content; the error reports what happened
// but the returned value is always displayable.
func (b *Builder) Build(forest []*markup.Node, reg *style.Registry, handlers attrtext.Handlers, opts config.Options) (result *attrtext.AttributedText, err error) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Msg("build failed, degrading to plain text")
			result = attrtext.Plain(markup.PlainText(forest))
			err = fmt.Errorf("build failure: %v", r)
		}
	}()

	st := &buildState{reg: reg, handlers: handlers}
	for _, n := range forest {
		st.buildNode(n)
	}

	result = &attrtext.AttributedText{
		Text:         st.text.String(),
		Styles:       st.styles,
		Interactions: st.interactions,
	}
	if opts.OptimizeWhitespace {
		collapseWhitespace(result)
	}
	return result, nil
}

// buildState is the per-invocation accumulator. The absolute start offset of
// a node is the text length accumulated before it begins contributing.
type buildState struct {
	reg      *style.Registry
	handlers attrtext.Handlers

	text         strings.Builder
	styles       []attrtext.StyleRange
	interactions []attrtext.InteractionRange
}

func (st *buildState) buildNode(n *markup.Node) {
	switch n.Kind() {
	case markup.TextNode:
		st.text.WriteString(n.Content())

	case markup.SelfClosingTagNode:
		st.buildSelfClosing(n)

	case markup.TagNode:
		st.buildTag(n)
	}
}

func (st *buildState) buildSelfClosing(n *markup.Node) {
	switch n.TagName() {
	case "br":
		st.text.WriteString("\n")
	case "hr":
		st.text.WriteString(HorizontalRuleMarker)
	case "img":
		start := st.text.Len()
		st.text.WriteString(imagePlaceholder(n))
		if src, ok := n.Attr("src"); ok && st.handlers.OnImageClick != nil {
			onImage := st.handlers.OnImageClick
			st.interactions = append(st.interactions, attrtext.InteractionRange{
				Start:    start,
				Length:   st.text.Len() - start,
				Kind:     attrtext.InteractionClick,
				Target:   src,
				Activate: func() { onImage(src) },
			})
		}
	}
	// Other void elements contribute nothing.
}

func (st *buildState) buildTag(n *markup.Node) {
	start := st.text.Len()
	for _, c := range n.Children() {
		st.buildNode(c)
	}
	length := st.text.Len() - start

	if length > 0 {
		entries := st.reg.Resolve(n)
		for _, e := range entries {
			st.styles = append(st.styles, attrtext.StyleRange{
				Start:      start,
				Length:     length,
				Kind:       e.Kind,
				Font:       e.Font,
				Decoration: e.Decoration,
				Background: e.Background,
			})
		}
		st.extractInteractions(n, start, length, len(entries) > 0)
	}

	if blockTags[n.TagName()] && length > 0 {
		st.text.WriteString("\n")
	}
}

// extractInteractions emits the gesture bindings for a tag's covered span:
// anchors with an href always get a click range, and a configured any-tag
// handler additionally covers every styled span regardless of tag identity.
func (st *buildState) extractInteractions(n *markup.Node, start, length int, styled bool) {
	if n.TagName() == "a" {
		if href, ok := n.Attr("href"); ok {
			st.interactions = append(st.interactions, attrtext.InteractionRange{
				Start:    start,
				Length:   length,
				Kind:     attrtext.InteractionClick,
				Target:   href,
				Activate: st.linkAction(href),
			})
		}
	}

	if st.handlers.OnTagClick != nil && styled {
		onTag := st.handlers.OnTagClick
		tag := n.TagName()
		st.interactions = append(st.interactions, attrtext.InteractionRange{
			Start:    start,
			Length:   length,
			Kind:     attrtext.InteractionClick,
			Target:   tag,
			Activate: func() { onTag(tag) },
		})
	}
}

// linkAction binds an href to the configured link handler, falling back to
// the platform-open capability when no handler is set.
func (st *buildState) linkAction(href string) func() {
	if st.handlers.OnLinkClick != nil {
		onLink := st.handlers.OnLinkClick
		return func() { onLink(href) }
	}
	if st.handlers.Opener != nil {
		opener := st.handlers.Opener
		return func() { _ = opener.OpenURL(href) }
	}
	return func() {}
}

// imagePlaceholder builds the bracketed textual stand-in for an image: the
// alt text if present, else the last path segment of src stripped of any
// query string, else a generic marker.
func imagePlaceholder(n *markup.Node) string {
	if alt, ok := n.Attr("alt"); ok && alt != "" {
		return "[" + alt + "]"
	}
	if src, ok := n.Attr("src"); ok && src != "" {
		src, _, _ = strings.Cut(src, "?")
		if base := path.Base(src); base != "" && base != "." && base != "/" {
			return "[" + base + "]"
		}
	}
	return ImagePlaceholder
}
