// Package attrtext defines the attributed-text data model exchanged between
// the markup pipeline and a host renderer: a plain text buffer plus
// offset-anchored style and interaction annotations. The host widget is
// responsible for layout, paint and dispatching interaction callbacks.
package attrtext

// RangeKind discriminates the payload carried by a StyleRange.
type RangeKind string

const (
	KindFont       RangeKind = "font"
	KindDecoration RangeKind = "decoration"
	KindBackground RangeKind = "background"
	KindGesture    RangeKind = "gesture"
)

// InteractionKind identifies the gesture that activates an InteractionRange.
type InteractionKind string

const (
	InteractionClick       InteractionKind = "click"
	InteractionLongPress   InteractionKind = "long-press"
	InteractionDoubleClick InteractionKind = "double-click"
)

// DecorationLine is the text decoration drawn over a span.
type DecorationLine string

const (
	DecorationNone        DecorationLine = "none"
	DecorationUnderline   DecorationLine = "underline"
	DecorationLineThrough DecorationLine = "line-through"
)

// Insets describes margin or padding around a span, in renderer units.
type Insets struct {
	Top    float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Right  float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty" yaml:"left,omitempty"`
}

// IsZero reports whether all four sides are unset.
func (i Insets) IsZero() bool {
	return i.Top == 0 && i.Right == 0 && i.Bottom == 0 && i.Left == 0
}

// Border describes an edge drawn next to a span (e.g. a blockquote bar).
type Border struct {
	Width float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	// Side is one of left, right, top, bottom, all.
	Side string `json:"side,omitempty" yaml:"side,omitempty"`
}

// FontStyle is the payload of a KindFont range. Zero values mean "inherit".
type FontStyle struct {
	Size           float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Color          string  `json:"color,omitempty" yaml:"color,omitempty"`
	Weight         string  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Italic         bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Family         string  `json:"family,omitempty" yaml:"family,omitempty"`
	BaselineOffset float64 `json:"baselineOffset,omitempty" yaml:"baselineOffset,omitempty"`
}

// IsZero reports whether no font field is populated.
func (f FontStyle) IsZero() bool {
	return f.Size == 0 && f.Color == "" && f.Weight == "" && !f.Italic &&
		f.Family == "" && f.BaselineOffset == 0
}

// DecorationStyle is the payload of a KindDecoration range.
type DecorationStyle struct {
	Line  DecorationLine `json:"line" yaml:"line"`
	Color string         `json:"color,omitempty" yaml:"color,omitempty"`
	// Style is the stroke style: solid, dashed, dotted, wavy.
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
}

// BackgroundStyle is the payload of a KindBackground range. It also carries
// the box-level properties (margin, padding, border, corners, shadow) since
// the host applies them together with the fill.
type BackgroundStyle struct {
	Color        string  `json:"color,omitempty" yaml:"color,omitempty"`
	Margin       Insets  `json:"margin,omitempty" yaml:"margin,omitempty"`
	Padding      Insets  `json:"padding,omitempty" yaml:"padding,omitempty"`
	Border       *Border `json:"border,omitempty" yaml:"border,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty"`
	Shadow       string  `json:"shadow,omitempty" yaml:"shadow,omitempty"`
}

// IsZero reports whether no background or box field is populated.
func (b BackgroundStyle) IsZero() bool {
	return b.Color == "" && b.Margin.IsZero() && b.Padding.IsZero() &&
		b.Border == nil && b.CornerRadius == 0 && b.Shadow == ""
}

// StyleDescriptor is the style attached to a tag name in the registry. All
// fields are independently optional; an unset field means "inherit", never
// "zero". Field values are not validated here, the renderer clamps and
// interprets them.
type StyleDescriptor struct {
	Font       FontStyle        `json:"font,omitempty" yaml:"font,omitempty"`
	Decoration *DecorationStyle `json:"decoration,omitempty" yaml:"decoration,omitempty"`
	Background *BackgroundStyle `json:"background,omitempty" yaml:"background,omitempty"`

	// Resolver, when set, replaces the fixed resolution path for this tag.
	Resolver StyleResolver `json:"-" yaml:"-"`
}

// IsZero reports whether the descriptor carries no populated field group.
func (d StyleDescriptor) IsZero() bool {
	return d.Font.IsZero() && d.Decoration == nil && d.Background == nil && d.Resolver == nil
}

// StyleEntry is a positionless (kind, value) pair produced by style
// resolution. Callers attach offsets afterwards. Exactly one of the payload
// pointers matching Kind is non-nil.
type StyleEntry struct {
	Kind       RangeKind
	Font       *FontStyle
	Decoration *DecorationStyle
	Background *BackgroundStyle
}

// StyleRange anchors a StyleEntry to a byte span of the text buffer. Ranges
// are never merged or deduplicated before emission; when same-kind ranges
// overlap, the host applies them in slice order so the later range governs
// overlapping offsets.
type StyleRange struct {
	Start      int              `json:"start" yaml:"start"`
	Length     int              `json:"length" yaml:"length"`
	Kind       RangeKind        `json:"kind" yaml:"kind"`
	Font       *FontStyle       `json:"font,omitempty" yaml:"font,omitempty"`
	Decoration *DecorationStyle `json:"decoration,omitempty" yaml:"decoration,omitempty"`
	Background *BackgroundStyle `json:"background,omitempty" yaml:"background,omitempty"`
}

// End returns the offset one past the last byte covered by the range.
func (r StyleRange) End() int { return r.Start + r.Length }

// InteractionRange binds a gesture over a byte span to a callback derived
// from the originating element (link target, image source, tag name).
type InteractionRange struct {
	Start  int             `json:"start" yaml:"start"`
	Length int             `json:"length" yaml:"length"`
	Kind   InteractionKind `json:"kind" yaml:"kind"`
	// Target is the value the callback is bound to: an href, an image src
	// or a tag name.
	Target string `json:"target" yaml:"target"`
	// Activate runs the bound action. Always non-nil.
	Activate func() `json:"-" yaml:"-"`
}

// End returns the offset one past the last byte covered by the range.
func (r InteractionRange) End() int { return r.Start + r.Length }

// AttributedText is the final pipeline output: a text buffer plus two
// side-lists of annotations over byte ranges of that buffer. It is a plain
// transfer object; host integrations translate it into whatever native
// attributed-string type their platform offers.
type AttributedText struct {
	Text         string             `json:"text" yaml:"text"`
	Styles       []StyleRange       `json:"styles,omitempty" yaml:"styles,omitempty"`
	Interactions []InteractionRange `json:"interactions,omitempty" yaml:"interactions,omitempty"`
}

// Plain returns an AttributedText carrying only text, no annotations. Every
// degradation path in the pipeline terminates in one of these.
func Plain(text string) *AttributedText {
	return &AttributedText{Text: text}
}
