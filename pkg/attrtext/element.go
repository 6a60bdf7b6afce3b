package attrtext

// Element is the read-only view of a parsed markup element handed to style
// resolution hooks and interaction handlers. It is implemented by the parser's
// node type; hosts never construct one.
type Element interface {
	// TagName returns the lower-cased tag name, or "" for text nodes.
	TagName() string

	// Attr returns the value of the named attribute and whether it exists.
	Attr(name string) (string, bool)

	// Attributes returns all attributes as authored. The returned map must
	// not be mutated.
	Attributes() map[string]string

	// Text returns the concatenated text content of the element's subtree.
	Text() string
}

// StyleResolver is the per-tag extension point: when registered for a tag it
// replaces the fixed descriptor-based resolution path and returns the style
// entries for the given element. Offsets are attached by the builder.
type StyleResolver interface {
	ResolveStyles(el Element) []StyleEntry
}

// StyleResolverFunc adapts a function to the StyleResolver interface.
type StyleResolverFunc func(el Element) []StyleEntry

func (f StyleResolverFunc) ResolveStyles(el Element) []StyleEntry { return f(el) }

// LinkOpener is the platform-open capability links fall back to when no
// explicit link handler is configured.
type LinkOpener interface {
	OpenURL(url string) error
}

// LinkOpenerFunc adapts a function to the LinkOpener interface.
type LinkOpenerFunc func(url string) error

func (f LinkOpenerFunc) OpenURL(url string) error { return f(url) }

// Handlers configures the interaction callbacks the builder binds into
// InteractionRanges. All fields are optional.
type Handlers struct {
	// OnLinkClick receives the href of an activated anchor. When nil the
	// URL is handed to Opener instead.
	OnLinkClick func(href string)

	// OnImageClick receives the src of an activated image. When nil image
	// activation is a no-op and no range is emitted for images.
	OnImageClick func(src string)

	// OnTagClick, when set, additionally receives the tag name for every
	// styled tag span, regardless of tag identity.
	OnTagClick func(tagName string)

	// Opener is the platform-open capability used for links when
	// OnLinkClick is nil. When both are nil link activation is a no-op.
	Opener LinkOpener
}
