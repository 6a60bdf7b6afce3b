// Package style maps tag names to style descriptors and resolves elements to
// positionless style entries for the attributed-text builder.
package style

import (
	"sort"
	"strings"
	"sync"

	"richtext/pkg/attrtext"
)

// Registry holds tag name → descriptor mappings. Lookup is case-insensitive
// and re-registration is last-write-wins. The registry is long-lived and
// independent of any single parse; callers must not mutate it concurrently
// with an active build if they require deterministic output, but the map
// itself is guarded for basic safety.
type Registry struct {
	mu     sync.RWMutex
	styles map[string]attrtext.StyleDescriptor
}

// NewRegistry returns a registry pre-populated with the default descriptor
// set. Defaults may be overridden or cleared.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerDefaults(r)
	return r
}

// NewEmptyRegistry returns a registry with no descriptors installed.
func NewEmptyRegistry() *Registry {
	return &Registry{styles: make(map[string]attrtext.StyleDescriptor)}
}

// Register stores the descriptor for the tag, overwriting any previous one.
// Descriptor field values are not validated; the renderer interprets them.
func (r *Registry) Register(tagName string, d attrtext.StyleDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[strings.ToLower(tagName)] = d
}

// Get returns the descriptor for the tag and whether one is registered.
func (r *Registry) Get(tagName string) (attrtext.StyleDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.styles[strings.ToLower(tagName)]
	return d, ok
}

// Has reports whether a descriptor is registered for the tag.
func (r *Registry) Has(tagName string) bool {
	_, ok := r.Get(tagName)
	return ok
}

// Remove deletes the tag's descriptor, if any.
func (r *Registry) Remove(tagName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.styles, strings.ToLower(tagName))
}

// Clear removes every registered descriptor, including the defaults.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles = make(map[string]attrtext.StyleDescriptor)
}

// TagNames returns the registered tag names in sorted order.
func (r *Registry) TagNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered descriptors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.styles)
}

// Resolve returns the ordered style entries for the element's tag: one entry
// per populated field group (font fields merge into a single font entry).
// The result carries no position information; the builder attaches offsets.
// A tag with no descriptor, or a descriptor with no populated fields, yields
// nil. A custom resolver registered on the descriptor replaces the fixed
// path entirely.
func (r *Registry) Resolve(el attrtext.Element) []attrtext.StyleEntry {
	d, ok := r.Get(el.TagName())
	if !ok {
		return nil
	}

	if d.Resolver != nil {
		return d.Resolver.ResolveStyles(el)
	}

	var entries []attrtext.StyleEntry
	if !d.Font.IsZero() {
		font := d.Font
		entries = append(entries, attrtext.StyleEntry{Kind: attrtext.KindFont, Font: &font})
	}
	if d.Decoration != nil {
		deco := *d.Decoration
		entries = append(entries, attrtext.StyleEntry{Kind: attrtext.KindDecoration, Decoration: &deco})
	}
	if d.Background != nil && !d.Background.IsZero() {
		bg := *d.Background
		entries = append(entries, attrtext.StyleEntry{Kind: attrtext.KindBackground, Background: &bg})
	}
	return entries
}
