// Package richtext converts restricted HTML-like markup into attributed
// text: a plain text buffer plus offset-anchored style and interaction
// ranges a host renderer draws as styled runs. The pipeline is
//
//	raw markup → (optional normalizer) → tokenizer → element forest →
//	attributed-text builder → attrtext.AttributedText
//
// and every failure path degrades to a displayable plain-text result.
package richtext

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"richtext/internal/build"
	"richtext/internal/config"
	"richtext/internal/logging"
	"richtext/internal/markup"
	"richtext/internal/style"
	"richtext/pkg/attrtext"
)

// Options configures the pipeline. See the field docs for the individual
// toggles; DefaultOptions returns the stock set.
type Options = config.Options

// DefaultOptions returns the options used by NewWithDefaults.
func DefaultOptions() Options { return config.Default() }

// Normalizer is the external collaborator that turns a raw fragment into a
// well-formed, balanced tag stream (synthetic root included, DOCTYPE
// stripped). When no normalizer is configured the engine wraps the input
// as-is and relies on the input being well formed.
type Normalizer interface {
	Normalize(raw string) (string, error)
}

// Engine coordinates one parse+build pipeline instance: it owns the single
// in-flight guard, the plain-text fast path, the size-limit fallback and the
// style registry consulted during builds. An Engine is not meant for
// concurrent use; an overlapping Render is rejected, never interleaved.
type Engine struct {
	opts       Options
	policy     markup.Policy
	registry   *style.Registry
	parser     *markup.Parser
	builder    *build.Builder
	normalizer Normalizer
	handlers   attrtext.Handlers
	log        zerolog.Logger

	busy atomic.Bool

	// Last successful cycle; a request for identical content returns the
	// cached result instead of starting a new cycle. Guarded by mu so the
	// busy arbitration covers all shared engine state.
	mu          sync.Mutex
	lastContent string
	lastResult  *attrtext.AttributedText
}

// New creates an engine with the given options, the default style registry
// and no normalizer.
func New(opts Options) *Engine {
	log := logging.GetLogger("richtext")
	return &Engine{
		opts:     opts,
		policy:   markup.NewPolicy(opts.AllowedTags, opts.DeniedTags),
		registry: style.NewRegistry(),
		parser:   markup.NewParser(log),
		builder:  build.NewBuilder(log),
		log:      log,
	}
}

// NewWithDefaults creates an engine with DefaultOptions.
func NewWithDefaults() *Engine {
	return New(config.Default())
}

// SetNormalizer installs the external markup normalizer. Pass nil to disable
// normalization.
func (e *Engine) SetNormalizer(n Normalizer) { e.normalizer = n }

// SetHandlers installs the interaction callbacks bound into
// InteractionRanges on subsequent renders.
func (e *Engine) SetHandlers(h attrtext.Handlers) { e.handlers = h }

// RegisterStyle stores a style descriptor for a tag, overwriting any
// previous registration. Later builds use only the new descriptor.
func (e *Engine) RegisterStyle(tagName string, d attrtext.StyleDescriptor) {
	e.registry.Register(tagName, d)
}

// StyleFor returns the registered descriptor for a tag, if any.
func (e *Engine) StyleFor(tagName string) (attrtext.StyleDescriptor, bool) {
	return e.registry.Get(tagName)
}

// RemoveStyle deletes a tag's descriptor.
func (e *Engine) RemoveStyle(tagName string) { e.registry.Remove(tagName) }

// ClearStyles removes every descriptor, including the bootstrap defaults.
func (e *Engine) ClearStyles() { e.registry.Clear() }

// StyleTagNames returns the tags with a registered descriptor.
func (e *Engine) StyleTagNames() []string { return e.registry.TagNames() }

// Render runs one parse+build cycle over content. The returned attributed
// text is always non-nil and displayable. A non-nil error wraps one of the
// package sentinels and means the result was degraded to plain text; it is
// informational, not fatal.
func (e *Engine) Render(content string) (*attrtext.AttributedText, error) {
	if cached := e.cachedResult(content); cached != nil {
		return cached, nil
	}

	if !e.busy.CompareAndSwap(false, true) {
		e.log.Debug().Msg("render rejected: cycle already in flight")
		return attrtext.Plain(content), fmt.Errorf("render of %d bytes rejected: %w", len(content), ErrBusy)
	}
	defer e.busy.Store(false)

	result, err := e.render(content)
	if err == nil {
		// Degraded cycles are never cached: an identical retry must report
		// its degradation cause again instead of a silent nil error.
		e.mu.Lock()
		e.lastContent = content
		e.lastResult = result
		e.mu.Unlock()
	}
	return result, err
}

func (e *Engine) cachedResult(content string) *attrtext.AttributedText {
	e.mu.Lock()
	defer e.mu.Unlock()
	if content == e.lastContent && e.lastResult != nil {
		return e.lastResult
	}
	return nil
}

func (e *Engine) render(content string) (*attrtext.AttributedText, error) {
	if e.opts.MaxContentLength > 0 && len(content) > e.opts.MaxContentLength {
		e.log.Warn().Int("length", len(content)).Int("max", e.opts.MaxContentLength).
			Msg("content too large, degrading to plain text")
		return attrtext.Plain(content), fmt.Errorf("content length %d exceeds %d: %w",
			len(content), e.opts.MaxContentLength, ErrContentTooLarge)
	}

	// Fast path: nothing to parse in markup-free content.
	if !strings.ContainsAny(content, "<&") {
		return attrtext.Plain(content), nil
	}

	wellFormed := "<" + markup.WrapperTag + ">" + content + "</" + markup.WrapperTag + ">"
	if e.normalizer != nil {
		normalized, err := e.normalizer.Normalize(content)
		if err != nil {
			e.log.Warn().Err(err).Msg("normalization failed, degrading to plain text")
			return attrtext.Plain(content), fmt.Errorf("normalize: %v: %w", err, ErrParseFailure)
		}
		wellFormed = normalized
	}

	stream := markup.NewHTMLEventStream(wellFormed)
	forest, err := e.parser.Parse(stream, e.policy, e.opts)
	if err != nil {
		if errors.Is(err, markup.ErrBusy) {
			return attrtext.Plain(content), fmt.Errorf("parser: %w", ErrBusy)
		}
		// Whole-input plain-text fallback: the raw input as one text node.
		e.log.Warn().Err(err).Msg("parse failed, degrading to plain text")
		return attrtext.Plain(content), fmt.Errorf("parse: %v: %w", err, ErrParseFailure)
	}

	result, err := e.builder.Build(forest, e.registry, e.handlers, e.opts)
	if err != nil {
		return result, fmt.Errorf("build: %v: %w", err, ErrBuildFailure)
	}
	return result, nil
}

// Render is a convenience function that renders content with a fresh
// default engine.
func Render(content string) (*attrtext.AttributedText, error) {
	return NewWithDefaults().Render(content)
}

// RenderWithOptions is a convenience function that renders content with a
// fresh engine using the given options.
func RenderWithOptions(content string, opts Options) (*attrtext.AttributedText, error) {
	return New(opts).Render(content)
}
