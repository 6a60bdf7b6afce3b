package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"richtext/internal/config"
	"richtext/internal/logging"
)

// WrapperTag is the synthetic root element callers wrap fragments in before
// tokenizing. Start and end events for it are ignored.
const WrapperTag = "richtext-root"

// ErrBusy reports a re-entrant Parse call on the same parser instance.
var ErrBusy = errors.New("parser busy: parse already in progress")

// Parser consumes a structural event stream and produces an ordered forest
// of element nodes. A parser is single-use-at-a-time: concurrent Parse calls
// on the same instance fail with ErrBusy.
type Parser struct {
	log  zerolog.Logger
	busy atomic.Bool

	// retained between Parse and Clear for callers that want to re-read
	// the last forest.
	forest []*Node
}

// NewParser returns a parser logging to the given sink.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// NewDefaultParser returns a parser with logging discarded.
func NewDefaultParser() *Parser {
	return &Parser{log: logging.Discard()}
}

// Clear discards retained forest state. Callable when idle.
func (p *Parser) Clear() {
	if !p.busy.Load() {
		p.forest = nil
	}
}

// Forest returns the forest produced by the last successful Parse.
func (p *Parser) Forest() []*Node { return p.forest }

// Parse runs a single pass over the event stream and returns the top-level
// element forest. Rejected tags contribute no node and no attributes, but
// their textual descendants still appear under the rejected tag's parent.
// Mismatched end tags are logged and repaired by popping regardless. A
// malformed stream or unclosed elements at end of stream surface as an
// error; no partial tree is returned in that case.
func (p *Parser) Parse(stream EventStream, policy Policy, opts config.Options) ([]*Node, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer p.busy.Store(false)

	st := &parseState{opts: opts}

	for {
		ev, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed event stream: %w", err)
		}
		p.handleEvent(st, policy, ev)
	}

	if len(st.stack) > 0 {
		p.log.Warn().Int("open", len(st.stack)).Msg("unclosed elements at end of stream")
		return nil, fmt.Errorf("unclosed elements at end of stream: %d open", len(st.stack))
	}

	p.forest = st.forest
	return st.forest, nil
}

// parseState is the per-invocation state machine: an open-element stack plus
// the accumulated top-level forest.
type parseState struct {
	opts   config.Options
	forest []*Node
	stack  []*Node

	// attrTarget receives attribute events; it tracks the most recently
	// opened tag or self-closing node and resets on any structural event.
	attrTarget *Node

	// rejectedOpen tracks open rejected (non-void) tags so their end tags
	// are consumed instead of popping honored frames.
	rejectedOpen []string

	// rawSkipTag is set while discarding script/style content.
	rawSkipTag string
}

func (p *Parser) handleEvent(st *parseState, policy Policy, ev Event) {
	if ev.Kind != EventAttribute {
		st.attrTarget = nil
	}

	switch ev.Kind {
	case EventStartTag:
		p.handleStartTag(st, policy, ev)

	case EventAttribute:
		if st.attrTarget == nil {
			return
		}
		if st.attrTarget.attrs == nil {
			st.attrTarget.attrs = make(map[string]string)
		}
		// First write wins on duplicate attribute names.
		if _, dup := st.attrTarget.attrs[ev.Name]; !dup {
			st.attrTarget.attrs[ev.Name] = ev.Value
		}

	case EventEndTag:
		p.handleEndTag(st, ev)

	case EventText:
		if st.rawSkipTag != "" {
			return
		}
		content := ev.Value
		if strings.TrimSpace(content) == "" && !st.opts.PreserveWhitespace {
			return
		}
		if st.opts.DecodeEntities {
			content = DecodeEntities(content)
		}
		st.attach(&Node{kind: TextNode, content: content})

	case EventCDATA:
		// Verbatim, never entity-decoded.
		if st.rawSkipTag == "" {
			st.attach(&Node{kind: TextNode, content: ev.Value})
		}

	case EventComment:
		if st.opts.IgnoreComments || st.rawSkipTag != "" {
			p.log.Trace().Str("comment", ev.Value).Msg("comment dropped")
			return
		}
		st.attach(&Node{kind: TextNode, content: ev.Value})
	}
}

func (p *Parser) handleStartTag(st *parseState, policy Policy, ev Event) {
	name := strings.ToLower(ev.Name)
	if st.rawSkipTag != "" || name == WrapperTag {
		return
	}

	if (name == "script" && st.opts.IgnoreScriptTags) ||
		(name == "style" && st.opts.IgnoreStyleTags) {
		if !ev.SelfClosing {
			st.rawSkipTag = name
		}
		return
	}

	void := IsVoidTag(name)

	if policy.Reject(name) {
		p.log.Debug().Str("tag", name).Msg("tag rejected by policy")
		if !void && !ev.SelfClosing {
			st.rejectedOpen = append(st.rejectedOpen, name)
		}
		return
	}

	if void || ev.SelfClosing {
		node := &Node{kind: SelfClosingTagNode, tag: name}
		st.attach(node)
		st.attrTarget = node
		return
	}

	node := &Node{kind: TagNode, tag: name}
	st.stack = append(st.stack, node)
	st.attrTarget = node
}

func (p *Parser) handleEndTag(st *parseState, ev Event) {
	name := strings.ToLower(ev.Name)

	if st.rawSkipTag != "" {
		if name == st.rawSkipTag {
			st.rawSkipTag = ""
		}
		return
	}
	if name == WrapperTag {
		return
	}
	if n := len(st.rejectedOpen); n > 0 && st.rejectedOpen[n-1] == name {
		st.rejectedOpen = st.rejectedOpen[:n-1]
		return
	}
	if len(st.stack) == 0 {
		p.log.Debug().Str("tag", name).Msg("end tag with no open element ignored")
		return
	}

	top := st.stack[len(st.stack)-1]
	st.stack = st.stack[:len(st.stack)-1]
	if top.tag != name {
		p.log.Warn().Str("open", top.tag).Str("closed", name).Msg("mismatched end tag, repairing")
	}
	st.attach(top)
}

// attach appends a finished node to the current open element, or to the
// top-level forest when the stack is empty.
func (st *parseState) attach(n *Node) {
	if len(st.stack) == 0 {
		st.forest = append(st.forest, n)
		return
	}
	top := st.stack[len(st.stack)-1]
	top.children = append(top.children, n)
}
