package markup

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// EventKind identifies a structural event produced by the tokenizer.
type EventKind int

const (
	EventStartTag EventKind = iota
	EventAttribute
	EventEndTag
	EventText
	EventCDATA
	EventComment
)

// Event is one structural notification from the tokenizer. Name carries the
// tag or attribute name, Value the attribute value or character content.
type Event struct {
	Kind        EventKind
	Name        string
	Value       string
	SelfClosing bool
}

// EventStream yields structural events one at a time. Next returns io.EOF
// once the stream is exhausted; any other error means the byte stream was
// malformed and the parser reports a parse failure.
type EventStream interface {
	Next() (Event, error)
}

// htmlEvents adapts golang.org/x/net/html's pull tokenizer to an EventStream.
// Text content is taken raw so entity decoding stays under the parser's
// control; namespace awareness and DTD handling are not enabled.
type htmlEvents struct {
	z       *html.Tokenizer
	pending []Event
}

// NewHTMLEventStream wraps well-formed markup in an x/net/html tokenizer and
// exposes it as a structural event stream.
func NewHTMLEventStream(markup string) EventStream {
	return &htmlEvents{z: html.NewTokenizer(strings.NewReader(markup))}
}

func (s *htmlEvents) Next() (Event, error) {
	for {
		if len(s.pending) > 0 {
			ev := s.pending[0]
			s.pending = s.pending[1:]
			return ev, nil
		}

		switch s.z.Next() {
		case html.ErrorToken:
			err := s.z.Err()
			if err == io.EOF {
				return Event{}, io.EOF
			}
			return Event{}, err

		case html.TextToken:
			// Raw bytes, not Text(): Text() would pre-decode entities
			// unconditionally.
			return Event{Kind: EventText, Value: string(s.z.Raw())}, nil

		case html.StartTagToken:
			s.queueTag(false)

		case html.SelfClosingTagToken:
			s.queueTag(true)

		case html.EndTagToken:
			name, _ := s.z.TagName()
			return Event{Kind: EventEndTag, Name: string(name)}, nil

		case html.CommentToken:
			// Raw bytes again: Text() unescapes, and CDATA content must
			// stay verbatim. HTML-content CDATA sections surface as bogus
			// comments, so the markers are stripped by hand.
			raw := string(s.z.Raw())
			if inner, ok := strings.CutPrefix(raw, "<![CDATA["); ok {
				inner = strings.TrimSuffix(inner, ">")
				inner = strings.TrimSuffix(inner, "]]")
				return Event{Kind: EventCDATA, Value: inner}, nil
			}
			body := strings.TrimPrefix(raw, "<!--")
			if body != raw {
				body = strings.TrimSuffix(body, "-->")
			} else {
				body = strings.TrimSuffix(strings.TrimPrefix(raw, "<!"), ">")
			}
			return Event{Kind: EventComment, Value: body}, nil

		case html.DoctypeToken:
			// Stripped upstream by the normalizer; tolerated here.
		}
	}
}

// queueTag expands one start tag into a start event followed by one event
// per attribute, preserving the order authored. TagAttr lower-cases keys, so
// the authored-case names are re-read from the raw tag bytes and paired with
// TagAttr's unescaped values.
func (s *htmlEvents) queueTag(selfClosing bool) {
	authored := attrNames(s.z.Raw())
	name, hasAttr := s.z.TagName()

	s.pending = append(s.pending, Event{
		Kind:        EventStartTag,
		Name:        string(name),
		SelfClosing: selfClosing,
	})
	for i := 0; hasAttr; i++ {
		var key, val []byte
		key, val, hasAttr = s.z.TagAttr()
		k := string(key)
		if i < len(authored) && strings.ToLower(authored[i]) == k {
			k = authored[i]
		}
		s.pending = append(s.pending, Event{
			Kind:  EventAttribute,
			Name:  k,
			Value: string(val),
		})
	}
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// attrNames scans a raw start tag (e.g. `<a Href="x" Title=y>`) and returns
// the attribute names in authored order and case. Values are skipped; the
// tokenizer supplies them unescaped.
func attrNames(raw []byte) []string {
	i := 1 // past '<'
	for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}

	var names []string
	for i < len(raw) {
		for i < len(raw) && (isTagSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}

		start := i
		for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		names = append(names, string(raw[start:i]))

		for i < len(raw) && isTagSpace(raw[i]) {
			i++
		}
		if i < len(raw) && raw[i] == '=' {
			i++
			for i < len(raw) && isTagSpace(raw[i]) {
				i++
			}
			if i < len(raw) && (raw[i] == '"' || raw[i] == '\'') {
				quote := raw[i]
				i++
				for i < len(raw) && raw[i] != quote {
					i++
				}
				i++
			} else {
				for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '>' {
					i++
				}
			}
		}
	}
	return names
}
