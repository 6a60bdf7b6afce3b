package build

import (
	"unicode"
	"unicode/utf8"

	"richtext/pkg/attrtext"
)

// collapseWhitespace rewrites the text so every run of whitespace becomes a
// single space and leading/trailing whitespace is trimmed, then remaps every
// style and interaction range through the collapse so offsets stay anchored
// to the characters they covered. Ranges that collapse to an empty span are
// dropped.
func collapseWhitespace(at *attrtext.AttributedText) {
	text := at.Text
	if text == "" {
		return
	}

	// offsets[i] is the new offset of the old byte i; the extra slot maps
	// end-of-text.
	offsets := make([]int, len(text)+1)
	out := make([]byte, 0, len(text))
	pendingSpace := false

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if collapsible(r) {
			// A collapsed run maps onto the single space it becomes
			// (or onto the trim point at either end).
			for k := 0; k < size; k++ {
				offsets[i+k] = len(out)
			}
			if len(out) > 0 {
				pendingSpace = true
			}
		} else {
			if pendingSpace {
				out = append(out, ' ')
				pendingSpace = false
			}
			for k := 0; k < size; k++ {
				offsets[i+k] = len(out) + k
			}
			out = append(out, text[i:i+size]...)
		}
		i += size
	}
	offsets[len(text)] = len(out)

	at.Text = string(out)
	at.Styles = remapStyles(at.Styles, offsets)
	at.Interactions = remapInteractions(at.Interactions, offsets)
}

// collapsible reports whether r belongs to a collapsible whitespace run.
// U+00A0 is deliberate author spacing (&nbsp;) and survives the collapse.
func collapsible(r rune) bool {
	return r != '\u00a0' && unicode.IsSpace(r)
}

func remapStyles(ranges []attrtext.StyleRange, offsets []int) []attrtext.StyleRange {
	kept := ranges[:0]
	for _, r := range ranges {
		start, length, ok := remapSpan(r.Start, r.Length, offsets)
		if !ok {
			continue
		}
		r.Start, r.Length = start, length
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func remapInteractions(ranges []attrtext.InteractionRange, offsets []int) []attrtext.InteractionRange {
	kept := ranges[:0]
	for _, r := range ranges {
		start, length, ok := remapSpan(r.Start, r.Length, offsets)
		if !ok {
			continue
		}
		r.Start, r.Length = start, length
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func remapSpan(start, length int, offsets []int) (int, int, bool) {
	if start < 0 || start+length >= len(offsets) {
		return 0, 0, false
	}
	ns := offsets[start]
	ne := offsets[start+length]
	if ne <= ns {
		return 0, 0, false
	}
	return ns, ne - ns, true
}
