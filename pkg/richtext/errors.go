package richtext

import "errors"

// Degradation causes. No failure in this package is fatal: every Render call
// returns a displayable plain-text result alongside one of these (wrapped)
// so callers can observe why styling was dropped.
var (
	// ErrBusy reports a Render call while another cycle was in flight.
	ErrBusy = errors.New("render already in progress")

	// ErrContentTooLarge reports input exceeding Options.MaxContentLength.
	// The input never reaches the tokenizer.
	ErrContentTooLarge = errors.New("content exceeds maximum length")

	// ErrParseFailure reports a normalizer or tokenizer failure; the result
	// is the raw input as plain text.
	ErrParseFailure = errors.New("markup parse failed")

	// ErrBuildFailure reports a failure during the tree walk; the result is
	// the parsed forest's text content with all ranges discarded.
	ErrBuildFailure = errors.New("attributed text build failed")
)
