// Package config holds the options consumed by the markup pipeline.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds configuration for the parse and build stages.
type Options struct {
	// MaxContentLength rejects parse requests longer than this many bytes;
	// the caller degrades to plain text. 0 means no limit.
	MaxContentLength int `yaml:"maxContentLength"`

	// AllowedTags is the set of tag names honored during parsing. A tag
	// absent from this list is rejected even when not explicitly denied.
	AllowedTags []string `yaml:"allowedTags"`

	// DeniedTags are rejected regardless of AllowedTags.
	DeniedTags []string `yaml:"deniedTags"`

	// PreserveWhitespace keeps whitespace-only text nodes during parsing.
	PreserveWhitespace bool `yaml:"preserveWhitespace"`

	// DecodeEntities decodes HTML entities in text content.
	DecodeEntities bool `yaml:"decodeEntities"`

	// IgnoreComments drops comment events.
	IgnoreComments bool `yaml:"ignoreComments"`

	// IgnoreScriptTags drops script elements including their content.
	IgnoreScriptTags bool `yaml:"ignoreScriptTags"`

	// IgnoreStyleTags drops style elements including their content.
	IgnoreStyleTags bool `yaml:"ignoreStyleTags"`

	// OptimizeWhitespace collapses runs of whitespace in the final text to
	// a single space and trims the ends. Range offsets are remapped through
	// the collapse.
	OptimizeWhitespace bool `yaml:"optimizeWhitespace"`

	// StyleInheritance is advisory: nested tag styles already layer through
	// the child-before-parent range append order, this flag only records the
	// caller's intent for hosts that implement structural inheritance.
	StyleInheritance bool `yaml:"styleInheritance"`
}

// Default returns the options used when the caller supplies none.
func Default() Options {
	return Options{
		MaxContentLength:   64 * 1024,
		AllowedTags:        DefaultAllowedTags(),
		DeniedTags:         []string{"script", "style", "iframe", "object", "form"},
		PreserveWhitespace: false,
		DecodeEntities:     true,
		IgnoreComments:     true,
		IgnoreScriptTags:   true,
		IgnoreStyleTags:    true,
		OptimizeWhitespace: true,
		StyleInheritance:   true,
	}
}

// DefaultAllowedTags returns the tags honored out of the box: the tags the
// default style registry knows plus the structural and void tags.
func DefaultAllowedTags() []string {
	return []string{
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "span",
		"b", "strong", "i", "em",
		"u", "s", "del",
		"big", "small", "sup", "sub",
		"a", "img", "br", "hr",
		"code", "pre", "blockquote", "mark",
		"ul", "ol", "li",
	}
}

// LoadFile reads Options from a YAML file, layered on top of Default().
func LoadFile(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return opts, nil
}
