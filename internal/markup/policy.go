package markup

import "strings"

// Policy is the tag permission policy: an allow-set and a deny-set. Deny
// takes precedence over allow, and a tag absent from the allow-set is
// rejected even when not explicitly denied (default-closed).
type Policy struct {
	allowed map[string]bool
	denied  map[string]bool
}

// NewPolicy builds a policy from allow and deny tag lists. Names are
// normalized to lower case.
func NewPolicy(allowed, denied []string) Policy {
	p := Policy{
		allowed: make(map[string]bool, len(allowed)),
		denied:  make(map[string]bool, len(denied)),
	}
	for _, t := range allowed {
		p.allowed[strings.ToLower(t)] = true
	}
	for _, t := range denied {
		p.denied[strings.ToLower(t)] = true
	}
	return p
}

// Reject reports whether the named tag must not be honored. The name is
// matched case-insensitively.
func (p Policy) Reject(name string) bool {
	name = strings.ToLower(name)
	if p.denied[name] {
		return true
	}
	return !p.allowed[name]
}
