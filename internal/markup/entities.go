package markup

import (
	"regexp"
	"strconv"
	"strings"
)

// namedEntities is the minimum entity set decoded when DecodeEntities is on.
// Anything else passes through unchanged.
var namedEntities = map[string]string{
	"&amp;":   "&",
	"&lt;":    "<",
	"&gt;":    ">",
	"&quot;":  `"`,
	"&#39;":   "'",
	"&nbsp;":  " ",
	"&copy;":  "©",
	"&reg;":   "®",
	"&trade;": "™",
}

var entityRegex = regexp.MustCompile(`&(?:[a-zA-Z]+|#[0-9]+|#[xX][0-9a-fA-F]+);`)

// DecodeEntities replaces recognized HTML entities in s with their character
// values. Numeric references (&#NN; and &#xNN;) are decoded as well;
// unrecognized entities are left untouched.
func DecodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	return entityRegex.ReplaceAllStringFunc(s, func(ent string) string {
		if v, ok := namedEntities[ent]; ok {
			return v
		}
		if strings.HasPrefix(ent, "&#") {
			if v, ok := decodeNumeric(ent[2 : len(ent)-1]); ok {
				return v
			}
		}
		return ent
	})
}

func decodeNumeric(ref string) (string, bool) {
	base := 10
	if len(ref) > 1 && (ref[0] == 'x' || ref[0] == 'X') {
		base = 16
		ref = ref[1:]
	}
	n, err := strconv.ParseInt(ref, base, 32)
	if err != nil || n <= 0 || !utf8Valid(rune(n)) {
		return "", false
	}
	return string(rune(n)), true
}

func utf8Valid(r rune) bool {
	return r < 0xD800 || (r > 0xDFFF && r <= 0x10FFFF)
}
