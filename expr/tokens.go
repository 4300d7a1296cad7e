package expr

import (
	"strings"

	"github.com/openmobilemaps/maps-core-sub000/value"
)

// parseTokens splits a Static string literal into literal runs and {key}
// placeholders, honouring backslash escapes for brace characters
// (\{ and \}  produce literal braces).
func parseTokens(s string) []strToken {
	var tokens []strToken
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, strToken{literal: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\\' && i+1 < len(runes) && (runes[i+1] == '{' || runes[i+1] == '}'):
			lit.WriteRune(runes[i+1])
			i++
		case c == '{':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '}' {
					end = j
					break
				}
			}
			if end < 0 {
				lit.WriteRune(c)
				continue
			}
			flushLiteral()
			name := string(runes[i+1 : end])
			tokens = append(tokens, strToken{key: value.Intern(name), isPlaceholder: true})
			i = end
		default:
			lit.WriteRune(c)
		}
	}
	flushLiteral()
	return tokens
}

// isSinglePlaceholder reports whether tokens consists of exactly one
// placeholder spanning the whole string, and returns that placeholder's key.
// Evaluation does not call it: evalStatic always substitutes the property's
// string form, even for a single placeholder.
func isSinglePlaceholder(tokens []strToken) (value.Key, bool) {
	if len(tokens) == 1 && tokens[0].isPlaceholder {
		return tokens[0].key, true
	}
	return 0, false
}
