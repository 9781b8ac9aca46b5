// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

import "strings"

// SplitWords splits a query into words, honoring single and double quotes
// so that a quoted phrase is treated as one word. Quotes themselves are
// stripped; an unterminated quote consumes the rest of the input.
func SplitWords(query string) []string {
	var (
		words   []string
		current strings.Builder
		quote   rune
	)

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ' ' || r == '\t':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return words
}
