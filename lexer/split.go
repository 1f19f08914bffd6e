package lexer

import (
	"slices"
	"strings"
)

// Split splits a line on spaces, keeping single- or double-quoted spans
// together as one word. If includeQuotes is set, the quote characters that
// open and close a span are kept in the word.
//
// Quotes do not nest, and escapes are not recognized. An unterminated quote
// runs to the end of the line.
func Split(line string, includeQuotes bool) (words []string) {
	var quote rune
	var word strings.Builder

	for _, c := range line {
		switch {
		case quote != 0 && c == quote:
			quote = 0
			if includeQuotes {
				word.WriteRune(c)
			}
			words = append(words, word.String())
			word.Reset()
		case quote != 0:
			word.WriteRune(c)
		case c == ' ':
			if word.Len() > 0 {
				words = append(words, word.String())
				word.Reset()
			}
		case c == '\'' || c == '"':
			quote = c
			if includeQuotes {
				word.WriteRune(c)
			}
		default:
			word.WriteRune(c)
		}
	}

	if word.Len() > 0 {
		words = append(words, word.String())
	}

	return slices.DeleteFunc(words, func(w string) bool { return len(w) == 0 })
}
