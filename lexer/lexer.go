// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package lexer converts CNSTR source text into a flat token stream.
package lexer

import (
	"bufio"
	"io"
	"log"
	"strings"
	"unicode"

	"github.com/ezrec/cnstr/token"
)

// COMMENT_PREFIX is the default full-line comment marker.
const COMMENT_PREFIX = "#"

// maxLineLength bounds the length of a single source line.
const maxLineLength = 1 << 20

// Lexer tokenizes CNSTR source, one line at a time.
type Lexer struct {
	Verbose       bool   // If set, logs each tokenized line.
	CommentPrefix string // Full-line comment marker. Defaults to COMMENT_PREFIX.
}

func (lex *Lexer) commentPrefix() string {
	if len(lex.CommentPrefix) == 0 {
		return COMMENT_PREFIX
	}
	return lex.CommentPrefix
}

// Parse tokenizes an entire source. Lexical errors are collected across all
// lines; if there are any, no tokens are returned and the error is an
// *ErrTokenize holding every one of them.
func (lex *Lexer) Parse(input io.Reader) (tokens []token.Token, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(nil, maxLineLength)

	var errs []error
	for lineno := 0; scanner.Scan(); lineno++ {
		line := scanner.Text()

		line_tokens, line_errs := lex.ParseLine(line, lineno)
		tokens = append(tokens, line_tokens...)
		errs = append(errs, line_errs...)
	}

	err = scanner.Err()
	if err != nil {
		tokens = nil
		return
	}

	if len(errs) > 0 {
		tokens = nil
		err = &ErrTokenize{Errors: errs}
		return
	}

	return
}

// ParseLine tokenizes a single line. The returned tokens always end with
// exactly one line end token, even when there are errors.
func (lex *Lexer) ParseLine(line string, lineno int) (tokens []token.Token, errs []error) {
	if lex.Verbose {
		log.Printf("%v: %v\n", lineno, line)
	}

	line = strings.TrimSuffix(line, "\n")

	if strings.HasPrefix(line, lex.commentPrefix()) {
		tokens = append(tokens, token.Comment(line), token.EndLine())
		return
	}

	for _, word := range Split(line, true) {
		tok, err := parseWord(word)
		if err != nil {
			errs = append(errs, &ErrSyntax{LineNo: lineno, Line: line, Err: err})
			continue
		}
		tokens = append(tokens, tok)
	}

	tokens = append(tokens, token.EndLine())

	return
}

// parseWord classifies a single word. Registers take precedence over
// numbers, numbers over strings, strings over commands and comparators.
func parseWord(word string) (tok token.Token, err error) {
	if strings.HasPrefix(word, "r") {
		err = CheckRegister(word)
		if err != nil {
			return
		}
		tok = token.Register(word)
		return
	}

	if IsNumber(word) {
		var value float64
		value, err = parseNumber(word)
		if err != nil {
			return
		}
		tok = token.NumberLiteral(value)
		return
	}

	if isQuoted(word) {
		var text string
		if len(word) > 1 {
			text = word[1 : len(word)-1]
		}
		tok = token.StringLiteral(text)
		return
	}

	if op, ok := token.Commands[word]; ok {
		tok = token.Command(op, word)
		return
	}

	if op, ok := token.Comparators[word]; ok {
		tok = token.Compare(op, word)
		return
	}

	err = &ErrWord{Word: word, Err: ErrTokenInvalid}
	return
}

// isQuoted returns true if word starts and ends with the same quote. A lone
// quote, left by an unterminated quote at the end of a line, counts as an
// empty string.
func isQuoted(word string) bool {
	if len(word) == 0 {
		return false
	}

	first := word[0]
	last := word[len(word)-1]

	return (first == '\'' || first == '"') && first == last
}

// CheckRegister validates a register name: an 'r' followed by one or two
// lowercase alphanumeric characters.
func CheckRegister(word string) (err error) {
	runes := []rune(word)
	if len(runes) < 2 || len(runes) > 3 || runes[0] != 'r' {
		err = &ErrWord{Word: word, Err: ErrRegisterLength}
		return
	}

	for _, c := range runes[1:] {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			err = &ErrWord{Word: word, Err: ErrRegisterName}
			return
		}
		if unicode.IsUpper(c) {
			err = &ErrWord{Word: word, Err: ErrRegisterName}
			return
		}
	}

	return
}
