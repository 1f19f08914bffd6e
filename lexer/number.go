package lexer

import (
	"strconv"
	"strings"
)

// numberChars are the only characters a numeric literal may contain.
const numberChars = "0123456789.-+eE"

// IsNumber returns true if word is a numeric literal. Words such as "inf"
// or "nan", which strconv.ParseFloat would accept, are rejected.
func IsNumber(word string) bool {
	if len(word) == 0 {
		return false
	}

	for _, c := range word {
		if !strings.ContainsRune(numberChars, c) {
			return false
		}
	}

	_, err := parseNumber(word)
	return err == nil
}

// parseNumber parses a numeric literal. Out of range values saturate to
// +/-Inf instead of failing.
func parseNumber(word string) (value float64, err error) {
	value, err = strconv.ParseFloat(word, 64)
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		err = nil
	}
	return
}
