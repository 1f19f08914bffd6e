// Package token defines the tokens of the CNSTR instruction language.
//
// A token has a lexical Kind (command, register, literal, comment, line
// end, comparator), an Op refining the kind (which command, which
// comparator, which literal type), and a Value payload that is either a
// number or a string.
package token
