// Package answerkey converts between the two answer encodings used across the
// system: option letters ("A", "B", ...) written by authors and zero-based
// option indices ("0", "1", ...) sent by some clients.
//
// Every comparison of a submitted answer against an answer key goes through
// Normalize; raw tokens are never compared directly.
package answerkey

import (
	"strconv"
	"strings"

	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
)

// MaxIndex is the highest index representable as a letter ('Z')
const MaxIndex = 'Z' - 'A'

// LetterToIndex maps a single ASCII letter, case-insensitive, to its zero-based index
func LetterToIndex(letter string) (int, error) {
	if len(letter) != 1 {
		return 0, apperrors.NewInvalidAnswerToken(letter, "expected a single letter")
	}
	c := letter[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return 0, apperrors.NewInvalidAnswerToken(letter, "expected a letter A-Z")
	}
	return int(c - 'A'), nil
}

// IndexToLetter maps a zero-based index to its upper-case letter
func IndexToLetter(index int) (string, error) {
	if index < 0 || index > MaxIndex {
		return "", apperrors.NewInvalidAnswerToken(strconv.Itoa(index), "index out of letter range")
	}
	return string(rune('A' + index)), nil
}

// Normalize resolves a raw answer token to a canonical zero-based index.
// A single alphabetic character is read as a letter; anything else must be an
// integer and is returned unchanged.
func Normalize(token string) (int, error) {
	t := strings.TrimSpace(token)
	if len(t) == 1 && isASCIILetter(t[0]) {
		return LetterToIndex(t)
	}
	index, err := strconv.Atoi(t)
	if err != nil {
		return 0, apperrors.NewInvalidAnswerToken(token, "neither a letter nor an integer index")
	}
	return index, nil
}

// Equivalent reports whether two raw tokens resolve to the same index.
// Tokens that fail to normalize are never equivalent to anything.
func Equivalent(a, b string) bool {
	ia, err := Normalize(a)
	if err != nil {
		return false
	}
	ib, err := Normalize(b)
	if err != nil {
		return false
	}
	return ia == ib
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
