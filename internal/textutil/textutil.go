// Package textutil provides the string helpers used to featurize tokens.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var tokenizeRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalize applies NFKC normalization and drops control characters, so
// visually identical words featurize the same way.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, norm.NFKC.String(text))
}

// Tokenize extracts word tokens from text.
func Tokenize(text string) []string {
	return tokenizeRe.FindAllString(text, -1)
}

// Ngrams returns min_n to max_n character-level n-grams of the given string.
func Ngrams(s string, minN, maxN int) []string {
	runes := []rune(s)
	textLen := len(runes)
	var res []string
	for n := minN; n <= maxN && n <= textLen; n++ {
		for i := 0; i <= textLen-n; i++ {
			res = append(res, string(runes[i:i+n]))
		}
	}
	return res
}

// TokenNgrams returns n-grams from a list of tokens, joined by space.
func TokenNgrams(tokens []string, minN, maxN int) []string {
	tLen := len(tokens)
	var res []string
	for n := minN; n <= maxN && n <= tLen; n++ {
		for i := 0; i <= tLen-n; i++ {
			res = append(res, strings.Join(tokens[i:i+n], " "))
		}
	}
	return res
}

// Prefix returns the first n runes of s, or all of s if it is shorter.
func Prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Suffix returns the last n runes of s, or all of s if it is shorter.
func Suffix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

// WordShape maps upper case letters to X, lower case to x and digits to d,
// collapsing runs of the same class: "McDonald's" -> "XxXx'x".
func WordShape(word string) string {
	var buf strings.Builder
	var last rune
	for _, r := range word {
		var c rune
		switch {
		case unicode.IsUpper(r):
			c = 'X'
		case unicode.IsLower(r):
			c = 'x'
		case unicode.IsDigit(r):
			c = 'd'
		default:
			c = r
		}
		if c != last {
			buf.WriteRune(c)
			last = c
		}
	}
	return buf.String()
}

// IsTitle reports whether word starts with an upper case letter followed
// only by lower case letters.
func IsTitle(word string) bool {
	for i, r := range word {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLower(r) {
			return false
		}
	}
	return word != ""
}

// HasDigit reports whether word contains a decimal digit.
func HasDigit(word string) bool {
	return strings.IndexFunc(word, unicode.IsDigit) >= 0
}
