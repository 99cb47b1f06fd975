package extract

import (
	"strings"
	"unicode"
)

// Chinese numerals recognized in heading numbering. The core set is
// what parenthesized numbering like （一） uses in practice; the full
// set adds 〇 and the banker's forms for the generic pattern builder.
const (
	cjkNumeralsCore = "零一二三四五六七八九十百千万亿"
	cjkNumeralsFull = cjkNumeralsCore + "〇壹贰叁肆伍陆柒捌玖拾"
)

type tokenKind int

const (
	tokenDigits tokenKind = iota
	tokenCJKNumeral
	tokenParen
	tokenBracket
	tokenSeparator
	tokenCJKWord
	tokenOther
)

// token is a run of same-class runes from an exemplar heading.
type token struct {
	kind tokenKind
	text string
}

func classifyRune(r rune) tokenKind {
	switch {
	case r >= '0' && r <= '9':
		return tokenDigits
	case strings.ContainsRune(cjkNumeralsFull, r):
		return tokenCJKNumeral
	case r == '（' || r == '）' || r == '(' || r == ')':
		return tokenParen
	case r == '【' || r == '】':
		return tokenBracket
	case r == '、' || r == '．' || r == '.' || r == '《' || r == '》':
		return tokenSeparator
	case r >= 0x4E00 && r <= 0x9FFF:
		return tokenCJKWord
	}
	return tokenOther
}

// mergeable kinds form runs; everything else is one token per rune.
func mergeable(k tokenKind) bool {
	return k == tokenDigits || k == tokenCJKNumeral || k == tokenCJKWord
}

// tokenize splits an exemplar (whitespace already removed) into
// tokens: maximal runs for digits, Chinese numerals and Chinese words,
// single runes for punctuation and anything else.
func tokenize(s string) []token {
	var tokens []token
	for _, r := range s {
		k := classifyRune(r)
		if mergeable(k) && len(tokens) > 0 && tokens[len(tokens)-1].kind == k {
			tokens[len(tokens)-1].text += string(r)
			continue
		}
		tokens = append(tokens, token{kind: k, text: string(r)})
	}
	return tokens
}

// digitRun returns every ASCII digit of s concatenated in order.
func digitRun(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// stripSpace removes every whitespace rune, including the fullwidth
// space U+3000, so matching sees headings the way they are numbered
// rather than the way they are laid out.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
