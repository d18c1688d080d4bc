package spell

import (
	"regexp"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{M}]+`)

// WordOccurrence is a word found in running text, with its byte offset
// into the original text.
type WordOccurrence struct {
	Word       string
	ByteOffset int
}

// ExtractWords finds every maximal run of Unicode letters and marks in
// text, in order.
func ExtractWords(text string) []WordOccurrence {
	locs := wordPattern.FindAllStringIndex(text, -1)
	out := make([]WordOccurrence, 0, len(locs))
	for _, loc := range locs {
		out = append(out, WordOccurrence{Word: text[loc[0]:loc[1]], ByteOffset: loc[0]})
	}
	return out
}

// shouldIgnoreWord applies the heuristics that exempt a word from
// checking regardless of dictionary membership.
func shouldIgnoreWord(word string, minWordLength int, ignoreList map[string]bool, ignoreCapitalized bool) bool {
	runeLen := len([]rune(word))
	if runeLen < minWordLength {
		return true
	}
	if ignoreList[strings.ToLower(word)] {
		return true
	}
	if runeLen <= 5 && isAllUpper(word) {
		return true
	}
	if ignoreCapitalized && isCapitalizedRestLower(word) {
		return true
	}
	if containsDigit(word) {
		return true
	}
	return false
}

func isAllUpper(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isCapitalizedRestLower(word string) bool {
	runes := []rune(word)
	if len(runes) < 2 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsLetter(r) && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func containsDigit(word string) bool {
	for _, r := range word {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
