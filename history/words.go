package history

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// WordCount tokenizes text on Unicode word boundaries and counts the
// tokens that carry at least one letter or digit, so punctuation and
// whitespace runs are excluded while accented words count normally.
func WordCount(text string) int {
	if text == "" {
		return 0
	}
	count := 0
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWord(word) {
			count++
		}
	}
	return count
}

func isWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
