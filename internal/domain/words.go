package domain

import "strings"

// CountWords returns the number of whitespace-separated tokens in text.
// Leading/trailing whitespace is ignored; an empty or all-whitespace text
// counts zero words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
