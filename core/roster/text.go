package roster

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Clean lowercases s and collapses runs of whitespace into single spaces.
func Clean(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ContainsWord reports whether word occurs in text without a letter directly
// before or after it. Both arguments are expected to be cleaned.
func ContainsWord(text, word string) bool {
	return wordIndex(text, word) >= 0
}

// RemoveWord deletes the first bounded occurrence of word from text.
func RemoveWord(text, word string) string {
	i := wordIndex(text, word)
	if i < 0 {
		return text
	}
	return Clean(text[:i] + " " + text[i+len(word):])
}

func wordIndex(text, word string) int {
	if word == "" {
		return -1
	}
	for off := 0; off <= len(text)-len(word); {
		i := strings.Index(text[off:], word)
		if i < 0 {
			return -1
		}
		start := off + i
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return start
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		off = start + size
	}
	return -1
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r)
}

func blank(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none":
		return true
	}
	return false
}
