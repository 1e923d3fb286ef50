package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLabeler turns a field name into a label: "cover_images",
// "coverImages" and "cover-images" all become "Cover Images". Digits and
// acronyms start their own word, so "address2" is "Address 2" and
// "HTTPHeaders" is "Http Headers".
func DefaultLabeler(name string) string {
	words := nameWords(name)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

// LabelFromName returns a decorator that fills empty labels from the field
// name using labeler, or DefaultLabeler when labeler is nil. Unnamed child
// schemas are left alone.
func LabelFromName(labeler func(string) string) Decorator {
	if labeler == nil {
		labeler = DefaultLabeler
	}
	return DecoratorFunc(func(schema *FieldSchema) error {
		if strings.TrimSpace(schema.Label) == "" && schema.Name != "" {
			schema.Label = labeler(schema.Name)
		}
		return nil
	})
}

func nameWords(name string) []string {
	runes := []rune(name)
	var (
		words []string
		start = -1
	)
	for i, r := range runes {
		if isSeparator(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start >= 0 && wordBreak(runes, i) {
			words = append(words, string(runes[start:i]))
			start = -1
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}
	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// wordBreak reports whether runes[i] opens a new word. i is never zero.
func wordBreak(runes []rune, i int) bool {
	prev, r := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsDigit(prev) != unicode.IsDigit(r):
		return unicode.IsLetter(prev) || unicode.IsLetter(r)
	case unicode.IsUpper(prev) && unicode.IsUpper(r):
		// Last capital of an acronym followed by lower case: "HTTPHeaders".
		return i+1 < len(runes) && unicode.IsLower(runes[i+1])
	}
	return false
}

func capitalize(word string) string {
	lower := strings.ToLower(word)
	first, size := utf8.DecodeRuneInString(lower)
	if first == utf8.RuneError {
		return lower
	}
	return string(unicode.ToTitle(first)) + lower[size:]
}
