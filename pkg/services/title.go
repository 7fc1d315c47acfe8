package services

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UntitledWorkflow is used when a prompt has no word long enough to name it.
const UntitledWorkflow = "Untitled Automation"

const (
	titleWordLimit = 4
	titleSuffix    = " Automation"
)

var titleStopWords = []string{"when", "with", "from", "that", "this", "will", "should", "would"}

// DeriveTitle names a workflow after the first four meaningful words of its
// prompt: words longer than three characters that are not stop words,
// lower-cased, with the first letter capitalised.
func DeriveTitle(prompt string) string {
	keywords := make([]string, 0, titleWordLimit)

	for _, word := range strings.Fields(strings.ToLower(prompt)) {
		if utf8.RuneCountInString(word) <= 3 || slices.Contains(titleStopWords, word) {
			continue
		}

		keywords = append(keywords, word)
		if len(keywords) == titleWordLimit {
			break
		}
	}

	if len(keywords) == 0 {
		return UntitledWorkflow
	}

	title := strings.Join(keywords, " ")
	first, size := utf8.DecodeRuneInString(title)

	return string(unicode.ToUpper(first)) + title[size:] + titleSuffix
}
