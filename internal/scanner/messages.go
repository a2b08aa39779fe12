// Package scanner extracts keyword and vocabulary statistics from commit
// messages.
package scanner

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gnomegl/gitdash/internal/models"
)

// Tokenize lowercases message, splits it on non-word characters and drops
// stop words and tokens of two characters or fewer.
func Tokenize(message string) []string {
	fields := strings.Fields(nonWordPattern.ReplaceAllString(strings.ToLower(message), " "))

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 2 {
			continue
		}
		if _, stop := StopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// WordFrequency returns the n most common tokens across messages, most
// frequent first. Equal counts keep the order in which words were first seen.
func WordFrequency(messages []string, n int) []models.WordCount {
	counts := make(map[string]int)
	var order []string

	for _, msg := range messages {
		for _, tok := range Tokenize(msg) {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	freq := make([]models.WordCount, 0, len(order))
	for _, w := range order {
		freq = append(freq, models.WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(freq, func(i, j int) bool {
		return freq[i].Count > freq[j].Count
	})

	if n >= 0 && len(freq) > n {
		freq = freq[:n]
	}
	return freq
}

// ActionCounts reports, for every action word, how many messages mention it
// as a whole word. Every action word is present in the result.
func ActionCounts(messages []string) map[string]int {
	counts := make(map[string]int, len(ActionWords))
	for _, w := range ActionWords {
		counts[w] = 0
	}
	for _, msg := range messages {
		for w, re := range actionPatterns {
			if re.MatchString(msg) {
				counts[w]++
			}
		}
	}
	return counts
}

func HasFixKeyword(message string) bool {
	return fixPattern.MatchString(message)
}

func IsShort(message string) bool {
	return utf8.RuneCountInString(message) < ShortMessageLength
}
