package scanner

import (
	"testing"

	"github.com/gnomegl/gitdash/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("Fix: the parser's handling of UTF-8 in README.md (#42)")

	assert.Equal(t, []string{"fix", "parser", "handling", "utf", "readme"}, got)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("a to of"))
}

func TestWordFrequency(t *testing.T) {
	messages := []string{
		"Update README",
		"update tests for parser",
		"parser cleanup",
		"Update parser docs",
	}

	got := WordFrequency(messages, 3)

	assert.Equal(t, []models.WordCount{
		{Word: "update", Count: 3},
		{Word: "parser", Count: 3},
		{Word: "readme", Count: 1},
	}, got)
}

func TestWordFrequencyUnlimited(t *testing.T) {
	got := WordFrequency([]string{"alpha beta", "beta"}, -1)

	assert.Equal(t, []models.WordCount{{Word: "beta", Count: 2}, {Word: "alpha", Count: 1}}, got)
}

func TestActionCounts(t *testing.T) {
	messages := []string{
		"Add login page and add tests",
		"Fixed typo",
		"fix crash; FIX again",
		"Merge branch 'main'",
		"additional docs",
	}

	got := ActionCounts(messages)

	assert.Len(t, got, len(ActionWords))
	assert.Equal(t, 1, got["add"], "counted once per message, whole word only")
	assert.Equal(t, 1, got["fix"])
	assert.Equal(t, 1, got["merge"])
	assert.Equal(t, 0, got["refactor"])
}

func TestHasFixKeyword(t *testing.T) {
	assert.True(t, HasFixKeyword("Fixes #12"))
	assert.True(t, HasFixKeyword("closes ISSUE 4"))
	assert.False(t, HasFixKeyword("prefix handling"))
	assert.False(t, HasFixKeyword("debugger support"))
}

func TestIsShort(t *testing.T) {
	assert.True(t, IsShort("wip"))
	assert.True(t, IsShort("ünïcödé"))
	assert.False(t, IsShort("update docs"))
}
