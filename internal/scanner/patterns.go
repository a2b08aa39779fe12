package scanner

import "regexp"

// MessagePatterns are the regexes applied to raw commit messages.
var MessagePatterns = map[string]string{
	// Fix-related keywords, matched case-insensitively on whole words
	"Fix Keyword": `(?i)\b(fix|fixes|fixed|bug|issue)\b`,

	// Anything that is not a letter, digit or underscore
	"Non Word": `[^\p{L}\p{N}_]+`,
}

// ActionWords are counted once per message that mentions them.
var ActionWords = []string{"add", "update", "fix", "remove", "implement", "refactor", "change", "merge"}

// StopWords are dropped before word frequencies are computed.
var StopWords = toSet([]string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your",
	"yours", "yourself", "yourselves", "he", "him", "his", "himself", "she",
	"her", "hers", "herself", "it", "its", "itself", "they", "them", "their",
	"theirs", "themselves", "what", "which", "who", "whom", "this", "that",
	"these", "those", "am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing", "a", "an",
	"the", "and", "but", "if", "or", "because", "as", "until", "while", "of",
	"at", "by", "for", "with", "about", "against", "between", "into",
	"through", "during", "before", "after", "above", "below", "to", "from",
	"up", "down", "in", "out", "on", "off", "over", "under", "again",
	"further", "then", "once", "here", "there", "when", "where", "why", "how",
	"all", "any", "both", "each", "few", "more", "most", "other", "some",
	"such", "no", "nor", "not", "only", "own", "same", "so", "than", "too",
	"very", "s", "t", "can", "will", "just", "don", "should", "now", "d",
	"ll", "m", "o", "re", "ve", "y", "ain", "aren", "couldn", "didn", "doesn",
	"hadn", "hasn", "haven", "isn", "ma", "mightn", "mustn", "needn", "shan",
	"shouldn", "wasn", "weren", "won", "wouldn",
})

// ShortMessageLength is the length below which a message counts as short.
const ShortMessageLength = 10

var (
	fixPattern     = regexp.MustCompile(MessagePatterns["Fix Keyword"])
	nonWordPattern = regexp.MustCompile(MessagePatterns["Non Word"])
	actionPatterns = compileActions(ActionWords)
)

func compileActions(words []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(words))
	for _, w := range words {
		patterns[w] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
