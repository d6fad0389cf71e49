package vidstat

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches maximal runs of ASCII letters.
var tokenPattern = regexp.MustCompile(`[a-zA-Z]+`)

// WordCount is a token or bigram with its number of occurrences.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Tokens extracts the lowercased letter runs of text in order.
func Tokens(text string) []string {
	tokens := tokenPattern.FindAllString(text, -1)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}

	return tokens
}

// Frequencies counts every token and every pair of adjacent tokens in text.
// The result is sorted by count, highest first, ties in lexicographic order.
func Frequencies(text string) []WordCount {
	tokens := Tokens(text)
	counts := make(map[string]int, 2*len(tokens))

	for i, tok := range tokens {
		counts[tok]++

		if i > 0 {
			counts[tokens[i-1]+" "+tok]++
		}
	}

	words := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, WordCount{Word: word, Count: count})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}

		return words[i].Word < words[j].Word
	})

	return words
}

// TopWords returns at most n of the most frequent tokens and bigrams in text.
// n == 0 performs no work and returns nil.
func TopWords(text string, n int) []WordCount {
	if n <= 0 {
		return nil
	}

	words := Frequencies(text)
	if len(words) > n {
		words = words[:n]
	}

	return words
}

// JoinTitles concatenates the titles of records with single spaces.
func JoinTitles(records []VideoRecord) string {
	titles := make([]string, len(records))
	for i, rec := range records {
		titles[i] = rec.Title
	}

	return strings.Join(titles, " ")
}
