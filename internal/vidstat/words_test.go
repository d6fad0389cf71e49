package vidstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	assert.Equal(t,
		[]string{"action", "movie", "the", "hero", "s", "return"},
		Tokens("Action_Movie_2020 the-HERO's Return!"),
	)
	assert.Empty(t, Tokens("2020 _ 42"))
}

func TestTopWordsScenario(t *testing.T) {
	titles := JoinTitles([]VideoRecord{{Title: "Action_Movie_2020"}, {Title: "Action_Hero_2021"}})

	got := TopWords(titles, 2)
	assert.Equal(t, []WordCount{
		{Word: "action", Count: 2},
		{Word: "action hero", Count: 1},
	}, got)
}

func TestFrequenciesCountsBigrams(t *testing.T) {
	got := Frequencies("cat dog cat dog")

	assert.Equal(t, []WordCount{
		{Word: "cat", Count: 2},
		{Word: "cat dog", Count: 2},
		{Word: "dog", Count: 2},
		{Word: "dog cat", Count: 1},
	}, got)
}

func TestFrequenciesCaseInsensitive(t *testing.T) {
	got := Frequencies("Trip TRIP trip")

	assert.Equal(t, WordCount{Word: "trip", Count: 3}, got[0])
	assert.Equal(t, WordCount{Word: "trip trip", Count: 2}, got[1])
	assert.Len(t, got, 2)
}

func TestTopWordsLimits(t *testing.T) {
	assert.Nil(t, TopWords("lots of words here", 0))
	assert.Len(t, TopWords("one two", 100), 3)
	assert.Empty(t, TopWords("1234 5678", 5))
}

func TestJoinTitles(t *testing.T) {
	assert.Equal(t, "a b c", JoinTitles([]VideoRecord{{Title: "a"}, {Title: "b"}, {Title: "c"}}))
	assert.Empty(t, JoinTitles(nil))
}
