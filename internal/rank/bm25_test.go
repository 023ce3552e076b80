package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc string

func (d doc) String() string { return string(d) }

var germanyCorpus = []doc{
	"Germany was founded in 1871",
	"Apples fall downwards",
	"What happened to Alan Turing?",
	"Google is searching for answers",
	"When was the first computer invented?",
}

func TestBM25_EmptyCorpus(t *testing.T) {
	r := NewBM25[doc](DefaultConfig())

	_, err := r.Rank("anything", nil, 0)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestBM25_CaseSensitiveQueryScoresZero(t *testing.T) {
	r := NewBM25[doc](DefaultConfig())

	// "germany" never matches "Germany": neither substring nor token match.
	// "search" is a substring of "searching" but never an exact token.
	results, err := r.Rank("some search about germany", germanyCorpus, 0)
	require.NoError(t, err)
	require.Len(t, results, len(germanyCorpus))
	for _, res := range results {
		assert.Zero(t, res.Score, "item %q", res.Item)
	}
}

func TestBM25_GermanyRanksFirst(t *testing.T) {
	r := NewBM25[doc](DefaultConfig())

	results, err := r.Rank("some search about Germany", germanyCorpus, 0)
	require.NoError(t, err)
	require.Len(t, results, len(germanyCorpus))

	assert.Equal(t, doc("Germany was founded in 1871"), results[0].Item)

	// idf = ln((5-1+0.5)/(1+0.5)+1) = ln 4; doc length 5, average 24/5.
	idf := math.Log(4)
	want := idf * 2.2 / (1 + 1.2*(0.25+0.75*5/4.8))
	assert.InDelta(t, want, results[0].Score, 1e-9)
	assert.InDelta(t, 1.3630603774, results[0].Score, 1e-6)

	for _, res := range results[1:] {
		assert.Zero(t, res.Score)
		assert.Greater(t, results[0].Score, res.Score)
	}
}

func TestBM25_Limit(t *testing.T) {
	r := NewBM25[doc](DefaultConfig())

	results, err := r.Rank("Germany", germanyCorpus, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, doc("Germany was founded in 1871"), results[0].Item)

	results, err = r.Rank("Germany", germanyCorpus, 50)
	require.NoError(t, err)
	assert.Len(t, results, len(germanyCorpus), "limit larger than corpus returns everything")
}

func TestBM25_EmptyQuery(t *testing.T) {
	r := NewBM25[doc](DefaultConfig())

	results, err := r.Rank("   ", germanyCorpus, 0)
	require.NoError(t, err)
	require.Len(t, results, len(germanyCorpus))
	for _, res := range results {
		assert.Zero(t, res.Score)
	}
}

func TestBM25_RepeatedQueryTermsCountOnce(t *testing.T) {
	r := NewBM25[doc](DefaultConfig())

	once, err := r.Rank("Germany", germanyCorpus, 1)
	require.NoError(t, err)
	twice, err := r.Rank("Germany Germany", germanyCorpus, 1)
	require.NoError(t, err)

	assert.Equal(t, once[0].Score, twice[0].Score)
}

func TestBM25_SortedAndNonNegative(t *testing.T) {
	corpus := []doc{
		"fix parser bug in parser",
		"parser",
		"add docs",
		"refactor the parser and the lexer",
		"",
		"bug bug bug",
	}
	r := NewBM25[doc](DefaultConfig())

	for _, q := range []string{"parser", "bug parser", "lexer docs", "missing", "the"} {
		results, err := r.Rank(q, corpus, 0)
		require.NoError(t, err)
		for i, res := range results {
			assert.GreaterOrEqual(t, res.Score, 0.0, "query %q", q)
			assert.False(t, math.IsNaN(res.Score))
			if i > 0 {
				assert.LessOrEqual(t, res.Score, results[i-1].Score, "query %q not sorted", q)
			}
		}
	}
}

func TestBM25_AllEmptyDocuments(t *testing.T) {
	r := NewBM25[doc](DefaultConfig())

	results, err := r.Rank("anything", []doc{"", ""}, 0)
	require.NoError(t, err)
	for _, res := range results {
		assert.Zero(t, res.Score)
	}
}

func TestBM25_Deterministic(t *testing.T) {
	r := NewBM25[doc](DefaultConfig())

	scores := func() map[doc]float64 {
		results, err := r.Rank("Turing computer Germany", germanyCorpus, 0)
		require.NoError(t, err)
		m := make(map[doc]float64)
		for _, res := range results {
			m[res.Item] = res.Score
		}
		return m
	}

	assert.Equal(t, scores(), scores())
}

func TestBM25_CustomParameters(t *testing.T) {
	corpus := []doc{"a b", "a b c d e f g h"}
	noNorm := NewBM25[doc](Config{K1: 1.2, B: 0})

	results, err := noNorm.Rank("a", corpus, 0)
	require.NoError(t, err)
	assert.Equal(t, results[0].Score, results[1].Score, "b=0 disables length normalization")

	withNorm := NewBM25[doc](Config{K1: 1.2, B: 1})
	results, err = withNorm.Rank("a", corpus, 0)
	require.NoError(t, err)
	assert.Equal(t, doc("a b"), results[0].Item, "shorter document wins with length normalization")
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestBM25_PunctuationSplitter(t *testing.T) {
	corpus := []doc{
		"return fmt.Errorf(\"bad\")",
		"log.Println(value)",
	}
	r := NewBM25[doc](Config{K1: DefaultK1, B: DefaultB, Splitter: NewPunctuationSplitter()})

	results, err := r.Rank("Println", corpus, 1)
	require.NoError(t, err)
	assert.Equal(t, doc("log.Println(value)"), results[0].Item)
	assert.Greater(t, results[0].Score, 0.0)
}
