package rank

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis/tokenizer/character"
)

// Splitter turns text into an ordered sequence of terms.
// No splitter lower-cases, stems or drops stop words.
type Splitter interface {
	Split(text string) []string
}

// SplitterKind names one of the built-in splitting policies.
type SplitterKind string

const (
	// SplitWhitespace splits on runs of whitespace.
	SplitWhitespace SplitterKind = "whitespace"
	// SplitChar emits one term per rune.
	SplitChar SplitterKind = "char"
	// SplitPunctuation splits on whitespace and on punctuation or symbol
	// runes, which are dropped. Used for code where identifiers are often
	// punctuation-delimited.
	SplitPunctuation SplitterKind = "punctuation"
)

// NewSplitter returns the splitter for kind. Unknown kinds fall back to
// whitespace splitting.
func NewSplitter(kind SplitterKind) Splitter {
	switch kind {
	case SplitChar:
		return CharSplitter{}
	case SplitPunctuation:
		return NewPunctuationSplitter()
	default:
		return NewWhitespaceSplitter()
	}
}

// WhitespaceSplitter splits on runs of whitespace.
type WhitespaceSplitter struct {
	tokenizer *character.CharacterTokenizer
}

// NewWhitespaceSplitter creates a WhitespaceSplitter.
func NewWhitespaceSplitter() *WhitespaceSplitter {
	return &WhitespaceSplitter{
		tokenizer: character.NewCharacterTokenizer(func(r rune) bool {
			return !unicode.IsSpace(r)
		}),
	}
}

func (s *WhitespaceSplitter) Split(text string) []string {
	return tokenize(s.tokenizer, text)
}

// CharSplitter emits one term per Unicode scalar.
type CharSplitter struct{}

func (CharSplitter) Split(text string) []string {
	terms := make([]string, 0, len(text))
	for _, r := range text {
		terms = append(terms, string(r))
	}
	return terms
}

// PunctuationSplitter splits on whitespace and punctuation boundaries.
type PunctuationSplitter struct {
	tokenizer *character.CharacterTokenizer
}

// NewPunctuationSplitter creates a PunctuationSplitter.
func NewPunctuationSplitter() *PunctuationSplitter {
	return &PunctuationSplitter{
		tokenizer: character.NewCharacterTokenizer(func(r rune) bool {
			return !unicode.IsSpace(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r)
		}),
	}
}

func (s *PunctuationSplitter) Split(text string) []string {
	return tokenize(s.tokenizer, text)
}

// tokenize runs a bleve character tokenizer over text. The tokenizer stops
// at the first utf8.RuneError, so invalid UTF-8 and U+FFFD become spaces.
func tokenize(t *character.CharacterTokenizer, text string) []string {
	if text == "" {
		return nil
	}
	clean := strings.ReplaceAll(strings.ToValidUTF8(text, " "), string(utf8.RuneError), " ")
	stream := t.Tokenize([]byte(clean))
	terms := make([]string, 0, len(stream))
	for _, tok := range stream {
		terms = append(terms, string(tok.Term))
	}
	return terms
}
