// Package lexical counts the tokens of free text by category. It is the
// tokenizer the aggregator uses to turn section level text changes into
// word, punctuation, sentence and paragraph counts.
package lexical

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/signadot/wikidiff/lang"
)

type Category string

const (
	Whitespace  Category = "Whitespace"
	Punctuation Category = "Punctuation"
	Word        Category = "Word"
	Character   Category = "Character"
	Sentence    Category = "Sentence"
	Paragraph   Category = "Paragraph"
)

// Categories returns the categories counted for lang, in report order.
func Categories(l string) []Category {
	unit := Word
	if lang.IsCharacterLanguage(l) {
		unit = Character
	}
	return []Category{Whitespace, Punctuation, unit, Sentence, Paragraph}
}

// Counts holds the occurrences of each token, by category.
type Counts map[Category]map[string]int

func (c Counts) add(cat Category, tok string) {
	m := c[cat]
	if m == nil {
		m = map[string]int{}
		c[cat] = m
	}
	m[tok]++
}

// Total is the number of tokens of cat.
func (c Counts) Total(cat Category) int {
	n := 0
	for _, k := range c[cat] {
		n += k
	}
	return n
}

// Minus returns, for each category, the number of token occurrences in c
// that are not matched by an occurrence in o.
func (c Counts) Minus(o Counts) map[Category]int {
	res := map[Category]int{}
	for cat, toks := range c {
		for tok, k := range toks {
			if d := k - o[cat][tok]; d > 0 {
				res[cat] += d
			}
		}
	}
	return res
}

var paragraphSep = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)

// Count tokenizes text, NFC normalized, according to lang. Character
// languages count grapheme clusters instead of words.
func Count(text, l string) Counts {
	text = norm.NFC.String(text)
	res := Counts{}
	chars := lang.IsCharacterLanguage(l)
	for _, para := range paragraphSep.Split(text, -1) {
		if p := strings.TrimSpace(para); p != "" {
			res.add(Paragraph, p)
		}
	}
	rest, state := text, -1
	var sentence string
	for len(rest) > 0 {
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		if s := strings.TrimSpace(sentence); s != "" {
			res.add(Sentence, s)
		}
	}
	if chars {
		countGraphemes(res, text)
	} else {
		countWords(res, text)
	}
	return res
}

func countWords(res Counts, text string) {
	rest, state := text, -1
	var word string
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		res.add(classify(word, Word), word)
	}
}

func countGraphemes(res Counts, text string) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		c := g.Str()
		res.add(classify(c, Character), c)
	}
}

// classify puts a segment in Whitespace or Punctuation when all of it
// is, and in unit otherwise.
func classify(seg string, unit Category) Category {
	space, punct := true, true
	for _, r := range seg {
		if !unicode.IsSpace(r) {
			space = false
		}
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			punct = false
		}
	}
	switch {
	case space:
		return Whitespace
	case punct:
		return Punctuation
	}
	return unit
}
