/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/segment"
	"github.com/rs/zerolog/log"
)

// Token is a piece of a text. Start and End are character (rune) offsets into the text
// that was tokenized, and for every Kind but SpecialToken, Text is exactly text[Start:End].
// A SpecialToken carries the table's fixed orth as Text, which may differ from the
// characters it covers ("have" for "'ve"), so End-Start need not equal its length.
type Token struct {
	Text  string    `json:"text"`
	Start int       `json:"start"`
	End   int       `json:"end"`
	Kind  TokenKind `json:"kind"`
	Lemma string    `json:"lemma,omitempty"`
	POS   string    `json:"pos,omitempty"`
}

// TokenizerConfig holds the rules and special cases a Tokenizer is built from.
type TokenizerConfig struct {
	Rules        *RuleSet
	SpecialCases *SpecialCases
}

// DefaultTokenizerConfig returns the tweet rules with the default special cases.
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{
		Rules:        DefaultRuleSet(),
		SpecialCases: DefaultSpecialCases(),
	}
}

// Tokenizer splits tweet text into tokens. It holds no mutable state and is safe for
// concurrent use.
type Tokenizer struct {
	rules        *RuleSet
	specialCases *SpecialCases
}

// NewTokenizer returns a Tokenizer for conf. Missing rules fall back to DefaultRuleSet and
// a missing table to an empty one.
func NewTokenizer(conf TokenizerConfig) *Tokenizer {
	t := &Tokenizer{
		rules:        conf.Rules,
		specialCases: conf.SpecialCases,
	}
	if t.rules == nil {
		t.rules = DefaultRuleSet()
	}
	if t.specialCases == nil {
		t.specialCases = NewSpecialCases(false)
	}
	return t
}

// Tokenize splits text on whitespace, then splits each chunk by, in order: the special
// case table, the whole-token patterns, a leading prefix and trailing suffix, and infixes.
func (t *Tokenizer) Tokenize(text string) []Token {
	var tokens []Token
	for _, c := range chunks(text) {
		tokens = t.tokenizeChunk(c, tokens)
	}
	return tokens
}

// Words returns the text of each token.
func (t *Tokenizer) Words(text string) []string {
	tokens := t.Tokenize(text)
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
	}
	return words
}

func (t *Tokenizer) tokenizeChunk(c chunk, tokens []Token) []Token {
	if split, ok := t.specialCases.Lookup(c.text); ok {
		return appendSpecialCase(c, split, tokens)
	}

	if kind, ok := t.rules.MatchToken(c.text); ok {
		return append(tokens, c.token(0, len(c.text), kind))
	}

	start, end := 0, len(c.text)
	var prefix, suffix *Token
	if n := t.rules.MatchPrefix(c.text); n > 0 {
		tok := c.token(0, n, PrefixToken)
		prefix = &tok
		start = n
	}
	if start < end {
		if n := t.rules.MatchSuffix(c.text[start:]); n > 0 {
			tok := c.token(end-n, end, SuffixToken)
			suffix = &tok
			end -= n
		}
	}

	if prefix != nil {
		tokens = append(tokens, *prefix)
	}
	tokens = t.appendInfixSplit(c, start, end, tokens)
	if suffix != nil {
		tokens = append(tokens, *suffix)
	}
	return tokens
}

// appendInfixSplit splits c.text[start:end] around each infix. Empty pieces either side of
// an infix are dropped.
func (t *Tokenizer) appendInfixSplit(c chunk, start, end int, tokens []Token) []Token {
	if start >= end {
		return tokens
	}
	last := start
	for _, loc := range t.rules.FindInfixes(c.text[start:end]) {
		infixStart, infixEnd := start+loc[0], start+loc[1]
		if infixStart > last {
			tokens = append(tokens, c.token(last, infixStart, WordToken))
		}
		tokens = append(tokens, c.token(infixStart, infixEnd, InfixToken))
		last = infixEnd
	}
	if last < end {
		tokens = append(tokens, c.token(last, end, WordToken))
	}
	return tokens
}

// appendSpecialCase lays the split out left to right by orth length. The last token covers
// whatever remains of the chunk.
func appendSpecialCase(c chunk, split []SpecialCase, tokens []Token) []Token {
	chunkLen := utf8.RuneCountInString(c.text)
	pos := 0
	for i, sc := range split {
		end := pos + utf8.RuneCountInString(sc.Orth)
		if end > chunkLen || i == len(split)-1 {
			end = chunkLen
		}
		tokens = append(tokens, Token{
			Text:  sc.Orth,
			Start: c.runeStart + pos,
			End:   c.runeStart + end,
			Kind:  SpecialToken,
			Lemma: sc.Lemma,
			POS:   sc.POS,
		})
		pos = end
	}
	return tokens
}

// chunk is a maximal run of non-whitespace characters.
type chunk struct {
	text      string
	runeStart int
}

// token builds a token from the byte range [start, end) of the chunk.
func (c chunk) token(start, end int, kind TokenKind) Token {
	runeStart := c.runeStart + utf8.RuneCountInString(c.text[:start])
	return Token{
		Text:  c.text[start:end],
		Start: runeStart,
		End:   runeStart + utf8.RuneCountInString(c.text[start:end]),
		Kind:  kind,
	}
}

// chunks splits text on whitespace using the word segmenter. Only whitespace runes separate
// chunks: a segment may open with a space and carry on with combining or format characters
// (UAX#29 WB4), and those characters start the next chunk.
func chunks(text string) []chunk {
	segmenter := segment.NewWordSegmenterDirect([]byte(text))

	var spans [][2]int
	position := 0
	chunkStart := -1
	for segmenter.Segment() {
		segmentBytes := segmenter.Bytes()
		if !startsWithSpace(segmentBytes) {
			if chunkStart < 0 {
				chunkStart = position
			}
			position += len(segmentBytes)
			continue
		}
		for i, r := range string(segmentBytes) {
			if unicode.IsSpace(r) {
				if chunkStart >= 0 {
					spans = append(spans, [2]int{chunkStart, position + i})
					chunkStart = -1
				}
			} else if chunkStart < 0 {
				chunkStart = position + i
			}
		}
		position += len(segmentBytes)
	}
	if err := segmenter.Err(); err != nil || position != len(text) {
		log.Debug().Err(err).Msg("word segmenter failed, splitting on whitespace")
		return whitespaceChunks(text)
	}
	if chunkStart >= 0 {
		spans = append(spans, [2]int{chunkStart, position})
	}

	res := make([]chunk, 0, len(spans))
	runeOffset, byteOffset := 0, 0
	for _, span := range spans {
		runeOffset += utf8.RuneCountInString(text[byteOffset:span[0]])
		res = append(res, chunk{text: text[span[0]:span[1]], runeStart: runeOffset})
		runeOffset += utf8.RuneCountInString(text[span[0]:span[1]])
		byteOffset = span[1]
	}
	return res
}

func startsWithSpace(segmentBytes []byte) bool {
	r, _ := utf8.DecodeRune(segmentBytes)
	return unicode.IsSpace(r)
}

func whitespaceChunks(text string) []chunk {
	var res []chunk
	start, startRune := -1, 0
	runeOffset := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				res = append(res, chunk{text: text[start:i], runeStart: startRune})
				start = -1
			}
		} else if start < 0 {
			start, startRune = i, runeOffset
		}
		runeOffset++
	}
	if start >= 0 {
		res = append(res, chunk{text: text[start:], runeStart: startRune})
	}
	return res
}
