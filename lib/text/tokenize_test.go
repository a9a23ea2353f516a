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
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tokenize(t *testing.T) {
	tokenizer := NewTokenizer(DefaultTokenizerConfig())

	for _, test := range []struct {
		name           string
		text           string
		expectedText   []string
		expectedOffset [][2]int
	}{
		{
			name:           "repeated punctuation is one suffix token",
			text:           "wow!!!",
			expectedText:   []string{"wow", "!!!"},
			expectedOffset: [][2]int{{0, 3}, {3, 6}},
		},
		{
			name:           "emoticon between words",
			text:           "happy :) today",
			expectedText:   []string{"happy", ":)", "today"},
			expectedOffset: [][2]int{{0, 5}, {6, 8}, {9, 14}},
		},
		{
			name:           "emoticon glued to letters is not split out",
			text:           "a:)b",
			expectedText:   []string{"a:)b"},
			expectedOffset: [][2]int{{0, 4}},
		},
		{
			name:           "emoticon followed by a letter is not a whole token",
			text:           ":)b",
			expectedText:   []string{":)b"},
			expectedOffset: [][2]int{{0, 3}},
		},
		{
			name:           "emoticon followed by punctuation keeps the chunk whole",
			text:           ":D!!",
			expectedText:   []string{":D!!"},
			expectedOffset: [][2]int{{0, 4}},
		},
		{
			name:           "nosed emoticon",
			text:           "sad :-( day",
			expectedText:   []string{"sad", ":-(", "day"},
			expectedOffset: [][2]int{{0, 3}, {4, 7}, {8, 11}},
		},
		{
			name:           "hyphenated word",
			text:           "well-known",
			expectedText:   []string{"well", "-", "known"},
			expectedOffset: [][2]int{{0, 4}, {4, 5}, {5, 10}},
		},
		{
			name:           "tilde infix",
			text:           "10~20",
			expectedText:   []string{"10", "~", "20"},
			expectedOffset: [][2]int{{0, 2}, {2, 3}, {3, 5}},
		},
		{
			name:           "infix at either end drops the empty side",
			text:           "-abc-",
			expectedText:   []string{"-", "abc", "-"},
			expectedOffset: [][2]int{{0, 1}, {1, 4}, {4, 5}},
		},
		{
			name:           "url is a single token",
			text:           "see https://t.co/ab-cd!",
			expectedText:   []string{"see", "https://t.co/ab-cd!"},
			expectedOffset: [][2]int{{0, 3}, {4, 23}},
		},
		{
			name:           "unknown symbol",
			text:           "+_O lol",
			expectedText:   []string{"+_O", "lol"},
			expectedOffset: [][2]int{{0, 3}, {4, 7}},
		},
		{
			name:           "quotes are split off both ends",
			text:           `"hello"`,
			expectedText:   []string{`"`, "hello", `"`},
			expectedOffset: [][2]int{{0, 1}, {1, 6}, {6, 7}},
		},
		{
			name:           "closing bracket is not a suffix",
			text:           "(wow)",
			expectedText:   []string{"(", "wow)"},
			expectedOffset: [][2]int{{0, 1}, {1, 5}},
		},
		{
			name:           "prefix and suffix with nothing between",
			text:           "(!!",
			expectedText:   []string{"(", "!!"},
			expectedOffset: [][2]int{{0, 1}, {1, 3}},
		},
		{
			name:           "punctuation only chunk",
			text:           "#$%",
			expectedText:   []string{"#$%"},
			expectedOffset: [][2]int{{0, 3}},
		},
		{
			name:           "suffix only chunk",
			text:           "...",
			expectedText:   []string{"..."},
			expectedOffset: [][2]int{{0, 3}},
		},
		{
			name:           "offsets count characters not bytes",
			text:           "café :D",
			expectedText:   []string{"café", ":D"},
			expectedOffset: [][2]int{{0, 4}, {5, 7}},
		},
		{
			name:           "surrounding whitespace",
			text:           "  spaced\tout\n",
			expectedText:   []string{"spaced", "out"},
			expectedOffset: [][2]int{{2, 8}, {9, 12}},
		},
		{
			name:           "special case is exact match",
			text:           "I've",
			expectedText:   []string{"I've"},
			expectedOffset: [][2]int{{0, 4}},
		},
	} {
		tokens := tokenizer.Tokenize(test.text)

		require.Equal(t, len(test.expectedText), len(tokens), test.name)
		for i, tok := range tokens {
			assert.Equal(t, test.expectedText[i], tok.Text, test.name)
			assert.Equal(t, test.expectedOffset[i], [2]int{tok.Start, tok.End}, test.name)
		}
	}
}

func Test_Tokenize_Empty(t *testing.T) {
	tokenizer := NewTokenizer(DefaultTokenizerConfig())

	assert.Empty(t, tokenizer.Tokenize(""))
	assert.Empty(t, tokenizer.Tokenize(" \t\n "))
}

func Test_Tokenize_SpecialCase(t *testing.T) {
	tokenizer := NewTokenizer(DefaultTokenizerConfig())

	tokens := tokenizer.Tokenize("i've")

	require.Len(t, tokens, 2)
	assert.Equal(t, Token{Text: "i", Start: 0, End: 1, Kind: SpecialToken, Lemma: "i", POS: "PRON"}, tokens[0])
	assert.Equal(t, Token{Text: "have", Start: 1, End: 4, Kind: SpecialToken}, tokens[1])

	tokens = tokenizer.Tokenize("so i've been")
	assert.Equal(t, []string{"so", "i", "have", "been"}, tokenizer.Words("so i've been"))
	assert.Equal(t, 3, tokens[1].Start)
	assert.Equal(t, 7, tokens[2].End)
	assert.Equal(t, 8, tokens[3].Start)
}

func Test_Tokenize_Kinds(t *testing.T) {
	tokenizer := NewTokenizer(DefaultTokenizerConfig())

	tokens := tokenizer.Tokenize("(well-done!! http://x.co :P :-/ +_O")
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}

	assert.Equal(t, []TokenKind{
		PrefixToken, WordToken, InfixToken, WordToken, SuffixToken,
		URLToken, EmoticonToken, NosedEmoticonToken, UnknownSymbolToken,
	}, kinds)
}

func Test_Tokenize_Properties(t *testing.T) {
	tokenizer := NewTokenizer(DefaultTokenizerConfig())

	for _, text := range []string{
		"@user lol that was sooo good!!! :) http://t.co/xyz",
		`RT "breaking" well-known  café closes ~ 10~20 people :-( #sad`,
		"(wow) ... a:)b -abc- :'D ://",
		"ωμέγα-λόγος!? '' \"\"",
	} {
		tokens := tokenizer.Tokenize(text)
		runes := []rune(text)

		prevEnd := 0
		for _, tok := range tokens {
			assert.True(t, tok.Start >= prevEnd, "tokens overlap in %q", text)
			assert.Equal(t, len([]rune(tok.Text)), tok.End-tok.Start, text)
			assert.Equal(t, tok.Text, string(runes[tok.Start:tok.End]), text)
			prevEnd = tok.End
		}

		// tokenizing the tokens again gives the same tokens
		words := tokenizer.Words(text)
		assert.Equal(t, words, tokenizer.Words(strings.Join(words, " ")), text)
	}
}

func Test_whitespaceChunks(t *testing.T) {
	assert.Equal(t, []chunk{
		{text: "ab", runeStart: 1},
		{text: "çd", runeStart: 4},
	}, whitespaceChunks(" ab\tçd "))
	assert.Equal(t, chunks(" ab\tçd "), whitespaceChunks(" ab\tçd "))

	for _, text := range []string{
		"x \u0301y",
		"x \u00adb",
		"a \u200db",
		"a  \u200d",
		"\u0301 a\t\u00ad",
	} {
		assert.Equal(t, whitespaceChunks(text), chunks(text), "%q", text)
	}
}

func Test_Tokenize_CoversNonSpace(t *testing.T) {
	tokenizer := NewTokenizer(DefaultTokenizerConfig())

	for _, text := range []string{
		"x \u0301y",
		"x \u00adb",
		"a \u200db :)",
		"i've \u200dseen",
	} {
		runes := []rune(text)
		covered := make([]bool, len(runes))
		for _, tok := range tokenizer.Tokenize(text) {
			for i := tok.Start; i < tok.End; i++ {
				covered[i] = true
			}
		}
		for i, r := range runes {
			assert.True(t, covered[i] || unicode.IsSpace(r), "rune %d of %q not covered", i, text)
		}
	}
}

func Test_Tokenize_SpecialTokenText(t *testing.T) {
	tokenizer := NewTokenizer(DefaultTokenizerConfig())

	tokens := tokenizer.Tokenize("so i've")
	require.Len(t, tokens, 3)

	assert.Equal(t, WordToken, tokens[0].Kind)
	assert.Equal(t, "have", tokens[2].Text)
	assert.Equal(t, SpecialToken, tokens[2].Kind)
	assert.Equal(t, "'ve", string([]rune("so i've")[tokens[2].Start:tokens[2].End]))
	assert.NotEqual(t, len([]rune(tokens[2].Text)), tokens[2].End-tokens[2].Start)
}
