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
	"regexp"
	"unicode"
	"unicode/utf8"
)

// TokenKind records which rule produced a token.
type TokenKind string

const (
	WordToken          TokenKind = "word"
	PrefixToken        TokenKind = "prefix"
	SuffixToken        TokenKind = "suffix"
	InfixToken         TokenKind = "infix"
	SpecialToken       TokenKind = "special"
	URLToken           TokenKind = "url"
	EmoticonToken      TokenKind = "emoticon"
	NosedEmoticonToken TokenKind = "nosed_emoticon"
	UnknownSymbolToken TokenKind = "unknown_symbol"
)

const (
	// quotes and brackets that open a word
	prefixPattern = `^[\[("']`
	// runs of sentence final punctuation, e.g. "!!!" or "?!"
	suffixPattern = `[!.?:"']*$`
	// hyphenated words, e.g. "well-known"
	infixPattern = `[-~]`

	urlPattern           = `^https?://`
	emoticonPattern      = `^(?::'*[D)(pP3]|:/+)`
	nosedEmoticonPattern = `^(?::-[D)(pP3]|:-/)`
	// came up in the twitter corpus as an opaque symbol
	unknownSymbolPattern = `^\+_O`
)

// RuleSet holds the boundary patterns used by the Tokenizer. A RuleSet is not modified
// after construction and may be shared between tokenizers.
type RuleSet struct {
	Prefix *regexp.Regexp
	Suffix *regexp.Regexp
	Infix  *regexp.Regexp

	URL           *regexp.Regexp
	Emoticon      *regexp.Regexp
	NosedEmoticon *regexp.Regexp
	UnknownSymbol *regexp.Regexp
}

// DefaultRuleSet returns the rules for tweet text.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Prefix:        regexp.MustCompile(prefixPattern),
		Suffix:        regexp.MustCompile(suffixPattern),
		Infix:         regexp.MustCompile(infixPattern),
		URL:           regexp.MustCompile(urlPattern),
		Emoticon:      regexp.MustCompile(emoticonPattern),
		NosedEmoticon: regexp.MustCompile(nosedEmoticonPattern),
		UnknownSymbol: regexp.MustCompile(unknownSymbolPattern),
	}
}

// MatchPrefix returns the byte length of the prefix at the start of chunk, or 0.
func (r *RuleSet) MatchPrefix(chunk string) int {
	loc := r.Prefix.FindStringIndex(chunk)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return loc[1]
}

// MatchSuffix returns the byte length of the suffix at the end of chunk. A zero length
// means there is no suffix.
func (r *RuleSet) MatchSuffix(chunk string) int {
	loc := r.Suffix.FindStringIndex(chunk)
	if loc == nil || loc[1] != len(chunk) {
		return 0
	}
	return loc[1] - loc[0]
}

// FindInfixes returns the byte locations of every infix in chunk.
func (r *RuleSet) FindInfixes(chunk string) [][]int {
	return r.Infix.FindAllStringIndex(chunk, -1)
}

// MatchToken tests the whole-token patterns against the start of chunk, in order of
// precedence: url, emoticon, nosed emoticon, unknown symbol. Emoticons must be followed by
// the end of the chunk, whitespace, or a character that is neither alphanumeric nor '-'.
func (r *RuleSet) MatchToken(chunk string) (TokenKind, bool) {
	if r.URL.MatchString(chunk) {
		return URLToken, true
	}
	if loc := r.Emoticon.FindStringIndex(chunk); loc != nil && emoticonBoundary(chunk, loc[1]) {
		return EmoticonToken, true
	}
	if loc := r.NosedEmoticon.FindStringIndex(chunk); loc != nil && emoticonBoundary(chunk, loc[1]) {
		return NosedEmoticonToken, true
	}
	if r.UnknownSymbol.MatchString(chunk) {
		return UnknownSymbolToken, true
	}
	return "", false
}

func emoticonBoundary(chunk string, end int) bool {
	if end >= len(chunk) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(chunk[end:])
	if unicode.IsSpace(next) {
		return true
	}
	return !isASCIIAlphaNumeric(next) && next != '-'
}

func isASCIIAlphaNumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
