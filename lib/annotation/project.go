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

package annotation

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/corpus"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/text"
)

// Outside is the tag of words that are not part of an entity.
const Outside = "O"

// EntitySpan marks the characters [Start, End) of an example's text as Label.
type EntitySpan struct {
	Start int
	End   int
	Label string
}

// MarshalJSON writes the span as a [start, end, label] triple.
func (e EntitySpan) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Start, e.End, e.Label})
}

func (e *EntitySpan) UnmarshalJSON(b []byte) error {
	var triple []json.RawMessage
	if err := json.Unmarshal(b, &triple); err != nil {
		return err
	}
	if len(triple) != 3 {
		return errors.Errorf("entity span %s is not a [start, end, label] triple", b)
	}
	if err := json.Unmarshal(triple[0], &e.Start); err != nil {
		return err
	}
	if err := json.Unmarshal(triple[1], &e.End); err != nil {
		return err
	}
	return json.Unmarshal(triple[2], &e.Label)
}

type NERExample struct {
	Text     string       `json:"text"`
	Entities []EntitySpan `json:"entities"`
}

type TaggingExample struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

// Text joins the sentence's surfaces with single spaces. The result is not tokenized, so
// it may split differently from the corpus words.
func Text(s corpus.Sentence) string {
	return strings.Join(s.Surfaces(), " ")
}

// ProjectTags pairs the sentence text with its tags, one per word.
func ProjectTags(s corpus.Sentence) TaggingExample {
	return TaggingExample{
		Text: Text(s),
		Tags: s.Tags(),
	}
}

// ProjectEntities emits one span for every word not tagged Outside. Adjacent words with
// the same entity are not merged: "New/B-LOC York/I-LOC" gives two spans.
func ProjectEntities(s corpus.Sentence) NERExample {
	entities := []EntitySpan{}
	offset := 0
	for _, w := range s {
		length := utf8.RuneCountInString(w.Surface)
		if w.Tag != Outside {
			entities = append(entities, EntitySpan{
				Start: offset,
				End:   offset + length,
				Label: w.Tag,
			})
		}
		// one separating space per word
		offset += length + 1
	}
	return NERExample{
		Text:     Text(s),
		Entities: entities,
	}
}

func BuildTaggerData(sentences []corpus.Sentence) []TaggingExample {
	res := make([]TaggingExample, len(sentences))
	for i, s := range sentences {
		res[i] = ProjectTags(s)
	}
	return res
}

func BuildNERData(sentences []corpus.Sentence) []NERExample {
	res := make([]NERExample, len(sentences))
	for i, s := range sentences {
		res[i] = ProjectEntities(s)
	}
	return res
}

// Labels returns the sorted set of entity labels, i.e. the labels a NER model is set up
// with before training.
func Labels(examples []NERExample) []string {
	set := map[string]struct{}{}
	for _, ex := range examples {
		for _, e := range ex.Entities {
			set[e.Label] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// TagSet returns the sorted set of tags used by examples.
func TagSet(examples []TaggingExample) []string {
	set := map[string]struct{}{}
	for _, ex := range examples {
		for _, tag := range ex.Tags {
			set[tag] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// CheckAlignment tokenizes the example's text and reports whether the tokenizer agrees
// with the corpus on where the words are. The tokenizer's words are returned either way.
func CheckAlignment(tokenizer *text.Tokenizer, ex TaggingExample) ([]string, bool) {
	words := tokenizer.Words(ex.Text)
	fields := strings.Fields(ex.Text)
	if len(words) != len(ex.Tags) || len(fields) != len(words) {
		return words, false
	}
	for i, w := range fields {
		if words[i] != w {
			return words, false
		}
	}
	return words, true
}

func sortedKeys(set map[string]struct{}) []string {
	res := make([]string, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
