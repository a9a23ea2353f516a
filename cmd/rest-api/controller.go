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

package main

import (
	"io"

	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/annotation"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/corpus"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/text"
)

type controller struct {
	tokenizer *text.Tokenizer
	policy    corpus.Policy
	tagMap    annotation.TagMap
}

func (c controller) Tokenize(in string, normalize bool) []text.Token {
	if normalize {
		in = text.NormalizeTweet(in)
	}
	tokens := c.tokenizer.Tokenize(in)
	if tokens == nil {
		tokens = []text.Token{}
	}
	return tokens
}

func (c controller) NERExamples(r io.Reader) ([]annotation.NERExample, error) {
	sentences, err := corpus.ReadFrom(r, c.policy)
	if err != nil {
		return nil, err
	}
	return annotation.BuildNERData(sentences), nil
}

func (c controller) TaggingExamples(r io.Reader) ([]annotation.TaggingExample, error) {
	sentences, err := corpus.ReadFrom(r, c.policy)
	if err != nil {
		return nil, err
	}
	return annotation.BuildTaggerData(sentences), nil
}

func (c controller) TagMap() annotation.TagMap {
	return c.tagMap
}
