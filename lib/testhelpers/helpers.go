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

package testhelpers

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/corpus"
)

// Sent builds a sentence from alternating surface, tag pairs.
func Sent(pairs ...string) corpus.Sentence {
	if len(pairs)%2 != 0 {
		panic("testhelpers.Sent needs surface, tag pairs")
	}
	s := make(corpus.Sentence, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		s = append(s, corpus.TaggedWord{Surface: pairs[i], Tag: pairs[i+1]})
	}
	return s
}

// Conll renders sentences in CONLL format, each followed by a blank line.
func Conll(sentences ...corpus.Sentence) string {
	var b strings.Builder
	for _, s := range sentences {
		for _, w := range s {
			b.WriteString(w.Surface)
			b.WriteByte('\t')
			b.WriteString(w.Tag)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteCorpus writes content to dir/name and returns the file path.
func WriteCorpus(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
