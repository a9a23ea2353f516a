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
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// TagInfo is the coarse part of speech and morphological features a fine grained tag
// stands for.
type TagInfo struct {
	POS      string            `yaml:"pos" json:"pos"`
	Features map[string]string `yaml:"features,omitempty" json:"features,omitempty"`
}

// TagMap maps corpus tags to TagInfo. The tagger trainer registers one label per entry.
type TagMap map[string]TagInfo

// DefaultTagMap returns the mapping of the twitter POS tag set to universal POS tags.
func DefaultTagMap() TagMap {
	return TagMap{
		"N": {POS: "NOUN"},
		"V": {POS: "VERB"},
		"S": {POS: "ADJ", Features: map[string]string{"PronType": "prs", "Poss": "yes"}},
		"O": {POS: "ADJ"},
		"^": {POS: "PROPN"},
		"Z": {POS: "ADJ"},
		"A": {POS: "ADJ"},
		"R": {POS: "ADV"},
		"!": {POS: "PUNCT", Features: map[string]string{"PunctType": "Excl"}},
		"D": {POS: "DET"},
		"P": {POS: "ADP"},
		"&": {POS: "CCONJ"},
		"T": {POS: "VERB"},
		"X": {POS: "ADJ"},
		"#": {POS: "SYM", Features: map[string]string{"SymType": "numbersign"}},
		"@": {POS: "PROPN"},
		"~": {POS: "CCONJ"},
		"E": {POS: "SYM", Features: map[string]string{"Style": "Expr"}},
		"U": {POS: "X"},
		"$": {POS: "NUM"},
		",": {POS: "PUNCT"},
		"G": {POS: "X"},
		"L": {POS: "VERB", Features: map[string]string{"Style": "colloquial", "typo": "yes"}},
		"M": {POS: "VERB"},
		"Y": {POS: "ADV", Features: map[string]string{"AdvType": "ex"}},
	}
}

// LoadTagMap reads a YAML tag map from path.
func LoadTagMap(path string) (TagMap, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tag map %q", path)
	}
	var tm TagMap
	if err := yaml.Unmarshal(b, &tm); err != nil {
		return nil, errors.Wrapf(err, "parsing tag map %q", path)
	}
	return tm, nil
}

func (tm TagMap) Lookup(tag string) (TagInfo, bool) {
	info, ok := tm[tag]
	return info, ok
}

// Missing returns the tags, in order of first appearance, that have no entry in the map.
// Examples are never filtered on it; it is only reported.
func (tm TagMap) Missing(tags []string) []string {
	seen := map[string]struct{}{}
	var res []string
	for _, tag := range tags {
		if _, ok := tm[tag]; ok {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		res = append(res, tag)
	}
	return res
}
