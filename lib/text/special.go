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
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v2"
)

// SpecialCase is one token of a fixed split.
type SpecialCase struct {
	Orth  string `yaml:"orth"`
	Lemma string `yaml:"lemma,omitempty"`
	POS   string `yaml:"pos,omitempty"`
}

// SpecialCases maps a surface string to the tokens it is always split into. Matching is
// fixed when the table is made, so keys stored by Add are always found by Lookup.
type SpecialCases struct {
	caseInsensitive bool
	entries         map[string][]SpecialCase
}

// NewSpecialCases returns an empty table. With caseInsensitive, surfaces are matched after
// case folding.
func NewSpecialCases(caseInsensitive bool) *SpecialCases {
	return &SpecialCases{
		caseInsensitive: caseInsensitive,
		entries:         map[string][]SpecialCase{},
	}
}

// CaseInsensitive reports whether surfaces are matched after case folding.
func (sc *SpecialCases) CaseInsensitive() bool {
	return sc != nil && sc.caseInsensitive
}

// DefaultSpecialCases returns an exact match table of the contractions found in the
// twitter corpus.
func DefaultSpecialCases() *SpecialCases {
	sc := NewSpecialCases(false)
	AddDefaultSpecialCases(sc)
	return sc
}

// AddDefaultSpecialCases adds the default contractions to sc, keeping its matching mode.
func AddDefaultSpecialCases(sc *SpecialCases) {
	sc.Add("i've", []SpecialCase{
		{Orth: "i", Lemma: "i", POS: "PRON"},
		{Orth: "have"},
	})
}

// Add registers a split for surface, replacing any previous one.
func (sc *SpecialCases) Add(surface string, split []SpecialCase) {
	sc.entries[sc.key(surface)] = split
}

// Lookup returns the split registered for chunk, if any.
func (sc *SpecialCases) Lookup(chunk string) ([]SpecialCase, bool) {
	if sc == nil {
		return nil, false
	}
	split, ok := sc.entries[sc.key(chunk)]
	return split, ok
}

// Len is the number of surfaces in the table.
func (sc *SpecialCases) Len() int {
	return len(sc.entries)
}

func (sc *SpecialCases) key(surface string) string {
	if !sc.caseInsensitive {
		return surface
	}
	// a Caser holds state, so one is made per call
	return cases.Fold().String(surface)
}

// LoadSpecialCases adds the splits in the YAML file at path to sc.
//
// The file maps each surface to its list of tokens:
//
//	i've:
//	  - orth: i
//	    lemma: i
//	    pos: PRON
//	  - orth: have
func LoadSpecialCases(path string, sc *SpecialCases) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("could not find special cases at %v", path))
		return errors.Wrapf(err, "reading special cases %q", path)
	}

	var yamlCases map[string][]SpecialCase
	if err := yaml.Unmarshal(b, &yamlCases); err != nil {
		return errors.Wrapf(err, "parsing special cases %q", path)
	}

	for surface, split := range yamlCases {
		if len(split) == 0 {
			return errors.Errorf("special case %q in %q has no tokens", surface, path)
		}
		for _, tok := range split {
			if tok.Orth == "" {
				return errors.Errorf("special case %q in %q has a token without orth", surface, path)
			}
		}
		sc.Add(surface, split)
	}

	log.Info().Int("entries", len(yamlCases)).Str("path", path).Msg("special cases loaded")
	return nil
}
