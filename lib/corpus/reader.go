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

package corpus

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/text"
)

// NERTrainFile is the file read from a NER corpus directory.
const NERTrainFile = "train"

const maxLineSize = 1024 * 1024

// TaggedWord is one line of a CONLL corpus.
type TaggedWord struct {
	Surface string `json:"surface"`
	Tag     string `json:"tag"`
}

// Sentence is the run of lines between two blank lines.
type Sentence []TaggedWord

// Surfaces returns the words of s in order.
func (s Sentence) Surfaces() []string {
	res := make([]string, len(s))
	for i, w := range s {
		res[i] = w.Surface
	}
	return res
}

// Tags returns the tag of every word of s.
func (s Sentence) Tags() []string {
	res := make([]string, len(s))
	for i, w := range s {
		res[i] = w.Tag
	}
	return res
}

// MalformedPolicy decides what happens to a line with a single field.
type MalformedPolicy string

const (
	// SkipMalformed drops the line and logs a warning.
	SkipMalformed MalformedPolicy = "skip"
	// BreakOnMalformed ends the current sentence, as a blank line would.
	BreakOnMalformed MalformedPolicy = "break"
	// FailOnMalformed stops reading with a *MalformedLineError.
	FailOnMalformed MalformedPolicy = "fail"
)

// Policy controls how a corpus is read. An unset Malformed behaves like SkipMalformed.
type Policy struct {
	Malformed MalformedPolicy `mapstructure:"malformed"`
	// KeepEmpty keeps the empty sentences produced by consecutive blank lines or a
	// trailing blank line.
	KeepEmpty bool `mapstructure:"keep_empty"`
	// Normalize applies text.NormalizeTweet to every surface.
	Normalize bool `mapstructure:"normalize"`
}

// DefaultPolicy skips malformed lines with a warning and drops empty sentences.
func DefaultPolicy() Policy {
	return Policy{Malformed: SkipMalformed}
}

// Read returns every sentence in the corpus file at path. Nothing is returned on error.
func Read(path string, policy Policy) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	sentences, err := ReadFrom(f, policy)
	if err != nil {
		var malformed *MalformedLineError
		if errors.As(err, &malformed) {
			return nil, errors.Wrapf(err, "reading %q", path)
		}
		return nil, &FileAccessError{Path: path, Err: err}
	}

	log.Info().Str("path", path).Int("sentences", len(sentences)).Msg("corpus read")
	return sentences, nil
}

// ReadAll reads each file in turn and concatenates their sentences.
func ReadAll(paths []string, policy Policy) ([]Sentence, error) {
	var res []Sentence
	for _, path := range paths {
		sentences, err := Read(path, policy)
		if err != nil {
			return nil, err
		}
		res = append(res, sentences...)
	}
	return res, nil
}

// ReadNER reads the training file of the NER corpus in dir.
func ReadNER(dir string, policy Policy) ([]Sentence, error) {
	return Read(filepath.Join(dir, NERTrainFile), policy)
}

// ReadFrom reads every sentence from r.
func ReadFrom(r io.Reader, policy Policy) ([]Sentence, error) {
	var sentences []Sentence
	err := ReadWithCallback(r, policy, func(s Sentence) error {
		sentences = append(sentences, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sentences, nil
}

// ReadWithCallback reads CONLL lines from r and calls onSentence for every sentence.
// Lines hold a surface and a tag separated by whitespace; further columns are ignored.
// The sentence being built when r ends is passed to onSentence like any other.
func ReadWithCallback(r io.Reader, policy Policy, onSentence func(Sentence) error) error {
	scn := bufio.NewScanner(r)
	scn.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	emit := func(s Sentence) error {
		if len(s) == 0 && !policy.KeepEmpty {
			return nil
		}
		return onSentence(s)
	}

	var current Sentence
	row := 0
	for scn.Scan() {
		row++
		fields := strings.Fields(scn.Text())

		switch {
		case len(fields) == 0:
			if err := emit(current); err != nil {
				return err
			}
			current = nil
		case len(fields) == 1:
			switch policy.Malformed {
			case BreakOnMalformed:
				if err := emit(current); err != nil {
					return err
				}
				current = nil
			case FailOnMalformed:
				return &MalformedLineError{Line: row, Text: scn.Text()}
			default:
				log.Warn().Int("row", row).Str("line", scn.Text()).Msg("skipping corpus line without a tag")
			}
		default:
			surface := fields[0]
			if policy.Normalize {
				surface = normalizeSurface(surface)
			}
			current = append(current, TaggedWord{Surface: surface, Tag: fields[1]})
		}
	}
	if err := scn.Err(); err != nil {
		return errors.Wrapf(err, "scanning corpus at row %d", row)
	}

	return emit(current)
}

// surfaceSpace stands in for whitespace that normalisation puts inside a surface
// ("New&nbsp;York"), which would otherwise split one corpus word in two.
const surfaceSpace = '_'

func normalizeSurface(surface string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return surfaceSpace
		}
		return r
	}, text.NormalizeTweet(surface))
}
