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

// Package export writes training examples in the shapes the external trainer reads:
// one JSON object per line, plus a YAML manifest of the labels to register.
package export

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/annotation"
	"gopkg.in/yaml.v2"
)

// Manifest lists what the trainer has to register before training.
type Manifest struct {
	NERLabels []string          `yaml:"ner_labels,omitempty"`
	Tags      []string          `yaml:"tags,omitempty"`
	TagMap    annotation.TagMap `yaml:"tag_map,omitempty"`
	Counts    map[string]int    `yaml:"counts,omitempty"`
}

func WriteNER(w io.Writer, examples []annotation.NERExample) error {
	return writeLines(w, len(examples), func(i int) interface{} { return examples[i] })
}

func WriteTags(w io.Writer, examples []annotation.TaggingExample) error {
	return writeLines(w, len(examples), func(i int) interface{} { return examples[i] })
}

func WriteManifest(w io.Writer, m Manifest) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshalling manifest")
	}
	_, err = w.Write(b)
	return err
}

// WriteFile creates path and passes it to write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %q", path)
	}
	return f.Close()
}

func writeLines(w io.Writer, n int, line func(int) interface{}) error {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	for i := 0; i < n; i++ {
		if err := enc.Encode(line(i)); err != nil {
			return errors.Wrapf(err, "encoding example %d", i)
		}
	}
	return buf.Flush()
}
