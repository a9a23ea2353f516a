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

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/annotation"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/corpus"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/export"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/text"
)

// config structure
type prepareConfig struct {
	lib.BaseConfig `mapstructure:",squash"`
	Corpus         corpus.Policy
	Tokenizer      lib.TokenizerSettings
	Tagger         struct {
		Files  []string
		Output string
	}
	NER struct {
		Dir    string
		Output string
	}
	TagMap   string `mapstructure:"tag_map"`
	Manifest string
}

var config prepareConfig

func initConfig() {
	err := lib.InitializeConfig("./config/prepare.yml", map[string]interface{}{
		"log_level": "info",
		"corpus": map[string]interface{}{
			"malformed":  string(corpus.SkipMalformed),
			"keep_empty": false,
			"normalize":  false,
		},
		"tagger": map[string]interface{}{
			"files":  []string{"./data/daily547.conll", "./data/oct27.conll"},
			"output": "./out/tagger.jsonl",
		},
		"ner": map[string]interface{}{
			"dir":    "./data/ner",
			"output": "./out/ner.jsonl",
		},
		"manifest": "./out/manifest.yml",
	}, &config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func main() {
	initConfig()

	tokenizer, err := lib.NewTokenizer(config.Tokenizer)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	manifest, err := prepare(config, tokenizer)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	if err := export.WriteFile(config.Manifest, func(w io.Writer) error {
		return export.WriteManifest(w, manifest)
	}); err != nil {
		log.Fatal().Err(err).Send()
	}
	log.Info().Str("manifest", config.Manifest).Interface("counts", manifest.Counts).Msg("training data ready")
}

// prepare reads the configured corpora, writes their training examples and returns the
// manifest describing them. An empty file list or directory skips that corpus.
func prepare(conf prepareConfig, tokenizer *text.Tokenizer) (export.Manifest, error) {
	manifest := export.Manifest{Counts: map[string]int{}}

	if len(conf.Tagger.Files) > 0 {
		sentences, err := corpus.ReadAll(conf.Tagger.Files, conf.Corpus)
		if err != nil {
			return manifest, err
		}
		examples := annotation.BuildTaggerData(sentences)
		reportAlignment(tokenizer, examples)

		tagMap := annotation.DefaultTagMap()
		if conf.TagMap != "" {
			if tagMap, err = annotation.LoadTagMap(conf.TagMap); err != nil {
				return manifest, err
			}
		}
		manifest.Tags = annotation.TagSet(examples)
		manifest.TagMap = tagMap
		if missing := tagMap.Missing(manifest.Tags); len(missing) > 0 {
			log.Warn().Strs("tags", missing).Msg("tags without a tag map entry")
		}

		if err := export.WriteFile(conf.Tagger.Output, func(w io.Writer) error {
			return export.WriteTags(w, examples)
		}); err != nil {
			return manifest, err
		}
		manifest.Counts["tagger"] = len(examples)
	}

	if conf.NER.Dir != "" {
		sentences, err := corpus.ReadNER(conf.NER.Dir, conf.Corpus)
		if err != nil {
			return manifest, err
		}
		examples := annotation.BuildNERData(sentences)
		manifest.NERLabels = annotation.Labels(examples)

		if err := export.WriteFile(conf.NER.Output, func(w io.Writer) error {
			return export.WriteNER(w, examples)
		}); err != nil {
			return manifest, err
		}
		manifest.Counts["ner"] = len(examples)
	}

	return manifest, nil
}

// reportAlignment logs how many examples the tokenizer would split differently from the
// corpus.
func reportAlignment(tokenizer *text.Tokenizer, examples []annotation.TaggingExample) {
	misaligned := 0
	for _, ex := range examples {
		if words, ok := annotation.CheckAlignment(tokenizer, ex); !ok {
			misaligned++
			log.Debug().Str("text", ex.Text).Strs("tokens", words).Msg("tokenizer disagrees with corpus")
		}
	}
	if misaligned > 0 {
		log.Warn().Int("misaligned", misaligned).Int("examples", len(examples)).Msg("tokenizer and corpus segmentation differ")
	}
}
