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

package lib

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/text"
)

const configFlag = "config"

type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`
	// LogFormat is "json" (default) or "console".
	LogFormat string `mapstructure:"log_format"`
}

// TokenizerSettings is the config section describing how to build the tweet tokenizer.
type TokenizerSettings struct {
	// SpecialCases is an optional YAML file of extra special cases.
	SpecialCases    string `mapstructure:"special_cases"`
	CaseInsensitive bool   `mapstructure:"case_insensitive"`
}

/**
	InitializeConfig standardises config initialization across all apps.

	Config is read from a yml file, by default at defaultPath. The --config flag overrides
	the path. Keys in defaultConfig that are missing from the file keep their default.

	Env vars overwrite config keys that viper knows about (from the file or the defaults).
	Nested keys use "_", so CORPUS_MALFORMED sets corpus.malformed.

	targetStruct should be a pointer to a struct which the config can be unmarshalled to.
**/
func InitializeConfig(defaultPath string, defaultConfig map[string]interface{}, targetStruct interface{}) error {

	pflag.String(configFlag, defaultPath, "The config file path.")
	pflag.Parse()

	err := viper.BindPFlags(pflag.CommandLine)
	if err != nil {
		return err
	}

	configFile := viper.GetString(configFlag)
	if !filepath.IsAbs(configFile) {
		configFile, err = filepath.Abs(configFile)
		if err != nil {
			return err
		}
	}

	for k, v := range defaultConfig {
		viper.SetDefault(k, v)
	}

	viper.SetConfigName(strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile)))
	viper.AddConfigPath(filepath.Dir(configFile))

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Warn().Err(err).Msg("default settings applied")
	} else if err != nil {
		return err
	}

	var bc BaseConfig
	if err := viper.Unmarshal(&bc); err != nil {
		return err
	}
	if err := configureLogging(bc); err != nil {
		return err
	}

	return viper.Unmarshal(targetStruct)
}

func configureLogging(bc BaseConfig) error {
	if bc.LogLevel == "" {
		bc.LogLevel = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(bc.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)

	if bc.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

// NewTokenizer builds the tweet tokenizer: the default rules and special cases, plus any
// special cases in conf.SpecialCases.
func NewTokenizer(conf TokenizerSettings) (*text.Tokenizer, error) {
	sc := text.NewSpecialCases(conf.CaseInsensitive)
	text.AddDefaultSpecialCases(sc)
	if conf.SpecialCases != "" {
		if err := text.LoadSpecialCases(conf.SpecialCases, sc); err != nil {
			return nil, err
		}
	}
	return text.NewTokenizer(text.TokenizerConfig{
		Rules:        text.DefaultRuleSet(),
		SpecialCases: sc,
	}), nil
}
