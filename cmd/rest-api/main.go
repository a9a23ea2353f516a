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
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/annotation"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/corpus"
)

// config structure
type restAPIConfig struct {
	lib.BaseConfig `mapstructure:",squash"`
	Server         struct {
		HttpPort       int      `mapstructure:"http_port"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	}
	Corpus    corpus.Policy
	Tokenizer lib.TokenizerSettings
	TagMap    string `mapstructure:"tag_map"`
}

var config restAPIConfig

func initConfig() {
	err := lib.InitializeConfig("./config/rest-api.yml", map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"http_port":       8080,
			"allowed_origins": []string{"*"},
		},
		"corpus": map[string]interface{}{
			"malformed": string(corpus.FailOnMalformed),
		},
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

	tagMap := annotation.DefaultTagMap()
	if config.TagMap != "" {
		if tagMap, err = annotation.LoadTagMap(config.TagMap); err != nil {
			log.Fatal().Err(err).Send()
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(lib.RequestLogger(), gin.Recovery(), cors.New(corsConfig(config.Server.AllowedOrigins)))

	s := server{controller: controller{
		tokenizer: tokenizer,
		policy:    config.Corpus,
		tagMap:    tagMap,
	}}
	s.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Server.HttpPort),
		Handler: r,
	}
	go func() {
		log.Info().Int("port", config.Server.HttpPort).Msg("ready to accept requests")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Send()
		}
	}()

	lib.HandleInterrupt(srv, 10*time.Second)
}

func corsConfig(origins []string) cors.Config {
	conf := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
	}
	return conf
}
