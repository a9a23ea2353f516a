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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/annotation"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/corpus"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/text"
)

func TestServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Server Suite")
}

func newRouter(policy corpus.Policy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	server{controller: controller{
		tokenizer: text.NewTokenizer(text.DefaultTokenizerConfig()),
		policy:    policy,
		tagMap:    annotation.DefaultTagMap(),
	}}.RegisterRoutes(router)
	return router
}

func do(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	router.ServeHTTP(rec, req)
	return rec
}

var _ = Describe("Tokenize", func() {
	router := newRouter(corpus.DefaultPolicy())

	It("Should be a bad request when the body is empty", func() {
		res := do(router, http.MethodPost, "/tokens", "")
		Ω(res.Code).Should(Equal(http.StatusBadRequest))
	})

	It("Should return tokens with character offsets", func() {
		res := do(router, http.MethodPost, "/tokens", "i've seen it :)")
		Ω(res.Code).Should(Equal(http.StatusOK))

		var tokens []text.Token
		Ω(json.Unmarshal(res.Body.Bytes(), &tokens)).Should(Succeed())
		Ω(tokens).Should(HaveLen(5))
		Ω(tokens[0].Lemma).Should(Equal("i"))
		Ω(tokens[1].Text).Should(Equal("have"))
		Ω(tokens[4].Text).Should(Equal(":)"))
		Ω(tokens[4].Start).Should(Equal(13))
	})

	It("Should unescape html entities when asked to", func() {
		res := do(router, http.MethodPost, "/tokens?normalize=true", "i &lt;3 u")
		Ω(res.Code).Should(Equal(http.StatusOK))

		var tokens []text.Token
		Ω(json.Unmarshal(res.Body.Bytes(), &tokens)).Should(Succeed())
		Ω(tokens[1].Text).Should(Equal("<3"))
	})
})

var _ = Describe("Examples", func() {
	conll := "New B-LOC\nYork I-LOC\nis O\nbig O\n\ngo V\nhome N\n"

	It("Should project entity spans", func() {
		res := do(newRouter(corpus.DefaultPolicy()), http.MethodPost, "/examples/ner", conll)
		Ω(res.Code).Should(Equal(http.StatusOK))
		Ω(res.Body.String()).Should(MatchJSON(`[
			{"text":"New York is big","entities":[[0,3,"B-LOC"],[4,8,"I-LOC"]]},
			{"text":"go home","entities":[[0,2,"V"],[3,7,"N"]]}
		]`))
	})

	It("Should project tag sequences", func() {
		res := do(newRouter(corpus.DefaultPolicy()), http.MethodPost, "/examples/tags", conll)
		Ω(res.Code).Should(Equal(http.StatusOK))

		var examples []annotation.TaggingExample
		Ω(json.Unmarshal(res.Body.Bytes(), &examples)).Should(Succeed())
		Ω(examples).Should(HaveLen(2))
		Ω(examples[1]).Should(Equal(annotation.TaggingExample{Text: "go home", Tags: []string{"V", "N"}}))
	})

	It("Should reject malformed lines when the policy fails on them", func() {
		router := newRouter(corpus.Policy{Malformed: corpus.FailOnMalformed})
		res := do(router, http.MethodPost, "/examples/tags", "go V\nlonely\n")
		Ω(res.Code).Should(Equal(http.StatusBadRequest))
		Ω(res.Body.String()).Should(ContainSubstring("malformed corpus line 2"))
	})
})

var _ = Describe("TagMap", func() {
	It("Should list the tag map", func() {
		res := do(newRouter(corpus.DefaultPolicy()), http.MethodGet, "/tagmap", "")
		Ω(res.Code).Should(Equal(http.StatusOK))

		var tagMap annotation.TagMap
		Ω(json.Unmarshal(res.Body.Bytes(), &tagMap)).Should(Succeed())
		Ω(tagMap["^"].POS).Should(Equal("PROPN"))
	})
})
