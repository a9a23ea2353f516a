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
	"errors"
	"io/ioutil"

	"github.com/gin-gonic/gin"
	"gitlab.mdcatapult.io/informatics/software-engineering/tweet-annotation/lib/corpus"
)

type HttpError struct {
	code int
	error
}

func (e HttpError) Error() string {
	return e.error.Error()
}

func NewHttpError(code int, err error) HttpError {
	return HttpError{
		code:  code,
		error: err,
	}
}

type server struct {
	controller controller
}

func (s server) RegisterRoutes(r *gin.Engine) {
	r.POST("/tokens", validateBody, s.Tokenize)
	r.POST("/examples/ner", validateBody, s.NERExamples)
	r.POST("/examples/tags", validateBody, s.TaggingExamples)
	r.GET("/tagmap", s.TagMap)
}

func (s server) Tokenize(c *gin.Context) {
	b, err := ioutil.ReadAll(c.Request.Body)
	if err != nil {
		handleError(c, NewHttpError(400, err))
		return
	}

	normalize := c.Query("normalize") == "true"
	c.JSON(200, s.controller.Tokenize(string(b), normalize))
}

func (s server) NERExamples(c *gin.Context) {
	examples, err := s.controller.NERExamples(c.Request.Body)
	if err != nil {
		handleError(c, corpusError(err))
		return
	}
	c.JSON(200, examples)
}

func (s server) TaggingExamples(c *gin.Context) {
	examples, err := s.controller.TaggingExamples(c.Request.Body)
	if err != nil {
		handleError(c, corpusError(err))
		return
	}
	c.JSON(200, examples)
}

func (s server) TagMap(c *gin.Context) {
	c.JSON(200, s.controller.TagMap())
}

// corpusError turns a malformed line into a bad request.
func corpusError(err error) error {
	var malformed *corpus.MalformedLineError
	if errors.As(err, &malformed) {
		return NewHttpError(400, err)
	}
	return err
}

func validateBody(c *gin.Context) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		handleError(c, NewHttpError(400, errors.New("request body missing")))
		return
	}
	c.Next()
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		abort(c, 500, errors.New("abort called on nil error"))
		return
	}
	switch e := err.(type) {
	case HttpError:
		abort(c, e.code, e.error)
	default:
		abort(c, 500, e)
	}
}

func abort(c *gin.Context, code int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, map[string]interface{}{
		"status":  code,
		"message": err.Error(),
	})
}
