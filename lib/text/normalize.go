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
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTweet unescapes html entities left in tweet dumps (e.g. "&lt;3", "&amp;") and
// composes the result to NFC, so that accented characters count as one character.
func NormalizeTweet(in string) string {
	return norm.NFC.String(html.UnescapeString(in))
}
