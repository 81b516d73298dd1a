/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/wso2/customer-360-pipeline/internal/system/constants"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CleanEmail lower-cases and trims an email value. Returns the empty string
// when the result does not look like an email.
func CleanEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return ""
	}
	return email
}

// ProperCase converts free-form text to proper case ("john DOE" -> "John Doe").
func ProperCase(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(trimmed))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// SplitName splits a full name into first and last on the first whitespace
// run. A single token yields an empty last name.
func SplitName(full string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return ProperCase(parts[0]), ""
	}
	return ProperCase(parts[0]), ProperCase(strings.Join(parts[1:], " "))
}

// NormalizeUUID validates and canonicalizes a UUID value. Returns the empty
// string for anything that does not parse.
func NormalizeUUID(raw string) string {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return parsed.String()
}

// ParseTimestamp parses a raw timestamp against the accepted layouts and
// returns it in UTC. Returns nil when no layout matches.
func ParseTimestamp(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if IsNull(trimmed) {
		return nil
	}
	for _, layout := range constants.TimestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			utc := ts.UTC()
			return &utc
		}
	}
	return nil
}

// IsNull reports whether a raw cell value should be treated as absent.
func IsNull(raw string) bool {
	return constants.NullSentinels[strings.TrimSpace(raw)]
}

// NormalizeHeader lower-cases and trims a column name.
func NormalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
