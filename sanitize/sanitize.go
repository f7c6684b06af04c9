// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package sanitize redacts sensitive values from structured payloads before
// they reach logs or other outputs.
package sanitize

import (
	"fmt"
	"regexp"
)

// Placeholder is the default replacement for sanitized values.
const Placeholder = "**SANITIZED**"

// Func produces the replacement for a value whose key matched a sanitize
// pattern.
type Func func(key string, value any) any

// Sanitizer rewrites map payloads according to two key-pattern sets: keys
// matching a drop pattern are removed entirely, and values under keys
// matching a sanitize pattern are replaced via the sanitizing function.
// Matching is case-insensitive and recurses into nested maps and slices.
//
// The zero value passes payloads through unchanged.
type Sanitizer struct {
	drop []*regexp.Regexp
	redact []*regexp.Regexp
	fn   Func
}

// Config configures a [Sanitizer].
type Config struct {
	// DropKeys are patterns for keys to remove entirely.
	DropKeys []string
	// SanitizeKeys are patterns for keys whose values are replaced.
	SanitizeKeys []string
	// Func computes replacement values. If nil, [Placeholder] is used.
	Func Func
}

// New compiles the configured patterns into a Sanitizer.
func New(cfg Config) (*Sanitizer, error) {
	s := &Sanitizer{fn: cfg.Func}
	if s.fn == nil {
		s.fn = func(key string, value any) any { return Placeholder }
	}
	var err error
	if s.drop, err = compile(cfg.DropKeys); err != nil {
		return nil, err
	}
	if s.redact, err = compile(cfg.SanitizeKeys); err != nil {
		return nil, err
	}
	return s, nil
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("sanitize: bad pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// Map returns a sanitized copy of data. The input is not modified.
func (s *Sanitizer) Map(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	redacted := make(map[string]any, len(data))
	for key, value := range data {
		if matches(key, s.drop) {
			continue
		}
		redacted[key] = s.value(key, value)
	}
	return redacted
}

func (s *Sanitizer) value(key string, value any) any {
	switch v := value.(type) {
	case map[string]any:
		return s.Map(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = s.value(key, item)
		}
		return out
	default:
		if matches(key, s.redact) {
			return s.fn(key, value)
		}
		return value
	}
}

func matches(key string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}
