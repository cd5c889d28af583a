// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"regexp"
	"strings"
)

// =============================================================================
// SLUGS
// =============================================================================

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a filename-safe slug from a title: lower-cased, runs of
// non-alphanumeric characters collapsed to single hyphens, leading/trailing
// hyphens trimmed, truncated to 50 characters. An empty result (all
// punctuation, empty title) falls back to "untitled".
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = strings.Trim(s[:50], "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// =============================================================================
// RICH TEXT CLEANUP
// =============================================================================

var htmlTag = regexp.MustCompile(`<[^>]*>`)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// StripHTML converts an HTML-ish rich-text body to plain text: markup tags
// are removed and the common entities are decoded.
func StripHTML(s string) string {
	s = htmlTag.ReplaceAllString(s, "")
	return entityReplacer.Replace(s)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces runs of whitespace with single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
