// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snapshot

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/util"
)

// Extraction bounds. The length window filters out fragments too short to
// be a real question ("why?") and walls of text nobody would paste.
const (
	maxScannedEntities = 50
	maxPerEntity       = 3
	maxQuestions       = 10
	minQuestionLen     = 11
	maxQuestionLen     = 299
)

// questionRun matches a run of non-terminator characters ending in a
// question mark. Terminators are sentence punctuation plus newline; the
// splitting is a deliberately rough English heuristic and will mis-split
// things like "v2.0?".
var questionRun = regexp.MustCompile(`[^.!?\n]+\?`)

// Question is one extracted open question with its source entity.
type Question struct {
	Text        string
	SourceTitle string
	SourceType  model.EntityType
}

// ExtractQuestions scans the 50 most-recently-updated entities whose body
// contains a question mark and pulls out question-shaped fragments: at most
// 3 per entity and 10 overall, exact duplicates collapsed to the first
// occurrence. The input must already be sorted most-recently-updated first;
// candidate order follows entity recency, then position in the body.
func ExtractQuestions(entities []*model.Entity) []Question {
	var out []Question
	seen := make(map[string]bool)
	scanned := 0

	for _, e := range entities {
		if len(out) >= maxQuestions || scanned >= maxScannedEntities {
			break
		}
		if !strings.Contains(e.Body, "?") {
			continue
		}
		scanned++

		taken := 0
		for _, frag := range questionRun.FindAllString(e.Body, -1) {
			if taken >= maxPerEntity || len(out) >= maxQuestions {
				break
			}
			text := strings.TrimSpace(util.CollapseWhitespace(util.StripHTML(frag)))
			// Length bounds count characters, not bytes.
			if n := utf8.RuneCountInString(text); n < minQuestionLen || n > maxQuestionLen {
				continue
			}
			if seen[text] {
				continue
			}
			seen[text] = true
			out = append(out, Question{Text: text, SourceTitle: e.Title, SourceType: e.Type})
			taken++
		}
	}
	return out
}
