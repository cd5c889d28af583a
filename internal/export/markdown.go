// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/util"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// RenderEntity converts one entity into a markdown document. Pure and
// deterministic: the same inputs always produce the same bytes.
//
// Section order is fixed: title, metadata block, context (tag names),
// body, linked items. Sections with nothing to say are omitted entirely;
// missing optional fields are never rendered as empty placeholders.
func RenderEntity(e *model.Entity, tags model.TagNames, links []*model.Relationship) string {
	var sb strings.Builder

	// Title
	sb.WriteString(fmt.Sprintf("# %s\n\n", e.Title))

	// Metadata block
	sb.WriteString(fmt.Sprintf("- **Type**: %s\n", e.Type.Label()))
	if e.Status != "" {
		sb.WriteString(fmt.Sprintf("- **Status**: %s\n", e.Status))
	}
	writeTypeFields(&sb, e)
	sb.WriteString(fmt.Sprintf("- **Created**: %s\n", formatTimestamp(e.CreatedAt)))
	sb.WriteString(fmt.Sprintf("- **Updated**: %s\n", formatTimestamp(e.UpdatedAt)))
	sb.WriteString("\n")

	// Context section: resolved tag names, omitted entirely when untagged.
	writeContext(&sb, tags)

	// Body section
	if body := strings.TrimSpace(util.StripHTML(e.Body)); body != "" {
		sb.WriteString("## Notes\n\n")
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}

	// Linked items: one bullet per non-empty relationship bucket.
	writeLinks(&sb, links)

	return sb.String()
}

// writeTypeFields appends the type-specific metadata lines when present.
func writeTypeFields(sb *strings.Builder, e *model.Entity) {
	switch e.Type {
	case model.TypeExperiment:
		m := e.ExperimentMeta()
		if m.StartDate != "" {
			sb.WriteString(fmt.Sprintf("- **Started**: %s\n", model.FormatDate(m.StartDate)))
		}
		if m.EndDate != "" {
			sb.WriteString(fmt.Sprintf("- **Ends**: %s\n", model.FormatDate(m.EndDate)))
		}
		if m.Outcome != "" {
			sb.WriteString(fmt.Sprintf("- **Outcome**: %s\n", m.Outcome))
		}
	case model.TypeDecision:
		m := e.DecisionMeta()
		if m.DecisionType != "" {
			sb.WriteString(fmt.Sprintf("- **Decision Type**: %s\n", m.DecisionType))
		}
		if m.DecidedAt != "" {
			sb.WriteString(fmt.Sprintf("- **Decided**: %s\n", model.FormatDate(m.DecidedAt)))
		}
	case model.TypeArtifact:
		m := e.ArtifactMeta()
		if m.ArtifactType != "" {
			sb.WriteString(fmt.Sprintf("- **Artifact Type**: %s\n", m.ArtifactType))
		}
		if m.Source != "" {
			sb.WriteString(fmt.Sprintf("- **Source**: %s\n", m.Source))
		}
	case model.TypeFeedback:
		m := e.FeedbackMeta()
		if m.Source != "" {
			sb.WriteString(fmt.Sprintf("- **Source**: %s\n", m.Source))
		}
	}
}

// writeContext appends the tag-name section, skipped when no tags exist.
func writeContext(sb *strings.Builder, tags model.TagNames) {
	if len(tags.Personas) == 0 && len(tags.Features) == 0 && len(tags.DimensionValues) == 0 {
		return
	}
	sb.WriteString("## Context\n\n")
	if len(tags.Personas) > 0 {
		sb.WriteString(fmt.Sprintf("- **Personas**: %s\n", strings.Join(tags.Personas, ", ")))
	}
	if len(tags.Features) > 0 {
		sb.WriteString(fmt.Sprintf("- **Features**: %s\n", strings.Join(tags.Features, ", ")))
	}
	if len(tags.DimensionValues) > 0 {
		sb.WriteString(fmt.Sprintf("- **Dimensions**: %s\n", strings.Join(tags.DimensionValues, ", ")))
	}
	sb.WriteString("\n")
}

// writeLinks appends the linked-items section: relationship buckets with
// counts rather than full target listings.
func writeLinks(sb *strings.Builder, links []*model.Relationship) {
	if len(links) == 0 {
		return
	}

	buckets := make(map[string]int)
	for _, r := range links {
		buckets[r.RelationshipType]++
	}
	types := make([]string, 0, len(buckets))
	for t := range buckets {
		types = append(types, t)
	}
	sort.Strings(types)

	sb.WriteString("## Linked Items\n\n")
	for _, t := range types {
		n := buckets[t]
		noun := "items"
		if n == 1 {
			noun = "item"
		}
		sb.WriteString(fmt.Sprintf("- %s: %d %s\n", t, n, noun))
	}
	sb.WriteString("\n")
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
