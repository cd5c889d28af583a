// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// TYPED METADATA
// =============================================================================

// Metadata is an open JSON map at the store boundary. Each entity type that
// carries structured fields gets a typed view decoded from it. Decoding is
// tolerant: malformed JSON or unexpected shapes yield the zero value rather
// than an error, since metadata only enriches optional display output.

// ExperimentMetadata holds experiment-specific fields.
type ExperimentMetadata struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
}

// DecisionMetadata holds decision-specific fields.
type DecisionMetadata struct {
	DecisionType string `json:"decisionType,omitempty"`
	DecidedAt    string `json:"decidedAt,omitempty"`
}

// ArtifactMetadata holds artifact-specific fields.
type ArtifactMetadata struct {
	ArtifactType string `json:"artifactType,omitempty"`
	Source       string `json:"source,omitempty"`
}

// FeedbackMetadata holds feedback-specific fields.
type FeedbackMetadata struct {
	Source string `json:"source,omitempty"`
}

// decodeMetadata unmarshals raw metadata into out, swallowing any error.
func decodeMetadata(raw string, out any) {
	if raw == "" {
		return
	}
	// Corrupted metadata is treated as absent, never fatal.
	_ = json.Unmarshal([]byte(raw), out)
}

// ExperimentMeta returns the experiment view of the entity's metadata.
func (e *Entity) ExperimentMeta() ExperimentMetadata {
	var m ExperimentMetadata
	decodeMetadata(e.Metadata, &m)
	return m
}

// DecisionMeta returns the decision view of the entity's metadata.
func (e *Entity) DecisionMeta() DecisionMetadata {
	var m DecisionMetadata
	decodeMetadata(e.Metadata, &m)
	return m
}

// ArtifactMeta returns the artifact view of the entity's metadata.
func (e *Entity) ArtifactMeta() ArtifactMetadata {
	var m ArtifactMetadata
	decodeMetadata(e.Metadata, &m)
	return m
}

// FeedbackMeta returns the feedback view of the entity's metadata.
func (e *Entity) FeedbackMeta() FeedbackMetadata {
	var m FeedbackMetadata
	decodeMetadata(e.Metadata, &m)
	return m
}

// =============================================================================
// DATE FORMATTING
// =============================================================================

// FormatDate renders a metadata date string in short M/D/YYYY form.
// Accepts "2006-01-02" or RFC3339 input; anything else is returned unchanged
// so a hand-entered value still shows up in the digest.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return ShortDate(t)
		}
	}
	return s
}

// ShortDate formats a time in M/D/YYYY form without zero padding.
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
