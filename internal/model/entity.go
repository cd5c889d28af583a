// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ENTITY TYPES
// =============================================================================

// EntityType identifies the kind of product-management artifact.
type EntityType string

const (
	TypeCapture        EntityType = "capture"
	TypeProblem        EntityType = "problem"
	TypeHypothesis     EntityType = "hypothesis"
	TypeExperiment     EntityType = "experiment"
	TypeDecision       EntityType = "decision"
	TypeArtifact       EntityType = "artifact"
	TypeFeedback       EntityType = "feedback"
	TypeFeatureRequest EntityType = "feature_request"
	TypeFeature        EntityType = "feature"
)

// AllEntityTypes lists every valid entity type in display order.
var AllEntityTypes = []EntityType{
	TypeCapture, TypeProblem, TypeHypothesis, TypeExperiment,
	TypeDecision, TypeArtifact, TypeFeedback, TypeFeatureRequest, TypeFeature,
}

// String returns the string representation of the entity type.
func (t EntityType) String() string {
	return string(t)
}

// IsValid checks whether the entity type is one of the known types.
func (t EntityType) IsValid() bool {
	switch t {
	case TypeCapture, TypeProblem, TypeHypothesis, TypeExperiment,
		TypeDecision, TypeArtifact, TypeFeedback, TypeFeatureRequest, TypeFeature:
		return true
	}
	return false
}

// Folder returns the pluralized directory name used in the export layout.
func (t EntityType) Folder() string {
	switch t {
	case TypeCapture:
		return "captures"
	case TypeProblem:
		return "problems"
	case TypeHypothesis:
		return "hypotheses"
	case TypeExperiment:
		return "experiments"
	case TypeDecision:
		return "decisions"
	case TypeArtifact:
		return "artifacts"
	case TypeFeedback:
		return "feedback"
	case TypeFeatureRequest:
		return "feature_requests"
	case TypeFeature:
		return "features"
	default:
		return string(t)
	}
}

// Label returns a human-readable heading for the entity type.
func (t EntityType) Label() string {
	switch t {
	case TypeCapture:
		return "Capture"
	case TypeProblem:
		return "Problem"
	case TypeHypothesis:
		return "Hypothesis"
	case TypeExperiment:
		return "Experiment"
	case TypeDecision:
		return "Decision"
	case TypeArtifact:
		return "Artifact"
	case TypeFeedback:
		return "Feedback"
	case TypeFeatureRequest:
		return "Feature Request"
	case TypeFeature:
		return "Feature"
	default:
		return string(t)
	}
}

// =============================================================================
// ENTITY STATUS
// =============================================================================

// Common status values. Status is free-form in the store; these constants
// cover the values the snapshot generator filters on.
const (
	StatusActive    = "active"
	StatusExploring = "exploring"
	StatusRunning   = "running"
	StatusPlanned   = "planned"
	StatusResolved  = "resolved"
	StatusArchived  = "archived"
)

// =============================================================================
// ENTITY
// =============================================================================

// Entity is a single tracked artifact belonging to a product.
//
// Metadata is the raw JSON metadata map as stored; use the typed accessors
// in metadata.go to read type-specific fields tolerantly.
type Entity struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	Type         EntityType `json:"type"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	Status       string     `json:"status,omitempty"`
	Metadata     string     `json:"metadata,omitempty"` // JSON object, may be empty
	PromotedToID string     `json:"promoted_to_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ArchivedAt   *time.Time `json:"archived_at,omitempty"`
}

// NewEntity creates an entity with a generated ID and both timestamps set
// to the current time.
func NewEntity(productID string, typ EntityType, title string) *Entity {
	now := time.Now()
	return &Entity{
		ID:        uuid.NewString(),
		ProductID: productID,
		Type:      typ,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch advances UpdatedAt, preserving the CreatedAt <= UpdatedAt invariant.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = e.UpdatedAt
	}
}

// IsArchived reports whether the entity has been soft-archived.
func (e *Entity) IsArchived() bool {
	return e.ArchivedAt != nil
}

// EntityContext carries the taxonomy tag IDs attached to one entity.
type EntityContext struct {
	PersonaIDs        []string `json:"persona_ids"`
	FeatureIDs        []string `json:"feature_ids"`
	DimensionValueIDs []string `json:"dimension_value_ids"`
}

// Empty reports whether the entity has no tags at all.
func (c EntityContext) Empty() bool {
	return len(c.PersonaIDs) == 0 && len(c.FeatureIDs) == 0 && len(c.DimensionValueIDs) == 0
}

// TagNames carries resolved tag display names for rendering.
type TagNames struct {
	Personas        []string `json:"personas"`
	Features        []string `json:"features"`
	DimensionValues []string `json:"dimension_values"`
}

// =============================================================================
// RELATIONSHIPS
// =============================================================================

// Relationship is a directed edge between two entities of the same product.
type Relationship struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	SourceID         string    `json:"source_id"`
	TargetID         string    `json:"target_id"`
	RelationshipType string    `json:"relationship_type"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewRelationship creates a relationship edge with a generated ID.
func NewRelationship(productID, sourceID, targetID, relType string) *Relationship {
	now := time.Now()
	return &Relationship{
		ID:               uuid.NewString(),
		ProductID:        productID,
		SourceID:         sourceID,
		TargetID:         targetID,
		RelationshipType: relType,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
