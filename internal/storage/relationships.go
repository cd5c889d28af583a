// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/prodtrack/internal/model"
)

// =============================================================================
// RELATIONSHIPS
// =============================================================================

// scanRelationship scans a row with the standard relationship column order.
func scanRelationship(scanner interface{ Scan(dest ...any) error }) (*model.Relationship, error) {
	var (
		r         model.Relationship
		createdAt int64
		updatedAt int64
	)
	err := scanner.Scan(&r.ID, &r.ProductID, &r.SourceID, &r.TargetID,
		&r.RelationshipType, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = fromMillis(createdAt)
	r.UpdatedAt = fromMillis(updatedAt)
	return &r, nil
}

// CreateRelationship inserts a directed edge between two entities. Both
// endpoints must exist; the foreign keys reject dangling edges.
func (s *Store) CreateRelationship(r *model.Relationship) error {
	if r.SourceID == "" || r.TargetID == "" {
		return fmt.Errorf("%w: relationship needs source and target", ErrInvalidEntity)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
		r.UpdatedAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO relationships (id, product_id, source_id, target_id, relationship_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProductID, r.SourceID, r.TargetID, r.RelationshipType,
		toMillis(r.CreatedAt), toMillis(r.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert relationship: %w", err)
	}
	return nil
}

// ListRelationships returns all edges where the entity is source or target.
func (s *Store) ListRelationships(entityID string) ([]*model.Relationship, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, source_id, target_id, relationship_type, created_at, updated_at
		FROM relationships WHERE source_id = ? OR target_id = ?
		ORDER BY created_at`, entityID, entityID)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	var rels []*model.Relationship
	for rows.Next() {
		r, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}

// ListOutgoingRelationships returns the edges originating at the entity.
func (s *Store) ListOutgoingRelationships(entityID string) ([]*model.Relationship, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, source_id, target_id, relationship_type, created_at, updated_at
		FROM relationships WHERE source_id = ?
		ORDER BY created_at`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list outgoing relationships: %w", err)
	}
	defer rows.Close()

	var rels []*model.Relationship
	for rows.Next() {
		r, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}

// DeleteRelationship removes an edge by ID.
func (s *Store) DeleteRelationship(id string) error {
	res, err := s.db.Exec(`DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	return requireRow(res)
}
