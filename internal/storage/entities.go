// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/prodtrack/internal/model"
)

// =============================================================================
// ENTITY FILTER
// =============================================================================

// EntityFilter narrows ListEntities results. The zero value selects every
// non-archived entity in scope.
type EntityFilter struct {
	// Types limits results to the given entity types.
	Types []model.EntityType

	// Statuses limits results to entities whose status is in the set.
	Statuses []string

	// Since keeps entities touched on/after the cutoff: created OR updated,
	// not only newly created ones.
	Since *time.Time

	// IncludeArchived includes soft-archived entities.
	IncludeArchived bool
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

const entityColumns = `id, product_id, type, title, body, status, metadata,
	promoted_to_id, created_at, updated_at, archived_at`

// scanEntity scans a row with the standard entity column order.
func scanEntity(scanner interface{ Scan(dest ...any) error }) (*model.Entity, error) {
	var (
		e          model.Entity
		status     sql.NullString
		metadata   sql.NullString
		promotedTo sql.NullString
		createdAt  int64
		updatedAt  int64
		archivedAt sql.NullInt64
	)
	err := scanner.Scan(
		&e.ID, &e.ProductID, &e.Type, &e.Title, &e.Body, &status, &metadata,
		&promotedTo, &createdAt, &updatedAt, &archivedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = status.String
	e.Metadata = metadata.String
	e.PromotedToID = promotedTo.String
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	e.ArchivedAt = millisPtr(archivedAt)
	return &e, nil
}

// =============================================================================
// ENTITY CRUD
// =============================================================================

// CreateEntity inserts a new entity. Missing ID and timestamps are filled in.
func (s *Store) CreateEntity(e *model.Entity) error {
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEntity, e.Type)
	}
	if e.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidEntity)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() || e.UpdatedAt.Before(e.CreatedAt) {
		e.UpdatedAt = e.CreatedAt
	}

	_, err := s.db.Exec(`
		INSERT INTO entities (id, product_id, type, title, body, status, metadata,
			promoted_to_id, created_at, updated_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProductID, string(e.Type), e.Title, e.Body,
		nullString(e.Status), nullString(e.Metadata), nullString(e.PromotedToID),
		toMillis(e.CreatedAt), toMillis(e.UpdatedAt), nullMillis(e.ArchivedAt),
	)
	if err != nil {
		return fmt.Errorf("insert entity: %w", err)
	}
	return nil
}

// GetEntity fetches a single entity by ID.
func (s *Store) GetEntity(id string) (*model.Entity, error) {
	row := s.db.QueryRow(`SELECT `+entityColumns+` FROM entities WHERE id = ?`, id)
	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entity: %w", err)
	}
	return e, nil
}

// UpdateEntity updates title, body, status, and metadata of an existing
// entity and advances its updated_at timestamp.
func (s *Store) UpdateEntity(e *model.Entity) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidEntity)
	}
	e.UpdatedAt = time.Now()

	res, err := s.db.Exec(`
		UPDATE entities
		SET title = ?, body = ?, status = ?, metadata = ?, updated_at = ?
		WHERE id = ?`,
		e.Title, e.Body, nullString(e.Status), nullString(e.Metadata),
		toMillis(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update entity: %w", err)
	}
	return requireRow(res)
}

// ArchiveEntity soft-archives an entity.
func (s *Store) ArchiveEntity(id string) error {
	now := toMillis(time.Now())
	res, err := s.db.Exec(`
		UPDATE entities SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("archive entity: %w", err)
	}
	return requireRow(res)
}

// DeleteEntity permanently removes an entity. Tag associations and
// relationship edges cascade away with it.
func (s *Store) DeleteEntity(id string) error {
	res, err := s.db.Exec(`DELETE FROM entities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entity: %w", err)
	}
	return requireRow(res)
}

// PromoteCapture creates a new entity of the target type from a capture and
// records the promotion on the capture via promoted_to_id.
func (s *Store) PromoteCapture(captureID string, target model.EntityType) (*model.Entity, error) {
	if !target.IsValid() || target == model.TypeCapture {
		return nil, fmt.Errorf("%w: cannot promote to %q", ErrInvalidEntity, target)
	}

	capture, err := s.GetEntity(captureID)
	if err != nil {
		return nil, err
	}
	if capture.Type != model.TypeCapture {
		return nil, fmt.Errorf("%w: %s is not a capture", ErrInvalidEntity, captureID)
	}

	promoted := model.NewEntity(capture.ProductID, target, capture.Title)
	promoted.Body = capture.Body
	if err := s.CreateEntity(promoted); err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`UPDATE entities SET promoted_to_id = ?, updated_at = ? WHERE id = ?`,
		promoted.ID, toMillis(time.Now()), captureID)
	if err != nil {
		return nil, fmt.Errorf("record promotion: %w", err)
	}
	return promoted, nil
}

// =============================================================================
// ENTITY LISTING
// =============================================================================

// ListEntities returns entities in scope, most recently updated first.
// productID limits the scope to one product; "" or "all" selects everything.
func (s *Store) ListEntities(productID string, f EntityFilter) ([]*model.Entity, error) {
	var (
		where []string
		args  []any
	)

	if productID != "" && productID != model.ScopeAllProducts {
		where = append(where, "product_id = ?")
		args = append(args, productID)
	}
	if !f.IncludeArchived {
		where = append(where, "archived_at IS NULL")
	}
	if len(f.Types) > 0 {
		where = append(where, "type IN ("+placeholders(len(f.Types))+")")
		for _, t := range f.Types {
			args = append(args, string(t))
		}
	}
	if len(f.Statuses) > 0 {
		where = append(where, "status IN ("+placeholders(len(f.Statuses))+")")
		for _, st := range f.Statuses {
			args = append(args, st)
		}
	}
	if f.Since != nil {
		// Touched-either rule: created or updated on/after the cutoff.
		cutoff := toMillis(*f.Since)
		where = append(where, "(created_at >= ? OR updated_at >= ?)")
		args = append(args, cutoff, cutoff)
	}

	query := `SELECT ` + entityColumns + ` FROM entities`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	var entities []*model.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// ListRelationshipTargets returns the distinct non-archived entities
// reachable as targets of any relationship whose source is in sourceIDs.
// One hop only.
func (s *Store) ListRelationshipTargets(sourceIDs []string) ([]*model.Entity, error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT DISTINCT ` + prefixColumns("e", entityColumns) + `
		FROM entities e
		JOIN relationships r ON r.target_id = e.id
		WHERE r.source_id IN (` + placeholders(len(sourceIDs)) + `)
		  AND e.archived_at IS NULL`
	args := make([]any, len(sourceIDs))
	for i, id := range sourceIDs {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list relationship targets: %w", err)
	}
	defer rows.Close()

	var entities []*model.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// =============================================================================
// TAG ASSOCIATIONS
// =============================================================================

// GetEntityContext returns the taxonomy tag IDs attached to an entity.
func (s *Store) GetEntityContext(entityID string) (model.EntityContext, error) {
	var ctx model.EntityContext

	collect := func(query string, out *[]string) error {
		rows, err := s.db.Query(query, entityID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			*out = append(*out, id)
		}
		return rows.Err()
	}

	if err := collect(`SELECT persona_id FROM entity_personas WHERE entity_id = ? ORDER BY persona_id`, &ctx.PersonaIDs); err != nil {
		return ctx, fmt.Errorf("get entity personas: %w", err)
	}
	if err := collect(`SELECT feature_id FROM entity_features WHERE entity_id = ? ORDER BY feature_id`, &ctx.FeatureIDs); err != nil {
		return ctx, fmt.Errorf("get entity features: %w", err)
	}
	if err := collect(`SELECT dimension_value_id FROM entity_dimension_values WHERE entity_id = ? ORDER BY dimension_value_id`, &ctx.DimensionValueIDs); err != nil {
		return ctx, fmt.Errorf("get entity dimension values: %w", err)
	}
	return ctx, nil
}

// SetEntityContext replaces all taxonomy tag associations of an entity.
func (s *Store) SetEntityContext(entityID string, ctx model.EntityContext) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tag update: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"entity_personas", "entity_features", "entity_dimension_values"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE entity_id = ?`, entityID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, id := range ctx.PersonaIDs {
		if _, err := tx.Exec(`INSERT INTO entity_personas (entity_id, persona_id) VALUES (?, ?)`, entityID, id); err != nil {
			return fmt.Errorf("tag persona: %w", err)
		}
	}
	for _, id := range ctx.FeatureIDs {
		if _, err := tx.Exec(`INSERT INTO entity_features (entity_id, feature_id) VALUES (?, ?)`, entityID, id); err != nil {
			return fmt.Errorf("tag feature: %w", err)
		}
	}
	for _, id := range ctx.DimensionValueIDs {
		if _, err := tx.Exec(`INSERT INTO entity_dimension_values (entity_id, dimension_value_id) VALUES (?, ?)`, entityID, id); err != nil {
			return fmt.Errorf("tag dimension value: %w", err)
		}
	}
	return tx.Commit()
}

// ResolveTagNames resolves taxonomy IDs to display names for rendering.
// Unknown IDs are skipped rather than failing the lookup.
func (s *Store) ResolveTagNames(ctx model.EntityContext) (model.TagNames, error) {
	var names model.TagNames

	resolve := func(table, col string, ids []string, out *[]string) error {
		if len(ids) == 0 {
			return nil
		}
		query := `SELECT ` + col + ` FROM ` + table + ` WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY ` + col
		args := make([]any, len(ids))
		for i, id := range ids {
			args[i] = id
		}
		rows, err := s.db.Query(query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			*out = append(*out, name)
		}
		return rows.Err()
	}

	if err := resolve("personas", "name", ctx.PersonaIDs, &names.Personas); err != nil {
		return names, fmt.Errorf("resolve personas: %w", err)
	}
	if err := resolve("features", "name", ctx.FeatureIDs, &names.Features); err != nil {
		return names, fmt.Errorf("resolve features: %w", err)
	}
	if err := resolve("dimension_values", "value", ctx.DimensionValueIDs, &names.DimensionValues); err != nil {
		return names, fmt.Errorf("resolve dimension values: %w", err)
	}
	return names, nil
}

// =============================================================================
// QUERY HELPERS
// =============================================================================

// placeholders returns "?, ?, ..." with n placeholders.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// prefixColumns prefixes each column in a comma-separated list with an alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// requireRow converts a zero-rows-affected result into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
