// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/prodtrack/internal/model"
)

// =============================================================================
// PRODUCTS
// =============================================================================

// CreateProduct inserts a new product.
func (s *Store) CreateProduct(p *model.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name must not be empty", ErrInvalidEntity)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
		p.UpdatedAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO products (id, name, description, created_at, updated_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, nullString(p.Description),
		toMillis(p.CreatedAt), toMillis(p.UpdatedAt), nullMillis(p.ArchivedAt),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetProduct fetches a product by ID.
func (s *Store) GetProduct(id string) (*model.Product, error) {
	var (
		p          model.Product
		desc       sql.NullString
		createdAt  int64
		updatedAt  int64
		archivedAt sql.NullInt64
	)
	err := s.db.QueryRow(`
		SELECT id, name, description, created_at, updated_at, archived_at
		FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &desc, &createdAt, &updatedAt, &archivedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.Description = desc.String
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	p.ArchivedAt = millisPtr(archivedAt)
	return &p, nil
}

// ListProducts returns all non-archived products by name.
func (s *Store) ListProducts() ([]*model.Product, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, created_at, updated_at, archived_at
		FROM products WHERE archived_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		var (
			p          model.Product
			desc       sql.NullString
			createdAt  int64
			updatedAt  int64
			archivedAt sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc, &createdAt, &updatedAt, &archivedAt); err != nil {
			return nil, err
		}
		p.Description = desc.String
		p.CreatedAt = fromMillis(createdAt)
		p.UpdatedAt = fromMillis(updatedAt)
		p.ArchivedAt = millisPtr(archivedAt)
		products = append(products, &p)
	}
	return products, rows.Err()
}

// UpdateProduct updates name and description.
func (s *Store) UpdateProduct(p *model.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name must not be empty", ErrInvalidEntity)
	}
	p.UpdatedAt = time.Now()
	res, err := s.db.Exec(`
		UPDATE products SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		p.Name, nullString(p.Description), toMillis(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(res)
}

// ArchiveProduct soft-archives a product.
func (s *Store) ArchiveProduct(id string) error {
	now := toMillis(time.Now())
	res, err := s.db.Exec(`
		UPDATE products SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("archive product: %w", err)
	}
	return requireRow(res)
}

// =============================================================================
// PERSONAS
// =============================================================================

// CreatePersona inserts a new persona.
func (s *Store) CreatePersona(p *model.Persona) error {
	if p.Name == "" {
		return fmt.Errorf("%w: persona name must not be empty", ErrInvalidEntity)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
		p.UpdatedAt = now
	}
	_, err := s.db.Exec(`
		INSERT INTO personas (id, product_id, name, description, created_at, updated_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ProductID, p.Name, nullString(p.Description),
		toMillis(p.CreatedAt), toMillis(p.UpdatedAt), nullMillis(p.ArchivedAt),
	)
	if err != nil {
		return fmt.Errorf("insert persona: %w", err)
	}
	return nil
}

// ListPersonas returns all non-archived personas of a product by name.
func (s *Store) ListPersonas(productID string) ([]*model.Persona, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, name, description, created_at, updated_at, archived_at
		FROM personas WHERE product_id = ? AND archived_at IS NULL ORDER BY name`, productID)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()

	var personas []*model.Persona
	for rows.Next() {
		var (
			p          model.Persona
			desc       sql.NullString
			createdAt  int64
			updatedAt  int64
			archivedAt sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Name, &desc, &createdAt, &updatedAt, &archivedAt); err != nil {
			return nil, err
		}
		p.Description = desc.String
		p.CreatedAt = fromMillis(createdAt)
		p.UpdatedAt = fromMillis(updatedAt)
		p.ArchivedAt = millisPtr(archivedAt)
		personas = append(personas, &p)
	}
	return personas, rows.Err()
}

// ArchivePersona soft-archives a persona.
func (s *Store) ArchivePersona(id string) error {
	now := toMillis(time.Now())
	res, err := s.db.Exec(`
		UPDATE personas SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("archive persona: %w", err)
	}
	return requireRow(res)
}

// =============================================================================
// FEATURES
// =============================================================================

// CreateFeature inserts a new feature.
func (s *Store) CreateFeature(f *model.Feature) error {
	if f.Name == "" {
		return fmt.Errorf("%w: feature name must not be empty", ErrInvalidEntity)
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
		f.UpdatedAt = now
	}
	_, err := s.db.Exec(`
		INSERT INTO features (id, product_id, name, description, created_at, updated_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ProductID, f.Name, nullString(f.Description),
		toMillis(f.CreatedAt), toMillis(f.UpdatedAt), nullMillis(f.ArchivedAt),
	)
	if err != nil {
		return fmt.Errorf("insert feature: %w", err)
	}
	return nil
}

// ListFeatures returns all non-archived features of a product by name.
func (s *Store) ListFeatures(productID string) ([]*model.Feature, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, name, description, created_at, updated_at, archived_at
		FROM features WHERE product_id = ? AND archived_at IS NULL ORDER BY name`, productID)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer rows.Close()

	var features []*model.Feature
	for rows.Next() {
		var (
			f          model.Feature
			desc       sql.NullString
			createdAt  int64
			updatedAt  int64
			archivedAt sql.NullInt64
		)
		if err := rows.Scan(&f.ID, &f.ProductID, &f.Name, &desc, &createdAt, &updatedAt, &archivedAt); err != nil {
			return nil, err
		}
		f.Description = desc.String
		f.CreatedAt = fromMillis(createdAt)
		f.UpdatedAt = fromMillis(updatedAt)
		f.ArchivedAt = millisPtr(archivedAt)
		features = append(features, &f)
	}
	return features, rows.Err()
}

// ArchiveFeature soft-archives a feature.
func (s *Store) ArchiveFeature(id string) error {
	now := toMillis(time.Now())
	res, err := s.db.Exec(`
		UPDATE features SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("archive feature: %w", err)
	}
	return requireRow(res)
}

// =============================================================================
// DIMENSIONS
// =============================================================================

// CreateDimension inserts a new dimension.
func (s *Store) CreateDimension(d *model.Dimension) error {
	if d.Name == "" {
		return fmt.Errorf("%w: dimension name must not be empty", ErrInvalidEntity)
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
		d.UpdatedAt = now
	}
	_, err := s.db.Exec(`
		INSERT INTO dimensions (id, product_id, name, created_at, updated_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProductID, d.Name,
		toMillis(d.CreatedAt), toMillis(d.UpdatedAt), nullMillis(d.ArchivedAt),
	)
	if err != nil {
		return fmt.Errorf("insert dimension: %w", err)
	}
	return nil
}

// CreateDimensionValue inserts a new value under a dimension.
func (s *Store) CreateDimensionValue(v *model.DimensionValue) error {
	if v.Value == "" {
		return fmt.Errorf("%w: dimension value must not be empty", ErrInvalidEntity)
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
		v.UpdatedAt = now
	}
	_, err := s.db.Exec(`
		INSERT INTO dimension_values (id, dimension_id, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.DimensionID, v.Value, toMillis(v.CreatedAt), toMillis(v.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert dimension value: %w", err)
	}
	return nil
}

// ListDimensions returns all non-archived dimensions of a product by name.
func (s *Store) ListDimensions(productID string) ([]*model.Dimension, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, name, created_at, updated_at, archived_at
		FROM dimensions WHERE product_id = ? AND archived_at IS NULL ORDER BY name`, productID)
	if err != nil {
		return nil, fmt.Errorf("list dimensions: %w", err)
	}
	defer rows.Close()

	var dims []*model.Dimension
	for rows.Next() {
		var (
			d          model.Dimension
			createdAt  int64
			updatedAt  int64
			archivedAt sql.NullInt64
		)
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Name, &createdAt, &updatedAt, &archivedAt); err != nil {
			return nil, err
		}
		d.CreatedAt = fromMillis(createdAt)
		d.UpdatedAt = fromMillis(updatedAt)
		d.ArchivedAt = millisPtr(archivedAt)
		dims = append(dims, &d)
	}
	return dims, rows.Err()
}

// ListDimensionValues returns the values of one dimension.
func (s *Store) ListDimensionValues(dimensionID string) ([]*model.DimensionValue, error) {
	rows, err := s.db.Query(`
		SELECT id, dimension_id, value, created_at, updated_at
		FROM dimension_values WHERE dimension_id = ? ORDER BY value`, dimensionID)
	if err != nil {
		return nil, fmt.Errorf("list dimension values: %w", err)
	}
	defer rows.Close()

	var values []*model.DimensionValue
	for rows.Next() {
		var (
			v         model.DimensionValue
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(&v.ID, &v.DimensionID, &v.Value, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		v.CreatedAt = fromMillis(createdAt)
		v.UpdatedAt = fromMillis(updatedAt)
		values = append(values, &v)
	}
	return values, rows.Err()
}

// ArchiveDimension soft-archives a dimension. Its values stay in place for
// existing tag associations.
func (s *Store) ArchiveDimension(id string) error {
	now := toMillis(time.Now())
	res, err := s.db.Exec(`
		UPDATE dimensions SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("archive dimension: %w", err)
	}
	return requireRow(res)
}
