// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// PRODUCT
// =============================================================================

// Product is the top-level container entities belong to.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

// NewProduct creates a product with a generated ID.
func NewProduct(name string) *Product {
	now := time.Now()
	return &Product{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// =============================================================================
// TAXONOMY
// =============================================================================

// Persona is a user archetype entities can be tagged with.
type Persona struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

// Feature is a product area entities can be tagged with.
type Feature struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

// Dimension is a named axis (e.g. "Platform") with a set of values.
type Dimension struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// DimensionValue is one selectable value of a dimension.
type DimensionValue struct {
	ID          string    `json:"id"`
	DimensionID string    `json:"dimension_id"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
