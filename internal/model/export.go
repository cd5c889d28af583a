// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// ExportMode selects which entities an export covers.
type ExportMode string

const (
	// ModeFull exports every entity in scope regardless of timestamps.
	ModeFull ExportMode = "full"
	// ModeIncremental exports entities created or updated on/after StartDate.
	ModeIncremental ExportMode = "incremental"
)

// IsValid checks whether the mode is a known export mode.
func (m ExportMode) IsValid() bool {
	return m == ModeFull || m == ModeIncremental
}

// ScopeAllProducts is the ProductID sentinel meaning "every product".
const ScopeAllProducts = "all"

// ExportOptions governs entity selection for preview and execution.
type ExportOptions struct {
	// ProductID limits the export to one product, or ScopeAllProducts.
	ProductID string `json:"product_id"`

	// Mode is full or incremental.
	Mode ExportMode `json:"mode"`

	// StartDate is the incremental cutoff. Entities touched (created OR
	// updated) on or after this instant are included. Ignored in full mode.
	StartDate *time.Time `json:"start_date,omitempty"`

	// IncludeLinkedContext adds one hop of relationship targets from the
	// selected set. Only honored in incremental mode.
	IncludeLinkedContext bool `json:"include_linked_context"`
}

// AllProducts reports whether the export spans every product.
func (o ExportOptions) AllProducts() bool {
	return o.ProductID == "" || o.ProductID == ScopeAllProducts
}

// =============================================================================
// EXPORT RESULTS
// =============================================================================

// ExportCounts summarizes how many entities an export covers, per type.
type ExportCounts struct {
	Total  int                `json:"total"`
	ByType map[EntityType]int `json:"by_type"`
}

// NewExportCounts returns an empty, initialized counts value.
func NewExportCounts() ExportCounts {
	return ExportCounts{ByType: make(map[EntityType]int)}
}

// Add counts one entity of the given type.
func (c *ExportCounts) Add(t EntityType) {
	if c.ByType == nil {
		c.ByType = make(map[EntityType]int)
	}
	c.ByType[t]++
	c.Total++
}

// ExportPreview is the result of preview: what an export would contain.
type ExportPreview struct {
	Counts   ExportCounts `json:"counts"`
	Entities []*Entity    `json:"entities"`
}

// ExportResult describes a completed export run.
type ExportResult struct {
	ID         string       `json:"id"`
	OutputPath string       `json:"output_path"`
	Counts     ExportCounts `json:"counts"`
	CreatedAt  time.Time    `json:"created_at"`
}

// =============================================================================
// EXPORT HISTORY
// =============================================================================

// ScopeType records whether an export covered one product or all of them.
type ScopeType string

const (
	ScopeProduct ScopeType = "product"
	ScopeAll     ScopeType = "all"
)

// ExportRecord is the persisted history row for one completed export run.
// Records are immutable once written; they are only ever deleted.
type ExportRecord struct {
	ID         string       `json:"id"`
	ProductID  string       `json:"product_id,omitempty"` // empty means all products
	Mode       ExportMode   `json:"mode"`
	ScopeType  ScopeType    `json:"scope_type"`
	StartDate  *time.Time   `json:"start_date,omitempty"`
	EndDate    time.Time    `json:"end_date"`
	Counts     ExportCounts `json:"counts"`
	OutputPath string       `json:"output_path,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// =============================================================================
// MANIFEST
// =============================================================================

// ManifestFile is one exported markdown file in the manifest index.
type ManifestFile struct {
	ID    string     `json:"id"`
	Type  EntityType `json:"type"`
	Title string     `json:"title"`
	Path  string     `json:"path"`
}

// Manifest is the manifest.json written at the root of each export run.
type Manifest struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Mode      ExportMode     `json:"mode"`
	Scope     ScopeType      `json:"scope"`
	ProductID string         `json:"product_id,omitempty"`
	StartDate *time.Time     `json:"start_date"`
	Counts    ExportCounts   `json:"counts"`
	Files     []ManifestFile `json:"files"`
}
