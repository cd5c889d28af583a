// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for products, entities, and exports.
//
// This package defines the core domain types used throughout the application
// for representing product-management artifacts, their taxonomy tags, the
// relationship graph between them, and export runs.
//
// # Key Types
//
//   - Entity: A tracked artifact (problem, hypothesis, experiment, ...)
//   - EntityType: Artifact type enumeration
//   - Relationship: Directed edge between two entities
//   - ExportOptions / ExportPreview / ExportRecord: Export pipeline types
//
// # Usage
//
// Create a new entity:
//
//	e := model.NewEntity("prod-1", model.TypeProblem, "Checkout drop-off")
//	e.Status = model.StatusActive
package model
