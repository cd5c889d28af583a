// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides SQLite persistence for prodtrack.
//
// This package owns the local database: products, taxonomy (personas,
// features, dimensions), entities with their tag associations, the directed
// relationship graph, and the export history.
//
// # Key Types
//
//   - Store: Database handle with all persistence operations
//   - EntityFilter: Selection filter for ListEntities
//
// # Usage
//
// Open a store and list entities:
//
//	st, err := storage.Open(cfg.DatabasePath)
//	if err != nil { ... }
//	defer st.Close()
//
//	entities, err := st.ListEntities(productID, storage.EntityFilter{})
//
// The database is a local single-writer SQLite file; the store limits the
// connection pool to one connection and relies on SQLite's own transactional
// guarantees for individual statements.
package storage
