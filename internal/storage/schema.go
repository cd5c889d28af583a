// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for the prodtrack database. Timestamps are Unix millis.
const Schema = `
-- Metadata table for schema version and store state
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Products: top-level containers
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    archived_at INTEGER
);

-- Taxonomy: personas, features, dimensions + values
CREATE TABLE IF NOT EXISTS personas (
    id TEXT PRIMARY KEY,
    product_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    archived_at INTEGER,
    FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_personas_product ON personas(product_id);

CREATE TABLE IF NOT EXISTS features (
    id TEXT PRIMARY KEY,
    product_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    archived_at INTEGER,
    FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_features_product ON features(product_id);

CREATE TABLE IF NOT EXISTS dimensions (
    id TEXT PRIMARY KEY,
    product_id TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    archived_at INTEGER,
    FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_dimensions_product ON dimensions(product_id);

CREATE TABLE IF NOT EXISTS dimension_values (
    id TEXT PRIMARY KEY,
    dimension_id TEXT NOT NULL,
    value TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY(dimension_id) REFERENCES dimensions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_dimension_values_dimension ON dimension_values(dimension_id);

-- Entities: the tracked artifacts
CREATE TABLE IF NOT EXISTS entities (
    id TEXT PRIMARY KEY,
    product_id TEXT NOT NULL,
    type TEXT NOT NULL,          -- capture, problem, hypothesis, experiment, ...
    title TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT '',
    status TEXT,
    metadata TEXT,               -- JSON object, may be NULL
    promoted_to_id TEXT,         -- set when a capture is promoted
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    archived_at INTEGER,
    FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE CASCADE,
    FOREIGN KEY(promoted_to_id) REFERENCES entities(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_entities_product ON entities(product_id);
CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(type);
CREATE INDEX IF NOT EXISTS idx_entities_updated ON entities(updated_at);

-- Tag associations (many-to-many)
CREATE TABLE IF NOT EXISTS entity_personas (
    entity_id TEXT NOT NULL,
    persona_id TEXT NOT NULL,
    PRIMARY KEY(entity_id, persona_id),
    FOREIGN KEY(entity_id) REFERENCES entities(id) ON DELETE CASCADE,
    FOREIGN KEY(persona_id) REFERENCES personas(id) ON DELETE CASCADE
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS entity_features (
    entity_id TEXT NOT NULL,
    feature_id TEXT NOT NULL,
    PRIMARY KEY(entity_id, feature_id),
    FOREIGN KEY(entity_id) REFERENCES entities(id) ON DELETE CASCADE,
    FOREIGN KEY(feature_id) REFERENCES features(id) ON DELETE CASCADE
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS entity_dimension_values (
    entity_id TEXT NOT NULL,
    dimension_value_id TEXT NOT NULL,
    PRIMARY KEY(entity_id, dimension_value_id),
    FOREIGN KEY(entity_id) REFERENCES entities(id) ON DELETE CASCADE,
    FOREIGN KEY(dimension_value_id) REFERENCES dimension_values(id) ON DELETE CASCADE
) WITHOUT ROWID;

-- Relationship graph: directed edges between entities
CREATE TABLE IF NOT EXISTS relationships (
    id TEXT PRIMARY KEY,
    product_id TEXT NOT NULL,
    source_id TEXT NOT NULL,
    target_id TEXT NOT NULL,
    relationship_type TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY(source_id) REFERENCES entities(id) ON DELETE CASCADE,
    FOREIGN KEY(target_id) REFERENCES entities(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_relationships_source ON relationships(source_id);
CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(target_id);

-- Export history: one immutable row per completed export run
CREATE TABLE IF NOT EXISTS export_history (
    id TEXT PRIMARY KEY,
    product_id TEXT,             -- NULL means all products
    mode TEXT NOT NULL,          -- full, incremental
    scope_type TEXT NOT NULL,    -- product, all
    start_date INTEGER,
    end_date INTEGER NOT NULL,
    total_count INTEGER NOT NULL,
    counts TEXT NOT NULL,        -- JSON map of type -> count
    output_path TEXT,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_export_history_product ON export_history(product_id);
CREATE INDEX IF NOT EXISTS idx_export_history_created ON export_history(created_at);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`
