// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export implements the markdown export pipeline for prodtrack.
//
// The pipeline has three stages:
//
//   - Preview: selects the entity set an export would cover (full or
//     incremental with a touched-either cutoff) and expands one hop of
//     linked context when requested.
//   - RenderEntity: converts one entity into a markdown document.
//   - Execute: writes the per-entity files, manifest.json, and snapshot.md
//     under the workspace, then persists the history record last.
//
// # Usage
//
//	preview, err := export.Preview(st, opts)
//	result, err := export.Execute(st, cfg, opts)
//
// Execute never records history for a failed run: any error before the final
// record insert leaves the history untouched, and a partially written run
// directory is left in place for manual inspection.
package export
