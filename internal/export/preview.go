// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"

	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/storage"
)

// =============================================================================
// PREVIEW BUILDER
// =============================================================================

// Preview selects the entity set an export with the given options would
// cover and computes per-type counts. Execute re-derives its set through
// this same function, so preview and execution can never disagree.
//
// The returned entity list is sorted by updated_at descending, with any
// linked-context additions appended after the base selection. Every entity
// ID appears at most once, and Counts.Total always equals len(Entities).
func Preview(st Store, opts model.ExportOptions) (*model.ExportPreview, error) {
	if !opts.Mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, opts.Mode)
	}

	filter := storage.EntityFilter{}
	if opts.Mode == model.ModeIncremental && opts.StartDate != nil {
		filter.Since = opts.StartDate
	}

	entities, err := st.ListEntities(opts.ProductID, filter)
	if err != nil {
		return nil, fmt.Errorf("select entities: %w", err)
	}

	counts := model.NewExportCounts()
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		seen[e.ID] = true
		counts.Add(e.Type)
	}

	if opts.Mode == model.ModeIncremental && opts.IncludeLinkedContext {
		expanded, err := expandLinkedContext(st, entities, seen)
		if err != nil {
			return nil, err
		}
		for _, e := range expanded {
			counts.Add(e.Type)
		}
		entities = append(entities, expanded...)
	}

	return &model.ExportPreview{Counts: counts, Entities: entities}, nil
}

// =============================================================================
// LINKED-CONTEXT EXPANSION
// =============================================================================

// expandLinkedContext walks one outgoing hop of the relationship graph from
// the seed set and returns the targets not already selected. Deliberately
// not transitive: entities added here do not seed a further hop.
func expandLinkedContext(st Store, seeds []*model.Entity, seen map[string]bool) ([]*model.Entity, error) {
	if len(seeds) == 0 {
		// No seeds means no expansion query at all.
		return nil, nil
	}

	seedIDs := make([]string, len(seeds))
	for i, e := range seeds {
		seedIDs[i] = e.ID
	}

	targets, err := st.ListRelationshipTargets(seedIDs)
	if err != nil {
		return nil, fmt.Errorf("expand linked context: %w", err)
	}

	var added []*model.Entity
	for _, t := range targets {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		added = append(added, t)
	}
	return added, nil
}
