// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/storage"
)

// newTestStore opens a throwaway database with one product.
func newTestStore(t *testing.T) (*storage.Store, *model.Product) {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	p := model.NewProduct("P1")
	if err := st.CreateProduct(p); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	return st, p
}

// addEntity creates an entity with explicit timestamps.
func addEntity(t *testing.T, st *storage.Store, productID string, typ model.EntityType,
	title string, touched time.Time) *model.Entity {
	t.Helper()
	e := model.NewEntity(productID, typ, title)
	e.CreatedAt = touched
	e.UpdatedAt = touched
	if err := st.CreateEntity(e); err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	return e
}

// =============================================================================
// PREVIEW TESTS
// =============================================================================

func TestPreview_FullModeIncludesEverything(t *testing.T) {
	st, p := newTestStore(t)

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	addEntity(t, st, p.ID, model.TypeProblem, "Ancient problem", old)
	addEntity(t, st, p.ID, model.TypeDecision, "Fresh decision", time.Now())

	preview, err := Preview(st, model.ExportOptions{ProductID: p.ID, Mode: model.ModeFull})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if preview.Counts.Total != 2 {
		t.Errorf("Total = %d, want 2", preview.Counts.Total)
	}
	if len(preview.Entities) != 2 {
		t.Errorf("Entities = %d, want 2", len(preview.Entities))
	}
}

func TestPreview_IncrementalTouchedEither(t *testing.T) {
	st, p := newTestStore(t)

	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	old := cutoff.AddDate(0, -2, 0)

	// Created long ago but updated after the cutoff: included.
	updated := model.NewEntity(p.ID, model.TypeProblem, "Updated recently")
	updated.CreatedAt = old
	updated.UpdatedAt = cutoff.AddDate(0, 0, 2)
	if err := st.CreateEntity(updated); err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}

	// Untouched since before the cutoff: excluded.
	addEntity(t, st, p.ID, model.TypeProblem, "Stale", old)

	preview, err := Preview(st, model.ExportOptions{
		ProductID: p.ID,
		Mode:      model.ModeIncremental,
		StartDate: &cutoff,
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if preview.Counts.Total != 1 {
		t.Fatalf("Total = %d, want 1", preview.Counts.Total)
	}
	if preview.Entities[0].Title != "Updated recently" {
		t.Errorf("selected %q", preview.Entities[0].Title)
	}
}

func TestPreview_LinkedContextExpansion(t *testing.T) {
	st, p := newTestStore(t)

	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// A is in the incremental window and links to B, which is not.
	a := addEntity(t, st, p.ID, model.TypeProblem, "A", cutoff.AddDate(0, 0, 1))
	b := addEntity(t, st, p.ID, model.TypeHypothesis, "B", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	// C is stale and unlinked: must not appear.
	addEntity(t, st, p.ID, model.TypeDecision, "C", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if err := st.CreateRelationship(model.NewRelationship(p.ID, a.ID, b.ID, "supports")); err != nil {
		t.Fatalf("CreateRelationship failed: %v", err)
	}

	preview, err := Preview(st, model.ExportOptions{
		ProductID:            p.ID,
		Mode:                 model.ModeIncremental,
		StartDate:            &cutoff,
		IncludeLinkedContext: true,
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	ids := map[string]int{}
	for _, e := range preview.Entities {
		ids[e.ID]++
	}
	if ids[a.ID] != 1 || ids[b.ID] != 1 {
		t.Errorf("expected A and B exactly once, got %v", ids)
	}
	if len(preview.Entities) != 2 {
		t.Errorf("Entities = %d, want 2", len(preview.Entities))
	}
	if preview.Counts.Total != 2 {
		t.Errorf("Total = %d, want 2", preview.Counts.Total)
	}
	if preview.Counts.ByType[model.TypeHypothesis] != 1 {
		t.Errorf("expanded entity type not counted: %v", preview.Counts.ByType)
	}
}

func TestPreview_ExpansionIsSingleHop(t *testing.T) {
	st, p := newTestStore(t)

	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// A (seed) -> B -> C. C is two hops out and must stay excluded.
	a := addEntity(t, st, p.ID, model.TypeProblem, "A", cutoff.AddDate(0, 0, 1))
	b := addEntity(t, st, p.ID, model.TypeHypothesis, "B", old)
	c := addEntity(t, st, p.ID, model.TypeExperiment, "C", old)

	for _, pair := range [][2]string{{a.ID, b.ID}, {b.ID, c.ID}} {
		if err := st.CreateRelationship(model.NewRelationship(p.ID, pair[0], pair[1], "relates_to")); err != nil {
			t.Fatalf("CreateRelationship failed: %v", err)
		}
	}

	preview, err := Preview(st, model.ExportOptions{
		ProductID:            p.ID,
		Mode:                 model.ModeIncremental,
		StartDate:            &cutoff,
		IncludeLinkedContext: true,
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	for _, e := range preview.Entities {
		if e.ID == c.ID {
			t.Error("two-hop entity leaked into the expansion")
		}
	}
	if preview.Counts.Total != 2 {
		t.Errorf("Total = %d, want 2", preview.Counts.Total)
	}
}

func TestPreview_NoExpansionInFullMode(t *testing.T) {
	st, p := newTestStore(t)

	a := addEntity(t, st, p.ID, model.TypeProblem, "A", time.Now())
	preview, err := Preview(st, model.ExportOptions{
		ProductID:            p.ID,
		Mode:                 model.ModeFull,
		IncludeLinkedContext: true, // ignored outside incremental mode
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(preview.Entities) != 1 || preview.Entities[0].ID != a.ID {
		t.Errorf("unexpected entities: %+v", preview.Entities)
	}
}

func TestPreview_ZeroSeeds(t *testing.T) {
	st, p := newTestStore(t)

	cutoff := time.Now().AddDate(0, 0, 1) // in the future: nothing qualifies
	preview, err := Preview(st, model.ExportOptions{
		ProductID:            p.ID,
		Mode:                 model.ModeIncremental,
		StartDate:            &cutoff,
		IncludeLinkedContext: true,
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Counts.Total != 0 || len(preview.Entities) != 0 {
		t.Errorf("expected empty preview, got %+v", preview)
	}
}

func TestPreview_InvalidMode(t *testing.T) {
	st, p := newTestStore(t)

	_, err := Preview(st, model.ExportOptions{ProductID: p.ID, Mode: "weekly"})
	if err == nil {
		t.Fatal("expected error for invalid mode")
	}
}
