// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/storage"
)

func newTestStore(t *testing.T) (*storage.Store, *model.Product) {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	p := model.NewProduct("Acme")
	if err := st.CreateProduct(p); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	return st, p
}

func addEntity(t *testing.T, st *storage.Store, productID string, typ model.EntityType,
	title, status string, touched time.Time) *model.Entity {
	t.Helper()
	e := model.NewEntity(productID, typ, title)
	e.Status = status
	e.CreatedAt = touched
	e.UpdatedAt = touched
	if err := st.CreateEntity(e); err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	return e
}

// =============================================================================
// SNAPSHOT TESTS
// =============================================================================

func TestGenerate_HeaderAndFallback(t *testing.T) {
	st, p := newTestStore(t)
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	md, err := Generate(st, p.ID, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.HasPrefix(md, "# Acme - Snapshot\n") {
		t.Errorf("missing product header:\n%s", md)
	}
	if !strings.Contains(md, "Generated: 2024-07-01 09:00") {
		t.Error("missing generation timestamp")
	}

	// Unknown product falls back to "Product", not an error.
	md, err = Generate(st, "no-such-product", now)
	if err != nil {
		t.Fatalf("Generate failed for unknown product: %v", err)
	}
	if !strings.HasPrefix(md, "# Product - Snapshot\n") {
		t.Errorf("missing fallback header:\n%s", md)
	}
}

func TestGenerate_EmptySectionsOmitted(t *testing.T) {
	st, p := newTestStore(t)

	md, err := Generate(st, p.ID, time.Now())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, heading := range []string{
		"## Active Problems", "## Running Experiments",
		"## Recent Decisions", "## Open Questions", "Quick Stats",
	} {
		if strings.Contains(md, heading) {
			t.Errorf("empty product rendered section %q:\n%s", heading, md)
		}
	}
}

func TestGenerate_ProblemsAndExperiments(t *testing.T) {
	st, p := newTestStore(t)
	now := time.Now()

	addEntity(t, st, p.ID, model.TypeProblem, "Checkout drop-off", model.StatusActive, now)
	exp := addEntity(t, st, p.ID, model.TypeExperiment, "Pricing test", model.StatusRunning, now)
	exp.Metadata = `{"startDate":"2024-01-01"}`
	if err := st.UpdateEntity(exp); err != nil {
		t.Fatalf("UpdateEntity failed: %v", err)
	}

	md, err := Generate(st, p.ID, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(md, "## Active Problems") {
		t.Fatalf("missing problems section:\n%s", md)
	}
	if !strings.Contains(md, "- **Checkout drop-off** (active) - updated ") {
		t.Error("problem line malformed")
	}
	if !strings.Contains(md, "## Running Experiments") {
		t.Fatal("missing experiments section")
	}
	if !strings.Contains(md, "Started: 1/1/2024") {
		t.Errorf("experiment start date not locale-formatted:\n%s", md)
	}
}

func TestGenerate_ResolvedProblemExcluded(t *testing.T) {
	st, p := newTestStore(t)

	addEntity(t, st, p.ID, model.TypeProblem, "Old news", model.StatusResolved, time.Now())

	md, err := Generate(st, p.ID, time.Now())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(md, "## Active Problems") {
		t.Errorf("resolved problem produced a section:\n%s", md)
	}
}

func TestGenerate_MalformedExperimentMetadata(t *testing.T) {
	st, p := newTestStore(t)

	exp := addEntity(t, st, p.ID, model.TypeExperiment, "Broken", model.StatusRunning, time.Now())
	exp.Metadata = `{corrupt`
	if err := st.UpdateEntity(exp); err != nil {
		t.Fatalf("UpdateEntity failed: %v", err)
	}

	md, err := Generate(st, p.ID, time.Now())
	if err != nil {
		t.Fatalf("Generate must swallow malformed metadata, got: %v", err)
	}
	if !strings.Contains(md, "- **Broken** (running)\n") {
		t.Errorf("experiment line should omit dates:\n%s", md)
	}
}

func TestGenerate_RecentDecisionsWindow(t *testing.T) {
	st, p := newTestStore(t)
	now := time.Now()

	inWindow := addEntity(t, st, p.ID, model.TypeDecision, "Ship it", "", now.AddDate(0, 0, -3))
	inWindow.Metadata = `{"decisionType":"reversible"}`
	if err := st.UpdateEntity(inWindow); err != nil {
		t.Fatalf("UpdateEntity failed: %v", err)
	}
	addEntity(t, st, p.ID, model.TypeDecision, "Ancient call", "", now.AddDate(0, 0, -30))

	md, err := Generate(st, p.ID, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(md, "## Recent Decisions (Last 14 Days)") {
		t.Fatalf("missing decisions section:\n%s", md)
	}
	if !strings.Contains(md, "- **Ship it** (reversible) - ") {
		t.Error("missing decision-type parenthetical")
	}
	if strings.Contains(md, "Ancient call") {
		t.Error("decision outside the 14-day window leaked in")
	}
}

func TestGenerate_QuickStats(t *testing.T) {
	st, p := newTestStore(t)

	addEntity(t, st, p.ID, model.TypeProblem, "P1", model.StatusActive, time.Now())
	addEntity(t, st, p.ID, model.TypeProblem, "P2", model.StatusResolved, time.Now())
	addEntity(t, st, p.ID, model.TypeCapture, "C1", "", time.Now())

	md, err := Generate(st, p.ID, time.Now())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// Display order follows the canonical type order: captures first.
	if !strings.Contains(md, "Quick Stats: 1 captures, 2 problems") {
		t.Errorf("unexpected stats line:\n%s", md)
	}
}

func TestGenerate_QuickStatsSingleType(t *testing.T) {
	st, p := newTestStore(t)

	addEntity(t, st, p.ID, model.TypeFeedback, "F1", "", time.Now())

	md, err := Generate(st, p.ID, time.Now())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(md, "Quick Stats: 1 feedback\n") {
		t.Errorf("unexpected stats line:\n%s", md)
	}
}

// =============================================================================
// QUESTION EXTRACTION TESTS
// =============================================================================

func TestExtractQuestions_Basic(t *testing.T) {
	e := model.NewEntity("p1", model.TypeProblem, "Churn")
	e.Body = "Retention dipped. Why are users leaving after day 3? Needs digging."

	qs := ExtractQuestions([]*model.Entity{e})
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1: %+v", len(qs), qs)
	}
	if qs[0].Text != "Why are users leaving after day 3?" {
		t.Errorf("Text = %q", qs[0].Text)
	}
	if qs[0].SourceTitle != "Churn" || qs[0].SourceType != model.TypeProblem {
		t.Errorf("source = %q/%q", qs[0].SourceTitle, qs[0].SourceType)
	}
}

func TestExtractQuestions_StripsMarkupAndWhitespace(t *testing.T) {
	e := model.NewEntity("p1", model.TypeCapture, "Note")
	e.Body = "<p>Should we   ship\nthe&nbsp;beta this&nbsp;quarter?</p>"

	qs := ExtractQuestions([]*model.Entity{e})
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	// Newline is a terminator, so only the second line qualifies.
	if qs[0].Text != "the beta this quarter?" {
		t.Errorf("Text = %q", qs[0].Text)
	}
}

func TestExtractQuestions_LengthBounds(t *testing.T) {
	e := model.NewEntity("p1", model.TypeProblem, "Bounds")
	long := strings.Repeat("x", 300) + "?"
	e.Body = "Why? Too short? " + long + " Is this fragment long enough to pass?"

	qs := ExtractQuestions([]*model.Entity{e})
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1: %+v", len(qs), qs)
	}
	if qs[0].Text != "Is this fragment long enough to pass?" {
		t.Errorf("Text = %q", qs[0].Text)
	}
}

func TestExtractQuestions_BoundsCountRunes(t *testing.T) {
	e := model.NewEntity("p1", model.TypeProblem, "Unicode")
	// 8 runes but 22 bytes: must fall below the minimum length.
	// 14 runes: must pass it.
	e.Body = "日本語でいいか? このリリースは本当に必要か?"

	qs := ExtractQuestions([]*model.Entity{e})
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1: %+v", len(qs), qs)
	}
	if qs[0].Text != "このリリースは本当に必要か?" {
		t.Errorf("Text = %q", qs[0].Text)
	}
}

func TestExtractQuestions_PerEntityAndTotalCaps(t *testing.T) {
	// One entity with 5 qualifying questions contributes at most 3.
	one := model.NewEntity("p1", model.TypeProblem, "Busy")
	var parts []string
	for i := 0; i < 5; i++ {
		parts = append(parts, fmt.Sprintf("What about topic number %d here?", i))
	}
	one.Body = strings.Join(parts, " ")

	qs := ExtractQuestions([]*model.Entity{one})
	if len(qs) != 3 {
		t.Fatalf("per-entity cap: got %d, want 3", len(qs))
	}

	// Many entities together cap at 10 overall.
	var many []*model.Entity
	for i := 0; i < 6; i++ {
		e := model.NewEntity("p1", model.TypeProblem, fmt.Sprintf("E%d", i))
		e.Body = fmt.Sprintf(
			"Is entity %d question one fine? Is entity %d question two fine? Is entity %d question three fine?",
			i, i, i)
		many = append(many, e)
	}
	qs = ExtractQuestions(many)
	if len(qs) != 10 {
		t.Fatalf("total cap: got %d, want 10", len(qs))
	}
}

func TestExtractQuestions_DedupAcrossEntities(t *testing.T) {
	a := model.NewEntity("p1", model.TypeProblem, "First")
	a.Body = "Should we rewrite the importer?"
	b := model.NewEntity("p1", model.TypeCapture, "Second")
	b.Body = "Should we rewrite the importer?"

	qs := ExtractQuestions([]*model.Entity{a, b})
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if qs[0].SourceTitle != "First" {
		t.Errorf("dedup should keep the first occurrence, got %q", qs[0].SourceTitle)
	}
}

func TestExtractQuestions_RecencyOrder(t *testing.T) {
	// Input arrives most-recently-updated first; output follows it.
	newer := model.NewEntity("p1", model.TypeProblem, "Newer")
	newer.Body = "Is the newer question first in line?"
	older := model.NewEntity("p1", model.TypeProblem, "Older")
	older.Body = "Is the older question second in line?"

	qs := ExtractQuestions([]*model.Entity{newer, older})
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[0].SourceTitle != "Newer" || qs[1].SourceTitle != "Older" {
		t.Errorf("order = %q, %q", qs[0].SourceTitle, qs[1].SourceTitle)
	}
}
