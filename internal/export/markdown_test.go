// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/prodtrack/internal/model"
)

func testEntity(typ model.EntityType, title string) *model.Entity {
	e := model.NewEntity("p1", typ, title)
	e.CreatedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	e.UpdatedAt = time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)
	return e
}

// =============================================================================
// RENDERER TESTS
// =============================================================================

func TestRenderEntity_Basic(t *testing.T) {
	e := testEntity(model.TypeProblem, "Checkout drop-off")
	e.Status = model.StatusActive
	e.Body = "<p>Users abandon &amp; complain</p>"

	md := RenderEntity(e, model.TagNames{}, nil)

	if !strings.HasPrefix(md, "# Checkout drop-off\n") {
		t.Errorf("missing H1 title:\n%s", md)
	}
	if !strings.Contains(md, "- **Type**: Problem\n") {
		t.Error("missing type line")
	}
	if !strings.Contains(md, "- **Status**: active\n") {
		t.Error("missing status line")
	}
	if !strings.Contains(md, "Users abandon & complain") {
		t.Error("body not stripped/decoded")
	}
	if strings.Contains(md, "<p>") {
		t.Error("HTML tags leaked into output")
	}
}

func TestRenderEntity_SectionOmission(t *testing.T) {
	e := testEntity(model.TypeCapture, "Bare note")

	md := RenderEntity(e, model.TagNames{}, nil)

	for _, heading := range []string{"## Context", "## Notes", "## Linked Items"} {
		if strings.Contains(md, heading) {
			t.Errorf("empty section %q should be omitted:\n%s", heading, md)
		}
	}
}

func TestRenderEntity_ContextSection(t *testing.T) {
	e := testEntity(model.TypeFeedback, "Love it")
	tags := model.TagNames{
		Personas: []string{"Power User"},
		Features: []string{"Checkout", "Search"},
	}

	md := RenderEntity(e, tags, nil)

	if !strings.Contains(md, "## Context") {
		t.Fatal("missing context section")
	}
	if !strings.Contains(md, "- **Personas**: Power User\n") {
		t.Error("missing personas line")
	}
	if !strings.Contains(md, "- **Features**: Checkout, Search\n") {
		t.Error("missing features line")
	}
	if strings.Contains(md, "**Dimensions**") {
		t.Error("empty dimensions line should be omitted")
	}
}

func TestRenderEntity_ExperimentMetadata(t *testing.T) {
	e := testEntity(model.TypeExperiment, "Pricing test")
	e.Metadata = `{"startDate":"2024-01-01","endDate":"2024-02-01","outcome":"inconclusive"}`

	md := RenderEntity(e, model.TagNames{}, nil)

	if !strings.Contains(md, "- **Started**: 1/1/2024\n") {
		t.Errorf("missing start date:\n%s", md)
	}
	if !strings.Contains(md, "- **Ends**: 2/1/2024\n") {
		t.Error("missing end date")
	}
	if !strings.Contains(md, "- **Outcome**: inconclusive\n") {
		t.Error("missing outcome")
	}
}

func TestRenderEntity_MalformedMetadataOmitted(t *testing.T) {
	e := testEntity(model.TypeExperiment, "Broken meta")
	e.Metadata = `{not json`

	md := RenderEntity(e, model.TagNames{}, nil)

	if strings.Contains(md, "**Started**") || strings.Contains(md, "**Ends**") {
		t.Error("malformed metadata must render as absent fields")
	}
}

func TestRenderEntity_LinkedItemBuckets(t *testing.T) {
	e := testEntity(model.TypeProblem, "Linked")
	links := []*model.Relationship{
		{RelationshipType: "supports"},
		{RelationshipType: "supports"},
		{RelationshipType: "blocks"},
	}

	md := RenderEntity(e, model.TagNames{}, links)

	if !strings.Contains(md, "## Linked Items") {
		t.Fatal("missing linked items section")
	}
	if !strings.Contains(md, "- blocks: 1 item\n") {
		t.Error("missing blocks bucket")
	}
	if !strings.Contains(md, "- supports: 2 items\n") {
		t.Error("missing supports bucket")
	}
}

func TestRenderEntity_Deterministic(t *testing.T) {
	e := testEntity(model.TypeDecision, "Ship it")
	e.Metadata = `{"decisionType":"reversible"}`
	links := []*model.Relationship{
		{RelationshipType: "b"}, {RelationshipType: "a"}, {RelationshipType: "c"},
	}

	first := RenderEntity(e, model.TagNames{}, links)
	for i := 0; i < 5; i++ {
		if got := RenderEntity(e, model.TagNames{}, links); got != first {
			t.Fatal("RenderEntity is not deterministic")
		}
	}
}
