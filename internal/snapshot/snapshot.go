// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snapshot

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/storage"
)

// decisionWindow is the trailing window for the Recent Decisions section.
const decisionWindow = 14 * 24 * time.Hour

// Store is the slice of the persistence layer the snapshot generator reads.
// *storage.Store satisfies it.
type Store interface {
	GetProduct(id string) (*model.Product, error)
	ListEntities(productID string, f storage.EntityFilter) ([]*model.Entity, error)
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generate renders the copy snapshot for one product at the given moment.
// An unknown product id is not an error: the header falls back to "Product"
// and the body reflects whatever entities carry that id (typically none).
func Generate(st Store, productID string, now time.Time) (string, error) {
	name := "Product"
	if p, err := st.GetProduct(productID); err == nil {
		name = p.Name
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("load product: %w", err)
	}

	problems, err := st.ListEntities(productID, storage.EntityFilter{
		Types:    []model.EntityType{model.TypeProblem},
		Statuses: []string{model.StatusActive, model.StatusExploring},
	})
	if err != nil {
		return "", fmt.Errorf("list problems: %w", err)
	}
	experiments, err := st.ListEntities(productID, storage.EntityFilter{
		Types:    []model.EntityType{model.TypeExperiment},
		Statuses: []string{model.StatusRunning, model.StatusPlanned},
	})
	if err != nil {
		return "", fmt.Errorf("list experiments: %w", err)
	}
	all, err := st.ListEntities(productID, storage.EntityFilter{})
	if err != nil {
		return "", fmt.Errorf("list entities: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s - Snapshot\n\n", name))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04")))

	writeProblems(&sb, problems)
	writeExperiments(&sb, experiments)
	writeDecisions(&sb, all, now)
	writeQuestions(&sb, ExtractQuestions(all))
	writeStats(&sb, all)

	return sb.String(), nil
}

// writeProblems renders the Active Problems section. The store already
// returns entities most-recently-updated first.
func writeProblems(sb *strings.Builder, problems []*model.Entity) {
	if len(problems) == 0 {
		return
	}
	sb.WriteString("## Active Problems\n\n")
	for _, e := range problems {
		sb.WriteString(fmt.Sprintf("- **%s** (%s) - updated %s\n",
			e.Title, e.Status, model.ShortDate(e.UpdatedAt)))
	}
	sb.WriteString("\n")
}

// writeExperiments renders the Running Experiments section, appending
// Started/Ends dates from metadata when the metadata parses.
func writeExperiments(sb *strings.Builder, experiments []*model.Entity) {
	if len(experiments) == 0 {
		return
	}
	sb.WriteString("## Running Experiments\n\n")
	for _, e := range experiments {
		line := fmt.Sprintf("- **%s** (%s)", e.Title, e.Status)
		meta := e.ExperimentMeta()
		if meta.StartDate != "" {
			line += fmt.Sprintf(" - Started: %s", model.FormatDate(meta.StartDate))
		}
		if meta.EndDate != "" {
			line += fmt.Sprintf(" - Ends: %s", model.FormatDate(meta.EndDate))
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

// writeDecisions renders decisions created in the trailing window, newest
// first, with a decision-type parenthetical when metadata carries one.
func writeDecisions(sb *strings.Builder, all []*model.Entity, now time.Time) {
	cutoff := now.Add(-decisionWindow)
	var recent []*model.Entity
	for _, e := range all {
		if e.Type == model.TypeDecision && !e.CreatedAt.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	if len(recent) == 0 {
		return
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	sb.WriteString("## Recent Decisions (Last 14 Days)\n\n")
	for _, e := range recent {
		line := fmt.Sprintf("- **%s**", e.Title)
		if dt := e.DecisionMeta().DecisionType; dt != "" {
			line += fmt.Sprintf(" (%s)", dt)
		}
		line += fmt.Sprintf(" - %s", model.ShortDate(e.CreatedAt))
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

// writeQuestions renders the extracted open questions with their source
// entity as a caption.
func writeQuestions(sb *strings.Builder, questions []Question) {
	if len(questions) == 0 {
		return
	}
	sb.WriteString("## Open Questions\n\n")
	for _, q := range questions {
		sb.WriteString(fmt.Sprintf("- %s\n  (from %s, %s)\n", q.Text, q.SourceTitle, q.SourceType.Label()))
	}
	sb.WriteString("\n")
}

// writeStats renders the trailing quick-stats divider, skipped entirely for
// an empty product.
func writeStats(sb *strings.Builder, all []*model.Entity) {
	if len(all) == 0 {
		return
	}
	counts := make(map[model.EntityType]int)
	for _, e := range all {
		counts[e.Type]++
	}

	var pairs []string
	for _, t := range model.AllEntityTypes {
		if n := counts[t]; n > 0 {
			pairs = append(pairs, fmt.Sprintf("%d %s", n, t.Folder()))
		}
	}

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("Quick Stats: %s\n", strings.Join(pairs, ", ")))
}
