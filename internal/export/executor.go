// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jeranaias/prodtrack/internal/config"
	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/util"
)

// =============================================================================
// EXPORT EXECUTOR
// =============================================================================

// Execute runs a full export: selects the entity set via Preview, writes one
// markdown file per entity plus manifest.json and snapshot.md under
// <workspace>/exports/runs/<exportID>/, and persists the history record.
//
// The history record is written last. Any failure before it leaves no
// history row; a partially written run directory is kept for inspection
// rather than cleaned up.
func Execute(st Store, cfg *config.Config, opts model.ExportOptions) (*model.ExportResult, error) {
	if cfg == nil || !cfg.HasWorkspace() {
		return nil, ErrWorkspaceNotConfigured
	}

	preview, err := Preview(st, opts)
	if err != nil {
		return nil, err
	}

	exportID := uuid.NewString()
	now := time.Now()
	runDir := filepath.Join(cfg.ExportRoot(), exportID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	files := make([]model.ManifestFile, 0, len(preview.Entities))
	for _, e := range preview.Entities {
		relPath, err := writeEntityFile(st, runDir, e)
		if err != nil {
			return nil, err
		}
		files = append(files, model.ManifestFile{
			ID:    e.ID,
			Type:  e.Type,
			Title: e.Title,
			Path:  relPath,
		})
	}

	if err := writeManifest(runDir, exportID, now, opts, preview.Counts, files); err != nil {
		return nil, err
	}
	if err := writeRunSnapshot(runDir, now, opts, preview, cfg.Export.RecentLimit); err != nil {
		return nil, err
	}

	record := &model.ExportRecord{
		ID:         exportID,
		Mode:       opts.Mode,
		ScopeType:  model.ScopeProduct,
		StartDate:  opts.StartDate,
		EndDate:    now,
		Counts:     preview.Counts,
		OutputPath: runDir,
		CreatedAt:  now,
	}
	if opts.AllProducts() {
		record.ScopeType = model.ScopeAll
		record.ProductID = "" // stored as NULL
	} else {
		record.ProductID = opts.ProductID
	}

	// Persisted last: a failed run must leave no history.
	if err := st.SaveExportRecord(record); err != nil {
		return nil, fmt.Errorf("record export: %w", err)
	}

	log.Info("export complete", "id", exportID, "entities", preview.Counts.Total, "path", runDir)

	if cfg.Export.OpenAfterExport {
		if err := OpenFolder(runDir); err != nil {
			// Non-fatal: the export itself succeeded.
			log.Warn("could not open export folder", "error", err)
		}
	}

	return &model.ExportResult{
		ID:         exportID,
		OutputPath: runDir,
		Counts:     preview.Counts,
		CreatedAt:  now,
	}, nil
}

// writeEntityFile renders one entity to markdown and writes it under the
// per-type subdirectory. Returns the path relative to the run root, exactly
// as recorded in the manifest.
func writeEntityFile(st Store, runDir string, summary *model.Entity) (string, error) {
	// The preview only carries summary fields; fetch the full detail.
	e, err := st.GetEntity(summary.ID)
	if err != nil {
		return "", fmt.Errorf("load entity %s: %w", summary.ID, err)
	}
	ctx, err := st.GetEntityContext(e.ID)
	if err != nil {
		return "", fmt.Errorf("load entity context %s: %w", e.ID, err)
	}
	tags, err := st.ResolveTagNames(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve tags %s: %w", e.ID, err)
	}
	links, err := st.ListOutgoingRelationships(e.ID)
	if err != nil {
		return "", fmt.Errorf("load relationships %s: %w", e.ID, err)
	}

	content := RenderEntity(e, tags, links)
	relPath := filepath.Join(e.Type.Folder(), entityFilename(e))
	absPath := filepath.Join(runDir, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("create type directory: %w", err)
	}
	if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", relPath, err)
	}
	return relPath, nil
}

// entityFilename derives the deterministic filename for an entity: the
// slugified title plus the first 8 characters of the ID, which keeps
// entities with colliding titles apart.
func entityFilename(e *model.Entity) string {
	id8 := e.ID
	if len(id8) > 8 {
		id8 = id8[:8]
	}
	return util.Slugify(e.Title) + "-" + id8 + ".md"
}

// =============================================================================
// MANIFEST
// =============================================================================

// writeManifest writes manifest.json at the run root.
func writeManifest(runDir, exportID string, now time.Time, opts model.ExportOptions,
	counts model.ExportCounts, files []model.ManifestFile) error {

	m := model.Manifest{
		ID:        exportID,
		Timestamp: now,
		Mode:      opts.Mode,
		Scope:     model.ScopeProduct,
		StartDate: opts.StartDate,
		Counts:    counts,
		Files:     files,
	}
	if opts.AllProducts() {
		m.Scope = model.ScopeAll
	} else {
		m.ProductID = opts.ProductID
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := util.AtomicWriteFile(filepath.Join(runDir, "manifest.json"), data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// =============================================================================
// RUN SNAPSHOT
// =============================================================================

// writeRunSnapshot writes snapshot.md: a human-readable digest of the run
// with per-type counts and the most recently updated entities.
func writeRunSnapshot(runDir string, now time.Time, opts model.ExportOptions,
	preview *model.ExportPreview, recentLimit int) error {

	var sb strings.Builder

	sb.WriteString("# Export Snapshot\n\n")
	sb.WriteString(fmt.Sprintf("- **Exported**: %s\n", formatTimestamp(now)))
	sb.WriteString(fmt.Sprintf("- **Mode**: %s\n", opts.Mode))
	if opts.Mode == model.ModeIncremental && opts.StartDate != nil {
		sb.WriteString(fmt.Sprintf("- **Since**: %s\n", formatTimestamp(*opts.StartDate)))
	}
	sb.WriteString(fmt.Sprintf("- **Total**: %d\n\n", preview.Counts.Total))

	// Counts by type, zero-count types omitted.
	if preview.Counts.Total > 0 {
		sb.WriteString("## Counts\n\n")
		for _, t := range model.AllEntityTypes {
			if n := preview.Counts.ByType[t]; n > 0 {
				sb.WriteString(fmt.Sprintf("- %s: %d\n", t.Folder(), n))
			}
		}
		sb.WriteString("\n")
	}

	// Most recently updated entities across the whole export set.
	if len(preview.Entities) > 0 {
		recent := make([]*model.Entity, len(preview.Entities))
		copy(recent, preview.Entities)
		sort.Slice(recent, func(i, j int) bool {
			return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
		})
		if recentLimit <= 0 {
			recentLimit = 20
		}
		if len(recent) > recentLimit {
			recent = recent[:recentLimit]
		}

		sb.WriteString("## Recent Items\n\n")
		for _, e := range recent {
			sb.WriteString(fmt.Sprintf("- [%s] %s - %s\n",
				e.Type.Label(), e.Title, model.ShortDate(e.UpdatedAt)))
		}
		sb.WriteString("\n")
	}

	path := filepath.Join(runDir, "snapshot.md")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
