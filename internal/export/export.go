// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/jeranaias/prodtrack/internal/model"
	"github.com/jeranaias/prodtrack/internal/storage"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrWorkspaceNotConfigured is returned when an export is attempted
	// without a workspace root. A precondition failure, not retryable.
	ErrWorkspaceNotConfigured = errors.New("workspace not configured")

	// ErrInvalidOptions is returned for unusable export options.
	ErrInvalidOptions = errors.New("invalid export options")
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is the slice of the persistence layer the export pipeline reads and
// writes. *storage.Store satisfies it; tests may substitute wrappers.
type Store interface {
	ListEntities(productID string, f storage.EntityFilter) ([]*model.Entity, error)
	ListRelationshipTargets(sourceIDs []string) ([]*model.Entity, error)
	GetEntity(id string) (*model.Entity, error)
	GetEntityContext(entityID string) (model.EntityContext, error)
	ResolveTagNames(ctx model.EntityContext) (model.TagNames, error)
	ListOutgoingRelationships(entityID string) ([]*model.Relationship, error)
	SaveExportRecord(r *model.ExportRecord) error
}

// =============================================================================
// OS INTEGRATION
// =============================================================================

// OpenFolder opens a directory in the default file manager for the OS.
func OpenFolder(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
