// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/prodtrack/internal/model"
)

// =============================================================================
// EXPORT HISTORY
// =============================================================================

// SaveExportRecord persists the immutable history row of a completed export
// run. The executor calls this last, after all files have been written.
func (s *Store) SaveExportRecord(r *model.ExportRecord) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	countsJSON, err := json.Marshal(r.Counts.ByType)
	if err != nil {
		return fmt.Errorf("encode counts: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO export_history (id, product_id, mode, scope_type, start_date,
			end_date, total_count, counts, output_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, nullString(r.ProductID), string(r.Mode), string(r.ScopeType),
		nullMillis(r.StartDate), toMillis(r.EndDate), r.Counts.Total,
		string(countsJSON), nullString(r.OutputPath), toMillis(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert export record: %w", err)
	}
	return nil
}

// scanExportRecord scans a row with the standard export history column order.
func scanExportRecord(scanner interface{ Scan(dest ...any) error }) (*model.ExportRecord, error) {
	var (
		r          model.ExportRecord
		productID  sql.NullString
		startDate  sql.NullInt64
		endDate    int64
		total      int
		countsJSON string
		outputPath sql.NullString
		createdAt  int64
	)
	err := scanner.Scan(&r.ID, &productID, &r.Mode, &r.ScopeType, &startDate,
		&endDate, &total, &countsJSON, &outputPath, &createdAt)
	if err != nil {
		return nil, err
	}

	r.ProductID = productID.String
	r.StartDate = millisPtr(startDate)
	r.EndDate = fromMillis(endDate)
	r.OutputPath = outputPath.String
	r.CreatedAt = fromMillis(createdAt)
	r.Counts = model.ExportCounts{Total: total, ByType: make(map[model.EntityType]int)}
	// A corrupted counts column loses the per-type split but keeps the total.
	_ = json.Unmarshal([]byte(countsJSON), &r.Counts.ByType)
	return &r, nil
}

// ListExportRecords returns export history, most recent first. productID
// limits the history to one product; "" or "all" returns everything.
func (s *Store) ListExportRecords(productID string) ([]*model.ExportRecord, error) {
	query := `
		SELECT id, product_id, mode, scope_type, start_date, end_date,
		       total_count, counts, output_path, created_at
		FROM export_history`
	var args []any
	if productID != "" && productID != model.ScopeAllProducts {
		query += ` WHERE product_id = ?`
		args = append(args, productID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list export history: %w", err)
	}
	defer rows.Close()

	var records []*model.ExportRecord
	for rows.Next() {
		r, err := scanExportRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteExportRecord removes one history row.
func (s *Store) DeleteExportRecord(id string) error {
	res, err := s.db.Exec(`DELETE FROM export_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete export record: %w", err)
	}
	return requireRow(res)
}

// ClearExportHistory removes all history rows, or just one product's when
// productID is set. Returns the number of rows removed.
func (s *Store) ClearExportHistory(productID string) (int, error) {
	query := `DELETE FROM export_history`
	var args []any
	if productID != "" && productID != model.ScopeAllProducts {
		query += ` WHERE product_id = ?`
		args = append(args, productID)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear export history: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}
