package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// ErrSnapshotNotFound 快照不存在
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SaveSnapshot 保存核算快照
// ID 为空时自动生成；明细以 JSON 形式落库
func (s *Store) SaveSnapshot(snapshot *model.Snapshot) (string, error) {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}

	entriesJSON, err := json.Marshal(snapshot.Entries)
	if err != nil {
		return "", fmt.Errorf("failed to marshal entries: %w", err)
	}

	now := time.Now().UTC()
	snapshot.CreatedAt = now
	snapshot.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO snapshots (
			id, organization_name, report_year, time_period, calculation_method,
			entries_json, scope1_total, scope2_total, scope3_total, grand_total,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		snapshot.ID, snapshot.OrganizationName, snapshot.ReportYear,
		snapshot.TimePeriod, snapshot.CalculationMethod,
		string(entriesJSON),
		snapshot.Scope1Total, snapshot.Scope2Total, snapshot.Scope3Total, snapshot.GrandTotal,
		now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return snapshot.ID, nil
}

// GetSnapshot 按 ID 查询快照
func (s *Store) GetSnapshot(id string) (*model.Snapshot, error) {
	row := s.db.QueryRow(`
		SELECT id, organization_name, report_year, time_period, calculation_method,
		       entries_json, scope1_total, scope2_total, scope3_total, grand_total,
		       created_at, updated_at
		FROM snapshots WHERE id = ?
	`, id)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshots 查询全部快照（按创建时间倒序）
func (s *Store) ListSnapshots() ([]*model.Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT id, organization_name, report_year, time_period, calculation_method,
		       entries_json, scope1_total, scope2_total, scope3_total, grand_total,
		       created_at, updated_at
		FROM snapshots ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*model.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// DeleteSnapshot 删除快照及其关联报告
func (s *Store) DeleteSnapshot(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reports WHERE snapshot_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete reports: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrSnapshotNotFound
	}

	return tx.Commit()
}

// CountSnapshots 统计快照总数
func (s *Store) CountSnapshots() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count)
	return count, err
}

// LastSavedAt 最近一次保存时间，无数据时返回零值
func (s *Store) LastSavedAt() (time.Time, error) {
	var t time.Time
	err := s.db.QueryRow(`SELECT created_at FROM snapshots ORDER BY created_at DESC LIMIT 1`).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	var entriesJSON string

	err := row.Scan(
		&snapshot.ID, &snapshot.OrganizationName, &snapshot.ReportYear,
		&snapshot.TimePeriod, &snapshot.CalculationMethod,
		&entriesJSON,
		&snapshot.Scope1Total, &snapshot.Scope2Total, &snapshot.Scope3Total, &snapshot.GrandTotal,
		&snapshot.CreatedAt, &snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(entriesJSON), &snapshot.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	return &snapshot, nil
}
