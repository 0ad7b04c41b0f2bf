package store

import (
	"fmt"
	"time"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// SaveReport 保存报告元数据
func (s *Store) SaveReport(report *model.Report) (int64, error) {
	if report.ReportDate.IsZero() {
		report.ReportDate = time.Now().UTC()
	}
	report.CreatedAt = time.Now().UTC()

	result, err := s.db.Exec(`
		INSERT INTO reports (
			snapshot_id, report_name, report_type, organization_name,
			report_year, prepared_by, report_date, comment, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.SnapshotID, report.ReportName, report.ReportType, report.OrganizationName,
		report.ReportYear, report.PreparedBy, report.ReportDate, report.Comment, report.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get report id: %w", err)
	}
	report.ID = id
	return id, nil
}

// ListReports 查询快照关联的报告（按创建时间倒序）
func (s *Store) ListReports(snapshotID string) ([]*model.Report, error) {
	rows, err := s.db.Query(`
		SELECT id, snapshot_id, report_name, report_type, organization_name,
		       report_year, prepared_by, report_date, comment, created_at
		FROM reports WHERE snapshot_id = ? ORDER BY created_at DESC, id DESC
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		var report model.Report
		err := rows.Scan(
			&report.ID, &report.SnapshotID, &report.ReportName, &report.ReportType,
			&report.OrganizationName, &report.ReportYear, &report.PreparedBy,
			&report.ReportDate, &report.Comment, &report.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}
