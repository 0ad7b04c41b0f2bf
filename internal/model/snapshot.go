package model

import "time"

// Snapshot 一次核算快照（持久化）
// 保存排放记录明细与各范围小计，用于历史报告回溯
type Snapshot struct {
	ID                string          `json:"id"`
	OrganizationName  string          `json:"organizationName"`
	ReportYear        int             `json:"reportYear"`
	TimePeriod        string          `json:"timePeriod"`        // Monthly / Quarterly / Annually
	CalculationMethod string          `json:"calculationMethod"` // Exact / Estimated
	Entries           []EmissionEntry `json:"entries"`
	Scope1Total       float64         `json:"scope1Total"`
	Scope2Total       float64         `json:"scope2Total"`
	Scope3Total       float64         `json:"scope3Total"`
	GrandTotal        float64         `json:"grandTotal"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Report 报告元数据（持久化）
type Report struct {
	ID               int64     `json:"id"`
	SnapshotID       string    `json:"snapshotId"`
	ReportName       string    `json:"reportName"`
	ReportType       string    `json:"reportType"` // excel
	OrganizationName string    `json:"organizationName"`
	ReportYear       int       `json:"reportYear"`
	PreparedBy       string    `json:"preparedBy"`
	ReportDate       time.Time `json:"reportDate"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"createdAt"`
}
