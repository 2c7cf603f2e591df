package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ReportType enumerates exportable reports.
type ReportType string

const (
	ReportTypeMonthlyMatrix ReportType = "monthly_matrix"
	ReportTypeMonthlyRecap  ReportType = "monthly_recap"
	ReportTypeSemesterRecap ReportType = "semester_recap"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeMonthlyMatrix, ReportTypeMonthlyRecap, ReportTypeSemesterRecap:
		return true
	}
	return false
}

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

// Valid reports whether f is a known format.
func (f ReportFormat) Valid() bool {
	switch f {
	case ReportFormatCSV, ReportFormatXLSX, ReportFormatPDF:
		return true
	}
	return false
}

// ContentType returns the MIME type of rendered files.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatCSV:
		return "text/csv"
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ReportFormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// ReportStatus captures background job lifecycle states.
type ReportStatus string

const (
	ReportStatusQueued     ReportStatus = "QUEUED"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusFinished   ReportStatus = "FINISHED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// ReportRequest selects the data and layout of an export.
type ReportRequest struct {
	Type     ReportType   `json:"type"`
	Format   ReportFormat `json:"format"`
	Class    string       `json:"kelas"`
	Month    int          `json:"bulan,omitempty"`
	Year     int          `json:"tahun,omitempty"`
	Semester Semester     `json:"semester,omitempty"`
	// SignDate is the DD/MM/YYYY date printed above the signatures.
	SignDate string `json:"tanggalTtd,omitempty"`
}

// ReportJob is the persisted state of an asynchronous export.
type ReportJob struct {
	ID         string        `db:"id" json:"id"`
	Type       ReportType    `db:"type" json:"type"`
	Format     ReportFormat  `db:"format" json:"format"`
	Params     ReportRequest `db:"params" json:"params"`
	Status     ReportStatus  `db:"status" json:"status"`
	Progress   int           `db:"progress" json:"progress"`
	ResultURL  *string       `db:"result_url" json:"result_url,omitempty"`
	Error      *string       `db:"error" json:"error,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
	FinishedAt *time.Time    `db:"finished_at" json:"finished_at,omitempty"`
}

// Value marshals the request to JSON for the JSONB params column.
func (r ReportRequest) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report params: %w", err)
	}
	return data, nil
}

// Scan unmarshals the JSONB params column.
func (r *ReportRequest) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*r = ReportRequest{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ReportRequest", value)
	}
	if len(data) == 0 {
		*r = ReportRequest{}
		return nil
	}
	if err := json.Unmarshal(data, r); err != nil {
		return fmt.Errorf("unmarshal report params: %w", err)
	}
	return nil
}
