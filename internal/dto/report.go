package dto

import (
	"time"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// ReportJobResponse is returned after enqueueing a report.
type ReportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ReportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ReportStatusResponse exposes job progress metadata.
type ReportStatusResponse struct {
	ID         string              `json:"id"`
	Type       models.ReportType   `json:"type"`
	Format     models.ReportFormat `json:"format"`
	Status     models.ReportStatus `json:"status"`
	Progress   int                 `json:"progress"`
	ResultURL  *string             `json:"resultUrl,omitempty"`
	Error      *string             `json:"error,omitempty"`
	FinishedAt *time.Time          `json:"finishedAt,omitempty"`
}

// NewReportJobResponse summarises a freshly queued job.
func NewReportJobResponse(job *models.ReportJob) ReportJobResponse {
	return ReportJobResponse{ID: job.ID, Status: job.Status, Progress: job.Progress}
}

// NewReportStatusResponse maps a job row to its public status. Empty error
// strings are omitted.
func NewReportStatusResponse(job *models.ReportJob) ReportStatusResponse {
	resp := ReportStatusResponse{
		ID:         job.ID,
		Type:       job.Type,
		Format:     job.Format,
		Status:     job.Status,
		Progress:   job.Progress,
		ResultURL:  job.ResultURL,
		FinishedAt: job.FinishedAt,
	}
	if job.Error != nil && *job.Error != "" {
		resp.Error = job.Error
	}
	return resp
}
