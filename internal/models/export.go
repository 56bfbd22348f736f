package models

import "time"

// ExportFormat enumerates supported closet export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus captures background export lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob tracks an asynchronous closet export. Jobs are held in memory by
// the export service; DownloadURL is set once the artifact is written.
type ExportJob struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Format       ExportFormat `json:"format"`
	Status       ExportStatus `json:"status"`
	DownloadURL  *string      `json:"download_url,omitempty"`
	ErrorMessage *string      `json:"error_message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
}

// CreateExportRequest is the payload to start a closet export.
type CreateExportRequest struct {
	Format ExportFormat `json:"format" binding:"required,oneof=csv pdf"`
}
