package service

import (
	"context"
	"fmt"
	neturl "net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
	"github.com/wrdrb-app/wrdrb-api/pkg/export"
	"github.com/wrdrb-app/wrdrb-api/pkg/jobs"
	"github.com/wrdrb-app/wrdrb-api/pkg/storage"
)

type exportItemCatalog interface {
	ListAll(ctx context.Context, userID string) ([]models.ClothingItem, error)
}

type exportFileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

type csvRenderer interface {
	Render(rows []export.ClosetRow) ([]byte, error)
}

type pdfRenderer interface {
	Render(rows []export.ClosetRow, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	Workers   int
	Retries   int
}

// ExportService renders a user's closet to CSV or PDF in the background and
// hands out signed download URLs. Job state lives in memory; a restart drops
// pending jobs, which matches the fire-and-download usage.
type ExportService struct {
	items  exportItemCatalog
	files  exportFileStorage
	csv    csvRenderer
	pdf    pdfRenderer
	signer *storage.SignedURLSigner
	queue  *jobs.Queue
	logger *zap.Logger
	cfg    ExportConfig

	mu     sync.RWMutex
	byID   map[string]*models.ExportJob
	byUser map[string][]string
}

// NewExportService constructs an ExportService and its worker queue. Call
// Start before enqueueing and Stop on shutdown.
func NewExportService(items exportItemCatalog, files exportFileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	s := &ExportService{
		items:  items,
		files:  files,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		signer: signer,
		logger: logger,
		cfg:    cfg,
		byID:   make(map[string]*models.ExportJob),
		byUser: make(map[string][]string),
	}
	s.queue = jobs.NewQueue("closet-export", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		Logger:     logger,
	})
	return s
}

// Start launches the export workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Enqueue registers a new export job for the user and queues it.
func (s *ExportService) Enqueue(ctx context.Context, userID string, req models.CreateExportRequest) (*models.ExportJob, error) {
	if req.Format != models.ExportFormatCSV && req.Format != models.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		UserID:    userID,
		Format:    req.Format,
		Status:    models.ExportStatusQueued,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.byID[job.ID] = job
	s.byUser[userID] = append(s.byUser[userID], job.ID)
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "closet-export", Payload: job.ID}); err != nil {
		s.fail(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}
	return s.snapshot(job.ID), nil
}

// Get returns a job owned by the user.
func (s *ExportService) Get(userID, jobID string) (*models.ExportJob, error) {
	job := s.snapshot(jobID)
	if job == nil || job.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return job, nil
}

// List returns the user's jobs, newest first.
func (s *ExportService) List(userID string) []*models.ExportJob {
	s.mu.RLock()
	ids := s.byUser[userID]
	s.mu.RUnlock()

	out := make([]*models.ExportJob, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if job := s.snapshot(ids[i]); job != nil {
			out = append(out, job)
		}
	}
	return out
}

// OpenDownload validates a signed token and opens the exported file.
func (s *ExportService) OpenDownload(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	s.mu.RLock()
	_, known := s.byID[jobID]
	s.mu.RUnlock()
	if !known {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}
	return file, relPath, nil
}

func (s *ExportService) process(ctx context.Context, qj jobs.Job) error {
	jobID, _ := qj.Payload.(string)
	job := s.snapshot(jobID)
	if job == nil {
		return fmt.Errorf("unknown export job %s", jobID)
	}
	s.setStatus(jobID, models.ExportStatusProcessing)

	items, err := s.items.ListAll(ctx, job.UserID)
	if err != nil {
		s.fail(jobID, err)
		return err
	}

	rows := closetRows(items)
	var payload []byte
	switch job.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(rows)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(rows, "Closet Inventory")
	default:
		err = fmt.Errorf("unsupported format %s", job.Format)
	}
	if err != nil {
		s.fail(jobID, err)
		return err
	}

	filename := fmt.Sprintf("closet_%s_%s.%s", job.UserID, time.Now().UTC().Format("20060102_150405"), job.Format)
	relPath, err := s.files.Save(filename, payload)
	if err != nil {
		s.fail(jobID, err)
		return err
	}

	token, _, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		s.fail(jobID, err)
		return err
	}
	url := fmt.Sprintf("%s/exports/download?token=%s", strings.TrimRight(s.cfg.APIPrefix, "/"), neturl.QueryEscape(token))

	now := time.Now().UTC()
	s.mu.Lock()
	if stored := s.byID[jobID]; stored != nil {
		stored.Status = models.ExportStatusFinished
		stored.DownloadURL = &url
		stored.FinishedAt = &now
	}
	s.mu.Unlock()

	s.logger.Info("closet export finished", zap.String("job_id", jobID), zap.String("file", relPath))
	return nil
}

func (s *ExportService) setStatus(jobID string, status models.ExportStatus) {
	s.mu.Lock()
	if job := s.byID[jobID]; job != nil {
		job.Status = status
	}
	s.mu.Unlock()
}

func (s *ExportService) fail(jobID string, cause error) {
	msg := cause.Error()
	now := time.Now().UTC()
	s.mu.Lock()
	if job := s.byID[jobID]; job != nil {
		job.Status = models.ExportStatusFailed
		job.ErrorMessage = &msg
		job.FinishedAt = &now
	}
	s.mu.Unlock()
}

func (s *ExportService) snapshot(jobID string) *models.ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.byID[jobID]
	if !ok {
		return nil
	}
	clone := *job
	return &clone
}

func closetRows(items []models.ClothingItem) []export.ClosetRow {
	rows := make([]export.ClosetRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, export.ClosetRow{
			Name:     deref(item.Name),
			Brand:    deref(item.Brand),
			Category: item.Category,
			Color:    item.Color,
			Occasion: item.Occasion,
			ImageURL: item.ImageURL,
			AddedAt:  item.CreatedAt,
		})
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
