package service

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/pkg/storage"
)

func newExportService(t *testing.T, items []models.ClothingItem) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("export-secret", time.Hour)
	svc := NewExportService(&mockItemCatalog{items: items}, files, signer, ExportConfig{APIPrefix: "/api/v1"}, nil)
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return svc
}

func waitForJob(t *testing.T, svc *ExportService, userID, jobID string) *models.ExportJob {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := svc.Get(userID, jobID)
		require.NoError(t, err)
		if job.Status == models.ExportStatusFinished || job.Status == models.ExportStatusFailed {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("export job %s did not finish", jobID)
	return nil
}

func TestExportCSVRoundTrip(t *testing.T) {
	name := "Blue Tee"
	items := []models.ClothingItem{
		{ID: "i1", Name: &name, Category: "T-Shirt", Color: "Blue", Occasion: "Casual", ImageURL: "http://localhost/uploads/i1.jpg"},
	}
	svc := newExportService(t, items)

	job, err := svc.Enqueue(context.Background(), "u1", models.CreateExportRequest{Format: models.ExportFormatCSV})
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusQueued, job.Status)

	done := waitForJob(t, svc, "u1", job.ID)
	require.Equal(t, models.ExportStatusFinished, done.Status)
	require.NotNil(t, done.DownloadURL)
	assert.True(t, strings.HasPrefix(*done.DownloadURL, "/api/v1/exports/download?token="))

	raw := strings.TrimPrefix(*done.DownloadURL, "/api/v1/exports/download?token=")
	token, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	file, _, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Blue Tee")
	assert.Contains(t, string(content), "T-Shirt")
}

func TestExportPDFFinishes(t *testing.T) {
	svc := newExportService(t, []models.ClothingItem{{ID: "i1", Category: "Shoes", Color: "Black", Occasion: "Casual"}})

	job, err := svc.Enqueue(context.Background(), "u1", models.CreateExportRequest{Format: models.ExportFormatPDF})
	require.NoError(t, err)

	done := waitForJob(t, svc, "u1", job.ID)
	assert.Equal(t, models.ExportStatusFinished, done.Status)
	require.NotNil(t, done.DownloadURL)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newExportService(t, nil)
	_, err := svc.Enqueue(context.Background(), "u1", models.CreateExportRequest{Format: "xlsx"})
	require.Error(t, err)
}

func TestExportJobScopedToOwner(t *testing.T) {
	svc := newExportService(t, nil)
	job, err := svc.Enqueue(context.Background(), "u1", models.CreateExportRequest{Format: models.ExportFormatCSV})
	require.NoError(t, err)

	_, err = svc.Get("intruder", job.ID)
	require.Error(t, err)
}

func TestOpenDownloadRejectsTamperedToken(t *testing.T) {
	svc := newExportService(t, nil)
	_, _, err := svc.OpenDownload("bogus.token.value.sig")
	require.Error(t, err)
}
