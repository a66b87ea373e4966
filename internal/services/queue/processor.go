package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/phambaophuc/studio-site/internal/models"
	"github.com/phambaophuc/studio-site/internal/services/storage"
	"github.com/phambaophuc/studio-site/pkg/cloudinary"
	"github.com/phambaophuc/studio-site/pkg/utils"
)

// withDefaults fills in the site's responsive tiers when no widths are given.
func withDefaults(req models.DerivativeRequest) models.DerivativeRequest {
	if len(req.Widths) == 0 {
		req.Widths = []int{
			cloudinary.DefaultMobileWidth,
			cloudinary.DefaultTabletWidth,
			cloudinary.DefaultDesktopWidth,
		}
	}
	return req
}

func (q *QueueService) processJob(ctx context.Context, job *models.DerivativeJob) ([]models.Derivative, error) {
	req := withDefaults(job.Request)

	imageData, _, err := q.download(ctx, req.ImageURL, q.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	if err := q.processor.ValidateImage(imageData, q.maxFileSize); err != nil {
		return nil, err
	}

	images, err := q.processor.GenerateDerivatives(imageData, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	files := make([]storage.UploadFile, len(images))
	for i, img := range images {
		files[i] = storage.UploadFile{
			Data:        img.Buffer.Bytes(),
			Filename:    utils.GenerateFilename(job.ID, img.Width, img.Format),
			ContentType: "image/" + img.Format,
		}
	}

	urls, err := q.storage.UploadMultiple(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("failed to save derivatives: %w", err)
	}

	results := make([]models.Derivative, len(images))
	for i, img := range images {
		results[i] = models.Derivative{
			Width:    img.Width,
			Height:   img.Height,
			Format:   img.Format,
			URL:      urls[i],
			FileSize: int64(img.Buffer.Len()),
		}
	}

	return results, nil
}

// runJob moves job through processing to completed or failed, persisting
// each transition. A job interrupted by ctx is put back to pending so it can
// be redelivered.
func (q *QueueService) runJob(ctx context.Context, job *models.DerivativeJob) {
	q.updateStatus(ctx, job, models.StatusProcessing)

	results, err := q.processJob(ctx, job)
	if err != nil && ctx.Err() != nil {
		job.Error = ""
		job.Results = nil
		q.updateStatus(ctx, job, models.StatusPending)
		return
	}
	if err != nil {
		job.Error = err.Error()
		q.updateStatus(ctx, job, models.StatusFailed)
		return
	}

	job.Results = results
	q.updateStatus(ctx, job, models.StatusCompleted)
}

func (q *QueueService) updateStatus(ctx context.Context, job *models.DerivativeJob, status string) {
	job.Status = status
	job.UpdatedAt = time.Now().UTC()
	q.storeJobResult(ctx, job)
}
