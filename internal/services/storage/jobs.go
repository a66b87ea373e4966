package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phambaophuc/studio-site/internal/models"
)

const jobKeyPrefix = "derivative_job:"

var ErrJobNotFound = errors.New("job not found")

func (s *StorageService) SaveJob(ctx context.Context, job *models.DerivativeJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return s.SetCache(ctx, jobKeyPrefix+job.ID, data)
}

func (s *StorageService) GetJob(ctx context.Context, id string) (*models.DerivativeJob, error) {
	data, err := s.GetFromCache(ctx, jobKeyPrefix+id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	var job models.DerivativeJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}
