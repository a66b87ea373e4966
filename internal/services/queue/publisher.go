package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phambaophuc/studio-site/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Submit records a pending job and publishes it for the workers.
func (q *QueueService) Submit(ctx context.Context, req models.DerivativeRequest) (*models.DerivativeJob, error) {
	now := time.Now().UTC()
	job := &models.DerivativeJob{
		ID:        uuid.New().String(),
		Request:   withDefaults(req),
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := q.storage.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	if err := q.PublishJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (q *QueueService) PublishJob(ctx context.Context, job *models.DerivativeJob) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			MessageId:    job.ID,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	q.logger.Info("Job published to queue", zap.String("job_id", job.ID))
	return nil
}
