package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phambaophuc/studio-site/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const jobSaveTimeout = 5 * time.Second

func (q *QueueService) StartWorker(ctx context.Context, workerID int) error {
	msgs, err := q.channel.Consume(
		q.queueName,                        // queue
		fmt.Sprintf("worker-%d", workerID), // consumer
		false,                              // auto-ack
		false,                              // exclusive
		false,                              // no-local
		false,                              // no-wait
		nil,                                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	q.logger.Info("Worker started", zap.Int("worker_id", workerID))

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.logger.Info("Worker stopping", zap.Int("worker_id", workerID))
				return
			case msg, ok := <-msgs:
				if !ok {
					q.logger.Warn("Message channel closed", zap.Int("worker_id", workerID))
					return
				}

				q.processMessage(ctx, msg, workerID)
			}
		}
	}()

	return nil
}

// acknowledger is the subset of amqp.Delivery processMessage settles with.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (q *QueueService) processMessage(ctx context.Context, msg amqp.Delivery, workerID int) {
	q.handleDelivery(ctx, msg.Body, msg, workerID)
}

func (q *QueueService) handleDelivery(ctx context.Context, body []byte, ack acknowledger, workerID int) {
	var job models.DerivativeJob
	if err := json.Unmarshal(body, &job); err != nil {
		q.logger.Error("Failed to unmarshal job",
			zap.Error(err),
			zap.Int("worker_id", workerID))
		ack.Nack(false, false) // Don't requeue malformed messages
		return
	}

	q.logger.Info("Processing job",
		zap.String("job_id", job.ID),
		zap.Int("worker_id", workerID))

	q.runJob(ctx, &job)

	if job.Status == models.StatusPending {
		q.logger.Warn("Job interrupted, returning to queue",
			zap.String("job_id", job.ID),
			zap.Int("worker_id", workerID))
		if err := ack.Nack(false, true); err != nil {
			q.logger.Error("Failed to requeue message",
				zap.String("job_id", job.ID),
				zap.Error(err))
		}
		return
	}

	if job.Status == models.StatusFailed {
		q.logger.Error("Job processing failed",
			zap.String("job_id", job.ID),
			zap.String("error", job.Error))
	} else {
		q.logger.Info("Job completed successfully",
			zap.String("job_id", job.ID),
			zap.Int("derivatives", len(job.Results)))
	}

	if err := ack.Ack(false); err != nil {
		q.logger.Error("Failed to ack message",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}

// storeJobResult persists job even when ctx is already cancelled, so the
// last transition before shutdown is not lost.
func (q *QueueService) storeJobResult(ctx context.Context, job *models.DerivativeJob) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), jobSaveTimeout)
	defer cancel()

	if err := q.storage.SaveJob(saveCtx, job); err != nil {
		q.logger.Warn("Failed to store job result",
			zap.String("job_id", job.ID),
			zap.String("status", job.Status),
			zap.Error(err))
	}
}
