package queue

import (
	"errors"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// watchClose records the first close of the connection or channel. A closed
// channel stops every consumer on it, so the service reports unhealthy from
// then on.
func (q *QueueService) watchClose(connClosed, chanClosed <-chan *amqp.Error) {
	go func() {
		select {
		case err := <-connClosed:
			q.markClosed("connection", err)
		case err := <-chanClosed:
			q.markClosed("channel", err)
		}
	}()
}

func (q *QueueService) markClosed(what string, err *amqp.Error) {
	reason := what + " closed"
	if err != nil {
		reason = fmt.Sprintf("%s closed: %s (%d)", what, err.Reason, err.Code)
		q.logger.Error("RabbitMQ closed", zap.String("source", what), zap.Error(err))
	}

	q.mu.Lock()
	if q.closeReason == "" {
		q.closeReason = reason
	}
	q.mu.Unlock()
}

func (q *QueueService) closed() string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closeReason
}

// GetQueueStats reports the derivative backlog and the workers consuming it.
func (q *QueueService) GetQueueStats() (map[string]interface{}, error) {
	if reason := q.closed(); reason != "" {
		return nil, errors.New(reason)
	}

	queueInfo, err := q.inspect(q.queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect queue: %w", err)
	}

	stats := map[string]interface{}{
		"queue":        queueInfo.Name,
		"pending_jobs": queueInfo.Messages,
		"workers":      queueInfo.Consumers,
	}

	return stats, nil
}

// HealthCheck reports whether derivative jobs can still be published and
// consumed.
func (q *QueueService) HealthCheck() string {
	if reason := q.closed(); reason != "" {
		return "unhealthy: " + reason
	}
	if q.inspect == nil {
		return "unhealthy: channel not available"
	}
	return "healthy"
}
