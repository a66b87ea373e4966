package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/phambaophuc/studio-site/internal/models"
	"github.com/phambaophuc/studio-site/internal/services/processor"
	"github.com/phambaophuc/studio-site/internal/services/storage"
	"github.com/phambaophuc/studio-site/pkg/utils"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// derivativeStore is the part of the storage service the workers need.
type derivativeStore interface {
	UploadMultiple(ctx context.Context, files []storage.UploadFile) ([]string, error)
	SaveJob(ctx context.Context, job *models.DerivativeJob) error
}

type downloadFunc func(ctx context.Context, imageURL string, maxSize int64) ([]byte, string, error)

type inspectFunc func(name string) (amqp.Queue, error)

type QueueService struct {
	conn        *amqp.Connection
	channel     *amqp.Channel
	logger      *zap.Logger
	queueName   string
	processor   *processor.ImageProcessor
	storage     derivativeStore
	download    downloadFunc
	inspect     inspectFunc
	maxFileSize int64

	mu          sync.RWMutex
	closeReason string
}

func NewQueueService(
	rabbitmqURL string,
	queueName string,
	maxFileSize int64,
	processor *processor.ImageProcessor,
	storage derivativeStore,
	logger *zap.Logger,
) (*QueueService, error) {
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Declare queue
	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// One unacked job per consumer; derivative jobs are CPU heavy.
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	q := &QueueService{
		conn:        conn,
		channel:     channel,
		logger:      logger,
		queueName:   queueName,
		processor:   processor,
		storage:     storage,
		download:    utils.DownloadImage,
		inspect:     channel.QueueInspect,
		maxFileSize: maxFileSize,
	}
	q.watchClose(
		conn.NotifyClose(make(chan *amqp.Error, 1)),
		channel.NotifyClose(make(chan *amqp.Error, 1)),
	)

	return q, nil
}

// Close closes the queue connection
func (q *QueueService) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
	return nil
}
