package sqs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"city-weather-api/pkg/log"
)

// Handler processes a single SQS message. A nil return deletes the message
// from the queue; an error leaves it for redelivery after the visibility
// timeout.
type Handler interface {
	HandleMessage(ctx context.Context, msg *types.Message) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, msg *types.Message) error

// HandleMessage implements the Handler interface for HandlerFunc.
func (f HandlerFunc) HandleMessage(ctx context.Context, msg *types.Message) error {
	return f(ctx, msg)
}

// WorkerStatus represents the health of a worker's polling loop.
type WorkerStatus string

const (
	StatusUp   WorkerStatus = "UP"
	StatusDown WorkerStatus = "DOWN"
)

// WorkerHealth is the health check response for a worker.
type WorkerHealth struct {
	Status  WorkerStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// SQSReceiverClient defines the SQS operations the worker needs.
type SQSReceiverClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// WorkerConfig defines the configuration options for a Worker.
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
}

// Worker polls an SQS queue with long polling and dispatches messages to a
// Handler across a pool of goroutines.
type Worker struct {
	sqsClient           SQSReceiverClient
	queueName           string
	queueURL            string
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	poolSize            int
	handler             Handler

	pollErrors   atomic.Int64
	lastPollOK   atomic.Int64 // unix seconds of the last successful poll
	lastErrorMsg atomic.Value
}

// NewWorker creates and returns a new Worker.
//
// Defaults when config is nil or fields are zero:
//   - MaxNumberOfMessages: 10
//   - WaitTimeSeconds: 20
//   - PoolSize: 1
func NewWorker(ctx context.Context, sqsClient SQSReceiverClient, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	var maxMessages int32 = 10
	var waitTime int32 = 20
	poolSize := 1

	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			maxMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			waitTime = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			poolSize = config.PoolSize
		}
	}

	if maxMessages < 1 || maxMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if waitTime < 1 || waitTime > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if poolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}

	result, err := sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: &queueName,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to get queue URL: %w", err)
	}

	return &Worker{
		sqsClient:           sqsClient,
		queueName:           queueName,
		queueURL:            *result.QueueUrl,
		maxNumberOfMessages: maxMessages,
		waitTimeSeconds:     waitTime,
		poolSize:            poolSize,
		handler:             handler,
	}, nil
}

// Start begins polling messages and processing them concurrently. It blocks
// until the context is canceled and all pool goroutines have drained.
func (w *Worker) Start(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.pollMessages(ctx)
		}()
	}

	wg.Wait()
}

func (w *Worker) pollMessages(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		output, err := w.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            &w.queueURL,
			MaxNumberOfMessages: w.maxNumberOfMessages,
			WaitTimeSeconds:     w.waitTimeSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.pollErrors.Add(1)
			w.lastErrorMsg.Store(err.Error())
			log.Errorf("failed to receive messages from %s: %v", w.queueName, err)
			time.Sleep(time.Second)
			continue
		}

		w.lastPollOK.Store(time.Now().Unix())
		for i := range output.Messages {
			w.handleMessage(ctx, &output.Messages[i])
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg *types.Message) {
	if msg == nil {
		return
	}

	if err := w.handler.HandleMessage(ctx, msg); err != nil {
		log.Errorf("error processing message ID %s: %v", safeMessageID(msg), err)
		return
	}

	if _, err := w.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &w.queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	}); err != nil {
		log.Errorf("failed to delete message ID %s: %v", safeMessageID(msg), err)
	}
}

// HealthCheck reports whether the worker polled successfully within the last
// two long-poll windows.
func (w *Worker) HealthCheck() WorkerHealth {
	details := map[string]string{
		"queue":       w.queueName,
		"pool_size":   strconv.Itoa(w.poolSize),
		"poll_errors": strconv.FormatInt(w.pollErrors.Load(), 10),
	}
	if lastErr, ok := w.lastErrorMsg.Load().(string); ok && lastErr != "" {
		details["last_error"] = lastErr
	}

	lastOK := w.lastPollOK.Load()
	if lastOK == 0 {
		details["message"] = "no successful poll yet"
		return WorkerHealth{Status: StatusDown, Details: details}
	}

	details["last_poll"] = time.Unix(lastOK, 0).Format(time.RFC3339)
	if time.Since(time.Unix(lastOK, 0)) > 2*time.Duration(w.waitTimeSeconds)*time.Second {
		details["message"] = "polling stalled"
		return WorkerHealth{Status: StatusDown, Details: details}
	}

	details["message"] = string(StatusUp)
	return WorkerHealth{Status: StatusUp, Details: details}
}

func safeMessageID(msg *types.Message) string {
	if msg == nil || msg.MessageId == nil {
		return ""
	}
	return *msg.MessageId
}
