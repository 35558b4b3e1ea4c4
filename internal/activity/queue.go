package activity

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"honestspace/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Queue is an in-memory queue of activity log batches. Handlers drain it
// asynchronously so recording activity never slows down a request.
type Queue struct {
	items    chan []*models.UserActivity
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.UserActivity) error
}

// NewQueue creates an activity queue with the specified buffer size.
func NewQueue(bufferSize int, logger *logrus.Logger) *Queue {
	return &Queue{
		items:    make(chan []*models.UserActivity, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.UserActivity) error, 0),
	}
}

// Push adds a batch of activity entries to the queue. The send never
// blocks; a full queue drops the batch with an error instead of stalling
// the caller.
func (q *Queue) Push(entries []*models.UserActivity) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.items <- entries:
		q.logger.WithField("batch_size", len(entries)).Debug("Pushed activity batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Record is the single-entry convenience wrapper around Push.
func (q *Queue) Record(entry *models.UserActivity) error {
	return q.Push([]*models.UserActivity{entry})
}

// Subscribe adds a handler function that will be called for each batch.
func (q *Queue) Subscribe(handler func([]*models.UserActivity) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue.
func (q *Queue) Start() {
	go q.process()
}

func (q *Queue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

func (q *Queue) processBatch(batch []*models.UserActivity) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process activity batch")
		}
	}
}

// Close stops the queue and prevents new items from being added.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of batches in the queue.
func (q *Queue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
