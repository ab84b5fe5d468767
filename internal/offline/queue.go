// Package offline implements the client-resident queue of cart mutations
// made without connectivity, and its bounded-retry replay against the same
// mutation interface the online path uses.
package offline

import (
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
)

// OpType selects the cart mutation a queued operation replays.
type OpType string

const (
	OpAdd    OpType = "add"
	OpUpdate OpType = "update"
	OpRemove OpType = "remove"
)

// DefaultMaxRetries bounds how many replay passes may attempt an operation.
const DefaultMaxRetries = 3

// Operation is one pending cart mutation. Priority is persisted but replay
// is strictly FIFO; see DESIGN.md.
type Operation struct {
	ID         string          `json:"id"`
	Type       OpType          `json:"type"`
	ItemID     string          `json:"itemId,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	RetryCount int             `json:"retryCount"`
	MaxRetries int             `json:"maxRetries"`
	Priority   int             `json:"priority"`
}

// Store is the durable local storage behind the queue. List returns
// operations in insertion order.
type Store interface {
	Append(op Operation) error
	List() ([]Operation, error)
	Remove(id string) error
	BumpRetry(id string) error
	Clear() error
}

// Queue wraps a Store with the enqueue policy: offline durability is best
// effort, so storage failures are swallowed (the operation is lost rather
// than crashing the caller).
type Queue struct {
	store  Store
	logger *log.Logger
	now    func() time.Time
}

func NewQueue(store Store, logger *log.Logger) *Queue {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Queue{store: store, logger: logger, now: time.Now}
}

// Enqueue appends an operation with a fresh id and RetryCount zero.
// The stored operation is returned; a nil result means storage failed and
// the operation was dropped.
func (q *Queue) Enqueue(opType OpType, itemID string, data json.RawMessage) *Operation {
	op := Operation{
		ID:         uuid.NewString(),
		Type:       opType,
		ItemID:     itemID,
		Data:       data,
		Timestamp:  q.now().UTC(),
		MaxRetries: DefaultMaxRetries,
	}
	if err := q.store.Append(op); err != nil {
		q.logger.Printf("offline queue: enqueue type=%s dropped error=%v", opType, err)
		return nil
	}
	return &op
}

func (q *Queue) List() ([]Operation, error) { return q.store.List() }

func (q *Queue) RemoveByID(id string) error { return q.store.Remove(id) }

func (q *Queue) BumpRetry(id string) error { return q.store.BumpRetry(id) }

func (q *Queue) Clear() error { return q.store.Clear() }
