package offline

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"
)

// Ack is the application-level answer to a dispatched mutation. Success
// false with a nil transport error means the server rejected the mutation.
type Ack struct {
	Success   bool
	Retryable bool
	Error     string
}

// Dispatcher is the cart mutation interface replay targets — the same one
// the online UI uses.
type Dispatcher interface {
	Create(ctx context.Context, payload json.RawMessage) (Ack, error)
	Update(ctx context.Context, itemID string, payload json.RawMessage) (Ack, error)
	Delete(ctx context.Context, itemID string) (Ack, error)
}

// ReplayError describes one operation that did not succeed during a pass.
type ReplayError struct {
	OperationID string `json:"operationId"`
	Type        OpType `json:"type"`
	Message     string `json:"message"`
	// Transport marks network-level failures, which retry like
	// application failures but are surfaced distinctly.
	Transport bool `json:"transport,omitempty"`
	// Permanent marks operations removed after exhausting MaxRetries.
	Permanent bool `json:"permanent,omitempty"`
}

// Report is the outcome of one replay pass.
type Report struct {
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Errors     []ReplayError `json:"errors,omitempty"`
}

// Replayer drains the queue in stored order with a small delay between
// items. It is not cancellable mid-item; ctx is checked between items.
type Replayer struct {
	queue    *Queue
	dispatch Dispatcher
	logger   *log.Logger
	delay    time.Duration
	sleep    func(time.Duration)
}

func NewReplayer(queue *Queue, dispatch Dispatcher, logger *log.Logger) *Replayer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Replayer{
		queue:    queue,
		dispatch: dispatch,
		logger:   logger,
		delay:    200 * time.Millisecond,
		sleep:    time.Sleep,
	}
}

// Replay processes the queue FIFO. Operations at their retry bound are
// removed and reported without being dispatched; a success removes the
// operation; any failure bumps the retry count and leaves it queued for the
// next pass. Replaying an empty queue is a no-op.
func (r *Replayer) Replay(ctx context.Context) Report {
	var report Report

	ops, err := r.queue.List()
	if err != nil {
		r.logger.Printf("offline replay: list error=%v", err)
		return report
	}

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			r.logger.Printf("offline replay: stopped error=%v", err)
			return report
		}
		if i > 0 && r.delay > 0 {
			r.sleep(r.delay)
		}

		if op.RetryCount >= op.MaxRetries {
			// Permanently failed: never dispatched again.
			if err := r.queue.RemoveByID(op.ID); err != nil {
				r.logger.Printf("offline replay: remove op=%s error=%v", op.ID, err)
			}
			report.Failed++
			report.Errors = append(report.Errors, ReplayError{
				OperationID: op.ID,
				Type:        op.Type,
				Message:     "max retries exceeded",
				Permanent:   true,
			})
			continue
		}

		ack, err := r.dispatchOne(ctx, op)
		switch {
		case err != nil:
			// Transport failure: retried like an application failure,
			// surfaced distinctly.
			if bumpErr := r.queue.BumpRetry(op.ID); bumpErr != nil {
				r.logger.Printf("offline replay: bump op=%s error=%v", op.ID, bumpErr)
			}
			report.Failed++
			report.Errors = append(report.Errors, ReplayError{
				OperationID: op.ID,
				Type:        op.Type,
				Message:     err.Error(),
				Transport:   true,
			})
		case !ack.Success:
			if bumpErr := r.queue.BumpRetry(op.ID); bumpErr != nil {
				r.logger.Printf("offline replay: bump op=%s error=%v", op.ID, bumpErr)
			}
			report.Failed++
			report.Errors = append(report.Errors, ReplayError{
				OperationID: op.ID,
				Type:        op.Type,
				Message:     ack.Error,
			})
		default:
			if err := r.queue.RemoveByID(op.ID); err != nil {
				r.logger.Printf("offline replay: remove op=%s error=%v", op.ID, err)
			}
			report.Successful++
		}
	}

	r.logger.Printf("offline replay: done successful=%d failed=%d", report.Successful, report.Failed)
	return report
}

func (r *Replayer) dispatchOne(ctx context.Context, op Operation) (Ack, error) {
	switch op.Type {
	case OpAdd:
		return r.dispatch.Create(ctx, op.Data)
	case OpUpdate:
		return r.dispatch.Update(ctx, op.ItemID, op.Data)
	case OpRemove:
		return r.dispatch.Delete(ctx, op.ItemID)
	default:
		return Ack{Error: "unknown operation type"}, nil
	}
}
