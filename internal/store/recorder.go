// ABOUTME: Dispatch observer that persists records to the store
// ABOUTME: Fire-and-forget: write failures are logged, never surfaced

package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/beaconlabs/beacon-gateway/internal/dispatch"
)

// recorderWriteTimeout bounds a single observability write.
const recorderWriteTimeout = 5 * time.Second

// Recorder adapts the store to the dispatcher's Observer interface.
type Recorder struct {
	store  *SQLiteStore
	logger *slog.Logger
}

// NewRecorder creates a Recorder writing to the given store.
func NewRecorder(s *SQLiteStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: s, logger: logger.With("component", "recorder")}
}

// ObserveDispatch persists one dispatch record. Errors are logged only;
// observability must never fail a dispatch.
func (r *Recorder) ObserveDispatch(rec dispatch.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), recorderWriteTimeout)
	defer cancel()

	err := r.store.SaveRecord(ctx, &DispatchRecord{
		ID:         uuid.New().String(),
		RequestID:  rec.RequestID,
		Capability: rec.Capability,
		Outcome:    rec.Outcome,
		ErrorKind:  string(rec.ErrorKind),
		Duration:   rec.Duration,
		CreatedAt:  rec.At,
	})
	if err != nil {
		r.logger.Warn("failed to persist dispatch record",
			"request_id", rec.RequestID,
			"error", err,
		)
	}
}
