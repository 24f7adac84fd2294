// Package publish copies a finished corpus to optional downstream systems.
// None of the sinks own the data; the corpus stays authoritative in memory.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-datagen/internal/common/database"
	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/common/metrics"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/models"
	"marketplace-datagen/internal/population"
	"marketplace-datagen/internal/stats"
)

var ErrPublishFailed = errors.New("publish failed")

// Snapshot is the immutable view handed to every sink.
type Snapshot struct {
	RunID           string                   `json:"runId"`
	GeneratedAt     time.Time                `json:"generatedAt"`
	Reports         []*population.Report     `json:"reports"`
	RFQs            []models.RFQ             `json:"-"`
	Suppliers       []models.SupplierProfile `json:"-"`
	Summary         stats.RFQSummary         `json:"summary"`
	SupplierSummary stats.SupplierSummary    `json:"supplierSummary"`
}

// NewSnapshot copies the store and computes both summaries. runID is taken
// from the last report when reports are given.
func NewSnapshot(store *corpus.Store, agg *stats.Aggregator, now time.Time, reports ...*population.Report) Snapshot {
	s := Snapshot{
		GeneratedAt:     now,
		Reports:         reports,
		RFQs:            store.RFQs(),
		Suppliers:       store.Suppliers(),
		Summary:         agg.Summarize(),
		SupplierSummary: agg.SummarizeSuppliers(),
	}
	if len(reports) > 0 && reports[len(reports)-1] != nil {
		s.RunID = reports[len(reports)-1].RunID
	}
	return s
}

// Sink receives snapshots.
type Sink interface {
	Name() string
	Publish(ctx context.Context, snap Snapshot) error
}

// Fanout publishes to every sink in order. A failing sink does not stop the
// others; all failures are returned joined.
type Fanout struct {
	sinks      []Sink
	maxRetries int
	retryDelay time.Duration
	log        logger.Logger
}

type FanoutOption func(*Fanout)

// WithRetry retries each sink up to attempts times with doubling delay.
func WithRetry(attempts int, initialDelay time.Duration) FanoutOption {
	return func(f *Fanout) {
		if attempts > 0 {
			f.maxRetries = attempts
		}
		f.retryDelay = initialDelay
	}
}

func NewFanout(log logger.Logger, sinks []Sink, opts ...FanoutOption) *Fanout {
	f := &Fanout{
		sinks:      sinks,
		maxRetries: 1,
		retryDelay: 500 * time.Millisecond,
		log:        logger.ForComponent(log, "publish"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Sinks returns the configured sink names.
func (f *Fanout) Sinks() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.Name()
	}
	return names
}

func (f *Fanout) Publish(ctx context.Context, snap Snapshot) error {
	var errs []error
	for _, sink := range f.sinks {
		name := sink.Name()
		err := database.RetryWithBackoff(func() error {
			return sink.Publish(ctx, snap)
		}, f.maxRetries, f.retryDelay, f.log, "publish to "+name)

		if err != nil {
			metrics.PublishTotal.WithLabelValues(name, "failed").Inc()
			f.log.Error("Publish failed", map[string]interface{}{
				"sink":  name,
				"runId": snap.RunID,
				"error": err,
			})
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrPublishFailed, name, err))
			continue
		}

		metrics.PublishTotal.WithLabelValues(name, "success").Inc()
		f.log.Info("Published snapshot", map[string]interface{}{
			"sink":      name,
			"runId":     snap.RunID,
			"rfqs":      len(snap.RFQs),
			"suppliers": len(snap.Suppliers),
		})
	}
	return errors.Join(errs...)
}
