// Package refresh regenerates the corpus on a cron schedule and publishes
// each new snapshot.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/population"
	"marketplace-datagen/internal/publish"
	"marketplace-datagen/internal/stats"
)

// ErrAlreadyRunning is returned by RunOnce while another refresh is in flight.
var ErrAlreadyRunning = errors.New("refresh already running")

// Publisher receives the snapshot after every successful run.
type Publisher interface {
	Publish(ctx context.Context, snap publish.Snapshot) error
}

type Scheduler struct {
	cron         *cron.Cron
	orchestrator *population.Orchestrator
	aggregator   *stats.Aggregator
	publisher    Publisher
	request      population.Request
	timeout      time.Duration
	now          func() time.Time
	running      int32
	log          logger.Logger
}

type Options struct {
	Orchestrator *population.Orchestrator
	Aggregator   *stats.Aggregator
	// Publisher may be nil, in which case runs only refresh the corpus.
	Publisher Publisher
	Request   population.Request
	Timeout   time.Duration
	Clock     func() time.Time
	Logger    logger.Logger
}

func New(opts Options) *Scheduler {
	log := logger.ForComponent(opts.Logger, "refresh")
	s := &Scheduler{
		orchestrator: opts.Orchestrator,
		aggregator:   opts.Aggregator,
		publisher:    opts.Publisher,
		request:      opts.Request,
		timeout:      opts.Timeout,
		now:          opts.Clock,
		log:          log,
	}
	if s.timeout <= 0 {
		s.timeout = 10 * time.Minute
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.cron = cron.New(cron.WithLogger(cronLogger{log: log}))
	return s
}

// Schedule registers the refresh under a standard five-field cron spec.
func (s *Scheduler) Schedule(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { _ = s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops the cron and waits for a running refresh to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce performs one refresh. Overlapping calls are skipped.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		s.log.Warn("Previous refresh still running, skipping", nil)
		return ErrAlreadyRunning
	}
	defer atomic.StoreInt32(&s.running, 0)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report, err := s.orchestrator.Run(ctx, s.request)
	if err != nil {
		s.log.Error("Scheduled refresh failed", map[string]interface{}{"mode": s.request.Mode, "error": err})
		return err
	}
	if s.publisher == nil {
		return nil
	}

	snap := publish.NewSnapshot(s.orchestrator.Store(), s.aggregator, s.now(), report)
	if err := s.publisher.Publish(ctx, snap); err != nil {
		s.log.Error("Scheduled publish failed", map[string]interface{}{"runId": report.RunID, "error": err})
		return err
	}
	return nil
}

// cronLogger routes cron's key/value logging into the map-field Logger.
type cronLogger struct {
	log logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug("cron: "+msg, kvToMap(keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := kvToMap(keysAndValues)
	fields["error"] = err
	c.log.Error("cron: "+msg, fields)
}

func kvToMap(kv []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
