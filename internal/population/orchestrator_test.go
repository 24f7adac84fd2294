package population

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"marketplace-datagen/internal/catalog"
	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/common/validation"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/generator/random"
	"marketplace-datagen/internal/generator/rfq"
	"marketplace-datagen/internal/models"
)

// ==========================
// Test Logger Implementation
// ==========================

// recordingLogger implements logger.Logger and keeps every message.
type recordingLogger struct {
	t        *testing.T
	mu       *sync.Mutex
	messages *[]string
	fields   map[string]interface{}
}

func newRecordingLogger(t *testing.T) *recordingLogger {
	return &recordingLogger{t: t, mu: &sync.Mutex{}, messages: &[]string{}, fields: map[string]interface{}{}}
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	*l.messages = append(*l.messages, msg)
	l.mu.Unlock()
	l.t.Logf("%s: %s %v %v", level, msg, l.fields, fields)
}

func (l *recordingLogger) Debug(msg string, f map[string]interface{}) { l.record("DEBUG", msg, f) }
func (l *recordingLogger) Info(msg string, f map[string]interface{})  { l.record("INFO", msg, f) }
func (l *recordingLogger) Warn(msg string, f map[string]interface{})  { l.record("WARN", msg, f) }
func (l *recordingLogger) Error(msg string, f map[string]interface{}) { l.record("ERROR", msg, f) }

func (l *recordingLogger) WithFields(fields map[string]interface{}) logger.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{t: l.t, mu: l.mu, messages: l.messages, fields: merged}
}

func (l *recordingLogger) WithError(err error) logger.Logger {
	return l.WithFields(map[string]interface{}{"error": err})
}

func (l *recordingLogger) With(fields map[string]interface{}) logger.Logger {
	return l.WithFields(fields)
}

func (l *recordingLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range *l.messages {
		if m == msg {
			return true
		}
	}
	return false
}

// ==========================
// Helpers
// ==========================

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func newTestOrchestrator(t *testing.T, seed uint64, opts ...Option) *Orchestrator {
	t.Helper()
	base := []Option{
		WithPicker(random.NewSeeded(seed)),
		WithClock(func() time.Time { return testNow }),
	}
	return New(catalog.Default(), corpus.NewStore(), newRecordingLogger(t), append(base, opts...)...)
}

// ==========================
// Replace vs Append
// ==========================

func TestQuick_ReplacesCorpus(t *testing.T) {
	o := newTestOrchestrator(t, 1)
	ctx := context.Background()

	first, err := o.Quick(ctx, QuickOptions{Count: 30, CategoryLimit: 5})
	require.NoError(t, err)
	assert.Equal(t, 30, first.CorpusSize)

	second, err := o.Quick(ctx, QuickOptions{Count: 12, CategoryLimit: 5})
	require.NoError(t, err)
	assert.Equal(t, 12, second.Generated)
	assert.Equal(t, 12, second.CorpusSize)

	n, _ := o.Store().Len()
	assert.Equal(t, 12, n)
}

func TestQuick_RestrictsCategories(t *testing.T) {
	o := newTestOrchestrator(t, 2)
	cat := catalog.Default()
	allowed := map[string]bool{}
	for _, c := range cat.Restrict(3) {
		allowed[c] = true
	}

	report, err := o.Quick(context.Background(), QuickOptions{Count: 200, CategoryLimit: 3})
	require.NoError(t, err)
	assert.LessOrEqual(t, report.CategoriesCovered, 3)

	for _, r := range o.Store().RFQs() {
		assert.True(t, allowed[r.Category], r.Category)
		assert.True(t, cat.Contains(r.Category, r.Subcategory))
	}
}

func TestQuick_RecencyWindow(t *testing.T) {
	tests := []struct {
		name string
		days int
	}{
		{name: "configured window", days: 7},
		{name: "single day", days: 1},
		{name: "generator default", days: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(t, 11, WithRecencyWindow(tt.days))
			_, err := o.Quick(context.Background(), QuickOptions{Count: 200, CategoryLimit: 10})
			require.NoError(t, err)

			window := tt.days
			if window == 0 {
				window = rfq.DefaultRecencyWindowDays
			}
			today := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
			oldest := today.AddDate(0, 0, -(window - 1))

			for _, r := range o.Store().RFQs() {
				created, err := time.Parse(models.DateLayout, r.CreatedDate)
				require.NoError(t, err, r.CreatedDate)
				assert.False(t, created.Before(oldest), "%s older than %d days", r.CreatedDate, window)
				assert.False(t, created.After(today), "%s in the future", r.CreatedDate)
			}
		})
	}
}

func TestComprehensive_CorpusSize(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name        string
		perScenario int
		scenarios   []models.Scenario
		expected    int
	}{
		{"default scenarios", 1, nil, cat.PairCount() * 1 * len(DefaultScenarios)},
		{"all scenarios twice", 2, models.Scenarios, cat.PairCount() * 2 * len(models.Scenarios)},
		{"zero per scenario", 0, models.Scenarios, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(t, 3)
			report, err := o.Comprehensive(context.Background(), ComprehensiveOptions{PerScenario: tt.perScenario, Scenarios: tt.scenarios})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, report.CorpusSize)
			assert.Equal(t, tt.expected, report.Generated)
			if tt.expected > 0 {
				assert.Equal(t, cat.CategoryCount(), report.CategoriesCovered)
				assert.Equal(t, cat.PairCount(), report.SubcategoriesCovered)
			}
		})
	}
}

func TestComprehensive_ReplacesQuick(t *testing.T) {
	o := newTestOrchestrator(t, 4)
	ctx := context.Background()

	_, err := o.Quick(ctx, QuickOptions{Count: 50, CategoryLimit: 2})
	require.NoError(t, err)
	report, err := o.Comprehensive(ctx, ComprehensiveOptions{PerScenario: 1, Scenarios: []models.Scenario{models.ScenarioRetail}})
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().PairCount(), report.CorpusSize)
}

func TestSuppliersForCategory_Appends(t *testing.T) {
	o := newTestOrchestrator(t, 5)
	ctx := context.Background()

	first, err := o.SuppliersForCategory(ctx, "Textiles")
	require.NoError(t, err)
	second, err := o.SuppliersForCategory(ctx, "Agriculture")
	require.NoError(t, err)

	assert.Equal(t, first.Generated+second.Generated, second.CorpusSize)
	assert.Equal(t, 2, second.CategoriesCovered)

	subs, _ := catalog.Default().SubcategoriesOf("Agriculture")
	assert.GreaterOrEqual(t, second.Generated, 5*len(subs))
	assert.LessOrEqual(t, second.Generated, 10*len(subs))
}

func TestQuickSuppliers_ReplacesButCategoryAppends(t *testing.T) {
	o := newTestOrchestrator(t, 6)
	ctx := context.Background()

	_, err := o.QuickSuppliers(ctx, QuickOptions{Count: 20, CategoryLimit: 4})
	require.NoError(t, err)
	appended, err := o.SuppliersForCategory(ctx, "Chemicals")
	require.NoError(t, err)
	assert.Equal(t, 20+appended.Generated, appended.CorpusSize)

	replaced, err := o.QuickSuppliers(ctx, QuickOptions{Count: 7, CategoryLimit: 4})
	require.NoError(t, err)
	assert.Equal(t, 7, replaced.CorpusSize)
}

func TestComprehensiveSuppliers(t *testing.T) {
	o := newTestOrchestrator(t, 7, WithWorkers(4))
	cat := catalog.Default()

	report, err := o.ComprehensiveSuppliers(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.CorpusSize, 5*cat.PairCount())
	assert.LessOrEqual(t, report.CorpusSize, 10*cat.PairCount())
	assert.Equal(t, cat.PairCount(), report.SubcategoriesCovered)
}

// ==========================
// Determinism and Parallelism
// ==========================

func TestComprehensive_WorkerCountDoesNotChangeRecords(t *testing.T) {
	opts := ComprehensiveOptions{PerScenario: 1, Scenarios: []models.Scenario{models.ScenarioStartup}}

	seq := newTestOrchestrator(t, 42, WithWorkers(1))
	_, err := seq.Comprehensive(context.Background(), opts)
	require.NoError(t, err)

	par := newTestOrchestrator(t, 42, WithWorkers(8))
	_, err = par.Comprehensive(context.Background(), opts)
	require.NoError(t, err)

	a, b := seq.Store().RFQs(), par.Store().RFQs()
	require.Equal(t, len(a), len(b))
	for i := range a {
		a[i].ID, b[i].ID = "", ""
	}
	assert.Equal(t, a, b)
}

func TestComprehensive_UniqueIDsInParallel(t *testing.T) {
	o := newTestOrchestrator(t, 8, WithWorkers(6))
	_, err := o.Comprehensive(context.Background(), ComprehensiveOptions{PerScenario: 2, Scenarios: models.Scenarios})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, r := range o.Store().RFQs() {
		require.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

// ==========================
// Errors
// ==========================

func TestPopulation_Errors(t *testing.T) {
	tests := []struct {
		name string
		run  func(o *Orchestrator) error
		want error
	}{
		{"negative quick count", func(o *Orchestrator) error {
			_, err := o.Quick(context.Background(), QuickOptions{Count: -1})
			return err
		}, ErrInvalidOptions},
		{"negative per scenario", func(o *Orchestrator) error {
			_, err := o.Comprehensive(context.Background(), ComprehensiveOptions{PerScenario: -2})
			return err
		}, ErrInvalidOptions},
		{"unknown scenario", func(o *Orchestrator) error {
			_, err := o.Comprehensive(context.Background(), ComprehensiveOptions{PerScenario: 1, Scenarios: []models.Scenario{"wholesale"}})
			return err
		}, rfq.ErrUnknownScenario},
		{"unknown category", func(o *Orchestrator) error {
			_, err := o.SuppliersForCategory(context.Background(), "Spaceships")
			return err
		}, catalog.ErrUnknownTaxonomyKey},
		{"cancelled context", func(o *Orchestrator) error {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := o.Quick(ctx, QuickOptions{Count: 10})
			return err
		}, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(t, 9)
			assert.ErrorIs(t, tt.run(o), tt.want)
			n, _ := o.Store().Len()
			assert.Zero(t, n)
		})
	}
}

func TestComprehensive_CancelledContextKeepsCorpus(t *testing.T) {
	o := newTestOrchestrator(t, 10, WithWorkers(3))
	_, err := o.Quick(context.Background(), QuickOptions{Count: 5})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = o.Comprehensive(ctx, ComprehensiveOptions{PerScenario: 1})
	assert.ErrorIs(t, err, context.Canceled)

	n, _ := o.Store().Len()
	assert.Equal(t, 5, n)
}

// ==========================
// Validation, Logging, Tracing
// ==========================

func TestQuick_WithValidator(t *testing.T) {
	v, err := validation.NewRecordValidator()
	require.NoError(t, err)
	o := newTestOrchestrator(t, 11, WithValidator(v))

	_, err = o.Quick(context.Background(), QuickOptions{Count: 100, CategoryLimit: 50})
	require.NoError(t, err)
	_, err = o.SuppliersForCategory(context.Background(), "Pharmaceuticals")
	require.NoError(t, err)
}

func TestRun_LogsAndTraces(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	log := newRecordingLogger(t)

	o := New(catalog.Default(), corpus.NewStore(), log,
		WithPicker(random.NewSeeded(12)),
		WithTracer(provider.Tracer("test")),
	)
	report, err := o.Quick(context.Background(), QuickOptions{Count: 3, CategoryLimit: 1})
	require.NoError(t, err)

	_, err = o.Quick(context.Background(), QuickOptions{Count: -1})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1, "option validation fails before a span starts")
	assert.Equal(t, "population.quick", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, report.RunID, attrs["run_id"])
	assert.Equal(t, "3", attrs["generated"])

	assert.True(t, log.has("Population started"))
	assert.True(t, log.has("Population completed"))
}

// ==========================
// Request dispatch
// ==========================

func TestRun_DispatchesModes(t *testing.T) {
	o := newTestOrchestrator(t, 13)
	ctx := context.Background()

	report, err := o.Run(ctx, Request{Mode: ModeQuick, Count: 7, CategoryLimit: 2})
	require.NoError(t, err)
	assert.Equal(t, ModeQuick, report.Mode)
	assert.Equal(t, 7, report.CorpusSize)

	report, err = o.Run(ctx, Request{Mode: ModeComprehensive, PerScenario: 1, Scenarios: []string{"retail"}})
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().PairCount(), report.CorpusSize)

	report, err = o.Run(ctx, Request{Mode: ModeCategorySuppliers, Category: "Packaging"})
	require.NoError(t, err)
	assert.Equal(t, KindSupplier, report.Kind)
	assert.Equal(t, 1, report.CategoriesCovered)

	report, err = o.Run(ctx, Request{Mode: ModeQuickSuppliers, Count: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, report.CorpusSize)
}

func TestRun_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"unknown mode", Request{Mode: "everything"}, ErrInvalidOptions},
		{"empty mode", Request{}, ErrInvalidOptions},
		{"category missing", Request{Mode: ModeCategorySuppliers}, ErrInvalidOptions},
		{"unknown scenario", Request{Mode: ModeComprehensive, PerScenario: 1, Scenarios: []string{"Retail"}}, rfq.ErrUnknownScenario},
		{"unknown category", Request{Mode: ModeCategorySuppliers, Category: "Toys"}, catalog.ErrUnknownTaxonomyKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestOrchestrator(t, 14).Run(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
