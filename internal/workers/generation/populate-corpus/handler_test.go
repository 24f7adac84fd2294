package populatecorpus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-datagen/internal/catalog"
	"marketplace-datagen/internal/common/config"
	apperrors "marketplace-datagen/internal/common/errors"
	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/generator/random"
	"marketplace-datagen/internal/population"
	"marketplace-datagen/internal/publish"
	"marketplace-datagen/internal/stats"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

type fakePublisher struct {
	err       error
	snapshots []publish.Snapshot
}

func (f *fakePublisher) Publish(_ context.Context, snap publish.Snapshot) error {
	f.snapshots = append(f.snapshots, snap)
	return f.err
}

func (f *fakePublisher) Sinks() []string { return []string{"fake"} }

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 1,
		Timeout:       30 * time.Second,
		Defaults: config.GenerationConfig{
			QuickCount:         12,
			QuickCategoryLimit: 3,
			PerScenario:        1,
			Scenarios:          []string{"enterprise"},
			SupplierQuickCount: 6,
			TopN:               3,
		},
	}
}

func createTestHandler(t *testing.T, pub Publisher) *Handler {
	t.Helper()
	log := &testLogger{t: t}
	store := corpus.NewStore()
	clock := func() time.Time { return testNow }
	orch := population.New(catalog.Default(), store, log,
		population.WithPicker(random.NewSeeded(21)),
		population.WithClock(clock),
	)

	opts := HandlerOptions{
		Config:       createTestConfig(),
		Orchestrator: orch,
		Aggregator:   stats.NewAggregator(store, log, stats.WithClock(clock)),
		Logger:       log,
		Clock:        clock,
	}
	if pub != nil {
		opts.Publisher = pub
	}
	h, err := NewHandler(opts)
	require.NoError(t, err)
	return h
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "corpus-refresh",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          string(variablesJSON),
	}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		validate func(t *testing.T, out *Output)
	}{
		{
			name:  "quick uses default count",
			input: &Input{Mode: population.ModeQuick},
			validate: func(t *testing.T, out *Output) {
				assert.Equal(t, 12, out.Report.CorpusSize)
				assert.Equal(t, 12, out.Summary.Total)
				assert.LessOrEqual(t, out.Summary.Categories, 3)
				assert.Len(t, out.TopRFQIDs, 3)
				assert.Empty(t, out.PublishedTo)
			},
		},
		{
			name:  "explicit count and top",
			input: &Input{Mode: population.ModeQuick, Count: 5, TopN: 10},
			validate: func(t *testing.T, out *Output) {
				assert.Equal(t, 5, out.Report.Generated)
				assert.Len(t, out.TopRFQIDs, 5)
			},
		},
		{
			name:  "comprehensive covers taxonomy",
			input: &Input{Mode: population.ModeComprehensive},
			validate: func(t *testing.T, out *Output) {
				cat := catalog.Default()
				assert.Equal(t, cat.PairCount(), out.Report.CorpusSize)
				assert.Equal(t, cat.CategoryCount(), out.Report.CategoriesCovered)
			},
		},
		{
			name:  "category suppliers",
			input: &Input{Mode: population.ModeCategorySuppliers, Category: "Furniture"},
			validate: func(t *testing.T, out *Output) {
				assert.Equal(t, population.KindSupplier, out.Report.Kind)
				assert.Equal(t, out.Report.CorpusSize, out.SupplierSummary.Total)
				assert.Equal(t, out.SupplierSummary.Total, out.SupplierSummary.ByCategory["Furniture"])
				assert.Len(t, out.TopSupplierIDs, 3)
			},
		},
		{
			name:  "quick suppliers uses supplier default",
			input: &Input{Mode: population.ModeQuickSuppliers},
			validate: func(t *testing.T, out *Output) {
				assert.Equal(t, 6, out.SupplierSummary.Total)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, nil)
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			require.NotNil(t, out.Report)
			tt.validate(t, out)
		})
	}
}

func TestHandler_Execute_Publish(t *testing.T) {
	pub := &fakePublisher{}
	h := createTestHandler(t, pub)

	out, err := h.Execute(context.Background(), &Input{Mode: population.ModeQuick, Count: 4, Publish: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"fake"}, out.PublishedTo)

	require.Len(t, pub.snapshots, 1)
	snap := pub.snapshots[0]
	assert.Equal(t, out.Report.RunID, snap.RunID)
	assert.Len(t, snap.RFQs, 4)
	assert.Equal(t, testNow, snap.GeneratedAt)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		pub      Publisher
		input    *Input
		wantCode apperrors.ErrorCode
		wantIs   error
	}{
		{"unknown category", nil, &Input{Mode: population.ModeCategorySuppliers, Category: "Toys"}, apperrors.ErrCodeUnknownTaxonomyKey, catalog.ErrUnknownTaxonomyKey},
		{"unknown scenario", nil, &Input{Mode: population.ModeComprehensive, Scenarios: []string{"wholesale"}}, apperrors.ErrCodeUnknownScenario, nil},
		{"unknown mode", nil, &Input{Mode: "all"}, apperrors.ErrCodeInvalidGenerationOptions, population.ErrInvalidOptions},
		{"negative count", nil, &Input{Mode: population.ModeQuick, Count: -3}, apperrors.ErrCodeInvalidGenerationOptions, population.ErrInvalidOptions},
		{"publish without sinks", nil, &Input{Mode: population.ModeQuick, Publish: true}, apperrors.ErrCodeInvalidGenerationOptions, nil},
		{"publish failure", &fakePublisher{err: errors.New("redis down")}, &Input{Mode: population.ModeQuick, Publish: true}, apperrors.ErrCodePublishFailed, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, tt.pub)
			out, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, out)

			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestHandler_PublishFailureIsRetryable(t *testing.T) {
	h := createTestHandler(t, &fakePublisher{err: errors.New("timeout")})
	_, err := h.Execute(context.Background(), &Input{Mode: population.ModeQuick, Publish: true})

	bpmn := apperrors.ConvertToBPMNError(apperrors.AsStandardError(err))
	assert.True(t, bpmn.Retryable)
	assert.Equal(t, 3, bpmn.Retries)
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		expected  *Input
	}{
		{
			name:      "full input",
			variables: map[string]interface{}{"mode": "comprehensive", "perScenario": 2, "scenarios": []string{"retail", "startup"}, "publish": true},
			expected:  &Input{Mode: "comprehensive", PerScenario: 2, Scenarios: []string{"retail", "startup"}, Publish: true},
		},
		{
			name:      "extra process variables ignored",
			variables: map[string]interface{}{"mode": "quick", "requestedBy": "ops"},
			expected:  &Input{Mode: "quick"},
		},
		{name: "missing mode", variables: map[string]interface{}{"count": 5}, wantErr: true},
		{name: "bad mode", variables: map[string]interface{}{"mode": "everything"}, wantErr: true},
		{name: "count too large", variables: map[string]interface{}{"mode": "quick", "count": 50000}, wantErr: true},
		{name: "bad scenario", variables: map[string]interface{}{"mode": "comprehensive", "scenarios": []string{"wholesale"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, nil)
			input, err := h.parseInput(createMockJob(1, tt.variables))
			if tt.wantErr {
				var stdErr *apperrors.StandardError
				require.ErrorAs(t, err, &stdErr)
				assert.Equal(t, apperrors.ErrCodeInvalidGenerationOptions, stdErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, input)
		})
	}
}

func TestNewHandler_Validation(t *testing.T) {
	_, err := NewHandler(HandlerOptions{})
	assert.Error(t, err)

	bad := createTestConfig()
	bad.Timeout = 0
	_, err = NewHandler(HandlerOptions{Config: bad})
	assert.Error(t, err)

	_, err = NewHandler(HandlerOptions{Config: createTestConfig()})
	assert.Error(t, err, "orchestrator is required")
}

func TestLoadConfig(t *testing.T) {
	appCfg := &config.Config{
		Generation: config.GenerationConfig{QuickCount: 40},
		Workers: map[string]config.WorkerConfig{
			TaskType: {Enabled: true, MaxJobsActive: 2, Timeout: 90000},
		},
	}
	cfg := LoadConfig(appCfg)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 2, cfg.MaxJobsActive)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 40, cfg.Defaults.QuickCount)
	assert.NoError(t, cfg.Validate())
}
