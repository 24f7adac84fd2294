package querycorpus

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-datagen/internal/common/config"
	apperrors "marketplace-datagen/internal/common/errors"
	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/models"
	"marketplace-datagen/internal/query"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestStore(t *testing.T) *corpus.Store {
	t.Helper()
	store := corpus.NewStore()
	require.NoError(t, store.ReplaceRFQs([]models.RFQ{
		{ID: "r1", Title: "Cotton Yarn Bulk Order", Category: "Textiles", Subcategory: "Cotton Yarn", State: "Gujarat", Status: models.RFQStatusActive, Urgency: models.UrgencyHigh},
		{ID: "r2", Title: "Denim Procurement", Category: "Textiles", Subcategory: "Denim", State: "Gujarat", Status: models.RFQStatusClosed, Urgency: models.UrgencyLow},
		{ID: "r3", Title: "Fertilizers Requirement", Category: "Agriculture", Subcategory: "Fertilizers", State: "Punjab", Status: models.RFQStatusActive, Urgency: models.UrgencyMedium},
	}))
	require.NoError(t, store.ReplaceSuppliers([]models.SupplierProfile{
		{CompanyID: "s1", CompanyName: "Shree Textiles Pvt Ltd", CompanyType: models.CompanyTypeManufacturer, Status: models.SupplierStatusActive, Categories: []string{"Textiles"}, Performance: models.Performance{Rating: 9.2}},
		{CompanyID: "s2", CompanyName: "Apex Agro LLP", CompanyType: models.CompanyTypeTrader, Status: models.SupplierStatusPending, Categories: []string{"Agriculture"}, Performance: models.Performance{Rating: 6.5}},
	}))
	return store
}

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	h, err := NewHandler(&Config{Timeout: 5 * time.Second, MaxPageSize: 2}, query.NewFacade(createTestStore(t), log), log)
	require.NoError(t, err)
	return h
}

func createMockJob(variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:           1,
		Type:          TaskType,
		CustomHeaders: "{}",
		Retries:       3,
		Variables:     string(variablesJSON),
	}}
}

func rfqIDs(out *Output) []string {
	ids := make([]string, len(out.RFQs))
	for i, r := range out.RFQs {
		ids[i] = r.ID
	}
	return ids
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SearchRFQs(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		wantIDs   []string
		wantTotal int
	}{
		{"by category", &Input{QueryType: QuerySearchRFQs, Filters: Filters{Category: "Textiles"}}, []string{"r1", "r2"}, 2},
		{"by status and state", &Input{QueryType: QuerySearchRFQs, Filters: Filters{Status: "Active", State: "Punjab"}}, []string{"r3"}, 1},
		{"keyword", &Input{QueryType: QuerySearchRFQs, Filters: Filters{Keyword: "denim"}}, []string{"r2"}, 1},
		{"page size clamped", &Input{QueryType: QuerySearchRFQs, Pagination: Pagination{Size: 50}}, []string{"r1", "r2"}, 3},
		{"second page", &Input{QueryType: QuerySearchRFQs, Pagination: Pagination{From: 2, Size: 2}}, []string{"r3"}, 3},
		{"past the end", &Input{QueryType: QuerySearchRFQs, Pagination: Pagination{From: 10}}, []string{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := createTestHandler(t).Execute(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, rfqIDs(out))
			assert.Equal(t, tt.wantTotal, out.TotalHits)
		})
	}
}

func TestHandler_Execute_SearchSuppliers(t *testing.T) {
	out, err := createTestHandler(t).Execute(&Input{QueryType: QuerySearchSuppliers, Filters: Filters{MinRating: 8}})
	require.NoError(t, err)
	require.Len(t, out.Suppliers, 1)
	assert.Equal(t, "s1", out.Suppliers[0].CompanyID)
}

func TestHandler_Execute_Find(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(&Input{QueryType: QueryFindRFQ, ID: "r2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, rfqIDs(out))

	out, err = h.Execute(&Input{QueryType: QueryFindSupplier, ID: "s2"})
	require.NoError(t, err)
	assert.Equal(t, "Apex Agro LLP", out.Suppliers[0].CompanyName)
}

func TestHandler_Execute_UpdateSupplierStatus(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(&Input{QueryType: QueryUpdateSupplierStatus, ID: "s2", Status: "Suspended"})
	require.NoError(t, err)
	assert.Equal(t, models.SupplierStatusSuspended, out.Suppliers[0].Status)

	out, err = h.Execute(&Input{QueryType: QueryFindSupplier, ID: "s2"})
	require.NoError(t, err)
	assert.Equal(t, models.SupplierStatusSuspended, out.Suppliers[0].Status)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		wantCode apperrors.ErrorCode
	}{
		{"nil input", nil, apperrors.ErrCodeInvalidGenerationOptions},
		{"unknown query", &Input{QueryType: "aggregate"}, apperrors.ErrCodeInvalidGenerationOptions},
		{"missing rfq", &Input{QueryType: QueryFindRFQ, ID: "nope"}, apperrors.ErrCodeRecordNotFound},
		{"missing supplier", &Input{QueryType: QueryFindSupplier, ID: "nope"}, apperrors.ErrCodeRecordNotFound},
		{"status update unknown id", &Input{QueryType: QueryUpdateSupplierStatus, ID: "nope", Status: "Active"}, apperrors.ErrCodeRecordNotFound},
		{"status update bad status", &Input{QueryType: QueryUpdateSupplierStatus, ID: "s1", Status: "Deleted"}, apperrors.ErrCodeInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := createTestHandler(t).Execute(tt.input)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tt.wantCode, apperrors.AsStandardError(err).Code)
		})
	}
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t)

	input, err := h.parseInput(createMockJob(map[string]interface{}{
		"queryType":  "search-rfqs",
		"filters":    map[string]interface{}{"category": "Textiles", "keyword": "yarn"},
		"pagination": map[string]interface{}{"from": 0, "size": 10},
	}))
	require.NoError(t, err)
	assert.Equal(t, &Input{
		QueryType:  QuerySearchRFQs,
		Filters:    Filters{Category: "Textiles", Keyword: "yarn"},
		Pagination: Pagination{From: 0, Size: 10},
	}, input)

	for _, vars := range []map[string]interface{}{
		{"filters": map[string]interface{}{}},
		{"queryType": "drop-index"},
		{"queryType": "search-rfqs", "pagination": map[string]interface{}{"from": -1}},
	} {
		_, err := h.parseInput(createMockJob(vars))
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidGenerationOptions, apperrors.AsStandardError(err).Code)
	}
}

func TestNewHandler_Validation(t *testing.T) {
	log := logger.NewNoOpLogger()
	facade := query.NewFacade(corpus.NewStore(), log)

	_, err := NewHandler(nil, facade, log)
	assert.Error(t, err)
	_, err = NewHandler(&Config{Timeout: time.Second}, facade, log)
	assert.Error(t, err)
	_, err = NewHandler(&Config{Timeout: time.Second, MaxPageSize: 10}, nil, log)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(&config.Config{Workers: map[string]config.WorkerConfig{
		TaskType: {Enabled: true, MaxJobsActive: 5, Timeout: 15000},
	}})
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.NoError(t, cfg.Validate())
}
