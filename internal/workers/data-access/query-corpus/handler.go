// internal/workers/data-access/query-corpus/handler.go
package querycorpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"

	apperrors "marketplace-datagen/internal/common/errors"
	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/common/metrics"
	"marketplace-datagen/internal/common/validation"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/models"
	"marketplace-datagen/internal/query"
)

const TaskType = "query-corpus"

type Handler struct {
	config *Config
	facade *query.Facade
	schema *gojsonschema.Schema
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(cfg *Config, facade *query.Facade, log logger.Logger) (*Handler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required for %s", TaskType)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if facade == nil {
		return nil, fmt.Errorf("query facade is required for %s", TaskType)
	}
	schema, err := validation.CompileSchema(inputSchema)
	if err != nil {
		return nil, err
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: cfg,
		facade: facade,
		schema: schema,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err == nil {
		var output *Output
		if output, err = h.Execute(input); err == nil {
			h.completeJob(ctx, client, job, output)
			metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
			metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
			return
		}
	}

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.AsStandardError(err).Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, err)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, apperrors.NewInvalidGenerationOptionsError(fmt.Sprintf("parse job variables: %v", err))
	}
	if result := validation.ValidateDocument(h.schema, variables); !result.Valid {
		return nil, apperrors.NewInvalidGenerationOptionsError(fmt.Sprintf("validation errors: %v", result.GetErrorMessages()))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, apperrors.NewInvalidGenerationOptionsError(fmt.Sprintf("decode input: %v", err))
	}
	return &input, nil
}

// Execute runs one query against the corpus.
func (h *Handler) Execute(input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidGenerationOptionsError("input cannot be nil")
	}
	start := time.Now()

	var out *Output
	switch input.QueryType {
	case QuerySearchRFQs:
		f := input.Filters
		hits := h.facade.SearchRFQs(query.RFQFilter{
			Category:     f.Category,
			Subcategory:  f.Subcategory,
			BusinessType: f.BusinessType,
			Location:     f.Location,
			State:        f.State,
			Status:       models.RFQStatus(f.Status),
			Urgency:      models.Urgency(f.Urgency),
			Keyword:      f.Keyword,
		})
		out = &Output{RFQs: page(hits, input.Pagination, h.config.MaxPageSize), TotalHits: len(hits)}

	case QuerySearchSuppliers:
		f := input.Filters
		hits := h.facade.SearchSuppliers(query.SupplierFilter{
			Category:    f.Category,
			Subcategory: f.Subcategory,
			CompanyType: models.CompanyType(f.CompanyType),
			State:       f.State,
			Status:      models.SupplierStatus(f.Status),
			MinRating:   f.MinRating,
			Keyword:     f.Keyword,
		})
		out = &Output{Suppliers: page(hits, input.Pagination, h.config.MaxPageSize), TotalHits: len(hits)}

	case QueryFindRFQ:
		r, ok := h.facade.FindRFQ(input.ID)
		if !ok {
			return nil, apperrors.NewRecordNotFoundError(input.ID)
		}
		out = &Output{RFQs: []models.RFQ{r}, TotalHits: 1}

	case QueryFindSupplier:
		s, ok := h.facade.FindSupplier(input.ID)
		if !ok {
			return nil, apperrors.NewRecordNotFoundError(input.ID)
		}
		out = &Output{Suppliers: []models.SupplierProfile{s}, TotalHits: 1}

	case QueryUpdateSupplierStatus:
		if err := h.facade.UpdateSupplierStatus(input.ID, models.SupplierStatus(input.Status)); err != nil {
			switch {
			case errors.Is(err, corpus.ErrNotFound):
				return nil, apperrors.NewRecordNotFoundError(input.ID)
			case errors.Is(err, corpus.ErrInvalidStatus):
				return nil, apperrors.Wrap(apperrors.ErrCodeInvalidStatus, "Invalid supplier status", err)
			default:
				return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "Status update failed", err)
			}
		}
		s, _ := h.facade.FindSupplier(input.ID)
		out = &Output{Suppliers: []models.SupplierProfile{s}, TotalHits: 1}

	default:
		return nil, apperrors.NewInvalidGenerationOptionsError(fmt.Sprintf("unknown query type %q", input.QueryType))
	}

	out.Took = time.Since(start).Milliseconds()
	return out, nil
}

// page slices hits by from/size. A zero size means maxSize.
func page[T any](hits []T, p Pagination, maxSize int) []T {
	size := p.Size
	if size <= 0 || size > maxSize {
		size = maxSize
	}
	if p.From >= len(hits) {
		return []T{}
	}
	end := min(p.From+size, len(hits))
	return hits[p.From:end]
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
