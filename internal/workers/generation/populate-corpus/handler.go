package populatecorpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"

	"marketplace-datagen/internal/catalog"
	apperrors "marketplace-datagen/internal/common/errors"
	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/common/metrics"
	"marketplace-datagen/internal/common/validation"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/generator/rfq"
	"marketplace-datagen/internal/population"
	"marketplace-datagen/internal/publish"
	"marketplace-datagen/internal/stats"
)

const TaskType = "populate-corpus"

// Publisher is the part of publish.Fanout the worker uses.
type Publisher interface {
	Publish(ctx context.Context, snap publish.Snapshot) error
	Sinks() []string
}

type Handler struct {
	config       *Config
	orchestrator *population.Orchestrator
	aggregator   *stats.Aggregator
	publisher    Publisher
	schema       *gojsonschema.Schema
	errors       *apperrors.ErrorHandler
	now          func() time.Time
	logger       logger.Logger
}

type HandlerOptions struct {
	Config       *Config
	Orchestrator *population.Orchestrator
	Aggregator   *stats.Aggregator
	// Publisher is optional; jobs asking to publish fail without one.
	Publisher Publisher
	Logger    logger.Logger
	Clock     func() time.Time
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required for %s", TaskType)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Orchestrator == nil || opts.Aggregator == nil {
		return nil, fmt.Errorf("orchestrator and aggregator are required for %s", TaskType)
	}

	schema, err := validation.CompileSchema(inputSchema)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	return &Handler{
		config:       opts.Config,
		orchestrator: opts.Orchestrator,
		aggregator:   opts.Aggregator,
		publisher:    opts.Publisher,
		schema:       schema,
		errors:       apperrors.NewErrorHandler(log),
		now:          now,
		logger:       log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing populate-corpus job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err == nil {
		var output *Output
		if output, err = h.Execute(ctx, input); err == nil {
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

	result := validation.ValidateDocument(h.schema, variables)
	if !result.Valid {
		return nil, apperrors.NewInvalidGenerationOptionsError(fmt.Sprintf("validation errors: %v", result.GetErrorMessages()))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, apperrors.NewInvalidGenerationOptionsError(fmt.Sprintf("decode input: %v", err))
	}
	return &input, nil
}

// Execute runs one population request and summarizes the corpus. Errors are
// returned as *apperrors.StandardError.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	req := h.request(input)

	if input.Publish && h.publisher == nil {
		return nil, apperrors.NewInvalidGenerationOptionsError("publish requested but no sink is configured")
	}

	report, err := h.orchestrator.Run(ctx, req)
	if err != nil {
		return nil, classify(err)
	}

	topN := input.TopN
	if topN == 0 {
		topN = h.config.Defaults.TopN
	}

	output := &Output{
		Report:          report,
		Summary:         h.aggregator.Summarize(),
		SupplierSummary: h.aggregator.SummarizeSuppliers(),
		TopRFQIDs:       []string{},
		TopSupplierIDs:  []string{},
		PublishedTo:     []string{},
	}
	for _, r := range h.aggregator.TopRFQsByBudget(topN) {
		output.TopRFQIDs = append(output.TopRFQIDs, r.ID)
	}
	for _, s := range h.aggregator.TopSuppliersByRating(topN) {
		output.TopSupplierIDs = append(output.TopSupplierIDs, s.CompanyID)
	}

	if input.Publish {
		snap := publish.NewSnapshot(h.orchestrator.Store(), h.aggregator, h.now(), report)
		if err := h.publisher.Publish(ctx, snap); err != nil {
			return nil, apperrors.NewPublishFailedError("fanout", err)
		}
		output.PublishedTo = h.publisher.Sinks()
	}

	h.logger.Info("Populate-corpus job finished", map[string]interface{}{
		"runId":      report.RunID,
		"mode":       report.Mode,
		"generated":  report.Generated,
		"corpusSize": report.CorpusSize,
		"published":  output.PublishedTo,
	})
	return output, nil
}

// request fills zero-valued fields from the configured defaults.
func (h *Handler) request(input *Input) population.Request {
	d := h.config.Defaults
	req := population.Request{
		Mode:          input.Mode,
		Count:         input.Count,
		CategoryLimit: input.CategoryLimit,
		PerScenario:   input.PerScenario,
		Scenarios:     input.Scenarios,
		Category:      input.Category,
	}
	if req.Count == 0 {
		if req.Mode == population.ModeQuickSuppliers {
			req.Count = d.SupplierQuickCount
		} else {
			req.Count = d.QuickCount
		}
	}
	if req.CategoryLimit == 0 {
		req.CategoryLimit = d.QuickCategoryLimit
	}
	if req.PerScenario == 0 {
		req.PerScenario = d.PerScenario
	}
	if len(req.Scenarios) == 0 {
		req.Scenarios = d.Scenarios
	}
	return req
}

func classify(err error) error {
	switch {
	case errors.Is(err, catalog.ErrUnknownTaxonomyKey):
		return apperrors.NewUnknownTaxonomyKeyError(err)
	case errors.Is(err, rfq.ErrUnknownScenario):
		return apperrors.NewUnknownScenarioError(err)
	case errors.Is(err, population.ErrInvalidOptions):
		return apperrors.Wrap(apperrors.ErrCodeInvalidGenerationOptions, "Invalid generation options", err)
	case errors.Is(err, population.ErrRecordValidation):
		return apperrors.Wrap(apperrors.ErrCodeRecordValidationFailed, "Generated record failed schema validation", err)
	case errors.Is(err, corpus.ErrDuplicateID):
		return apperrors.Wrap(apperrors.ErrCodeDuplicateRecordID, "Duplicate record id in corpus", err)
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, "Population failed", err)
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err,
		})
	}
}
