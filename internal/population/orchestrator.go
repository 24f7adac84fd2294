// Package population drives the generators across the taxonomy and loads
// the results into a corpus.Store.
package population

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace-datagen/internal/catalog"
	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/common/metrics"
	"marketplace-datagen/internal/common/observability"
	"marketplace-datagen/internal/common/validation"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/generator/identity"
	"marketplace-datagen/internal/generator/random"
	"marketplace-datagen/internal/generator/rfq"
	"marketplace-datagen/internal/generator/supplier"
	"marketplace-datagen/internal/models"
)

var (
	ErrInvalidOptions   = errors.New("invalid generation options")
	ErrRecordValidation = errors.New("generated record failed validation")
)

const (
	ModeQuick                  = "quick"
	ModeComprehensive          = "comprehensive"
	ModeCategorySuppliers      = "category-suppliers"
	ModeQuickSuppliers         = "quick-suppliers"
	ModeComprehensiveSuppliers = "comprehensive-suppliers"

	KindRFQ      = "rfq"
	KindSupplier = "supplier"
)

// DefaultScenarios is the scenario cycle used when a comprehensive run
// names none.
var DefaultScenarios = []models.Scenario{models.ScenarioEnterprise, models.ScenarioManufacturing}

type QuickOptions struct {
	Count         int
	CategoryLimit int
}

type ComprehensiveOptions struct {
	PerScenario int
	Scenarios   []models.Scenario
}

// Report describes one population run. CorpusSize and the coverage counts
// refer to the collection of Kind after the run.
type Report struct {
	RunID                string        `json:"runId"`
	Mode                 string        `json:"mode"`
	Kind                 string        `json:"kind"`
	Started              time.Time     `json:"started"`
	Elapsed              time.Duration `json:"elapsedNs"`
	Generated            int           `json:"generated"`
	CorpusSize           int           `json:"corpusSize"`
	CategoriesCovered    int           `json:"categoriesCovered"`
	SubcategoriesCovered int           `json:"subcategoriesCovered"`
}

// Orchestrator serializes population runs against one store. Quick and
// comprehensive runs replace their collection, SuppliersForCategory appends.
type Orchestrator struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	store     *corpus.Store
	picker    *random.Picker
	now       func() time.Time
	workers   int
	recency   int
	validator *validation.RecordValidator
	obs       *observability.Observability
	tracer    trace.Tracer
	log       logger.Logger

	rfqs      *rfq.Generator
	suppliers *supplier.Generator
}

type Option func(*Orchestrator)

// WithPicker sets the random source; a seeded picker makes runs reproducible.
func WithPicker(p *random.Picker) Option {
	return func(o *Orchestrator) { o.picker = p }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithWorkers sets how many taxonomy units comprehensive runs generate at once.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithRecencyWindow bounds how many days back RFQ created dates may fall.
func WithRecencyWindow(days int) Option {
	return func(o *Orchestrator) { o.recency = days }
}

// WithValidator checks every generated record before it reaches the store.
func WithValidator(v *validation.RecordValidator) Option {
	return func(o *Orchestrator) { o.validator = v }
}

func WithObservability(obs *observability.Observability) Option {
	return func(o *Orchestrator) { o.obs = obs }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

func New(cat *catalog.Catalog, store *corpus.Store, log logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog: cat,
		store:   store,
		now:     time.Now,
		workers: 1,
		log:     logger.ForComponent(log, "population"),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.picker == nil {
		o.picker = random.NewDefault()
	}
	if o.tracer == nil {
		o.tracer = o.obs.Tracer()
	}

	ids := identity.NewFactory(o.picker, o.now)
	o.rfqs = rfq.New(cat, o.picker, ids, rfq.WithClock(o.now), rfq.WithRecencyWindow(o.recency))
	o.suppliers = supplier.New(cat, o.picker, ids, supplier.WithClock(o.now))
	return o
}

// Store returns the store the orchestrator writes to.
func (o *Orchestrator) Store() *corpus.Store { return o.store }

// Quick replaces the RFQ corpus with opts.Count records drawn from random
// pairs of the first opts.CategoryLimit categories and random scenarios.
func (o *Orchestrator) Quick(ctx context.Context, opts QuickOptions) (*Report, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", ErrInvalidOptions)
	}
	return o.run(ctx, ModeQuick, KindRFQ, func(ctx context.Context) (int, error) {
		pairs, err := o.catalog.Pairs(o.catalog.Restrict(opts.CategoryLimit)...)
		if err != nil {
			return 0, err
		}
		records := make([]models.RFQ, 0, opts.Count)
		for i := 0; i < opts.Count; i++ {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			p := random.Pick(o.picker, pairs)
			r, err := o.rfqs.GenerateSingle(p.Category, p.Subcategory, random.Pick(o.picker, models.Scenarios))
			if err != nil {
				return 0, err
			}
			records = append(records, r)
		}
		if err := o.validateRFQs(records); err != nil {
			return 0, err
		}
		return len(records), o.store.ReplaceRFQs(records)
	})
}

// Comprehensive replaces the RFQ corpus with opts.PerScenario records for
// every pair and every scenario, in taxonomy order.
func (o *Orchestrator) Comprehensive(ctx context.Context, opts ComprehensiveOptions) (*Report, error) {
	if opts.PerScenario < 0 {
		return nil, fmt.Errorf("%w: per-scenario count must not be negative", ErrInvalidOptions)
	}
	scenarios := opts.Scenarios
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios
	}
	for _, sc := range scenarios {
		if _, err := models.ParseScenario(string(sc)); err != nil {
			return nil, fmt.Errorf("%w: %q", rfq.ErrUnknownScenario, sc)
		}
	}

	return o.run(ctx, ModeComprehensive, KindRFQ, func(ctx context.Context) (int, error) {
		pairs, err := o.catalog.Pairs()
		if err != nil {
			return 0, err
		}
		records, err := fanOut(ctx, o.picker, o.workers, len(pairs), func(i int, p *random.Picker) ([]models.RFQ, error) {
			gen := o.rfqs.WithPicker(p)
			unit := make([]models.RFQ, 0, opts.PerScenario*len(scenarios))
			for _, sc := range scenarios {
				for k := 0; k < opts.PerScenario; k++ {
					r, err := gen.GenerateSingle(pairs[i].Category, pairs[i].Subcategory, sc)
					if err != nil {
						return nil, err
					}
					unit = append(unit, r)
				}
			}
			return unit, nil
		})
		if err != nil {
			return 0, err
		}
		if err := o.validateRFQs(records); err != nil {
			return 0, err
		}
		return len(records), o.store.ReplaceRFQs(records)
	})
}

// SuppliersForCategory appends 5-10 suppliers per subcategory of category.
func (o *Orchestrator) SuppliersForCategory(ctx context.Context, category string) (*Report, error) {
	if _, err := o.catalog.SubcategoriesOf(category); err != nil {
		return nil, err
	}
	return o.run(ctx, ModeCategorySuppliers, KindSupplier, func(ctx context.Context) (int, error) {
		records, err := o.suppliers.GenerateForCategory(category)
		if err != nil {
			return 0, err
		}
		if err := o.validateSuppliers(records); err != nil {
			return 0, err
		}
		return len(records), o.store.AppendSuppliers(records)
	})
}

// QuickSuppliers replaces the supplier corpus with opts.Count suppliers
// drawn from random pairs of the first opts.CategoryLimit categories.
func (o *Orchestrator) QuickSuppliers(ctx context.Context, opts QuickOptions) (*Report, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", ErrInvalidOptions)
	}
	return o.run(ctx, ModeQuickSuppliers, KindSupplier, func(ctx context.Context) (int, error) {
		pairs, err := o.catalog.Pairs(o.catalog.Restrict(opts.CategoryLimit)...)
		if err != nil {
			return 0, err
		}
		records := make([]models.SupplierProfile, 0, opts.Count)
		for i := 0; i < opts.Count; i++ {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			p := random.Pick(o.picker, pairs)
			s, err := o.suppliers.GenerateSingle(p.Category, p.Subcategory)
			if err != nil {
				return 0, err
			}
			records = append(records, s)
		}
		if err := o.validateSuppliers(records); err != nil {
			return 0, err
		}
		return len(records), o.store.ReplaceSuppliers(records)
	})
}

// ComprehensiveSuppliers replaces the supplier corpus with 5-10 suppliers
// for every pair of the taxonomy.
func (o *Orchestrator) ComprehensiveSuppliers(ctx context.Context) (*Report, error) {
	return o.run(ctx, ModeComprehensiveSuppliers, KindSupplier, func(ctx context.Context) (int, error) {
		categories := o.catalog.AllCategories()
		records, err := fanOut(ctx, o.picker, o.workers, len(categories), func(i int, p *random.Picker) ([]models.SupplierProfile, error) {
			return o.suppliers.WithPicker(p).GenerateForCategory(categories[i])
		})
		if err != nil {
			return 0, err
		}
		if err := o.validateSuppliers(records); err != nil {
			return 0, err
		}
		return len(records), o.store.ReplaceSuppliers(records)
	})
}

// run wraps a population body with locking, tracing, metrics and the report.
func (o *Orchestrator) run(ctx context.Context, mode, kind string, body func(ctx context.Context) (int, error)) (*Report, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	runID := uuid.NewString()
	ctx, span := o.tracer.Start(ctx, "population."+mode, trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("mode", mode),
		attribute.String("kind", kind),
	))
	defer span.End()

	log := o.log.WithFields(map[string]interface{}{"runId": runID, "mode": mode})
	log.Info("Population started", nil)

	started := o.now()
	wall := time.Now()
	generated, err := body(ctx)
	elapsed := time.Since(wall)

	metrics.PopulationDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.obs.RecordPopulation(ctx, mode, 0, elapsed, "failed")
		log.Error("Population failed", map[string]interface{}{"error": err, "elapsedMs": elapsed.Milliseconds()})
		return nil, err
	}

	report := &Report{
		RunID:     runID,
		Mode:      mode,
		Kind:      kind,
		Started:   started,
		Elapsed:   elapsed,
		Generated: generated,
	}
	report.CorpusSize, report.CategoriesCovered, report.SubcategoriesCovered = o.coverage(kind)

	metrics.RecordsGenerated.WithLabelValues(kind, mode).Add(float64(generated))
	metrics.CorpusSize.WithLabelValues(kind).Set(float64(report.CorpusSize))
	o.obs.RecordPopulation(ctx, mode, generated, elapsed, "success")
	span.SetAttributes(
		attribute.Int("generated", generated),
		attribute.Int("corpus_size", report.CorpusSize),
	)

	log.Info("Population completed", map[string]interface{}{
		"generated":            generated,
		"corpusSize":           report.CorpusSize,
		"categoriesCovered":    report.CategoriesCovered,
		"subcategoriesCovered": report.SubcategoriesCovered,
		"elapsedMs":            elapsed.Milliseconds(),
	})
	return report, nil
}

func (o *Orchestrator) coverage(kind string) (size, categories, subcategories int) {
	cats := map[string]struct{}{}
	subs := map[string]struct{}{}
	add := func(c, s string) {
		cats[c] = struct{}{}
		subs[c+"\x00"+s] = struct{}{}
	}

	if kind == KindSupplier {
		records := o.store.Suppliers()
		for _, r := range records {
			for i, c := range r.Categories {
				if i < len(r.Subcategories) {
					add(c, r.Subcategories[i])
				}
			}
		}
		return len(records), len(cats), len(subs)
	}

	records := o.store.RFQs()
	for _, r := range records {
		add(r.Category, r.Subcategory)
	}
	return len(records), len(cats), len(subs)
}

func (o *Orchestrator) validateRFQs(records []models.RFQ) error {
	if o.validator == nil {
		return nil
	}
	for _, r := range records {
		if res := o.validator.ValidateRFQ(r); !res.Valid {
			return fmt.Errorf("%w: rfq %s: %s", ErrRecordValidation, r.ID, strings.Join(res.GetErrorMessages(), "; "))
		}
	}
	return nil
}

func (o *Orchestrator) validateSuppliers(records []models.SupplierProfile) error {
	if o.validator == nil {
		return nil
	}
	for _, s := range records {
		if res := o.validator.ValidateSupplier(s); !res.Valid {
			return fmt.Errorf("%w: supplier %s: %s", ErrRecordValidation, s.CompanyID, strings.Join(res.GetErrorMessages(), "; "))
		}
	}
	return nil
}
