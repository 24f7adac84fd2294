// cmd/datagen/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"marketplace-datagen/internal/catalog"
	"marketplace-datagen/internal/common/camunda"
	"marketplace-datagen/internal/common/config"
	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/common/observability"
	"marketplace-datagen/internal/common/validation"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/generator/random"
	"marketplace-datagen/internal/population"
	"marketplace-datagen/internal/publish"
	"marketplace-datagen/internal/query"
	"marketplace-datagen/internal/refresh"
	"marketplace-datagen/internal/stats"
	qc "marketplace-datagen/internal/workers/data-access/query-corpus"
	pc "marketplace-datagen/internal/workers/generation/populate-corpus"
)

const modeWorker = "worker"

type options struct {
	configPath  string
	mode        string
	count       int
	categories  int
	perScenario int
	scenarios   string
	category    string
	seed        uint64
	workers     int
	publish     bool
	top         int
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Path to config file (default: configs/config.yaml lookup)")
	flag.StringVar(&o.mode, "mode", population.ModeQuick, "One of: "+strings.Join(append(population.Modes, modeWorker), ", "))
	flag.IntVar(&o.count, "count", 0, "Records for quick modes (0 = config default)")
	flag.IntVar(&o.categories, "categories", 0, "Category limit for quick modes (0 = config default)")
	flag.IntVar(&o.perScenario, "per-scenario", 0, "RFQs per scenario per subcategory in comprehensive mode")
	flag.StringVar(&o.scenarios, "scenarios", "", "Comma-separated scenarios for comprehensive mode")
	flag.StringVar(&o.category, "category", "", "Category for category-suppliers mode")
	flag.Uint64Var(&o.seed, "seed", 0, "Random seed (0 = config value, then non-deterministic)")
	flag.IntVar(&o.workers, "workers", 0, "Parallel generation workers")
	flag.BoolVar(&o.publish, "publish", false, "Publish the corpus to the configured sinks")
	flag.IntVar(&o.top, "top", 0, "Number of top records to print")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, opts)

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	store := corpus.NewStore()
	orchOpts := []population.Option{
		population.WithPicker(random.NewFromSeed(cfg.Generation.Seed)),
		population.WithWorkers(cfg.Generation.Workers),
		population.WithRecencyWindow(cfg.Generation.RecencyWindowDays),
		population.WithObservability(obs),
		population.WithTracer(obs.Tracer()),
	}
	if cfg.Generation.ValidateRecords {
		v, err := validation.NewRecordValidator()
		if err != nil {
			zapLog.Fatal("record validator failed", zap.Error(err))
		}
		orchOpts = append(orchOpts, population.WithValidator(v))
	}
	orch := population.New(catalog.Default(), store, log, orchOpts...)
	agg := stats.NewAggregator(store, log)

	ctx := context.Background()

	var fanout *publish.Fanout
	if opts.publish || opts.mode == modeWorker {
		sinks, closeSinks, err := publish.NewFromConfig(ctx, cfg, log)
		if err != nil {
			zapLog.Fatal("publish sinks failed", zap.Error(err))
		}
		defer closeSinks()
		if len(sinks) > 0 {
			fanout = publish.NewFanout(log, sinks, publish.WithRetry(3, time.Second))
		} else if opts.publish {
			zapLog.Fatal("publish requested but no sink is enabled")
		}
	}

	if opts.mode == modeWorker {
		runWorker(cfg, orch, agg, fanout, log, zapLog)
		return
	}

	if err := runOnce(ctx, cfg, opts, orch, agg, fanout); err != nil {
		zapLog.Fatal("population failed", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func applyOverrides(cfg *config.Config, o options) {
	g := &cfg.Generation
	if o.seed != 0 {
		g.Seed = o.seed
	}
	if o.workers > 0 {
		g.Workers = o.workers
	}
	if o.count > 0 {
		if o.mode == population.ModeQuickSuppliers {
			g.SupplierQuickCount = o.count
		} else {
			g.QuickCount = o.count
		}
	}
	if o.categories > 0 {
		g.QuickCategoryLimit = o.categories
	}
	if o.perScenario > 0 {
		g.PerScenario = o.perScenario
	}
	if o.scenarios != "" {
		g.Scenarios = strings.Split(o.scenarios, ",")
	}
	if o.top > 0 {
		g.TopN = o.top
	}
}

func requestFor(cfg *config.Config, mode, category string) population.Request {
	g := cfg.Generation
	count := g.QuickCount
	if mode == population.ModeQuickSuppliers {
		count = g.SupplierQuickCount
	}
	return population.Request{
		Mode:          mode,
		Count:         count,
		CategoryLimit: g.QuickCategoryLimit,
		PerScenario:   g.PerScenario,
		Scenarios:     g.Scenarios,
		Category:      category,
	}
}

type runOutput struct {
	Report          *population.Report    `json:"report"`
	Summary         stats.RFQSummary      `json:"summary"`
	SupplierSummary stats.SupplierSummary `json:"supplierSummary"`
	TopRFQs         []topRFQ              `json:"topRfqs,omitempty"`
	TopSuppliers    []topSupplier         `json:"topSuppliers,omitempty"`
	RecentRFQs      int                   `json:"recentRfqs"`
	PublishedTo     []string              `json:"publishedTo,omitempty"`
}

type topRFQ struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Budget string `json:"budget"`
}

type topSupplier struct {
	CompanyID string  `json:"companyId"`
	Name      string  `json:"name"`
	Rating    float64 `json:"rating"`
}

func runOnce(ctx context.Context, cfg *config.Config, o options, orch *population.Orchestrator, agg *stats.Aggregator, fanout *publish.Fanout) error {
	report, err := orch.Run(ctx, requestFor(cfg, o.mode, o.category))
	if err != nil {
		return err
	}

	out := runOutput{
		Report:          report,
		Summary:         agg.Summarize(),
		SupplierSummary: agg.SummarizeSuppliers(),
		RecentRFQs:      len(agg.RecentRFQs(cfg.Generation.RecencyWindowDays)),
	}
	for _, r := range agg.TopRFQsByBudget(cfg.Generation.TopN) {
		out.TopRFQs = append(out.TopRFQs, topRFQ{ID: r.ID, Title: r.Title, Budget: r.Budget})
	}
	for _, s := range agg.TopSuppliersByRating(cfg.Generation.TopN) {
		out.TopSuppliers = append(out.TopSuppliers, topSupplier{CompanyID: s.CompanyID, Name: s.CompanyName, Rating: s.Performance.Rating})
	}

	if fanout != nil {
		snap := publish.NewSnapshot(orch.Store(), agg, time.Now(), report)
		if err := fanout.Publish(ctx, snap); err != nil {
			return err
		}
		out.PublishedTo = fanout.Sinks()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runWorker(cfg *config.Config, orch *population.Orchestrator, agg *stats.Aggregator, fanout *publish.Fanout, log logger.Logger, zapLog *zap.Logger) {
	ctx := context.Background()

	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	handlerOpts := pc.HandlerOptions{
		Config:       pc.LoadConfig(cfg),
		Orchestrator: orch,
		Aggregator:   agg,
		Logger:       log,
	}
	if fanout != nil {
		handlerOpts.Publisher = fanout
	}
	handler, err := pc.NewHandler(handlerOpts)
	if err != nil {
		zapLog.Fatal("failed to create populate-corpus handler", zap.Error(err))
	}
	workers := []worker.JobWorker{
		camunda.StartWorker(zeebe, pc.TaskType, config.GetWorkerConfig(cfg, pc.TaskType), handler.Handle, log),
	}

	queryHandler, err := qc.NewHandler(qc.LoadConfig(cfg), query.NewFacade(orch.Store(), log), log)
	if err != nil {
		zapLog.Fatal("failed to create query-corpus handler", zap.Error(err))
	}
	workers = append(workers, camunda.StartWorker(zeebe, qc.TaskType, config.GetWorkerConfig(cfg, qc.TaskType), queryHandler.Handle, log))

	var scheduler *refresh.Scheduler
	if cfg.Schedule.RefreshCron != "" {
		schedOpts := refresh.Options{
			Orchestrator: orch,
			Aggregator:   agg,
			Request:      requestFor(cfg, cfg.Schedule.RefreshMode, ""),
			Logger:       log,
		}
		if fanout != nil {
			schedOpts.Publisher = fanout
		}
		scheduler = refresh.New(schedOpts)
		if err := scheduler.Schedule(cfg.Schedule.RefreshCron); err != nil {
			zapLog.Fatal("refresh schedule failed", zap.Error(err))
		}
		scheduler.Start()
		zapLog.Info("Corpus refresh scheduled", zap.String("cron", cfg.Schedule.RefreshCron), zap.String("mode", cfg.Schedule.RefreshMode))
	}

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: cfg.Metrics.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping worker...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	for _, jw := range workers {
		if jw != nil {
			jw.Close()
			jw.AwaitClose()
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping metrics server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Datagen worker stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
