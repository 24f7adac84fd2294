// Package stats computes read-only aggregates over a corpus.Store.
package stats

import (
	"cmp"
	"slices"
	"time"

	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/common/metrics"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/models"
)

// RFQSummary aggregates the RFQ corpus. Budget figures are in lakh; the
// string forms use FormatLakh. Unparseable budgets add nothing to the totals
// and are counted in UnparseableBudgets.
type RFQSummary struct {
	Total              int            `json:"total"`
	Active             int            `json:"active"`
	InProgress         int            `json:"inProgress"`
	Closed             int            `json:"closed"`
	ActivePercentage   float64        `json:"activePercentage"`
	Categories         int            `json:"categories"`
	Subcategories      int            `json:"subcategories"`
	BusinessTypes      int            `json:"businessTypes"`
	States             int            `json:"states"`
	BudgetTotalLakh    float64        `json:"budgetTotalLakh"`
	BudgetAverageLakh  float64        `json:"budgetAverageLakh"`
	BudgetTotal        string         `json:"budgetTotal"`
	BudgetAverage      string         `json:"budgetAverage"`
	UnparseableBudgets int            `json:"unparseableBudgets"`
	ByUrgency          map[string]int `json:"byUrgency"`
	ByScenario         map[string]int `json:"byScenario"`
}

// SupplierSummary aggregates the supplier corpus.
type SupplierSummary struct {
	Total                int            `json:"total"`
	Verified             int            `json:"verified"`
	ByCompanyType        map[string]int `json:"byCompanyType"`
	ByCategory           map[string]int `json:"byCategory"`
	ByStatus             map[string]int `json:"byStatus"`
	AverageRating        float64        `json:"averageRating"`
	AverageSatisfaction  float64        `json:"averageSatisfaction"`
	TurnoverTotalLakh    float64        `json:"turnoverTotalLakh"`
	TurnoverTotal        string         `json:"turnoverTotal"`
	UnparseableTurnovers int            `json:"unparseableTurnovers"`
}

type Aggregator struct {
	store *corpus.Store
	now   func() time.Time
	log   logger.Logger
}

type Option func(*Aggregator)

// WithClock sets the reference time for RecentRFQs.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func NewAggregator(store *corpus.Store, log logger.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		store: store,
		now:   time.Now,
		log:   logger.ForComponent(log, "stats"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Summarize() RFQSummary {
	records := a.store.RFQs()
	s := RFQSummary{
		Total:      len(records),
		ByUrgency:  map[string]int{},
		ByScenario: map[string]int{},
	}

	categories := map[string]struct{}{}
	subcategories := map[string]struct{}{}
	businessTypes := map[string]struct{}{}
	states := map[string]struct{}{}
	parsed := 0

	for _, r := range records {
		switch r.Status {
		case models.RFQStatusActive:
			s.Active++
		case models.RFQStatusInProgress:
			s.InProgress++
		case models.RFQStatusClosed:
			s.Closed++
		}
		categories[r.Category] = struct{}{}
		subcategories[r.Category+"\x00"+r.Subcategory] = struct{}{}
		businessTypes[r.BusinessType] = struct{}{}
		if r.State != "" {
			states[r.State] = struct{}{}
		}
		s.ByUrgency[string(r.Urgency)]++
		s.ByScenario[string(r.Scenario)]++

		amount, ok := ParseBudget(r.Budget)
		if !ok {
			s.UnparseableBudgets++
			continue
		}
		s.BudgetTotalLakh += amount.Mid()
		parsed++
	}

	s.Categories = len(categories)
	s.Subcategories = len(subcategories)
	s.BusinessTypes = len(businessTypes)
	s.States = len(states)
	s.ActivePercentage = percentage(s.Active, s.Total)
	if parsed > 0 {
		s.BudgetAverageLakh = s.BudgetTotalLakh / float64(parsed)
	}
	s.BudgetTotal = FormatLakh(s.BudgetTotalLakh)
	s.BudgetAverage = FormatLakh(s.BudgetAverageLakh)

	if s.UnparseableBudgets > 0 {
		metrics.UnparseableAmounts.WithLabelValues("budget").Add(float64(s.UnparseableBudgets))
		a.log.Warn("Skipped unparseable budgets", map[string]interface{}{
			"count": s.UnparseableBudgets,
			"total": s.Total,
		})
	}
	return s
}

func (a *Aggregator) SummarizeSuppliers() SupplierSummary {
	records := a.store.Suppliers()
	s := SupplierSummary{
		Total:         len(records),
		ByCompanyType: map[string]int{},
		ByCategory:    map[string]int{},
		ByStatus:      map[string]int{},
	}

	var ratingSum, satisfactionSum float64
	for _, p := range records {
		s.ByCompanyType[string(p.CompanyType)]++
		s.ByStatus[string(p.Status)]++
		for _, c := range p.Categories {
			s.ByCategory[c]++
		}
		if p.Operations.Verified {
			s.Verified++
		}
		ratingSum += p.Performance.Rating
		satisfactionSum += float64(p.Performance.CustomerSatisfaction)

		amount, ok := ParseBudget(p.BusinessMetrics.AnnualTurnover)
		if !ok {
			s.UnparseableTurnovers++
			continue
		}
		s.TurnoverTotalLakh += amount.Mid()
	}

	if s.Total > 0 {
		s.AverageRating = ratingSum / float64(s.Total)
		s.AverageSatisfaction = satisfactionSum / float64(s.Total)
	}
	s.TurnoverTotal = FormatLakh(s.TurnoverTotalLakh)

	if s.UnparseableTurnovers > 0 {
		metrics.UnparseableAmounts.WithLabelValues("turnover").Add(float64(s.UnparseableTurnovers))
		a.log.Warn("Skipped unparseable turnovers", map[string]interface{}{
			"count": s.UnparseableTurnovers,
			"total": s.Total,
		})
	}
	return s
}

// TopRFQsByBudget ranks by the upper bound of the parsed budget. Equal
// budgets keep insertion order; unparseable budgets rank as zero.
func (a *Aggregator) TopRFQsByBudget(n int) []models.RFQ {
	records := a.store.RFQs()
	upper := make(map[string]float64, len(records))
	for _, r := range records {
		amount, _ := ParseBudget(r.Budget)
		upper[r.ID] = amount.High
	}
	slices.SortStableFunc(records, func(x, y models.RFQ) int {
		return cmp.Compare(upper[y.ID], upper[x.ID])
	})
	return head(records, n)
}

// TopSuppliersByRating ranks by rating, ties in insertion order.
func (a *Aggregator) TopSuppliersByRating(n int) []models.SupplierProfile {
	records := a.store.Suppliers()
	slices.SortStableFunc(records, func(x, y models.SupplierProfile) int {
		return cmp.Compare(y.Performance.Rating, x.Performance.Rating)
	})
	return head(records, n)
}

// RecentRFQs returns RFQs created within the last days days (today counts
// as day 0), newest first. Records with unreadable dates are skipped.
func (a *Aggregator) RecentRFQs(days int) []models.RFQ {
	if days < 0 {
		return []models.RFQ{}
	}
	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, -days)

	type dated struct {
		rfq     models.RFQ
		created time.Time
	}
	var recent []dated
	for _, r := range a.store.RFQs() {
		created, err := time.Parse(models.DateLayout, r.CreatedDate)
		if err != nil {
			continue
		}
		if created.Before(cutoff) {
			continue
		}
		recent = append(recent, dated{rfq: r, created: created})
	}
	slices.SortStableFunc(recent, func(x, y dated) int {
		return y.created.Compare(x.created)
	})

	out := make([]models.RFQ, len(recent))
	for i, d := range recent {
		out[i] = d.rfq
	}
	return out
}

func head[T any](records []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
