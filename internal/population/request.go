package population

import (
	"context"
	"fmt"

	"marketplace-datagen/internal/generator/rfq"
	"marketplace-datagen/internal/models"
)

// Modes lists every population mode Run accepts.
var Modes = []string{
	ModeQuick,
	ModeComprehensive,
	ModeQuickSuppliers,
	ModeComprehensiveSuppliers,
	ModeCategorySuppliers,
}

// Request names a population mode and its parameters. Fields a mode does
// not use are ignored.
type Request struct {
	Mode          string   `json:"mode"`
	Count         int      `json:"count,omitempty"`
	CategoryLimit int      `json:"categoryLimit,omitempty"`
	PerScenario   int      `json:"perScenario,omitempty"`
	Scenarios     []string `json:"scenarios,omitempty"`
	Category      string   `json:"category,omitempty"`
}

// Run dispatches req to the matching population method.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	switch req.Mode {
	case ModeQuick:
		return o.Quick(ctx, QuickOptions{Count: req.Count, CategoryLimit: req.CategoryLimit})
	case ModeComprehensive:
		scenarios, err := parseScenarios(req.Scenarios)
		if err != nil {
			return nil, err
		}
		return o.Comprehensive(ctx, ComprehensiveOptions{PerScenario: req.PerScenario, Scenarios: scenarios})
	case ModeQuickSuppliers:
		return o.QuickSuppliers(ctx, QuickOptions{Count: req.Count, CategoryLimit: req.CategoryLimit})
	case ModeComprehensiveSuppliers:
		return o.ComprehensiveSuppliers(ctx)
	case ModeCategorySuppliers:
		if req.Category == "" {
			return nil, fmt.Errorf("%w: category is required for %s", ErrInvalidOptions, ModeCategorySuppliers)
		}
		return o.SuppliersForCategory(ctx, req.Category)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, req.Mode)
	}
}

func parseScenarios(names []string) ([]models.Scenario, error) {
	out := make([]models.Scenario, 0, len(names))
	for _, n := range names {
		sc, err := models.ParseScenario(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", rfq.ErrUnknownScenario, n)
		}
		out = append(out, sc)
	}
	return out, nil
}
