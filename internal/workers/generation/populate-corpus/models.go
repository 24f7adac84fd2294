package populatecorpus

import (
	"marketplace-datagen/internal/population"
	"marketplace-datagen/internal/stats"
)

type Input struct {
	Mode          string   `json:"mode"`
	Count         int      `json:"count,omitempty"`
	CategoryLimit int      `json:"categoryLimit,omitempty"`
	PerScenario   int      `json:"perScenario,omitempty"`
	Scenarios     []string `json:"scenarios,omitempty"`
	Category      string   `json:"category,omitempty"`
	Publish       bool     `json:"publish,omitempty"`
	TopN          int      `json:"topN,omitempty"`
}

type Output struct {
	Report          *population.Report    `json:"report"`
	Summary         stats.RFQSummary      `json:"summary"`
	SupplierSummary stats.SupplierSummary `json:"supplierSummary"`
	TopRFQIDs       []string              `json:"topRfqIds"`
	TopSupplierIDs  []string              `json:"topSupplierIds"`
	PublishedTo     []string              `json:"publishedTo"`
}

const inputSchema = `{
	"type": "object",
	"required": ["mode"],
	"properties": {
		"mode": {"type": "string", "enum": ["quick", "comprehensive", "quick-suppliers", "comprehensive-suppliers", "category-suppliers"]},
		"count": {"type": "integer", "minimum": 0, "maximum": 10000},
		"categoryLimit": {"type": "integer", "minimum": 0},
		"perScenario": {"type": "integer", "minimum": 0, "maximum": 50},
		"scenarios": {"type": "array", "items": {"type": "string", "enum": ["enterprise", "manufacturing", "retail", "startup"]}},
		"category": {"type": "string"},
		"publish": {"type": "boolean"},
		"topN": {"type": "integer", "minimum": 0, "maximum": 100}
	}
}`
