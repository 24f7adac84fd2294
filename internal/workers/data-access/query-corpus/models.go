// internal/workers/data-access/query-corpus/models.go
package querycorpus

import "marketplace-datagen/internal/models"

const (
	QuerySearchRFQs           = "search-rfqs"
	QuerySearchSuppliers      = "search-suppliers"
	QueryFindRFQ              = "find-rfq"
	QueryFindSupplier         = "find-supplier"
	QueryUpdateSupplierStatus = "update-supplier-status"
)

type Input struct {
	QueryType  string     `json:"queryType"`
	ID         string     `json:"id,omitempty"`
	Status     string     `json:"status,omitempty"`
	Filters    Filters    `json:"filters"`
	Pagination Pagination `json:"pagination"`
}

// Filters is shared by both searches; fields the record kind lacks are ignored.
type Filters struct {
	Category     string  `json:"category,omitempty"`
	Subcategory  string  `json:"subcategory,omitempty"`
	BusinessType string  `json:"businessType,omitempty"`
	Location     string  `json:"location,omitempty"`
	State        string  `json:"state,omitempty"`
	Status       string  `json:"status,omitempty"`
	Urgency      string  `json:"urgency,omitempty"`
	CompanyType  string  `json:"companyType,omitempty"`
	MinRating    float64 `json:"minRating,omitempty"`
	Keyword      string  `json:"keyword,omitempty"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	RFQs      []models.RFQ             `json:"rfqs,omitempty"`
	Suppliers []models.SupplierProfile `json:"suppliers,omitempty"`
	TotalHits int                      `json:"totalHits"`
	Took      int64                    `json:"took"` // milliseconds
}

const inputSchema = `{
	"type": "object",
	"required": ["queryType"],
	"properties": {
		"queryType": {"type": "string", "enum": ["search-rfqs", "search-suppliers", "find-rfq", "find-supplier", "update-supplier-status"]},
		"id": {"type": "string"},
		"status": {"type": "string"},
		"filters": {"type": "object"},
		"pagination": {
			"type": "object",
			"properties": {
				"from": {"type": "integer", "minimum": 0},
				"size": {"type": "integer", "minimum": 0}
			}
		}
	}
}`
