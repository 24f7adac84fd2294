// Package query filters and looks up records in a corpus.Store.
package query

import (
	"strings"

	"marketplace-datagen/internal/common/logger"
	"marketplace-datagen/internal/corpus"
	"marketplace-datagen/internal/models"
)

// RFQFilter is a conjunction of optional criteria. Zero-valued fields match
// everything. Keyword is a case-insensitive substring matched against the
// title, description, category, subcategory and tags.
type RFQFilter struct {
	Category     string
	Subcategory  string
	BusinessType string
	Location     string
	State        string
	Status       models.RFQStatus
	Urgency      models.Urgency
	Keyword      string
}

// SupplierFilter is a conjunction of optional criteria. Keyword is matched
// against the company name, description, specialization and product range.
type SupplierFilter struct {
	Category    string
	Subcategory string
	CompanyType models.CompanyType
	State       string
	Status      models.SupplierStatus
	MinRating   float64
	Keyword     string
}

type Facade struct {
	store *corpus.Store
	log   logger.Logger
}

func NewFacade(store *corpus.Store, log logger.Logger) *Facade {
	return &Facade{store: store, log: logger.ForComponent(log, "query")}
}

// SearchRFQs returns matching RFQs in insertion order.
func (f *Facade) SearchRFQs(filter RFQFilter) []models.RFQ {
	keyword := strings.ToLower(strings.TrimSpace(filter.Keyword))
	out := []models.RFQ{}
	for _, r := range f.store.RFQs() {
		if !matchExact(filter.Category, r.Category) ||
			!matchExact(filter.Subcategory, r.Subcategory) ||
			!matchExact(filter.BusinessType, r.BusinessType) ||
			!matchExact(filter.Location, r.Location) ||
			!matchExact(filter.State, r.State) ||
			!matchExact(string(filter.Status), string(r.Status)) ||
			!matchExact(string(filter.Urgency), string(r.Urgency)) {
			continue
		}
		if keyword != "" && !containsAny(keyword, append([]string{r.Title, r.Description, r.Category, r.Subcategory}, r.Tags...)) {
			continue
		}
		out = append(out, r)
	}
	f.log.Debug("RFQ search", map[string]interface{}{"matches": len(out), "keyword": filter.Keyword})
	return out
}

// SearchSuppliers returns matching suppliers in insertion order.
func (f *Facade) SearchSuppliers(filter SupplierFilter) []models.SupplierProfile {
	keyword := strings.ToLower(strings.TrimSpace(filter.Keyword))
	out := []models.SupplierProfile{}
	for _, s := range f.store.Suppliers() {
		if filter.Category != "" && !contains(s.Categories, filter.Category) {
			continue
		}
		if filter.Subcategory != "" && !contains(s.Subcategories, filter.Subcategory) {
			continue
		}
		if !matchExact(string(filter.CompanyType), string(s.CompanyType)) ||
			!matchExact(filter.State, s.Address.State) ||
			!matchExact(string(filter.Status), string(s.Status)) {
			continue
		}
		if s.Performance.Rating < filter.MinRating {
			continue
		}
		if keyword != "" {
			fields := []string{s.CompanyName, s.CompanyDescription}
			fields = append(fields, s.Specialization...)
			fields = append(fields, s.ProductRange...)
			if !containsAny(keyword, fields) {
				continue
			}
		}
		out = append(out, s)
	}
	f.log.Debug("Supplier search", map[string]interface{}{"matches": len(out), "keyword": filter.Keyword})
	return out
}

func (f *Facade) FindRFQ(id string) (models.RFQ, bool) {
	return f.store.RFQ(id)
}

func (f *Facade) FindSupplier(companyID string) (models.SupplierProfile, bool) {
	return f.store.Supplier(companyID)
}

// UpdateSupplierStatus changes a supplier's status. Unknown ids fail with
// corpus.ErrNotFound and unknown statuses with corpus.ErrInvalidStatus.
func (f *Facade) UpdateSupplierStatus(companyID string, status models.SupplierStatus) error {
	if err := f.store.SetSupplierStatus(companyID, status); err != nil {
		f.log.Warn("Supplier status update rejected", map[string]interface{}{
			"companyId": companyID,
			"status":    string(status),
			"error":     err,
		})
		return err
	}
	f.log.Info("Supplier status updated", map[string]interface{}{
		"companyId": companyID,
		"status":    string(status),
	})
	return nil
}

func matchExact(want, got string) bool {
	return want == "" || want == got
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsAny(lowerKeyword string, fields []string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerKeyword) {
			return true
		}
	}
	return false
}
