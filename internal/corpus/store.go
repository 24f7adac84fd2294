// Package corpus holds the in-memory records of one generation run.
package corpus

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"marketplace-datagen/internal/models"
)

var (
	ErrDuplicateID   = errors.New("duplicate record id")
	ErrNotFound      = errors.New("record not found")
	ErrInvalidStatus = errors.New("invalid supplier status")
)

// Store owns the RFQ and supplier collections. Records are deep-copied on
// the way in and on the way out, slice fields included, so they can only
// change through Store methods. Independent
// stores may coexist, e.g. one per test.
type Store struct {
	mu          sync.RWMutex
	rfqs        []models.RFQ
	rfqIndex    map[string]int
	suppliers   []models.SupplierProfile
	supplierIdx map[string]int
}

func NewStore() *Store {
	return &Store{
		rfqIndex:    make(map[string]int),
		supplierIdx: make(map[string]int),
	}
}

// ReplaceRFQs swaps the whole RFQ collection. Nothing changes on error.
func (s *Store) ReplaceRFQs(records []models.RFQ) error {
	index, err := indexRFQs(records, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rfqs = appendRFQs(nil, records)
	s.rfqIndex = index
	return nil
}

// AppendRFQs adds records after the existing ones. An id already present,
// or repeated within records, rejects the whole batch.
func (s *Store) AppendRFQs(records []models.RFQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := indexRFQs(records, s.rfqIndex)
	if err != nil {
		return err
	}
	s.rfqs = appendRFQs(s.rfqs, records)
	s.rfqIndex = index
	return nil
}

// ReplaceSuppliers swaps the whole supplier collection.
func (s *Store) ReplaceSuppliers(records []models.SupplierProfile) error {
	index, err := indexSuppliers(records, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers = appendSuppliers(nil, records)
	s.supplierIdx = index
	return nil
}

// AppendSuppliers adds suppliers after the existing ones.
func (s *Store) AppendSuppliers(records []models.SupplierProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := indexSuppliers(records, s.supplierIdx)
	if err != nil {
		return err
	}
	s.suppliers = appendSuppliers(s.suppliers, records)
	s.supplierIdx = index
	return nil
}

// RFQs returns the RFQs in insertion order.
func (s *Store) RFQs() []models.RFQ {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return appendRFQs(make([]models.RFQ, 0, len(s.rfqs)), s.rfqs)
}

// Suppliers returns the suppliers in insertion order.
func (s *Store) Suppliers() []models.SupplierProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return appendSuppliers(make([]models.SupplierProfile, 0, len(s.suppliers)), s.suppliers)
}

func (s *Store) RFQ(id string) (models.RFQ, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.rfqIndex[id]
	if !ok {
		return models.RFQ{}, false
	}
	return cloneRFQ(s.rfqs[i]), true
}

func (s *Store) Supplier(companyID string) (models.SupplierProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.supplierIdx[companyID]
	if !ok {
		return models.SupplierProfile{}, false
	}
	return cloneSupplier(s.suppliers[i]), true
}

// SetSupplierStatus is the only in-place mutation a record supports.
func (s *Store) SetSupplierStatus(companyID string, status models.SupplierStatus) error {
	if !models.ValidSupplierStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.supplierIdx[companyID]
	if !ok {
		return fmt.Errorf("%w: supplier %q", ErrNotFound, companyID)
	}
	s.suppliers[i].Status = status
	return nil
}

// Len returns the RFQ and supplier counts.
func (s *Store) Len() (rfqs, suppliers int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rfqs), len(s.suppliers)
}

// Reset empties both collections.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rfqs = nil
	s.suppliers = nil
	s.rfqIndex = make(map[string]int)
	s.supplierIdx = make(map[string]int)
}

// indexRFQs builds an id index for base followed by records without
// modifying base.
func indexRFQs(records []models.RFQ, base map[string]int) (map[string]int, error) {
	index := make(map[string]int, len(base)+len(records))
	for k, v := range base {
		index[k] = v
	}
	offset := len(base)
	for i, r := range records {
		if _, dup := index[r.ID]; dup {
			return nil, fmt.Errorf("%w: rfq %q", ErrDuplicateID, r.ID)
		}
		index[r.ID] = offset + i
	}
	return index, nil
}

func indexSuppliers(records []models.SupplierProfile, base map[string]int) (map[string]int, error) {
	index := make(map[string]int, len(base)+len(records))
	for k, v := range base {
		index[k] = v
	}
	offset := len(base)
	for i, r := range records {
		if _, dup := index[r.CompanyID]; dup {
			return nil, fmt.Errorf("%w: supplier %q", ErrDuplicateID, r.CompanyID)
		}
		index[r.CompanyID] = offset + i
	}
	return index, nil
}

func appendRFQs(dst, records []models.RFQ) []models.RFQ {
	for _, r := range records {
		dst = append(dst, cloneRFQ(r))
	}
	return dst
}

func appendSuppliers(dst, records []models.SupplierProfile) []models.SupplierProfile {
	for _, r := range records {
		dst = append(dst, cloneSupplier(r))
	}
	return dst
}

func cloneRFQ(r models.RFQ) models.RFQ {
	r.Specifications = slices.Clone(r.Specifications)
	r.Tags = slices.Clone(r.Tags)
	return r
}

// cloneSupplier copies every slice field; Testimonial holds only values.
func cloneSupplier(p models.SupplierProfile) models.SupplierProfile {
	p.Categories = slices.Clone(p.Categories)
	p.Subcategories = slices.Clone(p.Subcategories)
	p.Specialization = slices.Clone(p.Specialization)
	p.ProductRange = slices.Clone(p.ProductRange)
	p.ServicesOffered = slices.Clone(p.ServicesOffered)
	p.TargetMarkets = slices.Clone(p.TargetMarkets)
	p.ExportCountries = slices.Clone(p.ExportCountries)
	p.Certifications = slices.Clone(p.Certifications)
	p.UniqueSellingPoints = slices.Clone(p.UniqueSellingPoints)
	p.Awards = slices.Clone(p.Awards)
	p.KeyClients = slices.Clone(p.KeyClients)
	p.Testimonials = slices.Clone(p.Testimonials)
	p.Operations.Languages = slices.Clone(p.Operations.Languages)
	return p
}
