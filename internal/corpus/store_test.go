package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-datagen/internal/models"
)

func rfqs(ids ...string) []models.RFQ {
	out := make([]models.RFQ, len(ids))
	for i, id := range ids {
		out[i] = models.RFQ{ID: id, Title: "title " + id}
	}
	return out
}

func suppliers(ids ...string) []models.SupplierProfile {
	out := make([]models.SupplierProfile, len(ids))
	for i, id := range ids {
		out[i] = models.SupplierProfile{CompanyID: id, Status: models.SupplierStatusActive}
	}
	return out
}

func TestStore_ReplaceRFQs(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.ReplaceRFQs(rfqs("a", "b", "c")))
	require.NoError(t, s.ReplaceRFQs(rfqs("d", "e")))

	n, _ := s.Len()
	assert.Equal(t, 2, n)
	_, ok := s.RFQ("a")
	assert.False(t, ok)
	r, ok := s.RFQ("e")
	require.True(t, ok)
	assert.Equal(t, "title e", r.Title)
}

func TestStore_AppendRFQs(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AppendRFQs(rfqs("a", "b")))
	require.NoError(t, s.AppendRFQs(rfqs("c")))

	got := s.RFQs()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})

	r, ok := s.RFQ("c")
	require.True(t, ok)
	assert.Equal(t, "c", r.ID)
}

func TestStore_DuplicateIDs(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *Store) error
	}{
		{"replace with repeated id", func(s *Store) error { return s.ReplaceRFQs(rfqs("a", "a")) }},
		{"append existing id", func(s *Store) error { return s.AppendRFQs(rfqs("x")) }},
		{"append repeated supplier", func(s *Store) error { return s.AppendSuppliers(suppliers("s1", "s1")) }},
		{"append existing supplier", func(s *Store) error { return s.AppendSuppliers(suppliers("s0")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			require.NoError(t, s.ReplaceRFQs(rfqs("x", "y")))
			require.NoError(t, s.ReplaceSuppliers(suppliers("s0")))

			err := tt.run(s)
			assert.ErrorIs(t, err, ErrDuplicateID)

			nr, ns := s.Len()
			assert.Equal(t, 2, nr, "rejected batch must leave rfqs untouched")
			assert.Equal(t, 1, ns, "rejected batch must leave suppliers untouched")
		})
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore()
	in := rfqs("a")
	in[0].Tags = []string{"urgent", "bulk"}
	in[0].Specifications = []string{"ISI marked"}
	require.NoError(t, s.ReplaceRFQs(in))

	// caller keeps its own slices after handing them over
	in[0].Tags[0] = "input-mutated"

	got := s.RFQs()
	got[0].Title = "mutated"
	got[0].Tags[0] = "list-mutated"
	got[0].Specifications[0] = "list-mutated"

	one, _ := s.RFQ("a")
	one.Tags[1] = "get-mutated"

	r, _ := s.RFQ("a")
	assert.Equal(t, "title a", r.Title)
	assert.Equal(t, []string{"urgent", "bulk"}, r.Tags)
	assert.Equal(t, []string{"ISI marked"}, r.Specifications)
}

func TestStore_SupplierSlicesAreCopied(t *testing.T) {
	s := NewStore()
	in := suppliers("s1")
	in[0].Categories = []string{"Steel"}
	in[0].Operations.Languages = []string{"Hindi"}
	in[0].Testimonials = []models.Testimonial{{ClientName: "Ravi", Rating: 9}}
	require.NoError(t, s.AppendSuppliers(in))

	in[0].Categories[0] = "input-mutated"

	got := s.Suppliers()
	got[0].Operations.Languages[0] = "list-mutated"
	got[0].Testimonials[0].Rating = 1

	one, _ := s.Supplier("s1")
	one.Categories[0] = "get-mutated"

	sup, _ := s.Supplier("s1")
	assert.Equal(t, []string{"Steel"}, sup.Categories)
	assert.Equal(t, []string{"Hindi"}, sup.Operations.Languages)
	assert.Equal(t, 9.0, sup.Testimonials[0].Rating)
}

func TestStore_SetSupplierStatus(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.ReplaceSuppliers(suppliers("s1", "s2")))

	require.NoError(t, s.SetSupplierStatus("s2", models.SupplierStatusSuspended))
	sup, _ := s.Supplier("s2")
	assert.Equal(t, models.SupplierStatusSuspended, sup.Status)

	assert.ErrorIs(t, s.SetSupplierStatus("missing", models.SupplierStatusActive), ErrNotFound)
	assert.ErrorIs(t, s.SetSupplierStatus("s1", "Deleted"), ErrInvalidStatus)
}

func TestStore_Reset(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.ReplaceRFQs(rfqs("a")))
	require.NoError(t, s.ReplaceSuppliers(suppliers("s")))
	s.Reset()

	nr, ns := s.Len()
	assert.Zero(t, nr)
	assert.Zero(t, ns)
	require.NoError(t, s.AppendRFQs(rfqs("a")), "ids are free again after reset")
}
