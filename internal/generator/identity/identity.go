// Package identity synthesizes record IDs, pseudo-regulatory identifiers and
// contact details.
//
// Every regulatory-looking value produced here is SYNTHETIC. GSTIN, PAN, CIN
// and Udyam strings only match the public shape (length and character class
// per position) of the real identifiers. No checksum is computed and nothing
// here may be used to validate a real identifier.
package identity

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"marketplace-datagen/internal/generator/random"
	"marketplace-datagen/internal/models"
)

const (
	PrefixRFQ      = "RFQ"
	PrefixSupplier = "SUP"

	letters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	alphanumeric = letters + digits
)

// Sequencer hands out record IDs of the form PREFIX-<ULID>. The ULID carries
// a millisecond timestamp and an 80-bit suffix drawn from monotonic entropy,
// so IDs minted in the same millisecond still increase. Collisions within a
// run of a few thousand records are negligible but uniqueness is not
// guaranteed, in particular across processes.
//
// A Sequencer is safe for concurrent use.
type Sequencer struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewSequencer seeds the entropy stream from picker. A nil clock means
// time.Now.
func NewSequencer(picker *random.Picker, now func() time.Time) *Sequencer {
	if now == nil {
		now = time.Now
	}
	return &Sequencer{
		entropy: ulid.Monotonic(&pickerReader{p: picker}, 0),
		now:     now,
	}
}

// Next returns a new record ID for prefix.
func (s *Sequencer) Next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(s.now()), s.entropy)
	return prefix + "-" + id.String()
}

// pickerReader adapts a Picker to the io.Reader ulid expects for entropy.
type pickerReader struct {
	p *random.Picker
}

func (r *pickerReader) Read(b []byte) (int, error) {
	for i := 0; i < len(b); i += 8 {
		v := r.p.Next()
		for j := 0; j < 8 && i+j < len(b); j++ {
			b[i+j] = byte(v >> (8 * j))
		}
	}
	return len(b), nil
}

var _ io.Reader = (*pickerReader)(nil)

// Factory builds identifiers and contact details from a Picker. A Factory
// is not safe for concurrent use; use WithPicker to derive one per
// goroutine that shares the same Sequencer.
type Factory struct {
	picker *random.Picker
	seq    *Sequencer
}

// NewFactory builds a Factory with its own Sequencer.
func NewFactory(picker *random.Picker, now func() time.Time) *Factory {
	return &Factory{
		picker: picker,
		seq:    NewSequencer(picker.Fork(), now),
	}
}

// WithPicker returns a Factory drawing from picker that shares f's Sequencer.
func (f *Factory) WithPicker(picker *random.Picker) *Factory {
	return &Factory{picker: picker, seq: f.seq}
}

// NewRecordID returns PREFIX-<ULID>. See Sequencer for the uniqueness caveat.
func (f *Factory) NewRecordID(prefix string) string {
	return f.seq.Next(prefix)
}

func (f *Factory) chars(set string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(set[f.picker.IntN(len(set))])
	}
	return b.String()
}

// PseudoPAN returns a synthetic PAN-shaped string: AAAAA9999A.
func (f *Factory) PseudoPAN() string {
	return f.chars(letters, 5) + f.chars(digits, 4) + f.chars(letters, 1)
}

// PseudoTaxID returns a synthetic GSTIN-shaped string (15 chars): the
// two-digit state code, a PAN-shaped block, an entity digit, 'Z' and a
// trailing alphanumeric in place of the real check character.
func (f *Factory) PseudoTaxID(stateCode string) string {
	return stateCode + f.PseudoPAN() + f.chars("123456789", 1) + "Z" + f.chars(alphanumeric, 1)
}

// PseudoCIN returns a synthetic CIN-shaped string (21 chars):
// L|U, 5-digit industry code, state abbreviation, year, PLC|PTC, 6 digits.
func (f *Factory) PseudoCIN(stateAbbrev string, year int, listed bool) string {
	listing, class := "U", "PTC"
	if listed {
		listing, class = "L", "PLC"
	}
	return fmt.Sprintf("%s%s%s%04d%s%s", listing, f.chars(digits, 5), stateAbbrev, year, class, f.chars(digits, 6))
}

// PseudoMSME returns a synthetic Udyam-shaped string: UDYAM-SS-00-0000000.
func (f *Factory) PseudoMSME(stateAbbrev string) string {
	return fmt.Sprintf("UDYAM-%s-%s-%s", stateAbbrev, f.chars(digits, 2), f.chars(digits, 7))
}

// PhoneNumber returns an Indian mobile number shaped as +91 9XXXX XXXXX.
func (f *Factory) PhoneNumber() string {
	n := f.chars("6789", 1) + f.chars(digits, 9)
	return "+91 " + n[:5] + " " + n[5:]
}

// PersonName returns "First Last".
func (f *Factory) PersonName() string {
	return random.Pick(f.picker, firstNames) + " " + random.Pick(f.picker, lastNames)
}

// CompanyName builds a trading name around keyword, e.g. "Sharma Textiles Pvt Ltd".
// An empty keyword falls back to a generic line of business.
func (f *Factory) CompanyName(keyword string) string {
	if keyword == "" {
		keyword = random.Pick(f.picker, businessWords)
	}
	name := random.Pick(f.picker, companyPrefixes) + " " + keyword
	if suffix := random.Pick(f.picker, companySuffixes); suffix != "" {
		name += " " + suffix
	}
	return name
}

// ContactPerson draws a named contact at company with a designation from
// designations (DefaultDesignations when empty).
func (f *Factory) ContactPerson(company string, designations []string) models.ContactPerson {
	if len(designations) == 0 {
		designations = DefaultDesignations
	}
	name := f.PersonName()
	return models.ContactPerson{
		Name:        name,
		Designation: random.Pick(f.picker, designations),
		Company:     company,
		Phone:       f.PhoneNumber(),
		Email:       Email(name, company),
	}
}

// City picks a city from the fixed list.
func (f *Factory) City() City {
	return random.Pick(f.picker, Cities)
}

var DefaultDesignations = []string{
	"Purchase Manager", "Procurement Head", "Operations Manager",
	"Director", "Managing Director", "Sales Manager", "Business Development Manager",
}

var firstNames = []string{
	"Rajesh", "Priya", "Amit", "Sunita", "Vikram", "Anjali", "Suresh", "Kavita",
	"Arjun", "Neha", "Manoj", "Pooja", "Ramesh", "Deepa", "Sanjay", "Meera",
	"Karthik", "Lakshmi", "Harpreet", "Farhan",
}

var lastNames = []string{
	"Sharma", "Patel", "Kumar", "Singh", "Reddy", "Iyer", "Gupta", "Mehta",
	"Nair", "Joshi", "Agarwal", "Desai", "Chopra", "Banerjee", "Rao", "Khan",
}

var companyPrefixes = []string{
	"Shree", "Bharat", "Sharma", "Patel", "Ganesh", "Supreme", "Apex", "Global",
	"National", "Sai", "Om", "Vardhman", "Kaveri", "Indus",
}

var companySuffixes = []string{"Pvt Ltd", "Ltd", "LLP", "Enterprises", "Industries", ""}

var businessWords = []string{"Industries", "Enterprises", "Traders", "Corporation", "Solutions"}
