// Package rfq builds synthetic Request for Quotation records.
package rfq

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"marketplace-datagen/internal/catalog"
	"marketplace-datagen/internal/generator/identity"
	"marketplace-datagen/internal/generator/random"
	"marketplace-datagen/internal/models"
)

var (
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrUnknownUrgency  = errors.New("unknown urgency")
)

// DefaultRecencyWindowDays bounds how far back CreatedDate may fall.
const DefaultRecencyWindowDays = 30

// Generator builds RFQ records for valid taxonomy pairs. It is not safe for
// concurrent use; see WithPicker.
type Generator struct {
	catalog     *catalog.Catalog
	picker      *random.Picker
	ids         *identity.Factory
	now         func() time.Time
	recencyDays int
}

type Option func(*Generator)

// WithClock sets the reference time for created dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRecencyWindow sets the created-date window in days.
func WithRecencyWindow(days int) Option {
	return func(g *Generator) {
		if days > 0 {
			g.recencyDays = days
		}
	}
}

func New(cat *catalog.Catalog, picker *random.Picker, ids *identity.Factory, opts ...Option) *Generator {
	g := &Generator{
		catalog:     cat,
		picker:      picker,
		ids:         ids,
		now:         time.Now,
		recencyDays: DefaultRecencyWindowDays,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithPicker returns a copy drawing from picker. IDs still come from the
// shared sequencer.
func (g *Generator) WithPicker(picker *random.Picker) *Generator {
	c := *g
	c.picker = picker
	c.ids = g.ids.WithPicker(picker)
	return &c
}

// GenerateSingle builds one RFQ with a uniformly drawn urgency.
func (g *Generator) GenerateSingle(category, subcategory string, scenario models.Scenario) (models.RFQ, error) {
	return g.generate(category, subcategory, scenario, "")
}

// GenerateWithUrgency builds one RFQ with the given urgency.
func (g *Generator) GenerateWithUrgency(category, subcategory string, scenario models.Scenario, urgency models.Urgency) (models.RFQ, error) {
	if _, ok := Deadlines[urgency]; !ok {
		return models.RFQ{}, fmt.Errorf("%w: %q", ErrUnknownUrgency, urgency)
	}
	return g.generate(category, subcategory, scenario, urgency)
}

func (g *Generator) generate(category, subcategory string, scenario models.Scenario, urgency models.Urgency) (models.RFQ, error) {
	if err := g.catalog.Validate(category, subcategory); err != nil {
		return models.RFQ{}, err
	}
	if _, ok := budgetBrackets[scenario]; !ok {
		return models.RFQ{}, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
	}

	businessType := random.Pick(g.picker, businessTypes)
	city := g.ids.City()
	if urgency == "" {
		urgency = random.Pick(g.picker, models.Urgencies)
	}
	deadline := random.Pick(g.picker, Deadlines[urgency])
	budget := random.Pick(g.picker, budgetBrackets[scenario][urgency])
	quantity := random.Pick(g.picker, quantityTemplates[QuantityClassFor(category)])

	status, err := random.WeightedPick(g.picker, rfqStatuses, rfqStatusWeights)
	if err != nil {
		return models.RFQ{}, fmt.Errorf("pick status: %w", err)
	}

	buyer := g.ids.CompanyName("")
	created := g.now().AddDate(0, 0, -g.picker.IntN(g.recencyDays))

	return models.RFQ{
		ID:             g.ids.NewRecordID(identity.PrefixRFQ),
		Title:          fmt.Sprintf(random.Pick(g.picker, titleTemplates), subcategory),
		Category:       category,
		Subcategory:    subcategory,
		Description:    describe(subcategory, businessType, city.Location(), quantity, deadline),
		Quantity:       quantity,
		Budget:         budget,
		Location:       city.Location(),
		State:          city.State,
		Urgency:        urgency,
		Deadline:       deadline,
		Specifications: SpecificationsFor(category, subcategory),
		BusinessType:   businessType,
		Scenario:       scenario,
		ContactPerson:  g.ids.ContactPerson(buyer, buyerDesignations),
		CreatedDate:    created.Format(models.DateLayout),
		Status:         status,
		Tags:           Tags(category, subcategory, businessType, string(scenario)),
	}, nil
}

func describe(subcategory, businessType, location, quantity, deadline string) string {
	return fmt.Sprintf(
		"We are a %s based in %s looking for reliable suppliers of %s. Required quantity: %s. Delivery expected within %s.",
		strings.ToLower(businessType), location, subcategory, quantity, deadline,
	)
}

// Tags lowercases the values and drops empties and duplicates, keeping
// first-seen order.
func Tags(values ...string) []string {
	// a Caser is stateful and must not be shared across goroutines
	lower := cases.Lower(language.Und)
	seen := make(map[string]struct{}, len(values))
	tags := make([]string, 0, len(values))
	for _, v := range values {
		t := strings.TrimSpace(lower.String(v))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}
