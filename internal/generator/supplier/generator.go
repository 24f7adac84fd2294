// Package supplier builds synthetic supplier profiles.
package supplier

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"marketplace-datagen/internal/catalog"
	"marketplace-datagen/internal/generator/identity"
	"marketplace-datagen/internal/generator/random"
	"marketplace-datagen/internal/models"
)

const (
	MinPerSubcategory = 5
	MaxPerSubcategory = 10
)

// Generator builds supplier profiles for valid taxonomy pairs. Performance
// metrics are drawn independently of each other and of the company type.
type Generator struct {
	catalog *catalog.Catalog
	picker  *random.Picker
	ids     *identity.Factory
	now     func() time.Time
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func New(cat *catalog.Catalog, picker *random.Picker, ids *identity.Factory, opts ...Option) *Generator {
	g := &Generator{catalog: cat, picker: picker, ids: ids, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithPicker returns a copy drawing from picker and sharing the ID sequencer.
func (g *Generator) WithPicker(picker *random.Picker) *Generator {
	c := *g
	c.picker = picker
	c.ids = g.ids.WithPicker(picker)
	return &c
}

// GenerateForCategory produces MinPerSubcategory..MaxPerSubcategory
// suppliers for every subcategory of category, in taxonomy order.
func (g *Generator) GenerateForCategory(category string) ([]models.SupplierProfile, error) {
	subs, err := g.catalog.SubcategoriesOf(category)
	if err != nil {
		return nil, err
	}
	var out []models.SupplierProfile
	for _, sub := range subs {
		n := g.picker.IntRange(MinPerSubcategory, MaxPerSubcategory)
		for i := 0; i < n; i++ {
			p, err := g.GenerateSingle(category, sub)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (g *Generator) GenerateSingle(category, subcategory string) (models.SupplierProfile, error) {
	if err := g.catalog.Validate(category, subcategory); err != nil {
		return models.SupplierProfile{}, err
	}

	p := g.picker
	now := g.now()
	companyType := random.Pick(p, models.CompanyTypes)
	name := g.ids.CompanyName(categoryKeyword(category))
	city := g.ids.City()
	state, _ := identity.StateByName(city.State)
	established := now.Year() - p.IntRange(3, 45)
	prof := profileFor(category)

	status, err := random.WeightedPick(p, supplierStatuses, supplierStatusWeights)
	if err != nil {
		return models.SupplierProfile{}, fmt.Errorf("pick status: %w", err)
	}

	reg := models.Registration{
		TaxID: g.ids.PseudoTaxID(state.GSTCode),
		PAN:   g.ids.PseudoPAN(),
		MSME:  g.ids.PseudoMSME(state.Abbrev),
	}
	if p.Chance(0.6) {
		reg.CIN = g.ids.PseudoCIN(state.Abbrev, established, p.Chance(0.2))
	}

	specialization := random.Sample(p, prof.Specialization, p.IntRange(2, 3))

	return models.SupplierProfile{
		CompanyID:       g.ids.NewRecordID(identity.PrefixSupplier),
		CompanyName:     name,
		EstablishedYear: established,
		CompanyType:     companyType,
		Status:          status,
		Registration:    reg,
		BusinessMetrics: models.BusinessMetrics{
			AnnualTurnover:     random.Pick(p, turnoverBrackets[companyType]),
			EmployeeCount:      random.Pick(p, employeeCounts),
			FactorySize:        random.Pick(p, factorySizes),
			ProductionCapacity: random.Pick(p, productionCapacity),
		},
		Address: models.Address{
			Street:  fmt.Sprintf("Plot No. %d, %s", p.IntRange(1, 450), random.Pick(p, industrialAreas)),
			City:    city.Name,
			State:   city.State,
			Pincode: strconv.Itoa(p.IntRange(110001, 799999)),
			Country: "India",
		},
		ContactPerson:   g.ids.ContactPerson(name, supplierDesignations),
		Website:         identity.Website(name),
		Categories:      []string{category},
		Subcategories:   []string{subcategory},
		Specialization:  specialization,
		ProductRange:    productRange(subcategory),
		ServicesOffered: random.Sample(p, prof.Services, p.IntRange(2, 3)),
		TargetMarkets:   random.Sample(p, prof.TargetMarkets, p.IntRange(2, 3)),
		ExportCountries: g.exportCountries(companyType),
		Certifications:  random.Sample(p, prof.Certifications, p.IntRange(2, 3)),
		QualityControl:  fmt.Sprintf(random.Pick(p, qualityControlTemplates), subcategory),

		PaymentTerms:      random.Pick(p, paymentTerms),
		CreditFacility:    random.Pick(p, creditFacilities),
		MinimumOrderValue: random.Pick(p, minimumOrderValues),
		DeliveryTime:      random.Pick(p, deliveryTimes),

		Performance: models.Performance{
			Rating:               round1(p.FloatRange(7.5, 9.5)),
			TotalOrders:          p.IntRange(50, 5000),
			ResponseTime:         random.Pick(p, responseTimes),
			DeliveryRating:       round1(p.FloatRange(4.2, 4.9)),
			QualityRating:        round1(p.FloatRange(4.0, 5.0)),
			CommunicationRating:  round1(p.FloatRange(4.1, 4.9)),
			RepeatCustomers:      p.IntRange(60, 85),
			CustomerSatisfaction: p.IntRange(85, 99),
		},

		UniqueSellingPoints: random.Sample(p, sellingPoints, 3),
		Awards:              random.Sample(p, awards, p.IntRange(0, 2)),
		KeyClients:          random.Sample(p, keyClients, p.IntRange(2, 4)),
		Testimonials:        g.testimonials(),
		Operations: models.Operations{
			WorkingDays:  random.Pick(p, workingDays),
			WorkingHours: random.Pick(p, workingHours),
			Languages:    languages(city.State),
			Verified:     p.Chance(0.7),
			JoinedDate:   now.AddDate(0, 0, -p.IntRange(30, 1825)).Format(models.DateLayout),
			LastActive:   now.AddDate(0, 0, -p.IntN(7)).Format(models.DateLayout),
		},
		CompanyDescription: fmt.Sprintf(
			"%s is a %s of %s established in %d and based in %s. The company focuses on %s.",
			name, companyTypeLabels[companyType], subcategory, established, city.Location(),
			strings.ToLower(strings.Join(specialization, " and ")),
		),
	}, nil
}

// exportCountries always lists at least one market for exporters.
func (g *Generator) exportCountries(t models.CompanyType) []string {
	switch {
	case t == models.CompanyTypeExporter:
		return random.Sample(g.picker, exportCountries, g.picker.IntRange(2, 4))
	case g.picker.Chance(0.3):
		return random.Sample(g.picker, exportCountries, g.picker.IntRange(1, 3))
	default:
		return []string{}
	}
}

func (g *Generator) testimonials() []models.Testimonial {
	n := g.picker.IntRange(1, 3)
	out := make([]models.Testimonial, n)
	for i := range out {
		out[i] = models.Testimonial{
			ClientName: g.ids.PersonName(),
			Company:    g.ids.CompanyName(""),
			Comment:    random.Pick(g.picker, testimonialComments),
			Rating:     round1(g.picker.FloatRange(4.0, 5.0)),
		}
	}
	return out
}

func productRange(subcategory string) []string {
	return []string{subcategory, "Premium " + subcategory, "Custom " + subcategory}
}

func languages(state string) []string {
	langs := []string{"English", "Hindi"}
	if l, ok := regionalLanguages[state]; ok {
		langs = append(langs, l)
	}
	return langs
}

// categoryKeyword turns "Building & Construction" into "Building".
func categoryKeyword(category string) string {
	if f := strings.Fields(category); len(f) > 0 {
		return f[0]
	}
	return ""
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
