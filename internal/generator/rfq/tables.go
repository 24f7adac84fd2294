package rfq

import "marketplace-datagen/internal/models"

// Deadlines maps each urgency level to its deadline bucket.
var Deadlines = map[models.Urgency][]string{
	models.UrgencyHigh:   {"7 days", "10 days", "15 days", "20 days"},
	models.UrgencyMedium: {"30 days", "45 days", "60 days", "90 days"},
	models.UrgencyLow:    {"90 days", "120 days", "180 days", "6 months"},
}

// budgetBrackets is keyed by scenario then urgency. Within a scenario the
// largest upper bound never grows from High to Medium to Low.
var budgetBrackets = map[models.Scenario]map[models.Urgency][]string{
	models.ScenarioEnterprise: {
		models.UrgencyHigh:   {"₹2-5 Crore", "₹5-10 Crore", "₹1-3 Crore", "₹3-7 Crore"},
		models.UrgencyMedium: {"₹50 Lakh-1 Crore", "₹1-2 Crore", "₹75 Lakh-1.5 Crore", "₹1-3 Crore"},
		models.UrgencyLow:    {"₹25-50 Lakh", "₹30-75 Lakh", "₹50 Lakh-1 Crore"},
	},
	models.ScenarioManufacturing: {
		models.UrgencyHigh:   {"₹1-2 Crore", "₹2-4 Crore", "₹75 Lakh-1.5 Crore"},
		models.UrgencyMedium: {"₹40-80 Lakh", "₹50 Lakh-1 Crore", "₹60-90 Lakh"},
		models.UrgencyLow:    {"₹20-40 Lakh", "₹25-50 Lakh", "₹15-30 Lakh"},
	},
	models.ScenarioRetail: {
		models.UrgencyHigh:   {"₹50 Lakh-1 Crore", "₹40-80 Lakh", "₹60-90 Lakh"},
		models.UrgencyMedium: {"₹20-40 Lakh", "₹25-50 Lakh", "₹30-45 Lakh"},
		models.UrgencyLow:    {"₹10-20 Lakh", "₹5-15 Lakh", "₹15-25 Lakh"},
	},
	models.ScenarioStartup: {
		models.UrgencyHigh:   {"₹20-50 Lakh", "₹25-40 Lakh", "₹30-60 Lakh"},
		models.UrgencyMedium: {"₹10-25 Lakh", "₹15-30 Lakh", "₹5-20 Lakh"},
		models.UrgencyLow:    {"₹2-5 Lakh", "₹5-10 Lakh", "₹3-8 Lakh"},
	},
}

// BudgetBracket returns a copy of the bracket for scenario and urgency, or
// nil when either is unknown.
func BudgetBracket(scenario models.Scenario, urgency models.Urgency) []string {
	b, ok := budgetBrackets[scenario][urgency]
	if !ok {
		return nil
	}
	return append([]string(nil), b...)
}

// QuantityClass groups categories that share quantity phrasing.
type QuantityClass string

const (
	QuantityEquipment    QuantityClass = "equipment"
	QuantityMaterials    QuantityClass = "materials"
	QuantityElectronics  QuantityClass = "electronics"
	QuantityChemicals    QuantityClass = "chemicals"
	QuantityTextiles     QuantityClass = "textiles"
	QuantityFood         QuantityClass = "food"
	QuantityConstruction QuantityClass = "construction"
	QuantityServices     QuantityClass = "services"
)

// DefaultQuantityClass applies to every category missing from
// quantityClassByCategory.
const DefaultQuantityClass = QuantityMaterials

var quantityClassByCategory = map[string]QuantityClass{
	"Industrial Machinery":     QuantityEquipment,
	"Healthcare & Medical":     QuantityEquipment,
	"Material Handling":        QuantityEquipment,
	"HVAC & Refrigeration":     QuantityEquipment,
	"Lab Instruments":          QuantityEquipment,
	"Mining Equipment":         QuantityEquipment,
	"Railway Equipment":        QuantityEquipment,
	"Aerospace & Defence":      QuantityEquipment,
	"Marine & Shipping":        QuantityEquipment,
	"Home Appliances":          QuantityEquipment,
	"Sports & Fitness":         QuantityEquipment,
	"Security Systems":         QuantityEquipment,
	"Furniture":                QuantityEquipment,
	"Water Treatment":          QuantityEquipment,
	"Dairy & Poultry":          QuantityEquipment,
	"Electronics & Electrical": QuantityElectronics,
	"Telecom Equipment":        QuantityElectronics,
	"Solar & Renewable Energy": QuantityElectronics,
	"Power & Energy":           QuantityElectronics,
	"Chemicals":                QuantityChemicals,
	"Pharmaceuticals":          QuantityChemicals,
	"Paints & Coatings":        QuantityChemicals,
	"Plastics & Polymers":      QuantityChemicals,
	"Textiles":                 QuantityTextiles,
	"Apparel & Garments":       QuantityTextiles,
	"Leather Products":         QuantityTextiles,
	"Footwear":                 QuantityTextiles,
	"Food & Beverages":         QuantityFood,
	"Building & Construction":  QuantityConstruction,
	"Metals & Alloys":          QuantityConstruction,
	"Minerals & Ores":          QuantityConstruction,
	"Glass & Glassware":        QuantityConstruction,
	"Engineering Services":     QuantityServices,
	"Business Services":        QuantityServices,
	"Education & Training":     QuantityServices,
	"Logistics & Transport":    QuantityServices,
	"IT & Software":            QuantityServices,
}

var quantityTemplates = map[QuantityClass][]string{
	QuantityEquipment:    {"1 unit", "2 units", "5 units", "10 units", "25 units"},
	QuantityMaterials:    {"500 kg", "1 ton", "5 tons", "10 tons", "1000 pieces", "5000 pieces"},
	QuantityElectronics:  {"100 pieces", "500 pieces", "1000 pieces", "5000 pieces", "10000 pieces"},
	QuantityChemicals:    {"200 kg", "500 litres", "1000 litres", "5 tons", "10 tons"},
	QuantityTextiles:     {"1000 meters", "5000 meters", "10000 meters", "500 pieces", "2000 pieces"},
	QuantityFood:         {"500 kg", "1 ton", "5 tons", "1000 packets", "500 cartons"},
	QuantityConstruction: {"50 tons", "100 tons", "500 bags", "1000 bags", "10000 sq ft"},
	QuantityServices:     {"1 project", "Annual contract", "6 month engagement", "3 month engagement"},
}

// QuantityClassFor resolves category to its class, falling back to
// DefaultQuantityClass.
func QuantityClassFor(category string) QuantityClass {
	if c, ok := quantityClassByCategory[category]; ok {
		return c
	}
	return DefaultQuantityClass
}

// GenericSpecifications is used for every (category, subcategory) pair
// without an entry in the specification table.
var GenericSpecifications = []string{"High quality", "Durable", "Cost-effective", "Quick delivery"}

type specKey struct {
	category    string
	subcategory string
}

var specifications = map[specKey][]string{
	{"Agriculture", "Agriculture Equipment"}:       {"Tractor compatible", "Heavy-duty steel body", "ISI certified", "1 year warranty"},
	{"Agriculture", "Irrigation Systems"}:          {"Drip and sprinkler kits", "UV stabilised pipes", "Pressure compensating emitters"},
	{"Agriculture", "Seeds & Saplings"}:            {"Certified hybrid seeds", "Germination rate above 85%", "Treated for pests"},
	{"Textiles", "Cotton Fabric"}:                  {"100% cotton", "GSM 120-180", "Pre-shrunk", "Azo-free dyes"},
	{"Textiles", "Denim"}:                          {"12-14 oz weight", "Stretch denim", "Indigo dyed", "Shrinkage below 3%"},
	{"Building & Construction", "Cement"}:          {"OPC 53 grade", "BIS certified", "Fresh stock within 30 days"},
	{"Building & Construction", "TMT Bars"}:        {"Fe 500D grade", "Earthquake resistant", "BIS certified"},
	{"Electronics & Electrical", "Cables & Wires"}: {"FR-LSH insulation", "ISI marked", "Copper conductor", "1100V rating"},
	{"Electronics & Electrical", "LED Lighting"}:   {"BIS certified", "Minimum 2 year warranty", "Energy efficient", "IP65 rated"},
	{"Industrial Machinery", "CNC Machines"}:       {"3-axis or higher", "Fanuc or Siemens controller", "Positioning accuracy 0.01mm"},
	{"Pharmaceuticals", "APIs"}:                    {"WHO-GMP certified source", "COA with every batch", "USP/BP grade"},
	{"Food & Beverages", "Spices"}:                 {"FSSAI compliant", "Moisture below 10%", "No artificial colour"},
	{"Food & Beverages", "Rice"}:                   {"Basmati 1121", "Aged 12 months", "Broken below 2%"},
	{"IT & Software", "ERP Software"}:              {"Cloud deployment", "GST compliant invoicing", "Role based access", "Annual support"},
	{"Chemicals", "Industrial Chemicals"}:          {"Purity 99% minimum", "MSDS provided", "Drum packaging"},
	{"Packaging", "Corrugated Boxes"}:              {"5 ply", "Custom printing", "Bursting strength 12 kg/cm²"},
	{"Metals & Alloys", "Stainless Steel"}:         {"SS 304 grade", "Mill test certificate", "Cut to size"},
	{"Solar & Renewable Energy", "Solar Panels"}:   {"Mono PERC modules", "ALMM listed", "25 year performance warranty"},
}

// SpecificationsFor returns the specification list for the pair or a copy of
// GenericSpecifications when the pair has no dedicated entry.
func SpecificationsFor(category, subcategory string) []string {
	if s, ok := specifications[specKey{category, subcategory}]; ok {
		return append([]string(nil), s...)
	}
	return append([]string(nil), GenericSpecifications...)
}

var businessTypes = []string{
	"Manufacturing Company", "Retail Chain", "Construction Company", "Hospital",
	"Hotel Chain", "Educational Institution", "Government Department", "IT Company",
	"Export House", "Distributor", "Startup", "Pharmaceutical Company",
}

var titleTemplates = []string{
	"%s Bulk Order",
	"%s Procurement",
	"Requirement for %s",
	"%s Supply Contract",
}

var buyerDesignations = []string{
	"Purchase Manager", "Procurement Head", "Supply Chain Manager",
	"Operations Director", "Project Manager",
}

var (
	rfqStatuses      = []models.RFQStatus{models.RFQStatusActive, models.RFQStatusInProgress, models.RFQStatusClosed}
	rfqStatusWeights = []int{3, 1, 1}
)
