package supplier

import "marketplace-datagen/internal/models"

// turnoverBrackets is keyed by company type. The largest bracket shrinks in
// the order Manufacturer, Exporter, Distributor, ServiceProvider, Trader.
var turnoverBrackets = map[models.CompanyType][]string{
	models.CompanyTypeManufacturer:    {"₹25-50 Crore", "₹50-100 Crore", "₹100-250 Crore", "₹250-500 Crore"},
	models.CompanyTypeExporter:        {"₹10-25 Crore", "₹25-50 Crore", "₹50-100 Crore"},
	models.CompanyTypeDistributor:     {"₹5-10 Crore", "₹10-25 Crore", "₹25-50 Crore"},
	models.CompanyTypeServiceProvider: {"₹2-5 Crore", "₹5-10 Crore", "₹10-25 Crore"},
	models.CompanyTypeTrader:          {"₹50 Lakh-1 Crore", "₹1-2 Crore", "₹2-5 Crore", "₹5-10 Crore"},
}

// TurnoverBracket returns a copy of the bracket for companyType.
func TurnoverBracket(companyType models.CompanyType) []string {
	return append([]string(nil), turnoverBrackets[companyType]...)
}

var (
	employeeCounts        = []string{"10-50", "50-100", "100-250", "250-500", "500-1000", "1000+"}
	factorySizes          = []string{"5,000 sq ft", "10,000 sq ft", "25,000 sq ft", "50,000 sq ft", "1,00,000 sq ft"}
	productionCapacity    = []string{"500 units/month", "1,000 units/month", "5,000 units/month", "10,000 units/month", "50 tons/month", "200 tons/month"}
	supplierStatuses      = []models.SupplierStatus{models.SupplierStatusActive, models.SupplierStatusPending, models.SupplierStatusSuspended}
	supplierStatusWeights = []int{8, 1, 1}
)

// profile is the category-specific part of a supplier.
type profile struct {
	Specialization []string
	Services       []string
	TargetMarkets  []string
	Certifications []string
}

// GenericProfile covers every category without an entry in profiles.
var GenericProfile = profile{
	Specialization: []string{"Bulk supply", "Custom orders", "Quality assured products", "Timely delivery"},
	Services:       []string{"Custom manufacturing", "Bulk orders", "Doorstep delivery", "After-sales support"},
	TargetMarkets:  []string{"Pan India", "Government sector", "Corporate buyers", "SME buyers"},
	Certifications: []string{"ISO 9001:2015", "MSME registered", "GST registered"},
}

var profiles = map[string]profile{
	"Agriculture": {
		Specialization: []string{"Farm mechanisation", "Hybrid seeds", "Organic inputs", "Micro irrigation"},
		Services:       []string{"Field demonstrations", "Installation", "Agronomy advice", "Dealer network supply"},
		TargetMarkets:  []string{"Farmer producer organisations", "Agri dealers", "State agriculture departments", "Export markets"},
		Certifications: []string{"ISO 9001:2015", "BIS certified", "Organic certification (NPOP)"},
	},
	"Textiles": {
		Specialization: []string{"Woven fabrics", "Knitted fabrics", "Dyeing and processing", "Sustainable textiles"},
		Services:       []string{"Custom weaving", "Dyeing", "Printing", "Sampling"},
		TargetMarkets:  []string{"Garment exporters", "Domestic brands", "Home furnishing brands", "Europe and USA"},
		Certifications: []string{"OEKO-TEX Standard 100", "GOTS", "ISO 9001:2015"},
	},
	"Building & Construction": {
		Specialization: []string{"Structural materials", "Finishing materials", "Project supply"},
		Services:       []string{"Site delivery", "Technical consultation", "Bulk project supply"},
		TargetMarkets:  []string{"Real estate developers", "Infrastructure contractors", "Government projects"},
		Certifications: []string{"BIS certified", "ISO 9001:2015", "Green building certified"},
	},
	"Electronics & Electrical": {
		Specialization: []string{"Power distribution", "Lighting solutions", "Electronic assemblies"},
		Services:       []string{"Installation", "Annual maintenance", "Custom assemblies", "Testing"},
		TargetMarkets:  []string{"EPC contractors", "OEMs", "Commercial buildings", "Utilities"},
		Certifications: []string{"BIS certified", "CE marked", "RoHS compliant", "ISO 9001:2015"},
	},
	"Chemicals": {
		Specialization: []string{"Bulk chemicals", "Custom synthesis", "Specialty formulations"},
		Services:       []string{"Tank lorry supply", "Custom blending", "Technical data support"},
		TargetMarkets:  []string{"Pharma manufacturers", "Textile processors", "Paint industry", "Export markets"},
		Certifications: []string{"ISO 14001", "REACH registered", "ISO 9001:2015"},
	},
	"Pharmaceuticals": {
		Specialization: []string{"Generic formulations", "Contract manufacturing", "API synthesis"},
		Services:       []string{"Third party manufacturing", "Regulatory dossiers", "Private labelling"},
		TargetMarkets:  []string{"Hospitals", "Pharma distributors", "Africa and South East Asia", "Government tenders"},
		Certifications: []string{"WHO-GMP", "Schedule M compliant", "ISO 9001:2015"},
	},
	"Food & Beverages": {
		Specialization: []string{"Agro processing", "Packaged foods", "Private label manufacturing"},
		Services:       []string{"Private labelling", "Custom packaging", "Cold chain delivery"},
		TargetMarkets:  []string{"Retail chains", "HoReCa", "Export markets", "Institutional buyers"},
		Certifications: []string{"FSSAI licensed", "HACCP", "ISO 22000", "APEDA registered"},
	},
	"Industrial Machinery": {
		Specialization: []string{"Special purpose machines", "Automation", "Precision engineering"},
		Services:       []string{"Installation and commissioning", "Operator training", "Annual maintenance", "Spare parts"},
		TargetMarkets:  []string{"Automotive industry", "FMCG plants", "Packaging industry", "Export markets"},
		Certifications: []string{"ISO 9001:2015", "CE marked"},
	},
	"IT & Software": {
		Specialization: []string{"Enterprise software", "Cloud migration", "Managed security"},
		Services:       []string{"Implementation", "24x7 support", "Custom development", "Training"},
		TargetMarkets:  []string{"SMEs", "Manufacturing enterprises", "Government departments", "Global clients"},
		Certifications: []string{"ISO 27001", "CMMI Level 3", "ISO 9001:2015"},
	},
	"Metals & Alloys": {
		Specialization: []string{"Ferrous products", "Non-ferrous products", "Cut to size processing"},
		Services:       []string{"Cutting", "Slitting", "Just in time delivery"},
		TargetMarkets:  []string{"Fabricators", "Automotive suppliers", "Infrastructure projects"},
		Certifications: []string{"ISO 9001:2015", "BIS certified", "PED approved"},
	},
}

// profileFor returns the category entry or GenericProfile.
func profileFor(category string) profile {
	if p, ok := profiles[category]; ok {
		return p
	}
	return GenericProfile
}

var (
	supplierDesignations = []string{"Sales Manager", "Director", "Managing Director", "Business Development Manager", "Export Manager", "Proprietor"}
	industrialAreas      = []string{"MIDC Industrial Area", "GIDC Estate", "Industrial Estate", "Sector 5", "Phase II Industrial Area", "SIPCOT Industrial Park", "Focal Point"}
	exportCountries      = []string{"USA", "UAE", "United Kingdom", "Germany", "Bangladesh", "Nepal", "Sri Lanka", "Kenya", "Saudi Arabia", "Singapore", "Australia"}
	paymentTerms         = []string{"30% advance, 70% on delivery", "50% advance, 50% before dispatch", "100% advance", "Net 30 days", "Net 45 days", "LC at sight"}
	creditFacilities     = []string{"Available up to 30 days", "Available up to 60 days", "Available for repeat customers", "Not available"}
	minimumOrderValues   = []string{"₹25,000", "₹50,000", "₹1 Lakh", "₹5 Lakh", "₹10 Lakh"}
	deliveryTimes        = []string{"7-10 days", "10-15 days", "15-30 days", "30-45 days"}
	responseTimes        = []string{"< 1 hour", "< 2 hours", "< 4 hours", "< 24 hours"}
	sellingPoints        = []string{"In-house quality lab", "On-time delivery record", "Competitive pricing", "Customisation support", "Pan India logistics network", "Dedicated account manager", "Export quality packaging"}
	awards               = []string{"Best Supplier Award", "Export Excellence Award", "MSME Excellence Award", "Quality Champion", "Top Rated Seller"}
	keyClients           = []string{"Leading automobile OEM", "National retail chain", "State electricity board", "Multinational FMCG company", "Public sector refinery", "Top-5 infrastructure developer", "Government hospital network"}
	testimonialComments  = []string{
		"Consistent quality and timely delivery.",
		"Very responsive team and transparent pricing.",
		"Handled our bulk order without any issues.",
		"Good product range and helpful after-sales support.",
	}
	qualityControlTemplates = []string{
		"Every batch of %s is inspected by our in-house QC team before dispatch.",
		"Three-stage inspection covering raw material, in-process and final checks for %s.",
		"%s is tested against BIS and customer specifications with reports shared on request.",
	}
	workingDays  = []string{"Monday - Saturday", "Monday - Friday", "All days"}
	workingHours = []string{"9:00 AM - 6:00 PM", "10:00 AM - 7:00 PM", "24x7"}
)

var regionalLanguages = map[string]string{
	"Maharashtra":    "Marathi",
	"Gujarat":        "Gujarati",
	"Karnataka":      "Kannada",
	"Tamil Nadu":     "Tamil",
	"West Bengal":    "Bengali",
	"Telangana":      "Telugu",
	"Andhra Pradesh": "Telugu",
	"Punjab":         "Punjabi",
	"Kerala":         "Malayalam",
}

var companyTypeLabels = map[models.CompanyType]string{
	models.CompanyTypeManufacturer:    "manufacturer",
	models.CompanyTypeDistributor:     "distributor",
	models.CompanyTypeTrader:          "trader",
	models.CompanyTypeExporter:        "exporter",
	models.CompanyTypeServiceProvider: "service provider",
}
