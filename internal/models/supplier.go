// internal/models/supplier.go
package models

type CompanyType string

const (
	CompanyTypeManufacturer    CompanyType = "Manufacturer"
	CompanyTypeDistributor     CompanyType = "Distributor"
	CompanyTypeTrader          CompanyType = "Trader"
	CompanyTypeExporter        CompanyType = "Exporter"
	CompanyTypeServiceProvider CompanyType = "ServiceProvider"
)

var CompanyTypes = []CompanyType{
	CompanyTypeManufacturer,
	CompanyTypeDistributor,
	CompanyTypeTrader,
	CompanyTypeExporter,
	CompanyTypeServiceProvider,
}

type SupplierStatus string

const (
	SupplierStatusActive    SupplierStatus = "Active"
	SupplierStatusPending   SupplierStatus = "Pending"
	SupplierStatusSuspended SupplierStatus = "Suspended"
)

var SupplierStatuses = []SupplierStatus{SupplierStatusActive, SupplierStatusPending, SupplierStatusSuspended}

// Registration holds pseudo-regulatory identifiers. They are synthetic:
// shaped like GSTIN/PAN/CIN/Udyam numbers and never checksum-valid.
type Registration struct {
	TaxID string `json:"gstNumber"`
	PAN   string `json:"panNumber"`
	CIN   string `json:"cinNumber,omitempty"`
	MSME  string `json:"msmeNumber"`
}

type BusinessMetrics struct {
	AnnualTurnover     string `json:"annualTurnover"`
	EmployeeCount      string `json:"employeeCount"`
	FactorySize        string `json:"factorySize"`
	ProductionCapacity string `json:"productionCapacity"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// Performance holds marketplace metrics. Each value is drawn independently.
type Performance struct {
	Rating               float64 `json:"rating"` // 1-10 scale
	TotalOrders          int     `json:"totalOrders"`
	ResponseTime         string  `json:"responseTime"`
	DeliveryRating       float64 `json:"deliveryRating"`
	QualityRating        float64 `json:"qualityRating"`
	CommunicationRating  float64 `json:"communicationRating"`
	RepeatCustomers      int     `json:"repeatCustomers"`      // percent
	CustomerSatisfaction int     `json:"customerSatisfaction"` // percent
}

type Testimonial struct {
	ClientName string  `json:"clientName"`
	Company    string  `json:"company"`
	Comment    string  `json:"comment"`
	Rating     float64 `json:"rating"`
}

type Operations struct {
	WorkingDays  string   `json:"workingDays"`
	WorkingHours string   `json:"workingHours"`
	Languages    []string `json:"languages"`
	Verified     bool     `json:"verified"`
	JoinedDate   string   `json:"joinedDate"`
	LastActive   string   `json:"lastActive"`
}

// SupplierProfile is a synthetic supplier company.
type SupplierProfile struct {
	CompanyID       string         `json:"companyId"`
	CompanyName     string         `json:"companyName"`
	EstablishedYear int            `json:"establishedYear"`
	CompanyType     CompanyType    `json:"companyType"`
	Status          SupplierStatus `json:"status"`

	Registration    Registration    `json:"registration"`
	BusinessMetrics BusinessMetrics `json:"businessMetrics"`
	Address         Address         `json:"address"`
	ContactPerson   ContactPerson   `json:"contactPerson"`
	Website         string          `json:"website"`

	Categories      []string `json:"categories"`
	Subcategories   []string `json:"subcategories"`
	Specialization  []string `json:"specialization"`
	ProductRange    []string `json:"productRange"`
	ServicesOffered []string `json:"servicesOffered"`
	TargetMarkets   []string `json:"targetMarkets"`
	ExportCountries []string `json:"exportCountries"`
	Certifications  []string `json:"certifications"`
	QualityControl  string   `json:"qualityControl"`

	PaymentTerms      string `json:"paymentTerms"`
	CreditFacility    string `json:"creditFacility"`
	MinimumOrderValue string `json:"minimumOrderValue"`
	DeliveryTime      string `json:"deliveryTime"`

	Performance Performance `json:"performance"`

	UniqueSellingPoints []string      `json:"uniqueSellingPoints"`
	Awards              []string      `json:"awards"`
	KeyClients          []string      `json:"keyClients"`
	Testimonials        []Testimonial `json:"testimonials"`
	Operations          Operations    `json:"operations"`
	CompanyDescription  string        `json:"companyDescription"`
}

// ValidSupplierStatus reports whether s is one of the known statuses.
func ValidSupplierStatus(s SupplierStatus) bool {
	for _, v := range SupplierStatuses {
		if v == s {
			return true
		}
	}
	return false
}
