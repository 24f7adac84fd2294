// internal/models/rfq.go
package models

import "fmt"

type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Urgencies lists the urgency levels in descending order of pressure.
var Urgencies = []Urgency{UrgencyHigh, UrgencyMedium, UrgencyLow}

type RFQStatus string

const (
	RFQStatusActive     RFQStatus = "Active"
	RFQStatusInProgress RFQStatus = "InProgress"
	RFQStatusClosed     RFQStatus = "Closed"
)

type Scenario string

const (
	ScenarioEnterprise    Scenario = "enterprise"
	ScenarioManufacturing Scenario = "manufacturing"
	ScenarioRetail        Scenario = "retail"
	ScenarioStartup       Scenario = "startup"
)

// Scenarios lists every business archetype in a fixed order.
var Scenarios = []Scenario{ScenarioEnterprise, ScenarioManufacturing, ScenarioRetail, ScenarioStartup}

// ParseScenario accepts the lowercase scenario name.
func ParseScenario(s string) (Scenario, error) {
	for _, sc := range Scenarios {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown scenario %q", s)
}

// ContactPerson is the buyer- or seller-side point of contact.
type ContactPerson struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// RFQ is a synthetic Request for Quotation.
type RFQ struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Category       string        `json:"category"`
	Subcategory    string        `json:"subcategory"`
	Description    string        `json:"description"`
	Quantity       string        `json:"quantity"`
	Budget         string        `json:"budget"`
	Location       string        `json:"location"`
	State          string        `json:"state"`
	Urgency        Urgency       `json:"urgency"`
	Deadline       string        `json:"deadline"`
	Specifications []string      `json:"specifications"`
	BusinessType   string        `json:"business_type"`
	Scenario       Scenario      `json:"scenario"`
	ContactPerson  ContactPerson `json:"contact_person"`
	CreatedDate    string        `json:"created_date"` // YYYY-MM-DD
	Status         RFQStatus     `json:"status"`
	Tags           []string      `json:"tags"`
}

// DateLayout is the ISO date layout used for created dates.
const DateLayout = "2006-01-02"
