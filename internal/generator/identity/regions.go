package identity

// State is an Indian state with the codes the pseudo-identifiers embed.
type State struct {
	Name    string
	GSTCode string // two-digit GST state code
	Abbrev  string // two-letter registrar code used in CIN and Udyam numbers
}

// City pairs a commercial hub with its state.
type City struct {
	Name  string
	State string
}

var States = []State{
	{Name: "Maharashtra", GSTCode: "27", Abbrev: "MH"},
	{Name: "Gujarat", GSTCode: "24", Abbrev: "GJ"},
	{Name: "Karnataka", GSTCode: "29", Abbrev: "KA"},
	{Name: "Tamil Nadu", GSTCode: "33", Abbrev: "TN"},
	{Name: "Delhi", GSTCode: "07", Abbrev: "DL"},
	{Name: "Uttar Pradesh", GSTCode: "09", Abbrev: "UP"},
	{Name: "West Bengal", GSTCode: "19", Abbrev: "WB"},
	{Name: "Telangana", GSTCode: "36", Abbrev: "TG"},
	{Name: "Rajasthan", GSTCode: "08", Abbrev: "RJ"},
	{Name: "Haryana", GSTCode: "06", Abbrev: "HR"},
	{Name: "Punjab", GSTCode: "03", Abbrev: "PB"},
	{Name: "Kerala", GSTCode: "32", Abbrev: "KL"},
	{Name: "Madhya Pradesh", GSTCode: "23", Abbrev: "MP"},
	{Name: "Andhra Pradesh", GSTCode: "37", Abbrev: "AP"},
}

var Cities = []City{
	{Name: "Mumbai", State: "Maharashtra"},
	{Name: "Pune", State: "Maharashtra"},
	{Name: "Nagpur", State: "Maharashtra"},
	{Name: "Ahmedabad", State: "Gujarat"},
	{Name: "Surat", State: "Gujarat"},
	{Name: "Rajkot", State: "Gujarat"},
	{Name: "Bangalore", State: "Karnataka"},
	{Name: "Mysore", State: "Karnataka"},
	{Name: "Chennai", State: "Tamil Nadu"},
	{Name: "Coimbatore", State: "Tamil Nadu"},
	{Name: "Tiruppur", State: "Tamil Nadu"},
	{Name: "New Delhi", State: "Delhi"},
	{Name: "Noida", State: "Uttar Pradesh"},
	{Name: "Kanpur", State: "Uttar Pradesh"},
	{Name: "Lucknow", State: "Uttar Pradesh"},
	{Name: "Kolkata", State: "West Bengal"},
	{Name: "Hyderabad", State: "Telangana"},
	{Name: "Jaipur", State: "Rajasthan"},
	{Name: "Gurgaon", State: "Haryana"},
	{Name: "Faridabad", State: "Haryana"},
	{Name: "Ludhiana", State: "Punjab"},
	{Name: "Kochi", State: "Kerala"},
	{Name: "Indore", State: "Madhya Pradesh"},
	{Name: "Visakhapatnam", State: "Andhra Pradesh"},
}

// StateByName looks up a state by its display name.
func StateByName(name string) (State, bool) {
	for _, s := range States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

// Location renders a city as "City, State".
func (c City) Location() string {
	return c.Name + ", " + c.State
}
