package model

// QuoteRequest is the fan filter unit quote record collected by the default
// three-step form.
type QuoteRequest struct {
	// Step 1: quantity and basic specs.
	FFUQuantity string `json:"ffuQuantity"`
	FFUSize     string `json:"ffuSize"`

	// Step 2: performance and features.
	FiltrationLevel     string   `json:"filtrationLevel"`
	AirflowRequirements string   `json:"airflowRequirements"`
	SpecificFeatures    []string `json:"specificFeatures"`

	// Step 3: application and contact.
	Application     string `json:"application"`
	FullName        string `json:"fullName"`
	BusinessEmail   string `json:"businessEmail"`
	PhoneNumber     string `json:"phoneNumber"`
	CompanyName     string `json:"companyName"`
	ProjectLocation string `json:"projectLocation"`

	ConsentGiven bool `json:"consentGiven"`

	// Website is the honeypot; humans never see it.
	Website string `json:"website,omitempty"`
}

// NewQuoteRequest returns a record with a default for every governed key.
func NewQuoteRequest() QuoteRequest {
	return QuoteRequest{
		SpecificFeatures: []string{},
	}
}

// Honeypot implements Honeypotter.
func (q QuoteRequest) Honeypot() string {
	return q.Website
}
