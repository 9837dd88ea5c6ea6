package types

import "strings"

// ShippingAddress is the customer address captured at payment time,
// stored as jsonb on the order row.
type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// IsZero reports whether no address fields were populated.
func (a ShippingAddress) IsZero() bool {
	return a.Line1 == "" && a.City == "" && a.PostalCode == "" && a.Country == ""
}

// CountryOrDefault returns the country code, defaulting to US.
func (a ShippingAddress) CountryOrDefault() string {
	if c := strings.TrimSpace(a.Country); c != "" {
		return c
	}
	return "US"
}
