package types

import "strings"

// ShippingAddress is the delivery address collected by the checkout form.
type ShippingAddress struct {
	HouseNumber string `json:"houseNumber" validate:"required"`
	StreetName  string `json:"streetName" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	Country     string `json:"country" validate:"required"`
	PostalCode  string `json:"postalCode" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (a ShippingAddress) Trimmed() ShippingAddress {
	return ShippingAddress{
		HouseNumber: strings.TrimSpace(a.HouseNumber),
		StreetName:  strings.TrimSpace(a.StreetName),
		City:        strings.TrimSpace(a.City),
		State:       strings.TrimSpace(a.State),
		Country:     strings.TrimSpace(a.Country),
		PostalCode:  strings.TrimSpace(a.PostalCode),
	}
}

// IsZero reports whether no address field carries a value.
func (a ShippingAddress) IsZero() bool {
	return a.HouseNumber == "" && a.StreetName == "" && a.City == "" &&
		a.State == "" && a.Country == "" && a.PostalCode == ""
}
