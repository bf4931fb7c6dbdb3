package models

// Province is a Canadian province or territory. Codes are the canonical
// upper-case form provinces are stored and compared in.
type Province struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var CanadianProvinces = []Province{
	{Code: "AB", Name: "Alberta"},
	{Code: "BC", Name: "British Columbia"},
	{Code: "MB", Name: "Manitoba"},
	{Code: "NB", Name: "New Brunswick"},
	{Code: "NL", Name: "Newfoundland and Labrador"},
	{Code: "NS", Name: "Nova Scotia"},
	{Code: "ON", Name: "Ontario"},
	{Code: "PE", Name: "Prince Edward Island"},
	{Code: "QC", Name: "Quebec"},
	{Code: "SK", Name: "Saskatchewan"},
	{Code: "NT", Name: "Northwest Territories"},
	{Code: "NU", Name: "Nunavut"},
	{Code: "YT", Name: "Yukon"},
}

// IsKnownProvince reports whether code is one of the known province codes.
func IsKnownProvince(code string) bool {
	for _, p := range CanadianProvinces {
		if p.Code == code {
			return true
		}
	}
	return false
}
