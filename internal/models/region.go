package models

// District is a district of the state.
type District struct {
	NameLocal string `json:"nameHi"`
	NameEn    string `json:"nameEn"`
	ShortName string `json:"shortName,omitempty"`
	Code      int    `json:"code"`
}

// Tehsil is a sub-district administrative unit.
type Tehsil struct {
	NameLocal    string `json:"nameHi"`
	NameEn       string `json:"nameEn"`
	Code         int    `json:"code"`
	DistrictCode int    `json:"districtCode"`
}
