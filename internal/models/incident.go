package models

import "time"

// FloodDisasterTypeID is the disaster type that carries relief camp details.
const FloodDisasterTypeID = 1

// Incident is one reported event and the damage it caused.
// Optional classifications use pointers so that "not set" is distinct from id 0.
type Incident struct {
	CreatedAt         time.Time `json:"createdAt"`
	DisasterSubtypeID *int      `json:"disasterSubtypeId,omitempty"`
	DamageTypeID      *int      `json:"damageTypeId,omitempty"`
	DamageSubtypeID   *int      `json:"damageSubtypeId,omitempty"`
	CampName          string    `json:"campName,omitempty"`
	DamageQuantity    float64   `json:"damageQuantity"`
	ID                int       `json:"id"`
	DistrictCode      int       `json:"districtCode"`
	TehsilCode        int       `json:"tehsilCode"`
	DisasterTypeID    int       `json:"disasterTypeId"`
	Month             int       `json:"month"`
	Year              int       `json:"year"`
	CampCount         int       `json:"campCount,omitempty"`
	ShelteredCount    int       `json:"shelteredCount,omitempty"`
	IsDeleted         bool      `json:"isDeleted"`
}

// DamageType returns the damage type id, or 0 when unclassified.
func (i Incident) DamageType() int {
	if i.DamageTypeID == nil {
		return 0
	}
	return *i.DamageTypeID
}

// DamageSubtype returns the damage subtype id, or 0 when unclassified.
func (i Incident) DamageSubtype() int {
	if i.DamageSubtypeID == nil {
		return 0
	}
	return *i.DamageSubtypeID
}

// IsFlood reports whether the incident was triggered by a flood.
func (i Incident) IsFlood() bool {
	return i.DisasterTypeID == FloodDisasterTypeID
}

// IntPtr returns a pointer to v. Handy for optional incident classifications.
func IntPtr(v int) *int {
	return &v
}
