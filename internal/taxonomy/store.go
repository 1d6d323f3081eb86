package taxonomy

import (
	"github.com/stwalsh4118/sdma/internal/models"
)

const (
	// NoDisasterLabel marks report rows without any disaster type.
	NoDisasterLabel = "-"
	// UnknownLabel is shown for disaster type ids missing from reference data.
	UnknownLabel = "Unknown"
)

// Unit describes how a damage quantity is measured.
type Unit struct {
	En string `json:"en"`
	Hi string `json:"hi"`
}

// Store is the read-only master taxonomy: districts, tehsils, disaster and
// damage types. It is built once at startup and never mutated, so it is safe
// for concurrent use without locking.
type Store struct {
	seed              Seed
	districtByCode    map[int]models.District
	tehsilByCode      map[int]models.Tehsil
	tehsilsByDistrict map[int][]models.Tehsil
	disasterTypes     map[int]models.DisasterType
	disasterSubtypes  map[int]models.DisasterSubtype
	damageTypes       map[int]models.DamageType
	damageSubtypes    map[int]models.DamageSubtype
}

// NewStore indexes the seed for lookups. Tehsils keep their seed order
// within each district.
func NewStore(seed Seed) *Store {
	s := &Store{
		seed:              seed,
		districtByCode:    make(map[int]models.District, len(seed.Districts)),
		tehsilByCode:      make(map[int]models.Tehsil, len(seed.Tehsils)),
		tehsilsByDistrict: make(map[int][]models.Tehsil),
		disasterTypes:     make(map[int]models.DisasterType, len(seed.DisasterTypes)),
		disasterSubtypes:  make(map[int]models.DisasterSubtype, len(seed.DisasterSubtypes)),
		damageTypes:       make(map[int]models.DamageType, len(seed.DamageTypes)),
		damageSubtypes:    make(map[int]models.DamageSubtype, len(seed.DamageSubtypes)),
	}

	for _, d := range seed.Districts {
		s.districtByCode[d.Code] = d
	}
	for _, t := range seed.Tehsils {
		s.tehsilByCode[t.Code] = t
		s.tehsilsByDistrict[t.DistrictCode] = append(s.tehsilsByDistrict[t.DistrictCode], t)
	}
	for _, t := range seed.DisasterTypes {
		s.disasterTypes[t.ID] = t
	}
	for _, t := range seed.DisasterSubtypes {
		s.disasterSubtypes[t.ID] = t
	}
	for _, t := range seed.DamageTypes {
		s.damageTypes[t.ID] = t
	}
	for _, t := range seed.DamageSubtypes {
		s.damageSubtypes[t.ID] = t
	}

	return s
}

// Districts returns all districts in seed order.
func (s *Store) Districts() []models.District {
	return append([]models.District(nil), s.seed.Districts...)
}

// District looks up a district by code.
func (s *Store) District(code int) (models.District, bool) {
	d, ok := s.districtByCode[code]
	return d, ok
}

// TehsilsOf returns the tehsils of a district in seed order.
func (s *Store) TehsilsOf(districtCode int) []models.Tehsil {
	return append([]models.Tehsil(nil), s.tehsilsByDistrict[districtCode]...)
}

// Tehsil looks up a tehsil by code.
func (s *Store) Tehsil(code int) (models.Tehsil, bool) {
	t, ok := s.tehsilByCode[code]
	return t, ok
}

// TehsilBelongsTo reports whether the tehsil is part of the district.
func (s *Store) TehsilBelongsTo(tehsilCode, districtCode int) bool {
	t, ok := s.tehsilByCode[tehsilCode]
	return ok && t.DistrictCode == districtCode
}

func (s *Store) DisasterTypes() []models.DisasterType {
	return append([]models.DisasterType(nil), s.seed.DisasterTypes...)
}

func (s *Store) DisasterSubtypes() []models.DisasterSubtype {
	return append([]models.DisasterSubtype(nil), s.seed.DisasterSubtypes...)
}

func (s *Store) DamageTypes() []models.DamageType {
	return append([]models.DamageType(nil), s.seed.DamageTypes...)
}

func (s *Store) DamageSubtypes() []models.DamageSubtype {
	return append([]models.DamageSubtype(nil), s.seed.DamageSubtypes...)
}

// DisasterType looks up a disaster type by id.
func (s *Store) DisasterType(id int) (models.DisasterType, bool) {
	t, ok := s.disasterTypes[id]
	return t, ok
}

// DisasterTypeName returns the local name of a disaster type. Id 0 means
// "no disaster" and yields NoDisasterLabel; unknown ids yield UnknownLabel.
func (s *Store) DisasterTypeName(id int) string {
	if id == 0 {
		return NoDisasterLabel
	}
	if t, ok := s.disasterTypes[id]; ok {
		return t.NameHi
	}
	return UnknownLabel
}

// DisasterSubtypeBelongsTo reports whether the subtype refines the type.
func (s *Store) DisasterSubtypeBelongsTo(subtypeID, typeID int) bool {
	st, ok := s.disasterSubtypes[subtypeID]
	return ok && st.TypeID == typeID
}

// DamageType looks up a damage type by id.
func (s *Store) DamageType(id int) (models.DamageType, bool) {
	t, ok := s.damageTypes[id]
	return t, ok
}

// DamageSubtypeBelongsTo reports whether the subtype refines the type.
func (s *Store) DamageSubtypeBelongsTo(subtypeID, typeID int) bool {
	st, ok := s.damageSubtypes[subtypeID]
	return ok && st.TypeID == typeID
}

// QuantityUnit returns the unit a damage quantity is recorded in: hectares
// for crop damage, kilometres for road damage and a plain count otherwise.
func (s *Store) QuantityUnit(damageTypeID, damageSubtypeID int) Unit {
	if damageTypeID == DamageCrop {
		return Unit{En: unitHectareEn, Hi: unitHectareHi}
	}
	if damageSubtypeID == RoadDamageSubtype {
		return Unit{En: unitKilometerEn, Hi: unitKilometerHi}
	}
	return Unit{En: unitCountEn, Hi: unitCountHi}
}

// Users returns the seeded user accounts.
func (s *Store) Users() []models.User {
	return append([]models.User(nil), s.seed.Users...)
}
