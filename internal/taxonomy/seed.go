package taxonomy

import "github.com/stwalsh4118/sdma/internal/models"

// Seed is the static reference data the store is built from.
type Seed struct {
	Districts        []models.District
	Tehsils          []models.Tehsil
	DisasterTypes    []models.DisasterType
	DisasterSubtypes []models.DisasterSubtype
	DamageTypes      []models.DamageType
	DamageSubtypes   []models.DamageSubtype
	Users            []models.User
}

// Damage taxonomy ids that drive bucket classification and quantity units.
const (
	DamageLossOfLife  = 1
	DamageHouse       = 2
	DamageAnimal      = 3
	DamageCrop        = 4
	DamageGovtAsset   = 5
	RoadDamageSubtype = 9
	unitCountEn       = "Count"
	unitCountHi       = "संख्या"
	unitHectareEn     = "Hectare"
	unitHectareHi     = "हेक्टेयर"
	unitKilometerEn   = "Kilometer"
	unitKilometerHi   = "किलोमीटर"
)

// DefaultSeed returns the state master data shipped with the service.
func DefaultSeed() Seed {
	return Seed{
		Districts: []models.District{
			{Code: 21, NameLocal: "रायपुर", NameEn: "Raipur", ShortName: "RPR"},
			{Code: 22, NameLocal: "बिलासपुर", NameEn: "Bilaspur", ShortName: "BSP"},
			{Code: 23, NameLocal: "दुर्ग", NameEn: "Durg", ShortName: "DRG"},
			{Code: 24, NameLocal: "बस्तर", NameEn: "Bastar", ShortName: "BST"},
			{Code: 25, NameLocal: "राजनांदगांव", NameEn: "Rajnandgaon", ShortName: "RJN"},
			{Code: 26, NameLocal: "कोरबा", NameEn: "Korba", ShortName: "KRB"},
		},
		Tehsils: []models.Tehsil{
			{Code: 2101, DistrictCode: 21, NameLocal: "रायपुर", NameEn: "Raipur"},
			{Code: 2102, DistrictCode: 21, NameLocal: "अभनपुर", NameEn: "Abhanpur"},
			{Code: 2103, DistrictCode: 21, NameLocal: "आरंग", NameEn: "Arang"},
			{Code: 2104, DistrictCode: 21, NameLocal: "तिल्दा", NameEn: "Tilda"},
			{Code: 2201, DistrictCode: 22, NameLocal: "बिलासपुर", NameEn: "Bilaspur"},
			{Code: 2202, DistrictCode: 22, NameLocal: "तखतपुर", NameEn: "Takhatpur"},
			{Code: 2203, DistrictCode: 22, NameLocal: "मस्तूरी", NameEn: "Masturi"},
			{Code: 2204, DistrictCode: 22, NameLocal: "कोटा", NameEn: "Kota"},
			{Code: 2301, DistrictCode: 23, NameLocal: "दुर्ग", NameEn: "Durg"},
			{Code: 2302, DistrictCode: 23, NameLocal: "पाटन", NameEn: "Patan"},
			{Code: 2303, DistrictCode: 23, NameLocal: "धमधा", NameEn: "Dhamdha"},
			{Code: 2401, DistrictCode: 24, NameLocal: "जगदलपुर", NameEn: "Jagdalpur"},
			{Code: 2402, DistrictCode: 24, NameLocal: "बकावंड", NameEn: "Bakawand"},
			{Code: 2403, DistrictCode: 24, NameLocal: "लोहंडीगुड़ा", NameEn: "Lohandiguda"},
			{Code: 2501, DistrictCode: 25, NameLocal: "राजनांदगांव", NameEn: "Rajnandgaon"},
			{Code: 2502, DistrictCode: 25, NameLocal: "डोंगरगढ़", NameEn: "Dongargarh"},
			{Code: 2503, DistrictCode: 25, NameLocal: "छुरिया", NameEn: "Chhuriya"},
			{Code: 2601, DistrictCode: 26, NameLocal: "कोरबा", NameEn: "Korba"},
			{Code: 2602, DistrictCode: 26, NameLocal: "कटघोरा", NameEn: "Katghora"},
			{Code: 2603, DistrictCode: 26, NameLocal: "पाली", NameEn: "Pali"},
		},
		DisasterTypes: []models.DisasterType{
			{ID: 1, NameHi: "बाढ़", NameEn: "Flood"},
			{ID: 2, NameHi: "आकाशीय बिजली", NameEn: "Lightning"},
			{ID: 3, NameHi: "सर्पदंश", NameEn: "Snake Bite"},
			{ID: 4, NameHi: "आग", NameEn: "Fire"},
			{ID: 5, NameHi: "पानी में डूबना", NameEn: "Drowning"},
			{ID: 6, NameHi: "ओलावृष्टि", NameEn: "Hailstorm"},
			{ID: 7, NameHi: "आंधी-तूफान", NameEn: "Storm"},
		},
		DisasterSubtypes: []models.DisasterSubtype{
			{ID: 1, TypeID: 1, NameHi: "अतिवृष्टि", NameEn: "Heavy Rainfall"},
			{ID: 2, TypeID: 1, NameHi: "नदी की बाढ़", NameEn: "River Flood"},
			{ID: 3, TypeID: 4, NameHi: "घरेलू आग", NameEn: "House Fire"},
			{ID: 4, TypeID: 4, NameHi: "जंगल की आग", NameEn: "Forest Fire"},
			{ID: 5, TypeID: 7, NameHi: "चक्रवात", NameEn: "Cyclone"},
		},
		DamageTypes: []models.DamageType{
			{ID: DamageLossOfLife, NameHi: "जनहानि", NameEn: "Loss of Life", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: DamageHouse, NameHi: "मकान क्षति", NameEn: "House Damage", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: DamageAnimal, NameHi: "पशु हानि", NameEn: "Animal Loss", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: DamageCrop, NameHi: "फसल क्षति", NameEn: "Crop Damage", UnitEn: unitHectareEn, UnitHi: unitHectareHi},
			{ID: DamageGovtAsset, NameHi: "शासकीय परिसंपत्ति क्षति", NameEn: "Government Asset Loss", UnitEn: unitCountEn, UnitHi: unitCountHi},
		},
		DamageSubtypes: []models.DamageSubtype{
			{ID: 1, TypeID: DamageHouse, NameHi: "पक्का मकान पूर्ण क्षति", NameEn: "Pucca House Fully Damaged", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: 2, TypeID: DamageHouse, NameHi: "पक्का मकान आंशिक क्षति", NameEn: "Pucca House Partially Damaged", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: 3, TypeID: DamageHouse, NameHi: "कच्चा मकान क्षति", NameEn: "Kutcha House Damaged", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: 4, TypeID: DamageAnimal, NameHi: "दुधारू पशु", NameEn: "Milch Animal", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: 5, TypeID: DamageAnimal, NameHi: "भारवाहक पशु", NameEn: "Draught Animal", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: 6, TypeID: DamageAnimal, NameHi: "मुर्गी पालन", NameEn: "Poultry", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: 7, TypeID: DamageGovtAsset, NameHi: "विद्यालय भवन", NameEn: "School Building", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: 8, TypeID: DamageGovtAsset, NameHi: "पुल-पुलिया", NameEn: "Bridge / Culvert", UnitEn: unitCountEn, UnitHi: unitCountHi},
			{ID: RoadDamageSubtype, TypeID: DamageGovtAsset, NameHi: "सड़क", NameEn: "Road", UnitEn: unitKilometerEn, UnitHi: unitKilometerHi},
			{ID: 10, TypeID: DamageGovtAsset, NameHi: "सिंचाई संरचना", NameEn: "Irrigation Structure", UnitEn: unitCountEn, UnitHi: unitCountHi},
		},
		Users: []models.User{
			{ID: 1, UserID: "sadmin", Name: "State Administrator", DisplayName: "Administrator", Designation: "System Administrator", Role: models.RoleAdmin, Email: "admin@cgsdma.gov.in"},
			{ID: 2, UserID: "state", Name: "State Relief Commissioner", DisplayName: "Relief Commissioner", Designation: "Relief Commissioner", Role: models.RoleState, Mobile: "9876500001"},
			{ID: 3, UserID: "raipur", Name: "Collector Raipur", DisplayName: "Collector Raipur", Designation: "Collector", Role: models.RoleDistrict, DistrictCode: models.IntPtr(21), Mobile: "9876500021", Email: "dm.raipur@cgsdma.gov.in"},
			{ID: 4, UserID: "bilaspur", Name: "Collector Bilaspur", DisplayName: "Collector Bilaspur", Designation: "Collector", Role: models.RoleDistrict, DistrictCode: models.IntPtr(22), Mobile: "9876500022"},
			{ID: 5, UserID: "durg", Name: "Collector Durg", DisplayName: "Collector Durg", Designation: "Collector", Role: models.RoleDistrict, DistrictCode: models.IntPtr(23)},
			{ID: 6, UserID: "bastar", Name: "Collector Bastar", DisplayName: "Collector Bastar", Designation: "Collector", Role: models.RoleDistrict, DistrictCode: models.IntPtr(24)},
			{ID: 7, UserID: "rajnandgaon", Name: "Collector Rajnandgaon", DisplayName: "Collector Rajnandgaon", Designation: "Collector", Role: models.RoleDistrict, DistrictCode: models.IntPtr(25)},
			{ID: 8, UserID: "korba", Name: "Collector Korba", DisplayName: "Collector Korba", Designation: "Collector", Role: models.RoleDistrict, DistrictCode: models.IntPtr(26)},
		},
	}
}

// SampleIncidents returns demo incidents used when the service starts with
// an empty in-memory store.
func SampleIncidents() []models.Incident {
	ptr := models.IntPtr
	return []models.Incident{
		{ID: 1, DistrictCode: 21, TehsilCode: 2101, DisasterTypeID: 1, DisasterSubtypeID: ptr(1), DamageTypeID: ptr(DamageLossOfLife), DamageQuantity: 2, Month: 7, Year: 2024, CampName: "शासकीय स्कूल रायपुर", CampCount: 2, ShelteredCount: 140},
		{ID: 2, DistrictCode: 21, TehsilCode: 2101, DisasterTypeID: 1, DamageTypeID: ptr(DamageHouse), DamageSubtypeID: ptr(3), DamageQuantity: 12, Month: 7, Year: 2024},
		{ID: 3, DistrictCode: 21, TehsilCode: 2101, DisasterTypeID: 2, DamageTypeID: ptr(DamageLossOfLife), DamageQuantity: 1, Month: 6, Year: 2024},
		{ID: 4, DistrictCode: 21, TehsilCode: 2103, DisasterTypeID: 1, DamageTypeID: ptr(DamageCrop), DamageQuantity: 35.5, Month: 8, Year: 2024},
		{ID: 5, DistrictCode: 21, TehsilCode: 2103, DisasterTypeID: 1, DamageTypeID: ptr(DamageGovtAsset), DamageSubtypeID: ptr(RoadDamageSubtype), DamageQuantity: 4.2, Month: 8, Year: 2024},
		{ID: 6, DistrictCode: 22, TehsilCode: 2201, DisasterTypeID: 3, DamageTypeID: ptr(DamageLossOfLife), DamageQuantity: 1, Month: 7, Year: 2024},
		{ID: 7, DistrictCode: 22, TehsilCode: 2203, DisasterTypeID: 6, DamageTypeID: ptr(DamageCrop), DamageQuantity: 120, Month: 3, Year: 2024},
		{ID: 8, DistrictCode: 23, TehsilCode: 2302, DisasterTypeID: 4, DisasterSubtypeID: ptr(3), DamageTypeID: ptr(DamageHouse), DamageSubtypeID: ptr(1), DamageQuantity: 3, Month: 4, Year: 2024},
		{ID: 9, DistrictCode: 24, TehsilCode: 2401, DisasterTypeID: 1, DamageTypeID: ptr(DamageGovtAsset), DamageSubtypeID: ptr(8), DamageQuantity: 2, Month: 9, Year: 2024},
		{ID: 10, DistrictCode: 24, TehsilCode: 2402, DisasterTypeID: 1, DamageTypeID: ptr(DamageAnimal), DamageSubtypeID: ptr(4), DamageQuantity: 18, Month: 9, Year: 2024},
		{ID: 11, DistrictCode: 26, TehsilCode: 2601, DisasterTypeID: 7, DisasterSubtypeID: ptr(5), DamageTypeID: ptr(DamageHouse), DamageSubtypeID: ptr(2), DamageQuantity: 9, Month: 5, Year: 2023},
		{ID: 12, DistrictCode: 25, TehsilCode: 2502, DisasterTypeID: 2, DamageTypeID: ptr(DamageAnimal), DamageSubtypeID: ptr(5), DamageQuantity: 4, Month: 6, Year: 2023},
	}
}
