package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

// testReference builds a small reference store: district 10 with three
// tehsils, district 20 with one tehsil and district 30 with none.
func testReference() *taxonomy.Store {
	return taxonomy.NewStore(taxonomy.Seed{
		Districts: []models.District{
			{Code: 20, NameLocal: "Champa", NameEn: "Champa"},
			{Code: 10, NameLocal: "bhilai", NameEn: "Bhilai"},
			{Code: 30, NameLocal: "Dantewada", NameEn: "Dantewada"},
		},
		Tehsils: []models.Tehsil{
			{Code: 101, DistrictCode: 10, NameLocal: "T101"},
			{Code: 102, DistrictCode: 10, NameLocal: "T102"},
			{Code: 103, DistrictCode: 10, NameLocal: "T103"},
			{Code: 201, DistrictCode: 20, NameLocal: "T201"},
		},
		DisasterTypes: []models.DisasterType{
			{ID: 1, NameHi: "बाढ़"},
			{ID: 2, NameHi: "आकाशीय बिजली"},
			{ID: 4, NameHi: "आग"},
		},
	})
}

func incident(district, tehsil, disaster, damageType int, qty float64) models.Incident {
	inc := models.Incident{
		DistrictCode:   district,
		TehsilCode:     tehsil,
		DisasterTypeID: disaster,
		DamageQuantity: qty,
		Month:          7,
		Year:           2024,
	}
	if damageType != 0 {
		inc.DamageTypeID = models.IntPtr(damageType)
	}
	return inc
}

func withSubtype(inc models.Incident, subtype int) models.Incident {
	inc.DamageSubtypeID = models.IntPtr(subtype)
	return inc
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		name     string
		inc      models.Incident
		expected Bucket
		ok       bool
	}{
		{name: "loss of life", inc: incident(10, 101, 1, 1, 1), expected: LossOfLife, ok: true},
		{name: "house", inc: incident(10, 101, 1, 2, 1), expected: HouseDamage, ok: true},
		{name: "animal", inc: incident(10, 101, 1, 3, 1), expected: AnimalLoss, ok: true},
		{name: "crop", inc: incident(10, 101, 1, 4, 1), expected: CropDamage, ok: true},
		{name: "govt asset without subtype", inc: incident(10, 101, 1, 5, 1), expected: GovtAssetLoss, ok: true},
		{name: "govt asset other subtype", inc: withSubtype(incident(10, 101, 1, 5, 1), 7), expected: GovtAssetLoss, ok: true},
		{name: "road", inc: withSubtype(incident(10, 101, 1, 5, 1), 9), expected: RoadDamage, ok: true},
		{name: "road subtype under another type stays with that type", inc: withSubtype(incident(10, 101, 1, 2, 1), 9), expected: HouseDamage, ok: true},
		{name: "no damage classification", inc: incident(10, 101, 1, 0, 1), ok: false},
		{name: "unknown damage type", inc: incident(10, 101, 1, 42, 1), ok: false},
		{name: "road subtype without damage type", inc: withSubtype(incident(10, 101, 1, 0, 1), 9), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := BucketOf(tt.inc)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, b)
			}
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Aggregate(nil))
	assert.Equal(t, Stats{}, Aggregate([]models.Incident{}))
}

func TestAggregate_RoadDamage(t *testing.T) {
	stats := Aggregate([]models.Incident{withSubtype(incident(10, 101, 1, 5, 4), 9)})
	assert.Equal(t, 4.0, stats.RoadDamage)
	assert.Equal(t, 0.0, stats.GovtAssetLoss)

	stats = Aggregate([]models.Incident{withSubtype(incident(10, 101, 1, 2, 4), 9)})
	assert.Equal(t, 0.0, stats.RoadDamage, "road requires damage type 5")
	assert.Equal(t, 4.0, stats.HouseDamage)
}

func TestAggregate_ConservesQuantity(t *testing.T) {
	incidents := []models.Incident{
		incident(10, 101, 1, 1, 5),
		incident(10, 101, 1, 2, 3),
		incident(10, 102, 2, 3, 7),
		incident(10, 102, 2, 4, 12.5),
		withSubtype(incident(10, 103, 4, 5, 2), 7),
		withSubtype(incident(10, 103, 4, 5, 1.5), 9),
		incident(10, 103, 4, 5, 6),
		incident(10, 103, 4, 0, 99),
	}

	var classified float64
	for _, inc := range incidents {
		if inc.DamageTypeID != nil {
			classified += inc.DamageQuantity
		}
	}

	stats := Aggregate(incidents)
	assert.InDelta(t, classified, stats.Total(Buckets...), 1e-9)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	incidents := []models.Incident{
		incident(10, 101, 1, 1, 5),
		incident(10, 101, 1, 2, 3),
		withSubtype(incident(10, 102, 2, 5, 4), 9),
		incident(10, 102, 2, 4, 1.25),
	}
	reversed := make([]models.Incident, len(incidents))
	for i, inc := range incidents {
		reversed[len(incidents)-1-i] = inc
	}
	rotated := append(append([]models.Incident{}, incidents[2:]...), incidents[:2]...)

	expected := Aggregate(incidents)
	assert.Equal(t, expected, Aggregate(reversed))
	assert.Equal(t, expected, Aggregate(rotated))
}

func TestFilter_Matches(t *testing.T) {
	inc := incident(10, 101, 2, 1, 1)

	assert.True(t, Filter{Year: 2024}.Matches(inc))
	assert.True(t, Filter{Year: 2024, Month: 7}.Matches(inc))
	assert.False(t, Filter{Year: 2024, Month: 8}.Matches(inc))
	assert.False(t, Filter{Year: 2023}.Matches(inc))
	assert.True(t, Filter{Year: 2024, DisasterTypeID: 2}.Matches(inc))
	assert.False(t, Filter{Year: 2024, DisasterTypeID: 1}.Matches(inc))

	inc.IsDeleted = true
	assert.False(t, Filter{Year: 2024}.Matches(inc))
}

func TestDistrictSummary_Example(t *testing.T) {
	incidents := []models.Incident{
		incident(10, 101, 1, 1, 5),
		incident(10, 101, 1, 2, 3),
		incident(10, 102, 1, 1, 2),
	}

	r := NewFlattener(testReference()).DistrictSummary(incidents, Filter{Year: 2024})

	require.Len(t, r.Rows, 3)
	// Collation puts lowercase "bhilai" before "Champa" and "Dantewada".
	assert.Equal(t, "bhilai", r.Rows[0].DistrictName)
	assert.Equal(t, "Champa", r.Rows[1].DistrictName)
	assert.Equal(t, "Dantewada", r.Rows[2].DistrictName)

	row := r.Rows[0]
	assert.Equal(t, 1, row.Serial)
	assert.Equal(t, Stats{LossOfLife: 7, HouseDamage: 3}, row.Stats)
	assert.Equal(t, Stats{}, r.Rows[1].Stats)
	assert.Equal(t, 3, r.Rows[2].Serial)
	assert.Equal(t, Stats{LossOfLife: 7, HouseDamage: 3}, r.Totals)
	assert.False(t, r.ShowDisasterColumn)
}

func TestTehsilDetail_EmptyDistrictYieldsPlaceholders(t *testing.T) {
	r := NewFlattener(testReference()).TehsilDetail(nil, 10, Filter{Year: 2024})

	require.Len(t, r.Rows, 3)
	for i, row := range r.Rows {
		assert.True(t, row.IsTehsilFirst)
		assert.Equal(t, 1, row.TehsilRowSpan)
		assert.Equal(t, "-", row.DisasterTypeName)
		assert.Equal(t, 0, row.DisasterTypeID)
		assert.Equal(t, Stats{}, row.Stats)
		assert.Equal(t, i+1, row.Serial)
	}
	assert.Equal(t, Stats{}, r.Totals)
	assert.True(t, r.ShowDisasterColumn)
}

func TestTehsilDetail_GroupsByDisasterTypeInFirstSeenOrder(t *testing.T) {
	incidents := []models.Incident{
		incident(10, 101, 4, 1, 1),
		incident(10, 101, 1, 2, 2),
		incident(10, 101, 4, 2, 3),
		incident(10, 103, 2, 3, 4),
		incident(20, 201, 1, 1, 100),
	}

	r := NewFlattener(testReference()).TehsilDetail(incidents, 10, Filter{Year: 2024})

	require.Len(t, r.Rows, 4)

	// Tehsil 101: fire first, then flood.
	assert.Equal(t, 101, r.Rows[0].TehsilCode)
	assert.Equal(t, 4, r.Rows[0].DisasterTypeID)
	assert.Equal(t, "आग", r.Rows[0].DisasterTypeName)
	assert.True(t, r.Rows[0].IsTehsilFirst)
	assert.Equal(t, 2, r.Rows[0].TehsilRowSpan)
	assert.Equal(t, Stats{LossOfLife: 1, HouseDamage: 3}, r.Rows[0].Stats)

	assert.Equal(t, 1, r.Rows[1].DisasterTypeID)
	assert.False(t, r.Rows[1].IsTehsilFirst)
	assert.Equal(t, 0, r.Rows[1].TehsilRowSpan)
	assert.Equal(t, Stats{HouseDamage: 2}, r.Rows[1].Stats)

	// Tehsil 102 has nothing.
	assert.Equal(t, 102, r.Rows[2].TehsilCode)
	assert.Equal(t, "-", r.Rows[2].DisasterTypeName)
	assert.Equal(t, 2, r.Rows[2].Serial)

	assert.Equal(t, 103, r.Rows[3].TehsilCode)
	assert.Equal(t, Stats{AnimalLoss: 4}, r.Rows[3].Stats)
	assert.Equal(t, 3, r.Rows[3].Serial)

	// Totals cover district 10 only.
	assert.Equal(t, Stats{LossOfLife: 1, HouseDamage: 5, AnimalLoss: 4}, r.Totals)
}

func TestTehsilDetail_MonthAndDisasterFilter(t *testing.T) {
	august := incident(10, 101, 1, 1, 9)
	august.Month = 8
	incidents := []models.Incident{
		incident(10, 101, 1, 1, 1),
		incident(10, 101, 2, 1, 2),
		august,
	}

	r := NewFlattener(testReference()).TehsilDetail(incidents, 10, Filter{Year: 2024, Month: 7, DisasterTypeID: 1})

	require.Len(t, r.Rows, 3)
	assert.Equal(t, 1, r.Rows[0].TehsilRowSpan)
	assert.Equal(t, Stats{LossOfLife: 1}, r.Rows[0].Stats)
	assert.Equal(t, Stats{LossOfLife: 1}, r.Totals)
	assert.False(t, r.ShowDisasterColumn)
}

func TestDistrictDetail_RowSpans(t *testing.T) {
	incidents := []models.Incident{
		incident(10, 101, 1, 1, 1),
		incident(10, 101, 2, 1, 1),
		incident(10, 101, 4, 1, 1),
		incident(10, 102, 2, 2, 1),
		incident(20, 201, 1, 3, 1),
		incident(30, 301, 1, 4, 8),
	}

	r := NewFlattener(testReference()).DistrictDetail(incidents, Filter{Year: 2024})

	// District 30 has no tehsils and is skipped.
	require.Len(t, r.Rows, 6)
	for _, row := range r.Rows {
		assert.NotEqual(t, 30, row.DistrictCode)
	}

	// Per-district span equals rows under it; per-tehsil spans sum to rows.
	districtRows := map[int]int{}
	districtSpan := map[int]int{}
	tehsilRows := map[int]int{}
	tehsilSpan := map[int]int{}
	for _, row := range r.Rows {
		districtRows[row.DistrictCode]++
		districtSpan[row.DistrictCode] += row.DistrictRowSpan
		tehsilRows[row.TehsilCode]++
		tehsilSpan[row.TehsilCode] += row.TehsilRowSpan
	}
	assert.Equal(t, districtRows, districtSpan)
	assert.Equal(t, tehsilRows, tehsilSpan)
	assert.Equal(t, 3, tehsilSpan[101])
	assert.Equal(t, 1, tehsilSpan[103])

	first := r.Rows[0]
	assert.Equal(t, "bhilai", first.DistrictName)
	assert.True(t, first.IsDistrictFirst)
	assert.Equal(t, 5, first.DistrictRowSpan)
	assert.Equal(t, 1, first.DistrictSerial)

	champa := r.Rows[5]
	assert.Equal(t, "Champa", champa.DistrictName)
	assert.True(t, champa.IsDistrictFirst)
	assert.Equal(t, 1, champa.DistrictRowSpan)
	assert.Equal(t, 2, champa.DistrictSerial)

	for _, row := range r.Rows[1:5] {
		assert.False(t, row.IsDistrictFirst)
		assert.Zero(t, row.DistrictSerial)
	}

	// Grand totals include the skipped district's incidents.
	assert.Equal(t, Stats{LossOfLife: 3, HouseDamage: 1, AnimalLoss: 1, CropDamage: 8}, r.Totals)
	assert.True(t, r.ShowDisasterColumn)
}

func TestDistrictDetail_DisasterFilterHidesColumn(t *testing.T) {
	incidents := []models.Incident{
		incident(10, 101, 1, 1, 1),
		incident(10, 101, 2, 1, 5),
	}

	r := NewFlattener(testReference()).DistrictDetail(incidents, Filter{Year: 2024, DisasterTypeID: 2})

	assert.False(t, r.ShowDisasterColumn)
	assert.Equal(t, Stats{LossOfLife: 5}, r.Totals)
	assert.Equal(t, 2, r.Rows[0].DisasterTypeID)
	assert.Equal(t, 1, r.Rows[0].TehsilRowSpan)
}

func TestPlaceholderRowsAlwaysZero(t *testing.T) {
	incidents := []models.Incident{incident(10, 101, 1, 1, 3)}
	r := NewFlattener(testReference()).DistrictDetail(incidents, Filter{Year: 2024})

	for _, row := range r.Rows {
		if row.DisasterTypeID == 0 {
			assert.Equal(t, "-", row.DisasterTypeName)
			assert.Equal(t, Stats{}, row.Stats)
		}
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDistrictDetail, m)

	m, err = ParseMode("summary")
	require.NoError(t, err)
	assert.Equal(t, ModeDistrictSummary, m)

	_, err = ParseMode("tehsil")
	assert.Error(t, err)
}
