package report

import (
	"sort"

	"github.com/stwalsh4118/sdma/internal/models"
)

// DistrictColumnLabel heads the category column of the district chart.
const DistrictColumnLabel = "District"

// ChartTable is a stacked-series table: Header, then one row per district
// whose first cell is the district name followed by one value per active
// bucket. Colors line up with the value columns.
type ChartTable struct {
	Header []string        `json:"header"`
	Rows   [][]interface{} `json:"rows"`
	Colors []string        `json:"colors"`
	Year   int             `json:"year"`
	Empty  bool            `json:"empty"`
}

type chartRow struct {
	name   string
	values []float64
}

// DistrictChart aggregates a year's live incidents per district over the
// active buckets. Districts missing from reference data are dropped, as are
// districts whose active-bucket total is not positive. Rows are ordered by
// local district name.
func DistrictChart(incidents []models.Incident, year int, active BucketSet, ref Reference) ChartTable {
	buckets := active.Active()

	header := make([]string, 0, len(buckets)+1)
	header = append(header, DistrictColumnLabel)
	colors := make([]string, 0, len(buckets))
	for _, b := range buckets {
		header = append(header, b.Label())
		colors = append(colors, b.Color())
	}

	perDistrict := make(map[int]*Stats)
	var codes []int
	for _, inc := range (Filter{Year: year}).Apply(incidents) {
		s, ok := perDistrict[inc.DistrictCode]
		if !ok {
			s = &Stats{}
			perDistrict[inc.DistrictCode] = s
			codes = append(codes, inc.DistrictCode)
		}
		if b, ok := BucketOf(inc); ok {
			s.add(b, inc.DamageQuantity)
		}
	}

	var rows []chartRow
	for _, code := range codes {
		district, ok := ref.District(code)
		if !ok {
			continue
		}
		stats := perDistrict[code]
		if stats.Total(buckets...) <= 0 {
			continue
		}
		values := make([]float64, 0, len(buckets))
		for _, b := range buckets {
			values = append(values, stats.Value(b))
		}
		rows = append(rows, chartRow{name: district.NameLocal, values: values})
	}

	c := newCollator()
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].name, rows[j].name) < 0
	})

	table := ChartTable{
		Header: header,
		Rows:   make([][]interface{}, 0, len(rows)),
		Colors: colors,
		Year:   year,
		Empty:  len(rows) == 0,
	}
	for _, r := range rows {
		cells := make([]interface{}, 0, len(r.values)+1)
		cells = append(cells, r.name)
		for _, v := range r.values {
			cells = append(cells, v)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}
