package report

import (
	"fmt"

	"github.com/stwalsh4118/sdma/internal/models"
)

// Mode selects the shape of a grouped report.
type Mode string

const (
	// ModeTehsilDetail lists tehsil x disaster type rows of one district.
	ModeTehsilDetail Mode = "tehsil"
	// ModeDistrictDetail lists district x tehsil x disaster type rows of the state.
	ModeDistrictDetail Mode = "detailed"
	// ModeDistrictSummary lists one row per district.
	ModeDistrictSummary Mode = "summary"
)

// ParseMode validates a state report mode. Empty means detailed.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeDistrictDetail, nil
	case ModeDistrictDetail, ModeDistrictSummary:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown report mode %q", s)
	}
}

// Reference is the reference data the flattener reads.
// *taxonomy.Store satisfies it.
type Reference interface {
	Districts() []models.District
	District(code int) (models.District, bool)
	TehsilsOf(districtCode int) []models.Tehsil
	DisasterTypeName(id int) string
}

// Row is one rendered table row. Span fields tell a renderer which cells to
// merge: only the first row of a group carries IsXFirst and the span; the
// following rows of the group carry span 0.
type Row struct {
	Key              string `json:"rowKey"`
	DistrictName     string `json:"districtName,omitempty"`
	TehsilName       string `json:"tehsilName,omitempty"`
	DisasterTypeName string `json:"disasterTypeName,omitempty"`
	Stats            Stats  `json:"stats"`
	Serial           int    `json:"serial,omitempty"`
	DistrictSerial   int    `json:"districtSerial,omitempty"`
	DistrictCode     int    `json:"districtCode,omitempty"`
	TehsilCode       int    `json:"tehsilCode,omitempty"`
	DisasterTypeID   int    `json:"disasterTypeId"`
	DistrictRowSpan  int    `json:"districtRowSpan,omitempty"`
	TehsilRowSpan    int    `json:"tehsilRowSpan,omitempty"`
	IsDistrictFirst  bool   `json:"isDistrictFirst,omitempty"`
	IsTehsilFirst    bool   `json:"isTehsilFirst,omitempty"`
}

// Report is a flattened grouped table plus its grand totals.
type Report struct {
	Mode               Mode   `json:"mode"`
	Filter             Filter `json:"filter"`
	Rows               []Row  `json:"rows"`
	Totals             Stats  `json:"totals"`
	DistrictCode       int    `json:"districtCode,omitempty"`
	ShowDisasterColumn bool   `json:"showDisasterColumn"`
}

// Flattener turns incidents into grouped report rows.
type Flattener struct {
	ref Reference
}

// NewFlattener creates a Flattener over the given reference data.
func NewFlattener(ref Reference) *Flattener {
	return &Flattener{ref: ref}
}

// TehsilDetail builds the single-district report: every reference tehsil of
// the district, each split by disaster type in first-seen order. Tehsils
// without matching incidents get one placeholder row.
func (f *Flattener) TehsilDetail(incidents []models.Incident, districtCode int, filter Filter) Report {
	pool := selectWhere(filter.Apply(incidents), inDistrict(districtCode))

	rows := make([]Row, 0)
	serial := 1
	for _, tehsil := range f.ref.TehsilsOf(districtCode) {
		group := f.tehsilRows(tehsil, pool)
		group[0].Serial = serial
		serial++
		rows = append(rows, group...)
	}

	return Report{
		Mode:               ModeTehsilDetail,
		Filter:             filter,
		DistrictCode:       districtCode,
		Rows:               rows,
		Totals:             Aggregate(pool),
		ShowDisasterColumn: filter.DisasterTypeID == 0,
	}
}

// DistrictDetail builds the state report grouped district > tehsil >
// disaster type. Districts are ordered by local name; districts without any
// reference tehsil are skipped. DistrictSerial counts emitted districts only.
func (f *Flattener) DistrictDetail(incidents []models.Incident, filter Filter) Report {
	pool := filter.Apply(incidents)

	rows := make([]Row, 0)
	districtSerial := 1
	for _, district := range sortDistricts(f.ref.Districts()) {
		tehsils := f.ref.TehsilsOf(district.Code)
		if len(tehsils) == 0 {
			continue
		}

		districtPool := selectWhere(pool, inDistrict(district.Code))
		districtRows := make([]Row, 0, len(tehsils))
		for _, tehsil := range tehsils {
			districtRows = append(districtRows, f.tehsilRows(tehsil, districtPool)...)
		}

		for i := range districtRows {
			districtRows[i].DistrictCode = district.Code
			districtRows[i].DistrictName = district.NameLocal
		}
		districtRows[0].IsDistrictFirst = true
		districtRows[0].DistrictRowSpan = len(districtRows)
		districtRows[0].DistrictSerial = districtSerial
		districtSerial++

		rows = append(rows, districtRows...)
	}

	return Report{
		Mode:               ModeDistrictDetail,
		Filter:             filter,
		Rows:               rows,
		Totals:             Aggregate(pool),
		ShowDisasterColumn: filter.DisasterTypeID == 0,
	}
}

// DistrictSummary builds one row per district, ordered by local name.
func (f *Flattener) DistrictSummary(incidents []models.Incident, filter Filter) Report {
	pool := filter.Apply(incidents)

	districts := sortDistricts(f.ref.Districts())
	rows := make([]Row, 0, len(districts))
	for i, district := range districts {
		rows = append(rows, Row{
			Key:          fmt.Sprintf("dist-%d", district.Code),
			Serial:       i + 1,
			DistrictCode: district.Code,
			DistrictName: district.NameLocal,
			Stats:        Aggregate(selectWhere(pool, inDistrict(district.Code))),
		})
	}

	return Report{
		Mode:   ModeDistrictSummary,
		Filter: filter,
		Rows:   rows,
		Totals: Aggregate(pool),
	}
}

// tehsilRows groups the tehsil's incidents by disaster type. It always
// returns at least one row.
func (f *Flattener) tehsilRows(tehsil models.Tehsil, pool []models.Incident) []Row {
	matches := selectWhere(pool, inTehsil(tehsil.Code))

	if len(matches) == 0 {
		return []Row{{
			Key:              fmt.Sprintf("%d-none", tehsil.Code),
			TehsilCode:       tehsil.Code,
			TehsilName:       tehsil.NameLocal,
			DisasterTypeName: f.ref.DisasterTypeName(0),
			TehsilRowSpan:    1,
			IsTehsilFirst:    true,
		}}
	}

	// Distinct disaster types in order of first occurrence.
	var order []int
	groups := make(map[int][]models.Incident)
	for _, inc := range matches {
		if _, seen := groups[inc.DisasterTypeID]; !seen {
			order = append(order, inc.DisasterTypeID)
		}
		groups[inc.DisasterTypeID] = append(groups[inc.DisasterTypeID], inc)
	}

	rows := make([]Row, 0, len(order))
	for i, typeID := range order {
		row := Row{
			Key:              fmt.Sprintf("%d-%d", tehsil.Code, typeID),
			TehsilCode:       tehsil.Code,
			TehsilName:       tehsil.NameLocal,
			DisasterTypeID:   typeID,
			DisasterTypeName: f.ref.DisasterTypeName(typeID),
			Stats:            Aggregate(groups[typeID]),
		}
		if i == 0 {
			row.IsTehsilFirst = true
			row.TehsilRowSpan = len(order)
		}
		rows = append(rows, row)
	}
	return rows
}
