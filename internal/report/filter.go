package report

import "github.com/stwalsh4118/sdma/internal/models"

// Filter narrows the incident pool before grouping. Zero Month or
// DisasterTypeID means "all".
type Filter struct {
	Year           int `json:"year"`
	Month          int `json:"month,omitempty"`
	DisasterTypeID int `json:"disasterTypeId,omitempty"`
}

// Matches reports whether a live incident falls inside the filter.
// Soft-deleted incidents never match.
func (f Filter) Matches(inc models.Incident) bool {
	if inc.IsDeleted || inc.Year != f.Year {
		return false
	}
	if f.Month != 0 && inc.Month != f.Month {
		return false
	}
	if f.DisasterTypeID != 0 && inc.DisasterTypeID != f.DisasterTypeID {
		return false
	}
	return true
}

// Apply returns the incidents matching the filter, preserving order.
func (f Filter) Apply(incidents []models.Incident) []models.Incident {
	return selectWhere(incidents, f.Matches)
}

func selectWhere(incidents []models.Incident, keep func(models.Incident) bool) []models.Incident {
	out := make([]models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if keep(inc) {
			out = append(out, inc)
		}
	}
	return out
}

func inDistrict(code int) func(models.Incident) bool {
	return func(inc models.Incident) bool { return inc.DistrictCode == code }
}

func inTehsil(code int) func(models.Incident) bool {
	return func(inc models.Incident) bool { return inc.TehsilCode == code }
}
