package report

import (
	"sort"

	"github.com/stwalsh4118/sdma/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Locale is the language district names are collated in.
var Locale = language.Hindi

// newCollator returns a fresh collator. collate.Collator keeps internal
// buffers, so one is created per sort rather than shared.
func newCollator() *collate.Collator {
	return collate.New(Locale)
}

// sortDistricts orders districts by local name using locale-aware
// comparison. Equal names keep their input order.
func sortDistricts(districts []models.District) []models.District {
	sorted := append([]models.District(nil), districts...)
	c := newCollator()
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.CompareString(sorted[i].NameLocal, sorted[j].NameLocal) < 0
	})
	return sorted
}
