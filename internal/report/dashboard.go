package report

// PieSlice is one non-empty slice of the dashboard pie chart.
type PieSlice struct {
	Bucket string  `json:"bucket"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Value  float64 `json:"value"`
}

// PieSlices turns totals into pie slices in bucket order, dropping zero
// buckets so colors stay aligned with the remaining slices.
func PieSlices(s Stats) []PieSlice {
	slices := make([]PieSlice, 0, len(Buckets))
	for _, b := range Buckets {
		v := s.Value(b)
		if v <= 0 {
			continue
		}
		slices = append(slices, PieSlice{
			Bucket: b.Key(),
			Label:  b.Label(),
			Color:  b.Color(),
			Value:  v,
		})
	}
	return slices
}
