package report

import "github.com/stwalsh4118/sdma/internal/models"

// Stats holds the six bucket totals for a set of incidents.
type Stats struct {
	LossOfLife    float64 `json:"lossOfLife"`
	HouseDamage   float64 `json:"houseDamage"`
	AnimalLoss    float64 `json:"animalLoss"`
	CropDamage    float64 `json:"cropDamage"`
	GovtAssetLoss float64 `json:"gplLoss"`
	RoadDamage    float64 `json:"roadDamage"`
}

// Value returns the total of one bucket.
func (s Stats) Value(b Bucket) float64 {
	switch b {
	case LossOfLife:
		return s.LossOfLife
	case HouseDamage:
		return s.HouseDamage
	case AnimalLoss:
		return s.AnimalLoss
	case CropDamage:
		return s.CropDamage
	case GovtAssetLoss:
		return s.GovtAssetLoss
	case RoadDamage:
		return s.RoadDamage
	}
	return 0
}

// Total sums the given buckets.
func (s Stats) Total(buckets ...Bucket) float64 {
	var total float64
	for _, b := range buckets {
		total += s.Value(b)
	}
	return total
}

func (s *Stats) add(b Bucket, qty float64) {
	switch b {
	case LossOfLife:
		s.LossOfLife += qty
	case HouseDamage:
		s.HouseDamage += qty
	case AnimalLoss:
		s.AnimalLoss += qty
	case CropDamage:
		s.CropDamage += qty
	case GovtAssetLoss:
		s.GovtAssetLoss += qty
	case RoadDamage:
		s.RoadDamage += qty
	}
}

// Aggregate sums damage quantities into buckets. The caller filters the
// incidents; Aggregate never looks at year, month, district or the deleted
// flag. An empty input yields zero totals.
func Aggregate(incidents []models.Incident) Stats {
	var s Stats
	for _, inc := range incidents {
		if b, ok := BucketOf(inc); ok {
			s.add(b, inc.DamageQuantity)
		}
	}
	return s
}
