package report

import (
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

// Bucket is one of the six mutually exclusive damage statistics.
type Bucket int

const (
	LossOfLife Bucket = iota
	HouseDamage
	AnimalLoss
	CropDamage
	GovtAssetLoss
	RoadDamage
)

// Buckets lists every bucket in presentation order.
var Buckets = []Bucket{LossOfLife, HouseDamage, AnimalLoss, CropDamage, GovtAssetLoss, RoadDamage}

type bucketMeta struct {
	key   string
	label string
	color string
}

var bucketInfo = map[Bucket]bucketMeta{
	LossOfLife:    {key: "lossOfLife", label: "जनहानि", color: "#DC2626"},
	HouseDamage:   {key: "houseDamage", label: "मकान क्षति", color: "#EA580C"},
	AnimalLoss:    {key: "animalLoss", label: "पशु हानि", color: "#A16207"},
	CropDamage:    {key: "cropDamage", label: "फसल क्षति", color: "#15803D"},
	GovtAssetLoss: {key: "gplLoss", label: "शासकीय परिसंपत्ति", color: "#4338CA"},
	RoadDamage:    {key: "roadDamage", label: "सड़क क्षति", color: "#374151"},
}

// Key is the stable identifier used in JSON and query parameters.
func (b Bucket) Key() string { return bucketInfo[b].key }

// Label is the localized display name.
func (b Bucket) Label() string { return bucketInfo[b].label }

// Color is the chart series color.
func (b Bucket) Color() string { return bucketInfo[b].color }

// ParseBucket resolves a bucket key.
func ParseBucket(key string) (Bucket, bool) {
	for _, b := range Buckets {
		if b.Key() == key {
			return b, true
		}
	}
	return 0, false
}

// BucketOf classifies an incident's damage into a bucket. ok is false when
// the incident has no damage classification or one outside the five
// canonical damage types.
//
// Road damage is damage type 5 with subtype 9; every other type 5 subtype
// (including none) is government asset loss. Every aggregation in this
// package goes through this function.
func BucketOf(inc models.Incident) (Bucket, bool) {
	switch inc.DamageType() {
	case taxonomy.DamageLossOfLife:
		return LossOfLife, true
	case taxonomy.DamageHouse:
		return HouseDamage, true
	case taxonomy.DamageAnimal:
		return AnimalLoss, true
	case taxonomy.DamageCrop:
		return CropDamage, true
	case taxonomy.DamageGovtAsset:
		if inc.DamageSubtype() == taxonomy.RoadDamageSubtype {
			return RoadDamage, true
		}
		return GovtAssetLoss, true
	default:
		return 0, false
	}
}

// BucketSet is the set of buckets a caller wants included.
type BucketSet map[Bucket]bool

// AllBuckets returns a set with every bucket active.
func AllBuckets() BucketSet {
	set := make(BucketSet, len(Buckets))
	for _, b := range Buckets {
		set[b] = true
	}
	return set
}

// Active returns the active buckets in presentation order.
func (s BucketSet) Active() []Bucket {
	active := make([]Bucket, 0, len(Buckets))
	for _, b := range Buckets {
		if s[b] {
			active = append(active, b)
		}
	}
	return active
}
