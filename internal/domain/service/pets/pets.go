// Package pets maps pet experience to discrete levels and to the
// experience-range buckets used for bucketed price statistics. Buckets
// approximate price tiers so a level-1 and a level-100 pet of the same
// species never land in the same bucket.
package pets

import (
	"fmt"
	"strings"
)

type checkpoint struct {
	level int
	exp   float64
}

// Cumulative experience checkpoints per tier, levels 10..100.
var levelCheckpoints = map[string][]checkpoint{ //nolint:gochecknoglobals
	"UNCOMMON": {
		{10, 1340}, {20, 4955}, {30, 14425}, {40, 37065}, {50, 89285},
		{60, 233285}, {70, 579285}, {80, 1308285}, {90, 2752785}, {100, 5624785},
	},
	"RARE": {
		{10, 2320}, {20, 8820}, {30, 25020}, {40, 61720}, {50, 157720},
		{60, 405720}, {70, 955720}, {80, 2055220}, {90, 4237220}, {100, 8644220},
	},
	"EPIC": {
		{10, 3735}, {20, 14115}, {30, 38665}, {40, 96165}, {50, 254665},
		{60, 629665}, {70, 1410665}, {80, 2957665}, {90, 6034665}, {100, 12626665},
	},
	"LEGENDARY": {
		{10, 8870}, {20, 31510}, {30, 83730}, {40, 227730}, {50, 573730},
		{60, 1302730}, {70, 2747230}, {80, 5619230}, {90, 11686230}, {100, 25353230},
	},
}

type bucketThresholds struct {
	level81  float64
	level100 float64
}

var tierThresholds = map[string]bucketThresholds{ //nolint:gochecknoglobals
	"UNCOMMON":  {level81: 600000, level100: 6000000},
	"RARE":      {level81: 1000000, level100: 9000000},
	"EPIC":      {level81: 1500000, level100: 13000000},
	"LEGENDARY": {level81: 3000000, level100: 25000000},
}

// Golden dragons level past 100; their buckets are discrete rungs.
var goldenDragonRungs = []float64{110, 120, 130, 140, 150, 160, 170, 180, 190, 200} //nolint:gochecknoglobals

const goldenDragonType = "GOLDEN_DRAGON"

// Level returns the highest checkpoint level whose cumulative
// experience is at or below exp, for the given tier. Unrecognized tiers
// and sub-checkpoint experience yield level 1.
func Level(tier string, exp float64) int {
	checkpoints, ok := levelCheckpoints[strings.ToUpper(tier)]
	if !ok {
		return 1
	}

	level := 1
	for _, cp := range checkpoints {
		if exp < cp.exp {
			break
		}
		level = cp.level
	}

	return level
}

// Bucket returns the "{TIER}_{TYPE};{range}" bucket key for a pet.
// Non-golden pets bucket into "1-80", "99" or "100" by per-tier
// thresholds; golden dragons bucket onto the discrete rung ladder, with
// "1-109" below the first rung. Unrecognized tiers bucket as "UNKNOWN".
func Bucket(tier, petType string, exp float64) string {
	tier = strings.ToUpper(tier)
	petType = strings.ToUpper(petType)

	if petType == goldenDragonType {
		return fmt.Sprintf("%s_%s;%s", tier, petType, goldenDragonBucket(exp))
	}

	thresholds, ok := tierThresholds[tier]
	if !ok {
		return fmt.Sprintf("%s_%s;UNKNOWN", tier, petType)
	}

	var bucket string
	switch {
	case exp < thresholds.level81:
		bucket = "1-80"
	case exp < thresholds.level100:
		bucket = "99"
	default:
		bucket = "100"
	}

	return fmt.Sprintf("%s_%s;%s", tier, petType, bucket)
}

func goldenDragonBucket(exp float64) string {
	if exp < goldenDragonRungs[0] {
		return "1-109"
	}

	bucket := goldenDragonRungs[len(goldenDragonRungs)-1]
	for i := 0; i < len(goldenDragonRungs)-1; i++ {
		if exp >= goldenDragonRungs[i] && exp < goldenDragonRungs[i+1] {
			bucket = goldenDragonRungs[i]
			break
		}
	}

	return fmt.Sprintf("%.0f", bucket)
}
