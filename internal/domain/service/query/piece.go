package query

import (
	"strconv"
	"strings"
)

// Equipment-piece aliases for the attribute search, keyed by the
// category names clients send. Values are item-identity suffixes.
var pieceSuffixes = map[string][]string{ //nolint:gochecknoglobals
	"helmet":     {"_HELMET"},
	"chestplate": {"_CHESTPLATE"},
	"leggings":   {"_LEGGINGS"},
	"boots":      {"_BOOTS"},
	"necklace":   {"_NECKLACE"},
	"cloak":      {"_CLOAK"},
	"belt":       {"_BELT"},
	"bracelet":   {"_BRACELET", "_GAUNTLET"},
}

// ValidPiece reports whether the category is a known alias.
func ValidPiece(piece string) bool {
	_, ok := pieceSuffixes[strings.ToLower(strings.TrimSpace(piece))]
	return ok
}

func matchesPiece(itemName string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(itemName, suffix) {
			return true
		}
	}

	return false
}

// bucketRangeMatches checks a pet bucket's range label against a level:
// "1-80" style ranges match inclusively, bare numbers match exactly,
// "SPECIAL" matches everything.
func bucketRangeMatches(bucketKey string, level float64) bool {
	parts := strings.Split(bucketKey, ";")
	if len(parts) != 2 {
		return false
	}

	bucketRange := strings.TrimSpace(parts[1])

	if strings.Contains(bucketRange, "-") {
		bounds := strings.SplitN(bucketRange, "-", 2)

		low, errLow := strconv.ParseFloat(bounds[0], 64)
		high, errHigh := strconv.ParseFloat(bounds[1], 64)
		if errLow != nil || errHigh != nil {
			return false
		}

		return level >= low && level <= high
	}

	if strings.EqualFold(bucketRange, "SPECIAL") {
		return true
	}

	n, err := strconv.ParseFloat(bucketRange, 64)
	if err != nil {
		return false
	}

	return n == level
}
