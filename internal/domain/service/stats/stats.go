// Package stats computes averages and order statistics over bucketed
// auction prices. Quantiles use randomized selection, not a full sort.
package stats

import (
	"math"
	"math/rand"

	"github.com/samber/lo"

	"ah_market/internal/domain/entity"
	"ah_market/internal/store"
)

// Summary holds the order statistics for one item's price sample.
type Summary struct {
	Median float64
	Q1     float64
	IQR    float64
}

// Prices flattens a bucket map into the individual auction prices.
func Prices(buckets store.Buckets) []float64 {
	var prices []float64
	for _, bucket := range buckets {
		for _, a := range bucket {
			prices = append(prices, float64(a.Record.Price))
		}
	}

	return prices
}

// Average is the mean over every individual priced record, independent
// of bucket structure. Returns false for an empty sample.
func Average(buckets store.Buckets) (float64, bool) {
	prices := Prices(buckets)
	if len(prices) == 0 {
		return 0, false
	}

	return lo.Sum(prices) / float64(len(prices)), true
}

// BucketAverages is the per-bucket mean price. An empty bucket reports 0.
func BucketAverages(buckets store.Buckets) map[string]float64 {
	averages := make(map[string]float64, len(buckets))

	for key, bucket := range buckets {
		if len(bucket) == 0 {
			averages[key] = 0
			continue
		}

		sum := lo.SumBy(bucket, func(a entity.ParsedAuction) float64 {
			return float64(a.Record.Price)
		})
		averages[key] = sum / float64(len(bucket))
	}

	return averages
}

// Quantile computes the q-quantile of values with linear interpolation
// between bracketing order statistics. The interpolated result is
// intentionally not rounded. Panics on an empty input; callers guard.
func Quantile(values []float64, q float64) float64 {
	pos := float64(len(values)-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)

	lower := quickSelect(append([]float64(nil), values...), base)
	if rest == 0 {
		return lower
	}

	upper := quickSelect(append([]float64(nil), values...), base+1)

	return lower + rest*(upper-lower)
}

// Summarize returns {median, q1, iqr} for an item's flattened prices,
// or false when fewer than minSamples priced entries exist.
func Summarize(buckets store.Buckets, minSamples int) (Summary, bool) {
	prices := Prices(buckets)
	if len(prices) < minSamples {
		return Summary{}, false
	}

	q1 := Quantile(prices, 0.25)
	q3 := Quantile(prices, 0.75)

	return Summary{
		Median: Quantile(prices, 0.5),
		Q1:     q1,
		IQR:    q3 - q1,
	}, true
}

// quickSelect returns the k-th smallest element (0-based) in expected
// linear time via random-pivot three-way partitioning.
func quickSelect(values []float64, k int) float64 {
	for {
		if len(values) == 1 {
			return values[0]
		}

		pivot := values[rand.Intn(len(values))] //nolint:gosec // selection pivot, not crypto

		var lows, highs []float64
		equal := 0

		for _, v := range values {
			switch {
			case v < pivot:
				lows = append(lows, v)
			case v > pivot:
				highs = append(highs, v)
			default:
				equal++
			}
		}

		switch {
		case k < len(lows):
			values = lows
		case k < len(lows)+equal:
			return pivot
		default:
			k -= len(lows) + equal
			values = highs
		}
	}
}
