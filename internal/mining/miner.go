// Package mining computes pairwise co-occurrence statistics over synthetic
// baskets: support, confidence and lift for every unordered SKU pair that
// clears a minimum-support threshold.
package mining

import (
	"math"
	"sort"

	"salespulse/pkg/contracts/domain"
)

// DefaultMinSupport keeps pairs seen in at least 0.1% of baskets.
const DefaultMinSupport = 0.001

// liftTieEpsilon treats lifts within this distance as a tie, broken by
// support.
const liftTieEpsilon = 0.01

type pairKey struct {
	a string
	b string
}

// Mine counts item and pair occurrences across the baskets and returns the
// pairs whose support reaches minSupport, sorted by lift descending. The
// pass over each basket is quadratic in basket size, so cost grows with the
// square of the largest basket; synthetic baskets hold a handful of items
// and keep this cheap in practice.
func Mine(baskets []domain.Basket, minSupport float64) []domain.BasketPair {
	total := len(baskets)
	if total == 0 {
		return nil
	}
	if minSupport <= 0 {
		minSupport = DefaultMinSupport
	}

	itemCounts := make(map[string]int)
	pairCounts := make(map[pairKey]int)
	for _, b := range baskets {
		// Items arrive deduped and sorted from the builder, which keeps
		// every pair key canonical (a < b) without re-sorting here.
		for i, a := range b.Items {
			itemCounts[a]++
			for _, other := range b.Items[i+1:] {
				pairCounts[pairKey{a: a, b: other}]++
			}
		}
	}

	pairs := make([]domain.BasketPair, 0, len(pairCounts))
	for key, occurrences := range pairCounts {
		support := float64(occurrences) / float64(total)
		if support < minSupport {
			continue
		}

		supportA := float64(itemCounts[key.a]) / float64(total)
		supportB := float64(itemCounts[key.b]) / float64(total)

		confidence := 0.0
		if supportA > 0 {
			confidence = support / supportA
		}
		lift := 0.0
		if supportB > 0 {
			lift = confidence / supportB
		}

		pairs = append(pairs, domain.BasketPair{
			ItemA:       key.a,
			ItemB:       key.b,
			Occurrences: occurrences,
			Support:     support,
			Confidence:  confidence,
			Lift:        lift,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if math.Abs(pairs[i].Lift-pairs[j].Lift) < liftTieEpsilon {
			if pairs[i].Support != pairs[j].Support {
				return pairs[i].Support > pairs[j].Support
			}
			if pairs[i].ItemA != pairs[j].ItemA {
				return pairs[i].ItemA < pairs[j].ItemA
			}
			return pairs[i].ItemB < pairs[j].ItemB
		}
		return pairs[i].Lift > pairs[j].Lift
	})
	return pairs
}
