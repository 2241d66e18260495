package analytics

import (
	"sort"

	"salespulse/pkg/contracts/domain"
)

// CycleRollup aggregates all records per capture cycle, sorted by cycle
// index ascending. Rows with an unknown cycle group under the UNKNOWN label
// with index -1 and therefore sort first.
func CycleRollup(records []domain.CanonicalRecord, includeNonSales bool) []domain.CycleStats {
	type cycleAgg struct {
		stats     domain.CycleStats
		baskets   map[string]struct{}
		customers map[string]struct{}
	}

	includeQuantity := func(r domain.CanonicalRecord) bool {
		return includeNonSales || r.IsSale()
	}

	byCycle := make(map[string]*cycleAgg)
	for _, r := range records {
		agg, ok := byCycle[r.CycleLabel]
		if !ok {
			agg = &cycleAgg{
				stats:     domain.CycleStats{CycleLabel: r.CycleLabel, CycleIndex: r.CycleIndex},
				baskets:   make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			byCycle[r.CycleLabel] = agg
		}
		if r.IsSale() {
			agg.stats.Revenue += r.SaleLineValue
		}
		if includeQuantity(r) {
			agg.stats.Quantity += r.ItemQuantity
		}
		agg.baskets[r.BasketKey] = struct{}{}
		agg.customers[r.CustomerName] = struct{}{}
	}

	rollup := make([]domain.CycleStats, 0, len(byCycle))
	for _, agg := range byCycle {
		agg.stats.Transactions = len(agg.baskets)
		agg.stats.Customers = len(agg.customers)
		rollup = append(rollup, agg.stats)
	}

	sort.Slice(rollup, func(i, j int) bool {
		return rollup[i].CycleIndex < rollup[j].CycleIndex
	})

	return rollup
}
