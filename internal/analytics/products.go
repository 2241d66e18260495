package analytics

import (
	"sort"

	"salespulse/pkg/contracts/domain"
)

// RankProducts aggregates the flag-filtered records per SKU and ranks the
// result by revenue. Rows with the INVALID sentinel SKU are skipped.
func RankProducts(records []domain.CanonicalRecord, includeNonSales bool) []domain.ProductStats {
	type productAgg struct {
		stats     domain.ProductStats
		baskets   map[string]struct{}
		customers map[string]struct{}
	}

	bySKU := make(map[string]*productAgg)
	for _, r := range flagFiltered(records, includeNonSales) {
		if r.SKU == domain.InvalidSKU {
			continue
		}
		agg, ok := bySKU[r.SKU]
		if !ok {
			agg = &productAgg{
				stats:     domain.ProductStats{SKU: r.SKU, ProductName: r.ProductName},
				baskets:   make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			bySKU[r.SKU] = agg
		}
		if agg.stats.ProductName == domain.UnknownValue && r.ProductName != domain.UnknownValue {
			agg.stats.ProductName = r.ProductName
		}
		agg.stats.Quantity += r.ItemQuantity
		if r.IsSale() {
			agg.stats.Revenue += r.SaleLineValue
		}
		agg.baskets[r.BasketKey] = struct{}{}
		agg.customers[r.CustomerName] = struct{}{}
	}

	ranking := make([]domain.ProductStats, 0, len(bySKU))
	for _, agg := range bySKU {
		agg.stats.Transactions = len(agg.baskets)
		agg.stats.DistinctCustomers = len(agg.customers)
		ranking = append(ranking, agg.stats)
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Revenue != ranking[j].Revenue {
			return ranking[i].Revenue > ranking[j].Revenue
		}
		if ranking[i].Quantity != ranking[j].Quantity {
			return ranking[i].Quantity > ranking[j].Quantity
		}
		return ranking[i].SKU < ranking[j].SKU
	})

	return ranking
}
