// Package basket groups canonical records into synthetic transactions.
// Spreadsheet exports carry no order identifier, so a basket is inferred
// from the customer, cycle and capture date shared by a run of rows.
package basket

import (
	"sort"

	"salespulse/pkg/contracts/domain"
)

// Build groups records into baskets keyed by their basket key. Only sale
// rows contribute unless includeNonSales is set, and rows without a usable
// SKU are discarded. SKUs repeated within one basket count once. Output is
// sorted by key so repeated runs over the same records produce identical
// baskets.
func Build(records []domain.CanonicalRecord, includeNonSales bool) []domain.Basket {
	byKey := make(map[string]*domain.Basket)
	seen := make(map[string]map[string]bool)

	for _, r := range records {
		if !includeNonSales && !r.IsSale() {
			continue
		}
		if r.SKU == domain.InvalidSKU {
			continue
		}

		b, ok := byKey[r.BasketKey]
		if !ok {
			b = &domain.Basket{
				Key:          r.BasketKey,
				CustomerName: r.CustomerName,
				CycleLabel:   r.CycleLabel,
				CaptureDate:  r.CaptureDate,
			}
			byKey[r.BasketKey] = b
			seen[r.BasketKey] = make(map[string]bool)
		}
		if !seen[r.BasketKey][r.SKU] {
			seen[r.BasketKey][r.SKU] = true
			b.Items = append(b.Items, r.SKU)
		}
	}

	baskets := make([]domain.Basket, 0, len(byKey))
	for _, b := range byKey {
		sort.Strings(b.Items)
		baskets = append(baskets, *b)
	}
	sort.Slice(baskets, func(i, j int) bool {
		return baskets[i].Key < baskets[j].Key
	})
	return baskets
}
