package analytics

import (
	"salespulse/pkg/contracts/domain"
)

// flagFiltered returns the records visible to quantity/coverage aggregates.
// Revenue figures never use this: they are sale-only regardless of the flag.
func flagFiltered(records []domain.CanonicalRecord, includeNonSales bool) []domain.CanonicalRecord {
	if includeNonSales {
		return records
	}
	filtered := make([]domain.CanonicalRecord, 0, len(records))
	for _, r := range records {
		if r.IsSale() {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// pointsKey identifies one (customer, cycle) pair for points accumulation.
type pointsKey struct {
	customer string
	cycle    string
}

// maxPointsPerCustomerCycle folds the per-row points snapshots down to one
// value per (customer, cycle) pair. Points are a balance snapshot repeated on
// every row of a cycle, not an additive amount, so the max wins.
func maxPointsPerCustomerCycle(records []domain.CanonicalRecord) map[pointsKey]float64 {
	points := make(map[pointsKey]float64)
	for _, r := range records {
		key := pointsKey{customer: r.CustomerName, cycle: r.CycleLabel}
		if r.Points > points[key] {
			points[key] = r.Points
		}
	}
	return points
}

// Overview computes the headline metrics for the record set.
func Overview(records []domain.CanonicalRecord, includeNonSales bool) domain.OverviewMetrics {
	var m domain.OverviewMetrics
	if len(records) == 0 {
		return m
	}

	saleBaskets := make(map[string]float64)
	saleCustomers := make(map[string]float64)
	customers := make(map[string]struct{})
	skus := make(map[string]struct{})
	transactions := make(map[string]struct{})

	for _, r := range records {
		customers[r.CustomerName] = struct{}{}
		transactions[r.BasketKey] = struct{}{}
		if r.SKU != domain.InvalidSKU {
			skus[r.SKU] = struct{}{}
		}
		if r.IsSale() {
			m.TotalRevenue += r.SaleLineValue
			saleBaskets[r.BasketKey] += r.SaleLineValue
			saleCustomers[r.CustomerName] += r.SaleLineValue
		}
	}

	for _, r := range flagFiltered(records, includeNonSales) {
		m.ItemsSold += r.ItemQuantity
	}

	if len(saleBaskets) > 0 {
		m.AverageTicketPerPurchase = m.TotalRevenue / float64(len(saleBaskets))
	}
	if len(saleCustomers) > 0 {
		m.AverageTicketPerCustomer = m.TotalRevenue / float64(len(saleCustomers))
	}

	m.DistinctCustomers = len(customers)
	m.DistinctSKUs = len(skus)
	m.DistinctTransactions = len(transactions)

	for _, pts := range maxPointsPerCustomerCycle(records) {
		m.TotalPoints += pts
	}

	return m
}
