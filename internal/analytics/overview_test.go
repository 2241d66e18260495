package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salespulse/pkg/contracts/domain"
)

func TestOverview(t *testing.T) {
	m := Overview(fixtureRecords(), false)

	// Revenue is sale-only: 100 + 50 + 200.
	assert.InDelta(t, 350.0, m.TotalRevenue, 1e-9)
	// Sale-only quantities: 2 + 1 + 1.
	assert.InDelta(t, 4.0, m.ItemsSold, 1e-9)
	// Sale baskets: ANA|01/2026 (150) and BIA|02/2026 (200).
	assert.InDelta(t, 175.0, m.AverageTicketPerPurchase, 1e-9)
	// Sale customers: ANA (150) and BIA (200).
	assert.InDelta(t, 175.0, m.AverageTicketPerCustomer, 1e-9)
	assert.Equal(t, 2, m.DistinctCustomers)
	assert.Equal(t, 3, m.DistinctSKUs)
	// Baskets over all rows: ANA|01, BIA|01 (gift), BIA|02.
	assert.Equal(t, 3, m.DistinctTransactions)
	// Points are max per (customer, cycle): 120 + 10 + 20.
	assert.InDelta(t, 150.0, m.TotalPoints, 1e-9)
}

func TestOverview_IncludeNonSales(t *testing.T) {
	m := Overview(fixtureRecords(), true)

	// Revenue and ticket figures ignore the flag.
	assert.InDelta(t, 350.0, m.TotalRevenue, 1e-9)
	assert.InDelta(t, 175.0, m.AverageTicketPerPurchase, 1e-9)
	// Quantity now counts the gift row as well.
	assert.InDelta(t, 9.0, m.ItemsSold, 1e-9)
}

func TestOverview_Empty(t *testing.T) {
	m := Overview(nil, false)
	assert.Equal(t, domain.OverviewMetrics{}, m)
}

func TestOverview_InvalidSKUExcludedFromDistinct(t *testing.T) {
	records := fixtureRecords()
	bad := rec("ANA", "01/2026", domain.InvalidSKU, 1, 10, domain.TransactionSale)
	records = append(records, bad)

	m := Overview(records, false)
	assert.Equal(t, 3, m.DistinctSKUs)
}

// Re-running the aggregates on identical input yields identical output;
// nothing is memoized between calls.
func TestPipelineIdempotence(t *testing.T) {
	records := fixtureRecords()

	first := Overview(records, false)
	second := Overview(records, false)
	assert.Equal(t, first, second)

	assert.Equal(t, RankProducts(records, false), RankProducts(records, false))
	assert.Equal(t, CycleRollup(records, false), CycleRollup(records, false))
	assert.Equal(t, BuildClientMetrics(records, false), BuildClientMetrics(records, false))
}
