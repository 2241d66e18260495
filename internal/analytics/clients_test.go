package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func TestBuildClientMetrics(t *testing.T) {
	clients := BuildClientMetrics(fixtureRecords(), false)
	require.Len(t, clients, 2)

	// Sorted by revenue descending.
	bia, ana := clients[0], clients[1]
	require.Equal(t, "BIA", bia.CustomerName)
	require.Equal(t, "ANA", ana.CustomerName)

	assert.Equal(t, 1, ana.Transactions)
	assert.Equal(t, 1, ana.ActiveCycles)
	assert.InDelta(t, 3.0, ana.ItemsPurchased, 1e-9)
	assert.InDelta(t, 150.0, ana.Revenue, 1e-9)
	assert.Equal(t, 2, ana.DistinctSKUs)
	assert.InDelta(t, 150.0, ana.TicketPerPurchase, 1e-9)
	assert.InDelta(t, 150.0, ana.TicketPerCycle, 1e-9)
	assert.Equal(t, "WhatsApp", ana.DominantChannel)
	assert.InDelta(t, 100.0, ana.DominantChannelShare, 1e-9)
	assert.InDelta(t, 120.0, ana.Points, 1e-9)
	assert.True(t, ana.IsValid())

	// BIA's gift basket still counts as a transaction; only the sale carries
	// revenue, and the gift quantity is excluded with the flag off.
	assert.Equal(t, 2, bia.Transactions)
	assert.Equal(t, 2, bia.ActiveCycles)
	assert.InDelta(t, 1.0, bia.ItemsPurchased, 1e-9)
	assert.InDelta(t, 200.0, bia.Revenue, 1e-9)
	assert.InDelta(t, 100.0, bia.TicketPerPurchase, 1e-9)
	assert.InDelta(t, 30.0, bia.Points, 1e-9)
}

func TestBuildClientMetrics_IncludeNonSales(t *testing.T) {
	clients := BuildClientMetrics(fixtureRecords(), true)
	require.Len(t, clients, 2)

	assert.Equal(t, "BIA", clients[0].CustomerName)
	assert.InDelta(t, 6.0, clients[0].ItemsPurchased, 1e-9)
	assert.InDelta(t, 200.0, clients[0].Revenue, 1e-9)
}

func TestBuildClientMetrics_DeliveryPercentages(t *testing.T) {
	shipped := rec("CLI", "01/2026", "00001", 1, 10, domain.TransactionSale)
	shipped.DeliveryCategory = domain.DeliveryShipped
	pickupA := rec("CLI", "01/2026", "00002", 1, 10, domain.TransactionSale)
	pickupA.DeliveryCategory = domain.DeliveryPickedUp
	pickupB := rec("CLI", "02/2026", "00003", 1, 10, domain.TransactionSale)
	pickupB.DeliveryCategory = domain.DeliveryPickedUp
	unknown := rec("CLI", "02/2026", "00004", 1, 10, domain.TransactionSale)

	clients := BuildClientMetrics([]domain.CanonicalRecord{shipped, pickupA, pickupB, unknown}, false)
	require.Len(t, clients, 1)

	c := clients[0]
	assert.InDelta(t, 25.0, c.ShippedPercent, 1e-9)
	assert.InDelta(t, 50.0, c.PickupPercent, 1e-9)
	assert.InDelta(t, 25.0, c.UnknownPercent, 1e-9)
}

func TestBuildClientMetrics_DominantChannel(t *testing.T) {
	a := rec("CLI", "01/2026", "00001", 1, 10, domain.TransactionSale)
	a.Channel = "WhatsApp"
	b := rec("CLI", "01/2026", "00002", 1, 10, domain.TransactionSale)
	b.Channel = "Loja - Centro"
	c := rec("CLI", "02/2026", "00003", 1, 10, domain.TransactionSale)
	c.Channel = "WhatsApp"

	clients := BuildClientMetrics([]domain.CanonicalRecord{a, b, c}, false)
	require.Len(t, clients, 1)
	assert.Equal(t, "WhatsApp", clients[0].DominantChannel)
	assert.InDelta(t, 100.0*2/3, clients[0].DominantChannelShare, 1e-9)
}

func TestBuildClientMetrics_Empty(t *testing.T) {
	assert.Empty(t, BuildClientMetrics(nil, false))
}

func TestDominantChannel_TieBreaksLexicographically(t *testing.T) {
	channel, share := dominantChannel(map[string]int{"B": 2, "A": 2}, 4)
	assert.Equal(t, "A", channel)
	assert.InDelta(t, 50.0, share, 1e-9)
}
