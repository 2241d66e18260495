package analytics

import (
	"sort"

	"salespulse/pkg/contracts/domain"
)

// clientAgg is the intermediate per-customer accumulator.
type clientAgg struct {
	name           string
	baskets        map[string]struct{}
	cycles         map[string]struct{}
	skus           map[string]struct{}
	channelCounts  map[string]int
	deliveryCounts map[domain.DeliveryCategory]int
	pointsPerCycle map[string]float64
	items          float64
	revenue        float64
	deliveryTotal  int
}

// BuildClientMetrics aggregates all records per customer and derives the
// heuristic score and segment from the resulting client population.
func BuildClientMetrics(records []domain.CanonicalRecord, includeNonSales bool) []domain.ClientMetrics {
	byCustomer := make(map[string]*clientAgg)

	for _, r := range records {
		agg, ok := byCustomer[r.CustomerName]
		if !ok {
			agg = &clientAgg{
				name:           r.CustomerName,
				baskets:        make(map[string]struct{}),
				cycles:         make(map[string]struct{}),
				skus:           make(map[string]struct{}),
				channelCounts:  make(map[string]int),
				deliveryCounts: make(map[domain.DeliveryCategory]int),
				pointsPerCycle: make(map[string]float64),
			}
			byCustomer[r.CustomerName] = agg
		}

		agg.baskets[r.BasketKey] = struct{}{}
		agg.cycles[r.CycleLabel] = struct{}{}
		if r.SKU != domain.InvalidSKU {
			agg.skus[r.SKU] = struct{}{}
		}
		if includeNonSales || r.IsSale() {
			agg.items += r.ItemQuantity
		}
		if r.IsSale() {
			agg.revenue += r.SaleLineValue
		}
		agg.channelCounts[r.Channel]++
		agg.deliveryCounts[r.DeliveryCategory]++
		agg.deliveryTotal++
		if r.Points > agg.pointsPerCycle[r.CycleLabel] {
			agg.pointsPerCycle[r.CycleLabel] = r.Points
		}
	}

	clients := make([]domain.ClientMetrics, 0, len(byCustomer))
	for _, agg := range byCustomer {
		clients = append(clients, agg.toMetrics())
	}

	classify(clients)

	sort.Slice(clients, func(i, j int) bool {
		if clients[i].Revenue != clients[j].Revenue {
			return clients[i].Revenue > clients[j].Revenue
		}
		return clients[i].CustomerName < clients[j].CustomerName
	})

	return clients
}

// toMetrics derives the final per-client figures from the accumulator.
func (agg *clientAgg) toMetrics() domain.ClientMetrics {
	m := domain.ClientMetrics{
		CustomerName:   agg.name,
		Transactions:   len(agg.baskets),
		ActiveCycles:   len(agg.cycles),
		ItemsPurchased: agg.items,
		Revenue:        agg.revenue,
		DistinctSKUs:   len(agg.skus),
	}

	if m.Transactions > 0 {
		m.TicketPerPurchase = m.Revenue / float64(m.Transactions)
	}
	if m.ActiveCycles > 0 {
		m.TicketPerCycle = m.Revenue / float64(m.ActiveCycles)
	}

	if agg.deliveryTotal > 0 {
		total := float64(agg.deliveryTotal)
		m.ShippedPercent = 100 * float64(agg.deliveryCounts[domain.DeliveryShipped]) / total
		m.PickupPercent = 100 * float64(agg.deliveryCounts[domain.DeliveryPickedUp]) / total
		m.UnknownPercent = 100 * float64(agg.deliveryCounts[domain.DeliveryUnknown]) / total
	}

	m.DominantChannel, m.DominantChannelShare = dominantChannel(agg.channelCounts, agg.deliveryTotal)

	for _, pts := range agg.pointsPerCycle {
		m.Points += pts
	}

	return m
}

// dominantChannel returns the most frequent channel and its share of the
// customer's rows. Ties resolve to the lexicographically smaller channel so
// repeated runs produce identical output.
func dominantChannel(counts map[string]int, total int) (string, float64) {
	if total == 0 || len(counts) == 0 {
		return domain.UnknownValue, 0
	}

	best := ""
	bestCount := -1
	for channel, count := range counts {
		if count > bestCount || (count == bestCount && channel < best) {
			best = channel
			bestCount = count
		}
	}

	return best, 100 * float64(bestCount) / float64(total)
}
