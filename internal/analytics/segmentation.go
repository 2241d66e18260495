package analytics

import (
	"math"
	"sort"

	"salespulse/pkg/contracts/domain"
)

// thresholds holds the population percentiles segmentation is scored against.
type thresholds struct {
	revenueP50 float64
	revenueP75 float64
	revenueP90 float64
	freqP50    float64
	freqP75    float64
}

// percentile computes the p-th percentile of sorted values with linear
// interpolation between order statistics: index = (p/100)*(n-1), interpolated
// between the floor and ceil ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	index := (p / 100) * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// computeThresholds derives the population percentiles from the client set.
func computeThresholds(clients []domain.ClientMetrics) thresholds {
	revenues := make([]float64, 0, len(clients))
	freqs := make([]float64, 0, len(clients))
	for _, c := range clients {
		revenues = append(revenues, c.Revenue)
		freqs = append(freqs, float64(c.Transactions))
	}
	sort.Float64s(revenues)
	sort.Float64s(freqs)

	return thresholds{
		revenueP50: percentile(revenues, 50),
		revenueP75: percentile(revenues, 75),
		revenueP90: percentile(revenues, 90),
		freqP50:    percentile(freqs, 50),
		freqP75:    percentile(freqs, 75),
	}
}

// classify assigns score and segment to every client in place. Scores and
// segments are relative to the population currently under analysis, so they
// are recomputed whenever the filtered record set changes.
func classify(clients []domain.ClientMetrics) {
	if len(clients) == 0 {
		return
	}

	th := computeThresholds(clients)
	for i := range clients {
		clients[i].Score = score(clients[i], th)
		clients[i].Segment = segment(clients[i], th)
	}
}

// score computes the 0-100 heuristic client score: a revenue band, a
// frequency band, a ticket-ratio band and a SKU-variety band.
func score(c domain.ClientMetrics, th thresholds) int {
	total := 0

	switch {
	case c.Revenue >= th.revenueP90:
		total += 40
	case c.Revenue >= th.revenueP75:
		total += 30
	case c.Revenue >= th.revenueP50:
		total += 20
	default:
		total += 10
	}

	freq := float64(c.Transactions)
	switch {
	case freq >= th.freqP75:
		total += 30
	case freq >= th.freqP50:
		total += 20
	default:
		total += 10
	}

	// Ticket band: the client's ticket per purchase measured against the
	// population's median revenue spread over its median frequency. Skipped
	// entirely when the median frequency is zero.
	if th.freqP50 > 0 {
		reference := th.revenueP50 / th.freqP50
		switch {
		case c.TicketPerPurchase >= reference:
			total += 20
		case c.TicketPerPurchase >= reference/2:
			total += 10
		}
	}

	switch {
	case c.DistinctSKUs >= 10:
		total += 10
	case c.DistinctSKUs >= 5:
		total += 5
	}

	return total
}

// segment classifies a client; the first matching rule wins.
func segment(c domain.ClientMetrics, th thresholds) domain.Segment {
	freq := float64(c.Transactions)

	switch {
	case c.Revenue >= th.revenueP90 && freq >= th.freqP75:
		return domain.SegmentVIP
	case c.Revenue >= th.revenueP75 || freq >= th.freqP75:
		return domain.SegmentPotential
	case freq < th.freqP50 && c.ActiveCycles <= 1:
		return domain.SegmentNew
	// Promo hunters buy many cheap items. The branch is skipped when the
	// p75 frequency is zero rather than comparing against a division by zero.
	case th.freqP75 > 0 &&
		c.TicketPerPurchase < th.revenueP50/th.freqP75 &&
		c.ItemsPurchased > th.freqP75:
		return domain.SegmentPromoHunter
	case c.PickupPercent >= 80:
		return domain.SegmentLogisticsSensitive
	default:
		return domain.SegmentOccasional
	}
}
