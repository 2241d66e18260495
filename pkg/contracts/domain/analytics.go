package domain

// OverviewMetrics holds the headline figures for the record set under
// analysis. Revenue and ticket figures are always sale-only; quantity and
// coverage figures respect the include-non-sales flag.
type OverviewMetrics struct {
	TotalRevenue             float64 `json:"total_revenue"`
	ItemsSold                float64 `json:"items_sold"`
	AverageTicketPerPurchase float64 `json:"average_ticket_per_purchase"`
	AverageTicketPerCustomer float64 `json:"average_ticket_per_customer"`
	DistinctCustomers        int     `json:"distinct_customers"`
	DistinctSKUs             int     `json:"distinct_skus"`
	DistinctTransactions     int     `json:"distinct_transactions"`
	TotalPoints              float64 `json:"total_points"`
}

// ProductStats aggregates one SKU across the record set.
type ProductStats struct {
	SKU               string  `json:"sku"`
	ProductName       string  `json:"product_name"`
	Quantity          float64 `json:"quantity"`
	Revenue           float64 `json:"revenue"`
	Transactions      int     `json:"transactions"`
	DistinctCustomers int     `json:"distinct_customers"`
}

// CycleStats aggregates one reporting cycle (month/year) across the record set.
type CycleStats struct {
	CycleLabel   string  `json:"cycle_label"`
	CycleIndex   int     `json:"cycle_index"`
	Revenue      float64 `json:"revenue"`
	Quantity     float64 `json:"quantity"`
	Transactions int     `json:"transactions"`
	Customers    int     `json:"customers"`
}

// Segment is the heuristic customer classification.
type Segment string

const (
	SegmentVIP                Segment = "vip"
	SegmentPotential          Segment = "potential"
	SegmentNew                Segment = "new"
	SegmentPromoHunter        Segment = "promo_hunter"
	SegmentLogisticsSensitive Segment = "logistics_sensitive"
	SegmentOccasional         Segment = "occasional"
)

// String returns the string representation of the segment
func (s Segment) String() string {
	return string(s)
}

// ClientMetrics aggregates one customer across the record set, including the
// heuristic score and segment derived from the full client population.
type ClientMetrics struct {
	CustomerName         string  `json:"customer_name"`
	Transactions         int     `json:"transactions"`
	ActiveCycles         int     `json:"active_cycles"`
	ItemsPurchased       float64 `json:"items_purchased"`
	Revenue              float64 `json:"revenue"`
	DistinctSKUs         int     `json:"distinct_skus"`
	TicketPerPurchase    float64 `json:"ticket_per_purchase"`
	TicketPerCycle       float64 `json:"ticket_per_cycle"`
	ShippedPercent       float64 `json:"shipped_percent"`
	PickupPercent        float64 `json:"pickup_percent"`
	UnknownPercent       float64 `json:"unknown_percent"`
	DominantChannel      string  `json:"dominant_channel"`
	DominantChannelShare float64 `json:"dominant_channel_share"`
	Points               float64 `json:"points"`
	Score                int     `json:"score"`
	Segment              Segment `json:"segment"`
}

// IsValid checks basic consistency of the client aggregate.
func (c ClientMetrics) IsValid() bool {
	return c.CustomerName != "" && c.Transactions >= 0 && c.ActiveCycles >= 0 &&
		c.Revenue >= 0 && c.Score >= 0 && c.Score <= 100
}

// BasketPair holds the co-occurrence statistics for one unordered SKU pair.
// ItemA sorts lexicographically before ItemB so each pair has one canonical key.
type BasketPair struct {
	ItemA       string  `json:"item_a"`
	ItemB       string  `json:"item_b"`
	Occurrences int     `json:"occurrences"`
	Support     float64 `json:"support"`
	Confidence  float64 `json:"confidence"`
	Lift        float64 `json:"lift"`
}

// Trend classifies the direction of a demand series.
type Trend string

const (
	TrendGrowth  Trend = "growth"
	TrendStable  Trend = "stable"
	TrendDecline Trend = "decline"
)

// Confidence grades how well the regression fits the demand series.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// CyclePoint is one observation of a per-SKU demand series.
type CyclePoint struct {
	CycleLabel string  `json:"cycle_label"`
	CycleIndex int     `json:"cycle_index"`
	Quantity   float64 `json:"quantity"`
}

// Prediction is the next-cycle demand forecast for one SKU.
type Prediction struct {
	SKU               string       `json:"sku"`
	ProductName       string       `json:"product_name"`
	History           []CyclePoint `json:"history"`
	NextCycleForecast int          `json:"next_cycle_forecast"`
	Trend             Trend        `json:"trend"`
	Confidence        Confidence   `json:"confidence"`
	RSquared          float64      `json:"r_squared"`
	MeanAbsoluteError float64      `json:"mean_absolute_error"`
}

// IsValid checks basic consistency of the prediction.
func (p Prediction) IsValid() bool {
	return p.SKU != "" && p.SKU != InvalidSKU && len(p.History) >= 3 &&
		p.NextCycleForecast >= 0 && p.RSquared >= 0 && p.RSquared <= 1
}
