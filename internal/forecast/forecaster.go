// Package forecast fits simple linear regressions to per-SKU demand series
// and projects the next cycle's quantity.
package forecast

import (
	"math"
	"sort"

	"salespulse/pkg/contracts/domain"
)

// minCycles is the fewest distinct cycles a SKU needs before a regression
// is worth fitting.
const minCycles = 3

// Trend thresholds relative to the series mean and the R² cutoffs for the
// confidence grade.
const (
	trendSlopeRatio    = 0.1
	confidenceHighR2   = 0.7
	confidenceMediumR2 = 0.4
)

// Predict builds a demand series per SKU from the records, fits an
// ordinary-least-squares line per series with at least minCycles distinct
// cycles, and returns the predictions sorted by forecast value descending.
// Only sale rows contribute quantity unless includeNonSales is set.
func Predict(records []domain.CanonicalRecord, includeNonSales bool) []domain.Prediction {
	series := buildSeries(records, includeNonSales)

	preds := make([]domain.Prediction, 0, len(series))
	for _, s := range series {
		if len(s.points) < minCycles {
			continue
		}
		preds = append(preds, fit(s))
	}

	sort.Slice(preds, func(i, j int) bool {
		if preds[i].NextCycleForecast != preds[j].NextCycleForecast {
			return preds[i].NextCycleForecast > preds[j].NextCycleForecast
		}
		return preds[i].SKU < preds[j].SKU
	})
	return preds
}

// GrowingProducts filters predictions to growing SKUs the regression is at
// least moderately sure about: growth trend, confidence above low, high
// confidence first, then forecast descending, truncated to the top n.
func GrowingProducts(preds []domain.Prediction, n int) []domain.Prediction {
	growing := make([]domain.Prediction, 0, len(preds))
	for _, p := range preds {
		if p.Trend == domain.TrendGrowth && p.Confidence != domain.ConfidenceLow {
			growing = append(growing, p)
		}
	}

	sort.Slice(growing, func(i, j int) bool {
		hi := growing[i].Confidence == domain.ConfidenceHigh
		hj := growing[j].Confidence == domain.ConfidenceHigh
		if hi != hj {
			return hi
		}
		if growing[i].NextCycleForecast != growing[j].NextCycleForecast {
			return growing[i].NextCycleForecast > growing[j].NextCycleForecast
		}
		return growing[i].SKU < growing[j].SKU
	})

	if n > 0 && len(growing) > n {
		growing = growing[:n]
	}
	return growing
}

type demandSeries struct {
	sku         string
	productName string
	points      []domain.CyclePoint
}

// buildSeries sums flag-filtered quantity per (SKU, cycle) and returns one
// cycle-ordered series per SKU, sorted by SKU for stable iteration.
func buildSeries(records []domain.CanonicalRecord, includeNonSales bool) []demandSeries {
	type cycleKey struct {
		sku   string
		index int
	}

	quantities := make(map[cycleKey]float64)
	labels := make(map[cycleKey]string)
	names := make(map[string]string)
	for _, r := range records {
		if r.SKU == domain.InvalidSKU || r.CycleIndex < 0 {
			continue
		}
		if !includeNonSales && !r.IsSale() {
			continue
		}

		key := cycleKey{sku: r.SKU, index: r.CycleIndex}
		quantities[key] += r.ItemQuantity
		labels[key] = r.CycleLabel
		if names[r.SKU] == "" || names[r.SKU] == domain.UnknownValue {
			names[r.SKU] = r.ProductName
		}
	}

	bySKU := make(map[string][]domain.CyclePoint)
	for key, qty := range quantities {
		bySKU[key.sku] = append(bySKU[key.sku], domain.CyclePoint{
			CycleLabel: labels[key],
			CycleIndex: key.index,
			Quantity:   qty,
		})
	}

	series := make([]demandSeries, 0, len(bySKU))
	for sku, points := range bySKU {
		sort.Slice(points, func(i, j int) bool {
			return points[i].CycleIndex < points[j].CycleIndex
		})
		series = append(series, demandSeries{sku: sku, productName: names[sku], points: points})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].sku < series[j].sku
	})
	return series
}

// fit runs an ordinary least squares regression of quantity against the
// zero-based cycle offset and derives forecast, trend and confidence.
func fit(s demandSeries) domain.Prediction {
	n := float64(len(s.points))
	minIndex := s.points[0].CycleIndex

	var sumX, sumY float64
	for _, p := range s.points {
		sumX += float64(p.CycleIndex - minIndex)
		sumY += p.Quantity
	}
	meanX := sumX / n
	meanY := sumY / n

	var ssXY, ssXX float64
	for _, p := range s.points {
		dx := float64(p.CycleIndex-minIndex) - meanX
		ssXY += dx * (p.Quantity - meanY)
		ssXX += dx * dx
	}

	slope := 0.0
	if ssXX != 0 {
		slope = ssXY / ssXX
	}
	intercept := meanY - slope*meanX

	var ssRes, ssTot, absErr float64
	for _, p := range s.points {
		predicted := intercept + slope*float64(p.CycleIndex-minIndex)
		residual := p.Quantity - predicted
		ssRes += residual * residual
		ssTot += (p.Quantity - meanY) * (p.Quantity - meanY)
		absErr += math.Abs(residual)
	}

	rSquared := 0.0
	if ssTot != 0 {
		rSquared = 1 - ssRes/ssTot
	}

	maxX := float64(s.points[len(s.points)-1].CycleIndex - minIndex)
	forecast := int(math.Round(intercept + slope*(maxX+1)))
	if forecast < 0 {
		forecast = 0
	}

	return domain.Prediction{
		SKU:               s.sku,
		ProductName:       s.productName,
		History:           s.points,
		NextCycleForecast: forecast,
		Trend:             classifyTrend(slope, meanY),
		Confidence:        classifyConfidence(rSquared),
		RSquared:          rSquared,
		MeanAbsoluteError: math.Round(absErr/n*10) / 10,
	}
}

func classifyTrend(slope, meanY float64) domain.Trend {
	threshold := trendSlopeRatio * meanY
	switch {
	case slope > threshold:
		return domain.TrendGrowth
	case slope < -threshold:
		return domain.TrendDecline
	default:
		return domain.TrendStable
	}
}

func classifyConfidence(rSquared float64) domain.Confidence {
	switch {
	case rSquared >= confidenceHighR2:
		return domain.ConfidenceHigh
	case rSquared >= confidenceMediumR2:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
