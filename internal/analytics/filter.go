package analytics

import (
	"strings"

	"salespulse/pkg/contracts/domain"
)

// FilterOptions is the boundary filter contract applied by callers before
// handing records to the aggregation functions. Empty sets and empty search
// strings match everything.
type FilterOptions struct {
	ManagementCodes    []string                  `json:"management_codes,omitempty"`
	Sectors            []string                  `json:"sectors,omitempty"`
	CycleLabels        []string                  `json:"cycle_labels,omitempty"`
	Channels           []string                  `json:"channels,omitempty"`
	DeliveryCategories []domain.DeliveryCategory `json:"delivery_categories,omitempty"`
	CustomerSearch     string                    `json:"customer_search,omitempty"`
	ProductSearch      string                    `json:"product_search,omitempty"`
}

// Apply returns the records matching every configured criterion.
func (f FilterOptions) Apply(records []domain.CanonicalRecord) []domain.CanonicalRecord {
	filtered := make([]domain.CanonicalRecord, 0, len(records))
	for _, r := range records {
		if f.matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (f FilterOptions) matches(r domain.CanonicalRecord) bool {
	if !inSet(f.ManagementCodes, r.ManagementCode) {
		return false
	}
	if !inSet(f.Sectors, r.Sector) {
		return false
	}
	if !inSet(f.CycleLabels, r.CycleLabel) {
		return false
	}
	if !inSet(f.Channels, r.Channel) {
		return false
	}
	if len(f.DeliveryCategories) > 0 {
		found := false
		for _, cat := range f.DeliveryCategories {
			if cat == r.DeliveryCategory {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CustomerSearch != "" &&
		!strings.Contains(strings.ToLower(r.CustomerName), strings.ToLower(f.CustomerSearch)) {
		return false
	}
	if f.ProductSearch != "" {
		needle := strings.ToLower(f.ProductSearch)
		if !strings.Contains(strings.ToLower(r.ProductName), needle) &&
			!strings.Contains(strings.ToLower(r.SKU), needle) {
			return false
		}
	}
	return true
}

func inSet(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
