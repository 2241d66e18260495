package analytics

import (
	"salespulse/internal/normalize"
	"salespulse/pkg/contracts/domain"
)

// rec builds a canonical record the way the ingestor would for a clean row.
func rec(customer, cycle, sku string, qty, value float64, txType domain.TransactionType) domain.CanonicalRecord {
	c := normalize.ParseCycle(cycle)
	saleValue := 0.0
	if txType == domain.TransactionSale {
		saleValue = value
	}
	return domain.CanonicalRecord{
		ManagementCode:   "13706",
		Sector:           "Perfumaria",
		CustomerName:     customer,
		CycleLabel:       c.Label,
		CycleIndex:       c.Index,
		SKU:              sku,
		ProductName:      "PRODUCT " + sku,
		TransactionType:  txType,
		ItemQuantity:     qty,
		PracticedValue:   value,
		SaleLineValue:    saleValue,
		Channel:          "WhatsApp",
		DeliveryCategory: domain.DeliveryUnknown,
		BasketKey:        normalize.BasketKey(customer, c.Label, ""),
	}
}

// fixtureRecords is a small mixed record set shared by the aggregate tests:
// two customers, two cycles, one non-sale row.
func fixtureRecords() []domain.CanonicalRecord {
	a1 := rec("ANA", "01/2026", "00001", 2, 100, domain.TransactionSale)
	a1.Points = 120
	a2 := rec("ANA", "01/2026", "00002", 1, 50, domain.TransactionSale)
	a2.Points = 120
	b1 := rec("BIA", "01/2026", "00001", 5, 30, domain.TransactionGift)
	b1.Points = 10
	b2 := rec("BIA", "02/2026", "00003", 1, 200, domain.TransactionSale)
	b2.Points = 20
	return []domain.CanonicalRecord{a1, a2, b1, b2}
}
