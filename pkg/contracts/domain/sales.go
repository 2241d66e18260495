package domain

// Sentinel values used when a source field cannot be normalized.
const (
	// UnknownValue marks a field whose source cell was absent or unparseable.
	UnknownValue = "UNKNOWN"
	// InvalidSKU marks a product code that had no digits or more than six.
	InvalidSKU = "INVALID"
)

// TransactionType classifies a row by its commercial nature.
type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionGift     TransactionType = "gift"
	TransactionDonation TransactionType = "donation"
	TransactionOther    TransactionType = "other"
)

// String returns the string representation of the transaction type
func (t TransactionType) String() string {
	return string(t)
}

// DeliveryCategory classifies how the customer received the goods.
type DeliveryCategory string

const (
	DeliveryShipped  DeliveryCategory = "shipped"
	DeliveryPickedUp DeliveryCategory = "picked_up"
	DeliveryUnknown  DeliveryCategory = "unknown"
)

// String returns the string representation of the delivery category
func (d DeliveryCategory) String() string {
	return string(d)
}

// RawRow is the schema-validated boundary type for one spreadsheet row.
// Every field is optional; file readers coerce cells to strings and the
// Ingestor normalizes from there. Numeric cells (points, quantities, values,
// spreadsheet date serials) arrive as their textual form.
type RawRow struct {
	ManagementCode  string `json:"management_code,omitempty" validate:"max=256"`
	Sector          string `json:"sector,omitempty" validate:"max=256"`
	CustomerCode    string `json:"customer_code,omitempty" validate:"max=64"`
	CustomerName    string `json:"customer_name,omitempty" validate:"max=512"`
	Points          string `json:"points,omitempty" validate:"max=64"`
	CaptureCycle    string `json:"capture_cycle,omitempty" validate:"max=64"`
	ProductCode     string `json:"product_code,omitempty" validate:"max=64"`
	ProductName     string `json:"product_name,omitempty" validate:"max=512"`
	TransactionType string `json:"transaction_type,omitempty" validate:"max=64"`
	CaptureDate     string `json:"capture_date,omitempty" validate:"max=64"`
	ItemQuantity    string `json:"item_quantity,omitempty" validate:"max=64"`
	PracticedValue  string `json:"practiced_value,omitempty" validate:"max=64"`
	CaptureChannel  string `json:"capture_channel,omitempty" validate:"max=256"`
	DeliveryType    string `json:"delivery_type,omitempty" validate:"max=256"`
	SourceRowIndex  int    `json:"source_row_index" validate:"gte=0"`
}

// CanonicalRecord is the normalized form of one input row. Invalid source
// fields degrade to sentinel values and an error annotation; a record is
// never dropped during ingestion.
type CanonicalRecord struct {
	ManagementCode   string           `json:"management_code"`
	Sector           string           `json:"sector"`
	CustomerName     string           `json:"customer_name"`
	Points           float64          `json:"points"`
	CycleLabel       string           `json:"cycle_label"`
	CycleIndex       int              `json:"cycle_index"`
	SKU              string           `json:"sku"`
	ProductName      string           `json:"product_name"`
	TransactionType  TransactionType  `json:"transaction_type"`
	CaptureDate      string           `json:"capture_date,omitempty"` // YYYY-MM-DD, empty when unknown
	ItemQuantity     float64          `json:"item_quantity"`
	PracticedValue   float64          `json:"practiced_value"` // line total, never multiplied by quantity
	SaleLineValue    float64          `json:"sale_line_value"`
	Channel          string           `json:"channel"`
	DeliveryCategory DeliveryCategory `json:"delivery_category"`
	BasketKey        string           `json:"basket_key"`
	SourceRowIndex   int              `json:"source_row_index"`
	HasErrors        bool             `json:"has_errors"`
	Errors           []string         `json:"errors,omitempty"`
}

// IsSale reports whether the record is a revenue-bearing sale row.
func (r CanonicalRecord) IsSale() bool {
	return r.TransactionType == TransactionSale
}

// IsValid checks the normalization invariants of the record.
func (r CanonicalRecord) IsValid() bool {
	if r.SKU != InvalidSKU && len(r.SKU) != 5 && len(r.SKU) != 6 {
		return false
	}
	if (r.CycleIndex >= 0) != (r.CycleLabel != UnknownValue) {
		return false
	}
	if r.SaleLineValue > 0 && r.TransactionType != TransactionSale {
		return false
	}
	return r.Points >= 0 && r.ItemQuantity >= 0 && r.PracticedValue >= 0 && r.SaleLineValue >= 0
}

// Basket is a synthetic transaction inferred from rows sharing a basket key.
// SKUs are deduplicated; repeated purchases of one SKU count once.
type Basket struct {
	Key          string   `json:"key"`
	Items        []string `json:"items"`
	CustomerName string   `json:"customer_name"`
	CycleLabel   string   `json:"cycle_label"`
	CaptureDate  string   `json:"capture_date,omitempty"`
}

// Size returns the number of distinct SKUs in the basket.
func (b Basket) Size() int {
	return len(b.Items)
}

// Contains reports whether the basket holds the given SKU.
func (b Basket) Contains(sku string) bool {
	for _, item := range b.Items {
		if item == sku {
			return true
		}
	}
	return false
}
