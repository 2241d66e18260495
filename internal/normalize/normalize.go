package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"salespulse/pkg/contracts/domain"
)

var (
	digitRunRe   = regexp.MustCompile(`\d+`)
	cycleRe      = regexp.MustCompile(`(\d{1,2})[/-](\d{4})`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	hyphenRe     = regexp.MustCompile(`\s*-\s*`)
	dashVariants = strings.NewReplacer("–", "-", "—", "-", "−", "-")
)

// Spreadsheet date serials count days from 1899-12-30; day 25569 is the Unix
// epoch (1970-01-01).
const serialEpochOffset = 25569

// ExtractManagementCode extracts a 5-digit management code from a free-text
// or numeric field. The first run of exactly five consecutive digits wins,
// so both a bare "13706" and "13706 - DEPT NAME" resolve to "13706".
func ExtractManagementCode(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.UnknownValue
	}
	for _, run := range digitRunRe.FindAllString(raw, -1) {
		if len(run) == 5 {
			return run
		}
	}
	return domain.UnknownValue
}

// NormalizeSKU strips non-digit characters from a product code and
// left-pads the result to five digits. Codes with no digits or more than
// six digits are invalid. A 6-digit code is returned unpadded and untruncated,
// matching the upstream data where a handful of SKUs legitimately carry six
// digits.
func NormalizeSKU(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) == 0 || len(digits) > 6 {
		return domain.InvalidSKU
	}
	if len(digits) < 5 {
		digits = strings.Repeat("0", 5-len(digits)) + digits
	}
	return digits
}

// Cycle is the parsed form of a capture cycle field (MM/YYYY or MM-YYYY).
type Cycle struct {
	Label string
	Index int
	Month int
	Year  int
}

// ParseCycle parses a capture cycle string. The index is year*12+month so
// consecutive cycles differ by exactly one; an unparseable cycle yields the
// UNKNOWN label and index -1.
func ParseCycle(raw string) Cycle {
	invalid := Cycle{Label: domain.UnknownValue, Index: -1}
	m := cycleRe.FindStringSubmatch(raw)
	if m == nil {
		return invalid
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return invalid
	}
	return Cycle{
		Label: strings.TrimSpace(raw),
		Index: year*12 + month,
		Month: month,
		Year:  year,
	}
}

// CollapseWhitespace trims the string and collapses internal whitespace runs
// to a single space.
func CollapseWhitespace(raw string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
}

// NormalizeCustomerName produces the canonical upper-cased display name.
func NormalizeCustomerName(raw string) string {
	name := CollapseWhitespace(raw)
	if name == "" {
		return domain.UnknownValue
	}
	return strings.ToUpper(name)
}

// CustomerDisplayName resolves the customer identity from the name field
// with a fallback to the customer code when only the code is present.
func CustomerDisplayName(name, code string) string {
	if CollapseWhitespace(name) != "" {
		return NormalizeCustomerName(name)
	}
	if code = strings.TrimSpace(code); code != "" {
		return fmt.Sprintf("CUSTOMER_%s", code)
	}
	return domain.UnknownValue
}

// NormalizeProductName trims and collapses whitespace in a product name.
func NormalizeProductName(raw string) string {
	name := CollapseWhitespace(raw)
	if name == "" {
		return domain.UnknownValue
	}
	return name
}

// NormalizeChannel canonicalizes a capture channel label: whitespace is
// collapsed, en/em-dash and minus variants become an ASCII hyphen, and each
// hyphen gets exactly one space on either side.
func NormalizeChannel(raw string) string {
	channel := CollapseWhitespace(dashVariants.Replace(raw))
	if channel == "" {
		return domain.UnknownValue
	}
	return hyphenRe.ReplaceAllString(channel, " - ")
}

// CategorizeDelivery infers the delivery category from a free-text delivery
// type field via substring match.
func CategorizeDelivery(raw string) domain.DeliveryCategory {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "endereço"), strings.Contains(lower, "endereco"):
		return domain.DeliveryShipped
	case strings.Contains(lower, "retirar"), strings.Contains(lower, "central"):
		return domain.DeliveryPickedUp
	default:
		return domain.DeliveryUnknown
	}
}

// NormalizeTransactionType maps the free-text transaction type to its enum.
// Unrecognized or missing values fall through to Other.
func NormalizeTransactionType(raw string) domain.TransactionType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "venda":
		return domain.TransactionSale
	case "brinde":
		return domain.TransactionGift
	case "doação", "doacao":
		return domain.TransactionDonation
	default:
		return domain.TransactionOther
	}
}

// dateLayouts are tried in order for textual capture dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

// NormalizeCaptureDate parses a capture date cell into YYYY-MM-DD form. The
// cell may hold an ISO or localized date string, or a spreadsheet numeric day
// serial (day 0 = 1899-12-30). An absent or unparseable date yields "".
func NormalizeCaptureDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	// Purely numeric cells are spreadsheet day serials.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		unixDays := serial - serialEpochOffset
		t := time.Unix(int64(unixDays*86400), 0).UTC()
		return t.Format("2006-01-02")
	}
	return ""
}

// ParseNumber parses a numeric cell, tolerating thousands separators and a
// comma decimal separator. The boolean reports whether the cell held a number.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// 1.234,56 -> 1234.56
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SanitizeNumber clamps a parsed number to the non-negative range, falling
// back to def when the value is NaN.
func SanitizeNumber(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Max(0, v)
}

// BasketKey builds the synthetic transaction key. Rows sharing a customer,
// cycle and capture date are treated as one basket.
func BasketKey(customerName, cycleLabel, captureDate string) string {
	key := customerName + "|" + cycleLabel
	if captureDate != "" {
		key += "|" + captureDate
	}
	return key
}
