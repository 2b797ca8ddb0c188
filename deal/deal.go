package deal

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"checkitsa/search"
)

// Verdicts for the too-good-to-be-true check. Unlike the other endpoints
// this is ratio-based, not score-based.
const (
	VerdictCritical = "CRITICAL"
	VerdictWarning  = "WARNING"
	VerdictSafe     = "SAFE"
	VerdictUnknown  = "UNKNOWN"
)

// Listings priced below this fraction of the maximum observed price are
// treated as accessory noise and dropped before averaging.
const outlierFloor = 0.2

// accessoryWords knock out listings for cases, chargers and the like that
// would otherwise drag the market average down.
var accessoryWords = []string{
	"case",
	"cover",
	"screen protector",
	"tempered glass",
	"charger",
	"cable",
	"skin",
	"pouch",
	"strap",
	"holder",
	"adapter",
	"replacement",
}

// Checker prices a product against shopping-search listings.
type Checker struct {
	Provider search.Provider
}

func NewChecker(provider search.Provider) *Checker {
	return &Checker{Provider: provider}
}

// Result is the deal-check response.
type Result struct {
	Product      string  `json:"product"`
	OfferedPrice float64 `json:"offered_price"`
	MarketPrice  float64 `json:"market_price,omitempty"`
	SampleSize   int     `json:"sample_size"`
	Ratio        float64 `json:"ratio,omitempty"`
	Verdict      string  `json:"verdict"`
	Message      string  `json:"message"`
	Timestamp    string  `json:"timestamp"`
}

func (c *Checker) Check(ctx context.Context, product string, offered float64) (Result, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return Result{}, fmt.Errorf("product required")
	}
	if offered <= 0 {
		return Result{}, fmt.Errorf("price must be positive")
	}

	res := Result{
		Product:      product,
		OfferedPrice: offered,
		Verdict:      VerdictUnknown,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	var listings []search.Listing
	if c.Provider != nil {
		listings = c.Provider.Shopping(ctx, product)
	}
	prices := CleanPrices(product, listings)
	if len(prices) == 0 {
		res.Message = "Not enough market data to judge this price. Treat unusually cheap offers with caution."
		return res, nil
	}

	market := MarketPrice(prices)
	ratio := offered / market
	res.MarketPrice = market
	res.SampleSize = len(prices)
	res.Ratio = ratio
	res.Verdict = Classify(ratio)
	res.Message = message(res)
	return res, nil
}

// CleanPrices parses listing prices and removes accessory noise: first by
// title denylist, then by dropping prices under 20% of the observed
// maximum.
func CleanPrices(product string, listings []search.Listing) []float64 {
	var prices []float64
	for _, l := range listings {
		if isAccessory(l.Title) {
			continue
		}
		if p, ok := ParsePrice(l.Price); ok {
			prices = append(prices, p)
		}
	}
	return FilterOutliers(prices)
}

func isAccessory(title string) bool {
	title = strings.ToLower(title)
	for _, w := range accessoryWords {
		if strings.Contains(title, w) {
			return true
		}
	}
	return false
}

// FilterOutliers drops prices below outlierFloor of the maximum. An R200
// phone cover in the results for a phone query must not drag the market
// average toward zero.
func FilterOutliers(prices []float64) []float64 {
	if len(prices) == 0 {
		return nil
	}
	max := prices[0]
	for _, p := range prices[1:] {
		if p > max {
			max = p
		}
	}
	floor := max * outlierFloor
	var clean []float64
	for _, p := range prices {
		if p >= floor {
			clean = append(clean, p)
		}
	}
	return clean
}

// MarketPrice is the median when three or more clean points survive,
// otherwise the mean. Medians resist the odd remaining outlier; with two
// points there is no meaningful median.
func MarketPrice(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	if len(prices) < 3 {
		sum := 0.0
		for _, p := range prices {
			sum += p
		}
		return sum / float64(len(prices))
	}
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Classify maps the offered/market ratio to a verdict. The CRITICAL
// boundary is strict: exactly half the market price is WARNING.
func Classify(ratio float64) string {
	switch {
	case ratio < 0.5:
		return VerdictCritical
	case ratio < 0.75:
		return VerdictWarning
	default:
		return VerdictSafe
	}
}

// ParsePrice handles the price strings shopping results actually carry:
// "R 1,299.00", "R1 299", "ZAR 999.99".
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "ZAR")
	s = strings.TrimPrefix(s, "R")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	// A comma followed by exactly two digits at the end is a decimal comma;
	// any other comma is a thousands separator.
	if i := strings.LastIndex(s, ","); i >= 0 && len(s)-i-1 == 2 && !strings.Contains(s, ".") {
		s = s[:i] + "." + s[i+1:]
	}
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func message(res Result) string {
	switch res.Verdict {
	case VerdictCritical:
		return fmt.Sprintf("This price is %.0f%% below the market average of R%.2f. Deals this steep are a classic scam pattern.",
			(1-res.Ratio)*100, res.MarketPrice)
	case VerdictWarning:
		return fmt.Sprintf("This price is well below the market average of R%.2f. Verify the seller before paying.", res.MarketPrice)
	default:
		return fmt.Sprintf("The price is in line with the market average of R%.2f.", res.MarketPrice)
	}
}
