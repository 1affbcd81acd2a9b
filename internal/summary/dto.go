package summary

import (
	"time"

	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

// TotalsDTO carries the headline counters of the dashboard.
type TotalsDTO struct {
	Products       int64 `json:"products"`
	ActiveProducts int64 `json:"activeProducts"`
	Quotes         int64 `json:"quotes"`
}

// DayBucketDTO is one day of the quote-intake series. Date is formatted
// YYYY-MM-DD and the series is dense: every day of the window appears even
// when its count is zero.
type DayBucketDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// RecentQuote is a quote row condensed for the dashboard list.
type RecentQuote struct {
	ID            int64         `json:"id"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	Variant       enums.Variant `json:"variant"`
	ItemCount     int64         `json:"itemCount"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// SKUTotal aggregates quoted quantity per SKU across all quotes.
type SKUTotal struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Qty  int64  `json:"qty"`
}

// SummaryDTO is the full dashboard payload.
type SummaryDTO struct {
	Totals          TotalsDTO               `json:"totals"`
	QuotesByVariant map[enums.Variant]int64 `json:"quotesByVariant"`
	DailySeries     []DayBucketDTO          `json:"dailySeries"`
	RecentQuotes    []RecentQuote           `json:"recentQuotes"`
	TopSKUs         []SKUTotal              `json:"topSkus"`
}
