package summary

import (
	"context"
	"time"

	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

// DayCount is one aggregated group-by-day row. Day is formatted YYYY-MM-DD.
type DayCount struct {
	Day   string
	Count int64
}

// Repository exposes the aggregate queries the dashboard is built from.
type Repository interface {
	CountProducts(ctx context.Context, activeOnly bool) (int64, error)
	CountQuotes(ctx context.Context) (int64, error)
	CountQuotesByVariant(ctx context.Context) (map[enums.Variant]int64, error)
	QuotesPerDay(ctx context.Context, since time.Time) ([]DayCount, error)
	RecentQuotes(ctx context.Context, limit int) ([]RecentQuote, error)
	TopSKUs(ctx context.Context, limit int) ([]SKUTotal, error)
}
