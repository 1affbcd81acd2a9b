package summary

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a summary repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountProducts(ctx context.Context, activeOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountQuotes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Quote{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountQuotesByVariant(ctx context.Context) (map[enums.Variant]int64, error) {
	var rows []struct {
		Variant enums.Variant
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("variant, COUNT(*) AS count").
		Group("variant").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.Variant]int64, len(rows))
	for _, row := range rows {
		counts[row.Variant] = row.Count
	}
	return counts, nil
}

// QuotesPerDay groups quote creation timestamps by calendar day. Days with
// no quotes produce no row; the service densifies the series.
func (r *repository) QuotesPerDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("date(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("date(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) RecentQuotes(ctx context.Context, limit int) ([]RecentQuote, error) {
	var rows []RecentQuote
	err := r.db.WithContext(ctx).
		Table("quotes").
		Select("quotes.id, quotes.customer_name, quotes.customer_email, quotes.variant, quotes.created_at, COUNT(quote_items.id) AS item_count").
		Joins("LEFT JOIN quote_items ON quote_items.quote_id = quotes.id").
		Group("quotes.id, quotes.customer_name, quotes.customer_email, quotes.variant, quotes.created_at").
		Order("quotes.created_at DESC").
		Order("quotes.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) TopSKUs(ctx context.Context, limit int) ([]SKUTotal, error) {
	var rows []SKUTotal
	err := r.db.WithContext(ctx).
		Table("quote_items").
		Select("sku, MAX(name) AS name, SUM(qty) AS qty").
		Group("sku").
		Order("qty DESC").
		Order("sku ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
