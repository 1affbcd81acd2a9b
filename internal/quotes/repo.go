package quotes

import (
	"context"

	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a quotes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Omit("Items").Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *repository) CreateItems(ctx context.Context, items []models.QuoteItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List returns one page of quotes newest-first, items always included.
func (r *repository) List(ctx context.Context, input ListQuotesInput) (*pagination.Page[models.Quote], error) {
	params := pagination.Params{Take: input.Take, Skip: input.Skip}.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Quote{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Order("id DESC").
		Limit(params.Take).
		Offset(params.Skip).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &pagination.Page[models.Quote]{Items: rows, Total: total}, nil
}
