package products

import (
	"context"
	"hash/fnv"
	"strings"

	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create inserts the product row; images are written separately through
// ReplaceImages.
func (r *repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Images").Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Images").Save(product).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ReplaceImages swaps the product's image set. An empty slice clears it.
func (r *repository) ReplaceImages(ctx context.Context, productID int64, images []models.ProductImage) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ProductID = productID
	}
	return tx.Create(&images).Error
}

// NextOrderIndex returns max(order_index)+1 for the variant, starting at 0.
// Callers must hold the variant lock when assigning the result.
func (r *repository) NextOrderIndex(ctx context.Context, variant enums.Variant) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("variant = ?", variant).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// LockVariant takes a transaction-scoped advisory lock keyed on the variant,
// serializing order-index assignment across concurrent creates. Released
// automatically at commit or rollback.
func (r *repository) LockVariant(ctx context.Context, variant enums.Variant) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", variantLockKey(variant)).Error
}

func variantLockKey(variant enums.Variant) int64 {
	h := fnv.New64a()
	h.Write([]byte("products:order_index:"))
	h.Write([]byte(variant))
	return int64(h.Sum64())
}

// List returns one page of products ordered by order_index then recency, with
// the total row count for the filter.
func (r *repository) List(ctx context.Context, input ListProductsInput) (*pagination.Page[models.Product], error) {
	params := pagination.Params{Take: input.Take, Skip: input.Skip}.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.Product{})
	if search := strings.TrimSpace(input.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(sku) LIKE ?)", pattern, pattern)
	}
	if input.Variant != nil {
		qb = qb.Where("variant = ?", *input.Variant)
	}
	if input.ActiveOnly {
		qb = qb.Where("active = ?", true)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Product
	err := qb.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("order_index ASC").
		Order("created_at DESC").
		Limit(params.Take).
		Offset(params.Skip).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &pagination.Page[models.Product]{Items: rows, Total: total}, nil
}
