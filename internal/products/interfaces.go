package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

// Repository defines product persistence operations. WithTx rebinds the
// repository to an open transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	ReplaceImages(ctx context.Context, productID int64, images []models.ProductImage) error
	NextOrderIndex(ctx context.Context, variant enums.Variant) (int, error)
	LockVariant(ctx context.Context, variant enums.Variant) error
	List(ctx context.Context, input ListProductsInput) (*pagination.Page[models.Product], error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
