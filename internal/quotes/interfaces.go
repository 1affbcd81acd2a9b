package quotes

import (
	"context"

	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/mailer"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

// Repository defines quote persistence operations. Quotes are append-only;
// there is no update or delete surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	CreateItems(ctx context.Context, items []models.QuoteItem) error
	FindByID(ctx context.Context, id int64) (*models.Quote, error)
	List(ctx context.Context, input ListQuotesInput) (*pagination.Page[models.Quote], error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier delivers the post-commit intake notification. Delivery is
// best-effort and never affects the response.
type Notifier interface {
	Notify(ctx context.Context, msg mailer.Message) error
}
