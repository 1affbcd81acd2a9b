package clients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

// Repository defines client persistence operations. WithTx rebinds the
// repository to an open transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	ReplaceAddress(ctx context.Context, clientID uuid.UUID, address *models.Address) error
	List(ctx context.Context, input ListClientsInput) (*pagination.Page[models.Client], error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
