package clients

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a clients repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create inserts the client row without its address; the address is written
// separately through ReplaceAddress.
func (r *repository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := r.db.WithContext(ctx).Omit("Address").Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *repository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Omit("Address").Save(client).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("Address").
		First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// ReplaceAddress swaps the stored address for the provided one. A nil address
// just clears the existing row.
func (r *repository) ReplaceAddress(ctx context.Context, clientID uuid.UUID, address *models.Address) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("client_id = ?", clientID).Delete(&models.Address{}).Error; err != nil {
		return err
	}
	if address == nil {
		return nil
	}
	address.ClientID = clientID
	return tx.Create(address).Error
}

// List returns one page of clients newest-first with the total row count for
// the filter.
func (r *repository) List(ctx context.Context, input ListClientsInput) (*pagination.Page[models.Client], error) {
	params := pagination.Params{Take: input.Take, Skip: input.Skip}.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.Client{})
	if search := strings.TrimSpace(input.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Client
	err := qb.
		Preload("Address").
		Order("created_at DESC").
		Limit(params.Take).
		Offset(params.Skip).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &pagination.Page[models.Client]{Items: rows, Total: total}, nil
}
