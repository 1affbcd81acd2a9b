package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/bmimportados/backoffice-backend/pkg/errors"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

// Service exposes client record operations to the controllers.
type Service interface {
	Create(ctx context.Context, input CreateClientInput) (*ClientDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*ClientDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClientDTO, error)
	List(ctx context.Context, input ListClientsInput) (*pagination.Page[*ClientDTO], error)
}

type service struct {
	repo Repository
	tx   TxRunner
}

// NewService builds a clients service with the provided dependencies.
func NewService(repo Repository, tx TxRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("clients repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateClientInput) (*ClientDTO, error) {
	name := strings.TrimSpace(input.Name)
	tel := strings.TrimSpace(input.Tel)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if tel == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tel is required")
	}

	client := &models.Client{
		Name:  name,
		Email: normalizePtr(input.Email),
		Tel:   tel,
		CPF:   normalizePtr(input.CPF),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, client); err != nil {
			return err
		}
		if address := addressModel(input.Address, client.ID); address != nil {
			return repo.ReplaceAddress(ctx, client.ID, address)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client")
	}

	return s.GetByID(ctx, client.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*ClientDTO, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		client.Name = name
	}
	if input.Tel != nil {
		tel := strings.TrimSpace(*input.Tel)
		if tel == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tel cannot be blank")
		}
		client.Tel = tel
	}
	if input.Email != nil {
		client.Email = normalizePtr(input.Email)
	}
	if input.CPF != nil {
		client.CPF = normalizePtr(input.CPF)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Update(ctx, client); err != nil {
			return err
		}
		// Every update replaces the stored address: a non-empty payload
		// address becomes the new row, anything else clears it.
		return repo.ReplaceAddress(ctx, client.ID, addressModel(input.Address, client.ID))
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update client")
	}

	return s.GetByID(ctx, client.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	return FromModel(client), nil
}

func (s *service) List(ctx context.Context, input ListClientsInput) (*pagination.Page[*ClientDTO], error) {
	page, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}

	items := make([]*ClientDTO, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, FromModel(&page.Items[i]))
	}
	return &pagination.Page[*ClientDTO]{Items: items, Total: page.Total}, nil
}

func addressModel(input *AddressInput, clientID uuid.UUID) *models.Address {
	if input == nil || input.IsEmpty() {
		return nil
	}
	address := input.toModel(clientID)
	return &address
}

func normalizePtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
