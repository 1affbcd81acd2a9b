package clients

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/bmimportados/backoffice-backend/pkg/errors"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

type fakeRepo struct {
	clients   map[uuid.UUID]*models.Client
	addresses map[uuid.UUID]*models.Address

	replaceCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:   map[uuid.UUID]*models.Client{},
		addresses: map[uuid.UUID]*models.Address{},
	}
}

func (f *fakeRepo) WithTx(_ *gorm.DB) Repository {
	return f
}

func (f *fakeRepo) Create(_ context.Context, client *models.Client) (*models.Client, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	copied := *client
	f.clients[client.ID] = &copied
	return client, nil
}

func (f *fakeRepo) Update(_ context.Context, client *models.Client) error {
	copied := *client
	copied.Address = nil
	f.clients[client.ID] = &copied
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.clients[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.clients, id)
	delete(f.addresses, id)
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *client
	if address, ok := f.addresses[id]; ok {
		addrCopy := *address
		copied.Address = &addrCopy
	}
	return &copied, nil
}

func (f *fakeRepo) ReplaceAddress(_ context.Context, clientID uuid.UUID, address *models.Address) error {
	f.replaceCalls++
	delete(f.addresses, clientID)
	if address != nil {
		if address.ID == uuid.Nil {
			address.ID = uuid.New()
		}
		copied := *address
		f.addresses[clientID] = &copied
	}
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ ListClientsInput) (*pagination.Page[models.Client], error) {
	items := make([]models.Client, 0, len(f.clients))
	for _, client := range f.clients {
		items = append(items, *client)
	}
	return &pagination.Page[models.Client]{Items: items, Total: int64(len(items))}, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateDropsEmptyAddress(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	empty := ""
	dto, err := svc.Create(context.Background(), CreateClientInput{
		Name: "Oficina Souza",
		Tel:  "11 9000-0000",
		Address: &AddressInput{
			Street: "  ",
			City:   &empty,
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if dto.Address != nil {
		t.Fatalf("expected empty address to be dropped, got %+v", dto.Address)
	}
	if len(repo.addresses) != 0 {
		t.Fatalf("expected no address rows, got %d", len(repo.addresses))
	}
}

func TestCreatePersistsAddress(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), CreateClientInput{
		Name: "Loja Centro",
		Tel:  "11 3333-0000",
		Address: &AddressInput{
			Street:       "Rua Augusta",
			StreetNumber: 100,
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if dto.Address == nil || dto.Address.Street != "Rua Augusta" {
		t.Fatalf("expected persisted address, got %+v", dto.Address)
	}
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := newTestService(t, newFakeRepo())
	ctx := context.Background()

	cases := []CreateClientInput{
		{Name: "", Tel: "11 9000-0000"},
		{Name: "Sem Telefone", Tel: "  "},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestUpdateReplacesAddressWholesale(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateClientInput{
		Name:    "Loja Norte",
		Tel:     "11 3333-0001",
		Address: &AddressInput{Street: "Rua A", StreetNumber: 1},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	firstAddressID := created.Address.ID

	updated, err := svc.Update(ctx, created.ID, UpdateClientInput{
		Address: &AddressInput{Street: "Av. Paulista", StreetNumber: 900},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Address == nil || updated.Address.Street != "Av. Paulista" {
		t.Fatalf("expected replaced address, got %+v", updated.Address)
	}
	if updated.Address.ID == firstAddressID {
		t.Fatalf("expected a fresh address row")
	}
}

func TestUpdateWithEmptyAddressClears(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateClientInput{
		Name:    "Loja Sul",
		Tel:     "11 3333-0002",
		Address: &AddressInput{Street: "Rua B", StreetNumber: 2},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, UpdateClientInput{Address: &AddressInput{}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Address != nil {
		t.Fatalf("expected address cleared, got %+v", updated.Address)
	}
}

func TestUpdateWithoutAddressClearsStoredRow(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateClientInput{
		Name:    "Loja Leste",
		Tel:     "11 3333-0003",
		Address: &AddressInput{Street: "Rua C", StreetNumber: 3},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "Loja Leste Ltda"
	updated, err := svc.Update(ctx, created.ID, UpdateClientInput{Name: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Loja Leste Ltda" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
	if updated.Address != nil {
		t.Fatalf("expected address cleared on partial update, got %+v", updated.Address)
	}
	if len(repo.addresses) != 0 {
		t.Fatalf("expected no address rows, got %d", len(repo.addresses))
	}
}

func TestUpdateMissingClientReturnsNotFound(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, err := svc.Update(context.Background(), uuid.New(), UpdateClientInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteMissingClientReturnsNotFound(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
