package clients

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
)

func setupClientsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Client{}, &models.Address{}))
	return db
}

func strPtr(v string) *string {
	return &v
}

func TestRepositoryClientCRUD(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Client{
		Name:  "Oficina Souza",
		Email: strPtr("souza@example.com"),
		Tel:   "+55 11 99999-0001",
	})
	require.NoError(t, err)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", created.ID.String())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Oficina Souza", found.Name)
	require.Nil(t, found.Address)

	found.Name = "Oficina Souza Ltda"
	require.NoError(t, repo.Update(ctx, found))

	again, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Oficina Souza Ltda", again.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteMissingClient(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)

	client := &models.Client{Name: "Ghost", Tel: "1"}
	require.NoError(t, client.BeforeCreate(nil))
	require.ErrorIs(t, repo.Delete(context.Background(), client.ID), gorm.ErrRecordNotFound)
}

func TestRepositoryReplaceAddressSwapsRow(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client, err := repo.Create(ctx, &models.Client{Name: "Loja Centro", Tel: "11 3333-0000"})
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceAddress(ctx, client.ID, &models.Address{
		Street:       "Rua Augusta",
		StreetNumber: 100,
		City:         strPtr("São Paulo"),
	}))

	first, err := repo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, first.Address)
	require.Equal(t, "Rua Augusta", first.Address.Street)
	firstAddressID := first.Address.ID

	require.NoError(t, repo.ReplaceAddress(ctx, client.ID, &models.Address{
		Street:       "Av. Paulista",
		StreetNumber: 900,
	}))

	second, err := repo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, second.Address)
	require.Equal(t, "Av. Paulista", second.Address.Street)
	require.NotEqual(t, firstAddressID, second.Address.ID)

	var count int64
	require.NoError(t, db.Model(&models.Address{}).Where("client_id = ?", client.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRepositoryReplaceAddressWithNilClears(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client, err := repo.Create(ctx, &models.Client{Name: "Loja Norte", Tel: "11 3333-0001"})
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceAddress(ctx, client.ID, &models.Address{Street: "Rua A", StreetNumber: 1}))

	require.NoError(t, repo.ReplaceAddress(ctx, client.ID, nil))

	found, err := repo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.Nil(t, found.Address)
}

func TestRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, &models.Client{
			Name: fmt.Sprintf("Cliente %d", i),
			Tel:  fmt.Sprintf("11 9000-000%d", i),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &models.Client{
		Name:  "Mecânica Alfa",
		Email: strPtr("alfa@example.com"),
		Tel:   "11 9111-0000",
	})
	require.NoError(t, err)

	all, err := repo.List(ctx, ListClientsInput{})
	require.NoError(t, err)
	require.EqualValues(t, 6, all.Total)
	require.Len(t, all.Items, 6)

	filtered, err := repo.List(ctx, ListClientsInput{Query: "alfa"})
	require.NoError(t, err)
	require.EqualValues(t, 1, filtered.Total)
	require.Equal(t, "Mecânica Alfa", filtered.Items[0].Name)

	// The filter matches name and email only, never the phone number.
	byTel, err := repo.List(ctx, ListClientsInput{Query: "9111"})
	require.NoError(t, err)
	require.EqualValues(t, 0, byTel.Total)

	page, err := repo.List(ctx, ListClientsInput{Take: 2, Skip: 4})
	require.NoError(t, err)
	require.EqualValues(t, 6, page.Total)
	require.Len(t, page.Items, 2)
}

func TestRepositoryListOrdersNewestFirst(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	older, err := repo.Create(ctx, &models.Client{Name: "Primeiro", Tel: "1"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Client{}).
		Where("id = ?", older.ID).
		Update("created_at", "2020-01-01 00:00:00").Error)

	newer, err := repo.Create(ctx, &models.Client{Name: "Segundo", Tel: "2"})
	require.NoError(t, err)

	page, err := repo.List(ctx, ListClientsInput{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, newer.ID, page.Items[0].ID)
	require.Equal(t, older.ID, page.Items[1].ID)
}
