package quotes

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

func setupQuotesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Quote{}, &models.QuoteItem{}))
	return db
}

func TestRepositoryQuoteItemsRoundTrip(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	quote, err := repo.Create(ctx, &models.Quote{
		CustomerName:  "Carlos",
		CustomerEmail: "carlos@example.com",
		Variant:       enums.VariantImported,
	})
	require.NoError(t, err)
	require.NotZero(t, quote.ID)

	productID := int64(9007199254740993)
	items := []models.QuoteItem{
		{QuoteID: quote.ID, SKU: "GEAR-1", Name: "Engrenagem", Price: decimal.NewFromFloat(19.9), Qty: 2, Position: 0},
		{QuoteID: quote.ID, ProductID: &productID, SKU: "BOLT-9", Name: "Parafuso", Price: decimal.NewFromFloat(0.5), Qty: 100, Position: 1},
		{QuoteID: quote.ID, SKU: "NUT-3", Name: "Porca", Price: decimal.Zero, Qty: 1, Position: 2},
	}
	require.NoError(t, repo.CreateItems(ctx, items))

	found, err := repo.FindByID(ctx, quote.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 3)
	for i, item := range found.Items {
		require.Equal(t, i, item.Position)
	}
	require.Equal(t, "GEAR-1", found.Items[0].SKU)
	require.NotNil(t, found.Items[1].ProductID)
	require.Equal(t, productID, *found.Items[1].ProductID)
	require.True(t, found.Items[0].Price.Equal(decimal.NewFromFloat(19.9)))
}

func TestRepositoryListNewestFirstWithItems(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		quote, err := repo.Create(ctx, &models.Quote{
			CustomerName:  fmt.Sprintf("Cliente %d", i),
			CustomerEmail: fmt.Sprintf("c%d@example.com", i),
			Variant:       enums.VariantReady,
		})
		require.NoError(t, err)
		require.NoError(t, repo.CreateItems(ctx, []models.QuoteItem{
			{QuoteID: quote.ID, SKU: "S", Name: "Item", Price: decimal.Zero, Qty: 1, Position: 0},
		}))
	}

	page, err := repo.List(ctx, ListQuotesInput{})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
	require.Len(t, page.Items, 3)
	// Same-timestamp rows fall back to id ordering, newest first.
	require.Greater(t, page.Items[0].ID, page.Items[2].ID)
	for _, quote := range page.Items {
		require.Len(t, quote.Items, 1)
	}

	paged, err := repo.List(ctx, ListQuotesInput{Take: 2, Skip: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, paged.Total)
	require.Len(t, paged.Items, 1)
}
