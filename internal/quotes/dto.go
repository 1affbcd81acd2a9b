package quotes

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

// ItemInput is one line of a submitted quote. Name and price are snapshots
// taken by the storefront at submission time; the storefront sends the
// product reference as "id".
type ItemInput struct {
	ProductID *int64          `json:"id"`
	SKU       string          `json:"sku" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty" validate:"required,min=1"`
	Image     *string         `json:"image"`
}

// IntakeInput captures a public quote submission. The storefront sends the
// free-form text as "notes"; it lands in the note column.
type IntakeInput struct {
	CustomerName  string        `json:"customerName" validate:"required"`
	CustomerEmail string        `json:"customerEmail" validate:"required,email"`
	CustomerPhone *string       `json:"customerPhone"`
	Company       *string       `json:"company"`
	CNPJ          *string       `json:"cnpj"`
	Address       *string       `json:"address"`
	Note          *string       `json:"notes"`
	Variant       enums.Variant `json:"variant" validate:"required"`
	Items         []ItemInput   `json:"items" validate:"required,min=1"`
}

// ListQuotesInput bundles the paging knobs for the admin listing.
type ListQuotesInput struct {
	Take int
	Skip int
}

// ItemDTO is the public shape of a quote line.
type ItemDTO struct {
	ID        int64           `json:"id"`
	ProductID *int64          `json:"productId"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	Image     *string         `json:"image"`
	Position  int             `json:"position"`
}

// QuoteDTO is the public shape of a quote. IDs are wide integers; responses
// must pass through safejson.
type QuoteDTO struct {
	ID            int64         `json:"id"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone *string       `json:"customerPhone"`
	Company       *string       `json:"company"`
	CNPJ          *string       `json:"cnpj"`
	Address       *string       `json:"address"`
	Note          *string       `json:"note"`
	Variant       enums.Variant `json:"variant"`
	Items         []ItemDTO     `json:"items"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// FromModel maps a persisted quote onto its public DTO.
func FromModel(quote *models.Quote) *QuoteDTO {
	items := make([]ItemDTO, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, ItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Price:     item.Price,
			Qty:       item.Qty,
			Image:     item.Image,
			Position:  item.Position,
		})
	}
	return &QuoteDTO{
		ID:            quote.ID,
		CustomerName:  quote.CustomerName,
		CustomerEmail: quote.CustomerEmail,
		CustomerPhone: quote.CustomerPhone,
		Company:       quote.Company,
		CNPJ:          quote.CNPJ,
		Address:       quote.Address,
		Note:          quote.Note,
		Variant:       quote.Variant,
		Items:         items,
		CreatedAt:     quote.CreatedAt,
	}
}
