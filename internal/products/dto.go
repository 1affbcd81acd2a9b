package products

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	"github.com/bmimportados/backoffice-backend/pkg/enums"
)

// ImageInput is one entry of a product's images array. Position is optional;
// a nil position falls back to the array index.
type ImageInput struct {
	URL      string  `json:"url" validate:"required,url"`
	Alt      *string `json:"alt"`
	Position *int    `json:"position"`
}

// CreateProductInput captures the payload for registering a catalog entry.
type CreateProductInput struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Slug        string          `json:"slug"`
	Variant     enums.Variant   `json:"variant" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	ShowPrice   bool            `json:"showPrice"`
	Active      *bool           `json:"active"`
	Featured    bool            `json:"featured"`
	Description *string         `json:"description"`
	Images      []ImageInput    `json:"images"`
}

// UpdateProductInput captures a partial mutation. Images follows presence
// semantics: nil leaves the set alone, an empty slice clears it.
type UpdateProductInput struct {
	SKU         *string          `json:"sku"`
	Name        *string          `json:"name"`
	Slug        *string          `json:"slug"`
	Variant     *enums.Variant   `json:"variant"`
	Price       *decimal.Decimal `json:"price"`
	ShowPrice   *bool            `json:"showPrice"`
	Active      *bool            `json:"active"`
	Featured    *bool            `json:"featured"`
	Description *string          `json:"description"`
	Images      *[]ImageInput    `json:"images"`
}

// ListProductsInput bundles the filter and paging knobs for product listings.
type ListProductsInput struct {
	Query      string
	Variant    *enums.Variant
	ActiveOnly bool
	Take       int
	Skip       int
}

// ImageDTO is the public shape of a product image.
type ImageDTO struct {
	ID       int64   `json:"id"`
	URL      string  `json:"url"`
	Alt      *string `json:"alt"`
	Position int     `json:"position"`
}

// ProductDTO is the public shape of a catalog entry. IDs are wide integers;
// responses must pass through safejson.
type ProductDTO struct {
	ID          int64           `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Variant     enums.Variant   `json:"variant"`
	Price       decimal.Decimal `json:"price"`
	ShowPrice   bool            `json:"showPrice"`
	Active      bool            `json:"active"`
	Featured    bool            `json:"featured"`
	Description *string         `json:"description"`
	OrderIndex  int             `json:"orderIndex"`
	Images      []ImageDTO      `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FromModel maps a persisted product onto its public DTO.
func FromModel(product *models.Product) *ProductDTO {
	images := make([]ImageDTO, 0, len(product.Images))
	for _, image := range product.Images {
		images = append(images, ImageDTO{
			ID:       image.ID,
			URL:      image.URL,
			Alt:      image.Alt,
			Position: image.Position,
		})
	}
	return &ProductDTO{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Slug:        product.Slug,
		Variant:     product.Variant,
		Price:       product.Price,
		ShowPrice:   product.ShowPrice,
		Active:      product.Active,
		Featured:    product.Featured,
		Description: product.Description,
		OrderIndex:  product.OrderIndex,
		Images:      images,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name and collapses non-alphanumeric runs to hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func imageModels(inputs []ImageInput, productID int64) []models.ProductImage {
	if len(inputs) == 0 {
		return nil
	}
	images := make([]models.ProductImage, 0, len(inputs))
	for i, input := range inputs {
		position := i
		if input.Position != nil {
			position = *input.Position
		}
		images = append(images, models.ProductImage{
			ProductID: productID,
			URL:       input.URL,
			Alt:       input.Alt,
			Position:  position,
		})
	}
	return images
}
