package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/bmimportados/backoffice-backend/pkg/db"
	"github.com/bmimportados/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/bmimportados/backoffice-backend/pkg/errors"
	"github.com/bmimportados/backoffice-backend/pkg/pagination"
)

// Service exposes catalog operations to the controllers.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*ProductDTO, error)
	GetBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	List(ctx context.Context, input ListProductsInput) (*pagination.Page[*ProductDTO], error)
}

type service struct {
	repo Repository
	tx   TxRunner
}

// NewService builds a products service with the provided dependencies.
func NewService(repo Repository, tx TxRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Variant.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid variant")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	product := &models.Product{
		SKU:         sku,
		Name:        name,
		Slug:        slug,
		Variant:     input.Variant,
		Price:       input.Price,
		ShowPrice:   input.ShowPrice,
		Active:      active,
		Featured:    input.Featured,
		Description: input.Description,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		// The advisory lock serializes concurrent creates within a variant so
		// order indexes never collide.
		if err := repo.LockVariant(ctx, input.Variant); err != nil {
			return err
		}
		next, err := repo.NextOrderIndex(ctx, input.Variant)
		if err != nil {
			return err
		}
		product.OrderIndex = next
		if _, err := repo.Create(ctx, product); err != nil {
			return err
		}
		if images := imageModels(input.Images, product.ID); images != nil {
			return repo.ReplaceImages(ctx, product.ID, images)
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use").
				WithDetails(map[string]string{"slug": slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetByID(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be blank")
		}
		product.SKU = sku
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		product.Name = name
	}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug cannot be blank")
		}
		product.Slug = slug
	}
	if input.Variant != nil {
		if !input.Variant.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid variant")
		}
		product.Variant = *input.Variant
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.ShowPrice != nil {
		product.ShowPrice = *input.ShowPrice
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.Description != nil {
		product.Description = input.Description
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Update(ctx, product); err != nil {
			return err
		}
		// Presence semantics: a present images array replaces the whole set,
		// an empty one clears it, a nil one leaves the set alone.
		if input.Images != nil {
			return repo.ReplaceImages(ctx, product.ID, imageModels(*input.Images, product.ID))
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use").
				WithDetails(map[string]string{"slug": product.Slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.GetByID(ctx, product.ID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(product), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(product), nil
}

func (s *service) List(ctx context.Context, input ListProductsInput) (*pagination.Page[*ProductDTO], error) {
	if input.Variant != nil && !input.Variant.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid variant")
	}

	page, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	items := make([]*ProductDTO, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, FromModel(&page.Items[i]))
	}
	return &pagination.Page[*ProductDTO]{Items: items, Total: page.Total}, nil
}
