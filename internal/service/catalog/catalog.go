package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

var validCategories = map[string]bool{
	models.CategoryBed:       true,
	models.CategoryMattress:  true,
	models.CategoryAccessory: true,
}

type Service struct {
	Store storage.Storage
}

func (s *Service) List(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	if filter.Category != "" && !validCategories[filter.Category] {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, filter.Category)
	}
	return s.Store.ListProducts(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Store.GetProduct(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return p, err
}

func (s *Service) Create(ctx context.Context, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.Store.CreateProduct(ctx, p)
}

// Update applies a partial patch on top of the stored record. Concurrent
// admin edits are last-write-wins.
func (s *Service) Update(ctx context.Context, id uint, patch Patch) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.Store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Replace validates and stores a fully-specified record under its existing
// id. The bulk import path uses it where Update's field patching does not
// fit: each imported row already carries the complete product.
func (s *Service) Replace(ctx context.Context, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}
	if err := s.Store.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, p.ID)
		}
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.Store.DeleteProduct(ctx, id)
}

func validate(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if !validCategories[p.Category] {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}
	if p.Discount < 0 || p.Discount > 100 {
		return fmt.Errorf("%w: discount must be within 0-100", ErrValidation)
	}

	sizes := make(map[string]bool, len(p.Sizes))
	for _, sz := range p.Sizes {
		if sizes[sz.ID] {
			return fmt.Errorf("%w: duplicate size id %q", ErrValidation, sz.ID)
		}
		sizes[sz.ID] = true
	}

	categories := make(map[string]bool, len(p.FabricCategories))
	for _, fc := range p.FabricCategories {
		categories[fc.ID] = true
	}
	for _, f := range p.Fabrics {
		if !categories[f.CategoryID] {
			return fmt.Errorf("%w: fabric %q references unknown category %q", ErrValidation, f.ID, f.CategoryID)
		}
	}
	return nil
}

// Patch carries the updatable product fields; nil means "leave unchanged".
type Patch struct {
	Name                  *string                        `json:"name"`
	Description           *string                        `json:"description"`
	Category              *string                        `json:"category"`
	BasePrice             *string                        `json:"base_price"`
	Discount              *int                           `json:"discount"`
	Images                *[]string                      `json:"images"`
	Sizes                 *[]models.SizeOption           `json:"sizes"`
	FabricCategories      *[]models.FabricCategoryOption `json:"fabric_categories"`
	Fabrics               *[]models.FabricOption         `json:"fabrics"`
	Specifications        *[]models.Specification        `json:"specifications"`
	HasLiftingMechanism   *bool                          `json:"has_lifting_mechanism"`
	LiftingMechanismPrice *string                        `json:"lifting_mechanism_price"`
	Featured              *bool                          `json:"featured"`
	InStock               *bool                          `json:"in_stock"`
}

func (p Patch) Apply(dst *models.Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.BasePrice != nil {
		dst.BasePrice = parseDecimal(*p.BasePrice, dst.BasePrice)
	}
	if p.Discount != nil {
		dst.Discount = *p.Discount
	}
	if p.Images != nil {
		dst.Images = *p.Images
	}
	if p.Sizes != nil {
		dst.Sizes = *p.Sizes
	}
	if p.FabricCategories != nil {
		dst.FabricCategories = *p.FabricCategories
	}
	if p.Fabrics != nil {
		dst.Fabrics = *p.Fabrics
	}
	if p.Specifications != nil {
		dst.Specifications = *p.Specifications
	}
	if p.HasLiftingMechanism != nil {
		dst.HasLiftingMechanism = *p.HasLiftingMechanism
	}
	if p.LiftingMechanismPrice != nil {
		dst.LiftingMechanismPrice = parseDecimal(*p.LiftingMechanismPrice, dst.LiftingMechanismPrice)
	}
	if p.Featured != nil {
		dst.Featured = *p.Featured
	}
	if p.InStock != nil {
		dst.InStock = *p.InStock
	}
}
