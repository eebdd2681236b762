package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
	"github.com/dreamnest/shop-backend/internal/storage/memstore"
)

func validProduct() *models.Product {
	return &models.Product{
		Name:      "Luna bed",
		Category:  models.CategoryBed,
		BasePrice: decimal.NewFromInt(30000),
		Sizes: []models.SizeOption{
			{ID: "single", Label: "90x200"},
			{ID: "double", Label: "160x200", PriceDelta: decimal.NewFromInt(5000)},
		},
		FabricCategories: []models.FabricCategoryOption{
			{ID: "standard", Name: "Standard"},
			{ID: "premium", Name: "Premium", PriceMultiplier: decimal.RequireFromString("1.2")},
		},
		Fabrics: []models.FabricOption{
			{ID: "beige", Name: "Beige", CategoryID: "standard"},
		},
		InStock: true,
	}
}

func TestCreateValidation(t *testing.T) {
	svc := &Service{Store: memstore.New()}
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.Product)
	}{
		{"missing name", func(p *models.Product) { p.Name = "" }},
		{"unknown category", func(p *models.Product) { p.Category = "sofa" }},
		{"negative discount", func(p *models.Product) { p.Discount = -1 }},
		{"discount over 100", func(p *models.Product) { p.Discount = 101 }},
		{"duplicate size id", func(p *models.Product) {
			p.Sizes = append(p.Sizes, models.SizeOption{ID: "single"})
		}},
		{"fabric with unknown category", func(p *models.Product) {
			p.Fabrics = append(p.Fabrics, models.FabricOption{ID: "x", CategoryID: "missing"})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProduct()
			tc.mutate(p)
			require.ErrorIs(t, svc.Create(ctx, p), ErrValidation)
		})
	}

	require.NoError(t, svc.Create(ctx, validProduct()))
}

func TestListRejectsUnknownCategory(t *testing.T) {
	svc := &Service{Store: memstore.New()}

	_, err := svc.List(context.Background(), storage.ProductFilter{Category: "sofa"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestListFilters(t *testing.T) {
	store := memstore.New()
	svc := &Service{Store: store}
	ctx := context.Background()

	bed := validProduct()
	require.NoError(t, svc.Create(ctx, bed))

	mattress := validProduct()
	mattress.Name = "Cloud mattress"
	mattress.Category = models.CategoryMattress
	mattress.Featured = true
	require.NoError(t, svc.Create(ctx, mattress))

	all, err := svc.List(ctx, storage.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	beds, err := svc.List(ctx, storage.ProductFilter{Category: models.CategoryBed})
	require.NoError(t, err)
	require.Len(t, beds, 1)
	require.Equal(t, "Luna bed", beds[0].Name)

	featured := true
	hits, err := svc.List(ctx, storage.ProductFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Cloud mattress", hits[0].Name)
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc := &Service{Store: memstore.New()}
	ctx := context.Background()

	p := validProduct()
	require.NoError(t, svc.Create(ctx, p))

	name := "Luna bed v2"
	price := "32000"
	discount := 10
	updated, err := svc.Update(ctx, p.ID, Patch{Name: &name, BasePrice: &price, Discount: &discount})
	require.NoError(t, err)
	require.Equal(t, "Luna bed v2", updated.Name)
	require.True(t, updated.BasePrice.Equal(decimal.NewFromInt(32000)))
	require.Equal(t, 10, updated.Discount)
	// Untouched fields survive the patch.
	require.Len(t, updated.Sizes, 2)

	bad := "sofa"
	_, err = svc.Update(ctx, p.ID, Patch{Category: &bad})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, 999, Patch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceValidatesWholeRecord(t *testing.T) {
	svc := &Service{Store: memstore.New()}
	ctx := context.Background()

	p := validProduct()
	require.NoError(t, svc.Create(ctx, p))

	bad := validProduct()
	bad.ID = p.ID
	bad.Fabrics = []models.FabricOption{{ID: "velvet", CategoryID: "no-such-category"}}
	require.ErrorIs(t, svc.Replace(ctx, bad), ErrValidation)

	// The rejected record left the stored one alone.
	stored, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored.Fabrics, 1)
	require.Equal(t, "beige", stored.Fabrics[0].ID)

	good := validProduct()
	good.ID = p.ID
	good.Name = "Luna bed v2"
	require.NoError(t, svc.Replace(ctx, good))
	stored, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Luna bed v2", stored.Name)

	missing := validProduct()
	missing.ID = 999
	require.ErrorIs(t, svc.Replace(ctx, missing), ErrNotFound)
}

func TestUnitPrice(t *testing.T) {
	p := validProduct()
	p.HasLiftingMechanism = true
	p.LiftingMechanismPrice = decimal.NewFromInt(5000)

	// base only
	require.True(t, UnitPrice(p, "single", "standard", false).Equal(decimal.NewFromInt(30000)))
	// size delta
	require.True(t, UnitPrice(p, "double", "standard", false).Equal(decimal.NewFromInt(35000)))
	// fabric multiplier
	require.True(t, UnitPrice(p, "double", "premium", false).Equal(decimal.NewFromInt(42000)))
	// lifting surcharge after the multiplier
	require.True(t, UnitPrice(p, "double", "premium", true).Equal(decimal.NewFromInt(47000)))
	// unknown size and category fall back to base
	require.True(t, UnitPrice(p, "king", "unknown", false).Equal(decimal.NewFromInt(30000)))

	p.Discount = 10
	require.True(t, UnitPrice(p, "single", "standard", false).Equal(decimal.NewFromInt(27000)))
}

func TestFabricName(t *testing.T) {
	p := validProduct()
	require.Equal(t, "Beige", FabricName(p, "beige"))
	require.Equal(t, "velvet", FabricName(p, "velvet"))
	require.Equal(t, "beige", FabricName(nil, "beige"))
}
