package importexport

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dreamnest/shop-backend/internal/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        `Bed "Luna", walnut`,
			Description: "Solid oak frame,\nwith storage",
			Category:    models.CategoryBed,
			BasePrice:   decimal.RequireFromString("30000.50"),
			Discount:    10,
			Images:      []string{"/img/luna-1.jpg", "/img/luna-2.jpg"},
			Sizes: []models.SizeOption{
				{ID: "double", Label: "160x200", PriceDelta: decimal.NewFromInt(5000)},
			},
			FabricCategories: []models.FabricCategoryOption{
				{ID: "premium", Name: "Premium", PriceMultiplier: decimal.RequireFromString("1.2")},
			},
			Fabrics: []models.FabricOption{
				{ID: "ocean", Name: "Ocean Blue", CategoryID: "premium"},
			},
			Specifications:        []models.Specification{{Key: "frame", Value: "oak"}},
			HasLiftingMechanism:   true,
			LiftingMechanismPrice: decimal.NewFromInt(5000),
			Featured:              true,
			InStock:               true,
		},
		{
			ID:        2,
			Name:      "Cloud mattress",
			Category:  models.CategoryMattress,
			BasePrice: decimal.NewFromInt(15000),
			InStock:   false,
		},
	}
}

func TestProductsCSVRoundTrip(t *testing.T) {
	data, err := ProductsToCSV(sampleProducts())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "id,name,description,category,base_price"))

	parsed, err := ParseProductsCSV(data)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	p := parsed[0]
	require.Equal(t, uint(1), p.ID)
	require.Equal(t, `Bed "Luna", walnut`, p.Name)
	require.Equal(t, "Solid oak frame,\nwith storage", p.Description)
	require.True(t, p.BasePrice.Equal(decimal.RequireFromString("30000.50")))
	require.Equal(t, 10, p.Discount)
	require.Equal(t, []string{"/img/luna-1.jpg", "/img/luna-2.jpg"}, p.Images)
	require.Len(t, p.Sizes, 1)
	require.True(t, p.Sizes[0].PriceDelta.Equal(decimal.NewFromInt(5000)))
	require.Len(t, p.FabricCategories, 1)
	require.Len(t, p.Fabrics, 1)
	require.Equal(t, "premium", p.Fabrics[0].CategoryID)
	require.Len(t, p.Specifications, 1)
	require.True(t, p.HasLiftingMechanism)
	require.True(t, p.Featured)
	require.True(t, p.InStock)

	require.False(t, parsed[1].InStock)
	require.Empty(t, parsed[1].Sizes)
}

func TestParseProductsCSVHeaderAddressing(t *testing.T) {
	// Column order differs from the export; fields resolve by header name.
	csvData := "name,category,base_price\nSimple bed,bed,9999\n"
	parsed, err := ParseProductsCSV([]byte(csvData))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.Equal(t, "Simple bed", parsed[0].Name)
	require.Equal(t, models.CategoryBed, parsed[0].Category)
	require.True(t, parsed[0].BasePrice.Equal(decimal.NewFromInt(9999)))
	// in_stock defaults to true when the column is absent.
	require.True(t, parsed[0].InStock)
}

func TestParseProductsCSVBadRows(t *testing.T) {
	_, err := ParseProductsCSV([]byte(""))
	require.Error(t, err)

	_, err = ParseProductsCSV([]byte("id,name\nnot-a-number,x\n"))
	require.Error(t, err)

	_, err = ParseProductsCSV([]byte("name,sizes\nx,not-json\n"))
	require.Error(t, err)
}

func TestProductsJSONRoundTrip(t *testing.T) {
	data, err := ProductsToJSON(sampleProducts())
	require.NoError(t, err)

	parsed, err := ParseProductsJSON(data)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	require.Equal(t, `Bed "Luna", walnut`, parsed[0].Name)
	require.True(t, parsed[0].BasePrice.Equal(decimal.RequireFromString("30000.50")))

	_, err = ParseProductsJSON([]byte("{not json"))
	require.Error(t, err)
}

func TestOrdersCSV(t *testing.T) {
	data, err := OrdersToCSV([]models.Order{{
		ID:           1,
		SessionID:    "sess-a",
		CustomerName: "Ivan, Jr.",
		TotalAmount:  decimal.NewFromInt(91000),
		Status:       models.StatusPending,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "id,session_id,customer_name"))
	require.Contains(t, lines[1], `"Ivan, Jr."`)
	require.Contains(t, lines[1], "91000")
}

func TestUsersCSVOmitsPasswordHash(t *testing.T) {
	data, err := UsersToCSV([]models.User{{
		ID:           1,
		Username:     "admin",
		PasswordHash: "bcrypt-secret",
		IsAdmin:      true,
	}})
	require.NoError(t, err)
	require.NotContains(t, string(data), "bcrypt-secret")
	require.Contains(t, string(data), "admin,")
}
