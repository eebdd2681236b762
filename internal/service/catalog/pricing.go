package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/dreamnest/shop-backend/internal/models"
)

var hundred = decimal.NewFromInt(100)

func parseDecimal(s string, fallback decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fallback
	}
	return d
}

// UnitPrice computes the configured unit price of a product the same way the
// storefront configurator does: base price plus the size delta, scaled by the
// fabric-category multiplier, plus the lifting-mechanism surcharge, with the
// product discount applied to the whole.
func UnitPrice(p *models.Product, sizeID, fabricCategoryID string, lifting bool) decimal.Decimal {
	price := p.BasePrice

	for _, sz := range p.Sizes {
		if sz.ID == sizeID {
			price = price.Add(sz.PriceDelta)
			break
		}
	}

	for _, fc := range p.FabricCategories {
		if fc.ID == fabricCategoryID {
			if !fc.PriceMultiplier.IsZero() {
				price = price.Mul(fc.PriceMultiplier)
			}
			break
		}
	}

	if lifting {
		price = price.Add(p.LiftingMechanismPrice)
	}

	if p.Discount > 0 {
		factor := hundred.Sub(decimal.NewFromInt(int64(p.Discount))).Div(hundred)
		price = price.Mul(factor)
	}

	return price.Round(2)
}

// FabricName resolves the display name for a fabric code, falling back to the
// code itself when the product no longer lists it.
func FabricName(p *models.Product, fabricID string) string {
	if p == nil {
		return fabricID
	}
	for _, f := range p.Fabrics {
		if f.ID == fabricID {
			return f.Name
		}
	}
	return fabricID
}
