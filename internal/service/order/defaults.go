package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dreamnest/shop-backend/internal/models"
)

// The order path never hard-fails on a partially-malformed request: a
// degraded-but-recorded order beats a lost sale. Every defaultable field is
// listed here, in one place, so the fail-safe policy stays auditable.

// isMissing treats empty strings and the literal "null"/"undefined" a
// browser serializes from absent form state as not provided.
func isMissing(s string) bool {
	return s == "" || s == "null" || s == "undefined"
}

func fallback(s, def string) string {
	if isMissing(s) {
		return def
	}
	return s
}

var validStatuses = map[string]bool{
	models.StatusPending:    true,
	models.StatusProcessing: true,
	models.StatusShipped:    true,
	models.StatusDelivered:  true,
	models.StatusCompleted:  true,
	models.StatusCancelled:  true,
}

// applyOrderDefaults fills every missing order-level field and reports which
// fields were defaulted.
func applyOrderDefaults(o *models.Order) []string {
	defaults := []struct {
		field string
		dst   *string
		def   string
	}{
		{"session_id", &o.SessionID, uuid.NewString()},
		{"customer_name", &o.CustomerName, "Guest"},
		{"customer_email", &o.CustomerEmail, "not provided"},
		{"customer_phone", &o.CustomerPhone, "not provided"},
		{"address", &o.Address, "not provided"},
		{"delivery_method", &o.DeliveryMethod, "pickup"},
		{"delivery_method_text", &o.DeliveryMethodText, "Self pickup"},
		{"payment_method", &o.PaymentMethod, "cash"},
		{"payment_method_text", &o.PaymentMethodText, "Cash on delivery"},
		{"status", &o.Status, models.StatusPending},
	}

	var applied []string
	for _, d := range defaults {
		if isMissing(*d.dst) {
			*d.dst = d.def
			applied = append(applied, d.field)
		}
	}
	if !validStatuses[o.Status] {
		o.Status = models.StatusPending
		applied = append(applied, "status")
	}
	return applied
}

// applyItemDefaults fills every missing line-item field.
func applyItemDefaults(it *models.OrderItem) {
	it.ProductName = fallback(it.ProductName, "Unknown product")
	it.SelectedSize = fallback(it.SelectedSize, "single")
	it.SelectedFabricCategory = fallback(it.SelectedFabricCategory, "standard")
	it.SelectedFabric = fallback(it.SelectedFabric, "beige")
	it.FabricName = fallback(it.FabricName, it.SelectedFabric)
	if it.Quantity < 1 {
		it.Quantity = 1
	}
}

// parsePrice reads a decimal string, defaulting to zero on anything
// unparseable.
func parsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
