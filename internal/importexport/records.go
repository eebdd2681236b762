package importexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dreamnest/shop-backend/internal/models"
)

func parseDecimalField(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func OrdersToCSV(orders []models.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"id", "session_id", "customer_name", "customer_email", "customer_phone",
		"address", "delivery_method", "delivery_price", "payment_method",
		"comment", "total_amount", "status", "created_at",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, o := range orders {
		record := []string{
			strconv.FormatUint(uint64(o.ID), 10),
			o.SessionID,
			o.CustomerName,
			o.CustomerEmail,
			o.CustomerPhone,
			o.Address,
			o.DeliveryMethod,
			o.DeliveryPrice.String(),
			o.PaymentMethod,
			o.Comment,
			o.TotalAmount.String(),
			o.Status,
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func OrdersToJSON(orders []models.Order) ([]byte, error) {
	return json.MarshalIndent(orders, "", "  ")
}

func UsersToCSV(users []models.User) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"id", "username", "email", "first_name", "last_name",
		"phone", "address", "is_admin", "created_at",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, u := range users {
		record := []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Username,
			u.Email,
			u.FirstName,
			u.LastName,
			u.Phone,
			u.Address,
			strconv.FormatBool(u.IsAdmin),
			u.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func UsersToJSON(users []models.User) ([]byte, error) {
	return json.MarshalIndent(users, "", "  ")
}
