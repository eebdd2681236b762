// Package importexport serializes catalog, order and user records for the
// admin bulk import-export surface. CSV cells holding structured option
// lists carry JSON.
package importexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dreamnest/shop-backend/internal/models"
)

var productHeader = []string{
	"id", "name", "description", "category", "base_price", "discount",
	"images", "sizes", "fabric_categories", "fabrics", "specifications",
	"has_lifting_mechanism", "lifting_mechanism_price", "featured", "in_stock",
}

func ProductsToCSV(products []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(productHeader); err != nil {
		return nil, err
	}
	for _, p := range products {
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			p.Description,
			p.Category,
			p.BasePrice.String(),
			strconv.Itoa(p.Discount),
			strings.Join(p.Images, "|"),
			mustJSON(p.Sizes),
			mustJSON(p.FabricCategories),
			mustJSON(p.Fabrics),
			mustJSON(p.Specifications),
			strconv.FormatBool(p.HasLiftingMechanism),
			p.LiftingMechanismPrice.String(),
			strconv.FormatBool(p.Featured),
			strconv.FormatBool(p.InStock),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ParseProductsCSV reads a header-addressed CSV export back into products.
// Quoted fields, embedded commas and embedded quotes follow the standard CSV
// escaping rules.
func ParseProductsCSV(data []byte) ([]models.Product, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parse: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("csv parse: missing header row")
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	products := make([]models.Product, 0, len(records)-1)
	for n, row := range records[1:] {
		var p models.Product

		if v := field(row, "id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("csv row %d: bad id %q", n+2, v)
			}
			p.ID = uint(id)
		}
		p.Name = field(row, "name")
		p.Description = field(row, "description")
		p.Category = field(row, "category")
		p.BasePrice = parseDecimalField(field(row, "base_price"))
		p.Discount, _ = strconv.Atoi(field(row, "discount"))
		if v := field(row, "images"); v != "" {
			p.Images = strings.Split(v, "|")
		}
		if err := jsonField(field(row, "sizes"), &p.Sizes); err != nil {
			return nil, fmt.Errorf("csv row %d: sizes: %w", n+2, err)
		}
		if err := jsonField(field(row, "fabric_categories"), &p.FabricCategories); err != nil {
			return nil, fmt.Errorf("csv row %d: fabric_categories: %w", n+2, err)
		}
		if err := jsonField(field(row, "fabrics"), &p.Fabrics); err != nil {
			return nil, fmt.Errorf("csv row %d: fabrics: %w", n+2, err)
		}
		if err := jsonField(field(row, "specifications"), &p.Specifications); err != nil {
			return nil, fmt.Errorf("csv row %d: specifications: %w", n+2, err)
		}
		p.HasLiftingMechanism = field(row, "has_lifting_mechanism") == "true"
		p.LiftingMechanismPrice = parseDecimalField(field(row, "lifting_mechanism_price"))
		p.Featured = field(row, "featured") == "true"
		p.InStock = field(row, "in_stock") != "false"

		products = append(products, p)
	}
	return products, nil
}

func jsonField(s string, dst any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), dst)
}

func ProductsToJSON(products []models.Product) ([]byte, error) {
	return json.MarshalIndent(products, "", "  ")
}

func ParseProductsJSON(data []byte) ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("json parse: %w", err)
	}
	return products, nil
}
