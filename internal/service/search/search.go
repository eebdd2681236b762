// Package search serves storefront product search from Elasticsearch, with
// the relational store as fallback when ES is not configured. Index writes
// are best-effort.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/dreamnest/shop-backend/internal/logging"
	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

type Service struct {
	ES    *elasticsearch.Client
	Index string
	Store storage.Storage
}

func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if s.ES == nil {
		products, err := s.Store.SearchProducts(ctx, query, from, size)
		return int64(len(products)), products, err
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return r.Hits.Total.Value, products, nil
}

// IndexProduct upserts a product document; failures are logged, not
// returned.
func (s *Service) IndexProduct(ctx context.Context, p *models.Product) {
	if s == nil || s.ES == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(data),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		logging.FromContext(ctx).Error("es index failed", "product_id", p.ID, "error", err)
		return
	}
	res.Body.Close()
}

func (s *Service) RemoveProduct(ctx context.Context, id uint) {
	if s == nil || s.ES == nil {
		return
	}
	res, err := s.ES.Delete(
		s.Index,
		strconv.FormatUint(uint64(id), 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		logging.FromContext(ctx).Error("es delete failed", "product_id", id, "error", err)
		return
	}
	res.Body.Close()
}
