package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
)

// Service indexes catalog products into Elasticsearch and serves the public
// search endpoint. Ranking is whatever multi_match gives us.
type Service struct {
	ES    *elasticsearch.Client
	Index string
}

func New(client *elasticsearch.Client, index string) *Service {
	return &Service{ES: client, Index: index}
}

type ProductDoc struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Thumbnail   string  `json:"thumbnail"`
	IsActive    bool    `json:"is_active"`
}

func (s *Service) IndexProduct(ctx context.Context, p *models.Product) error {
	doc := ProductDoc{
		ID:          p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Summary:     p.Summary,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Discount:    p.Discount,
		Thumbnail:   p.Thumbnail,
		IsActive:    p.IsActive,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	res, err := s.ES.Index(
		s.Index,
		&buf,
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product: %s", res.Status())
	}
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.ES.Delete(
		s.Index,
		id,
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product: %s", res.Status())
	}
	return nil
}

type searchHit struct {
	Source ProductDoc `json:"_source"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []ProductDoc, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"title^2", "summary", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"is_active": true},
				},
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
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	hits := make([]ProductDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		hits[i] = hit.Source
	}
	return r.Hits.Total.Value, hits, nil
}
