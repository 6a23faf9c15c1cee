package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/repo"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
)

const productEventsTopic = "product_events"

const sectionLimit = 12

// Indexer is the slice of the search service the catalog needs. Indexing is
// best-effort; a nil Indexer disables it.
type Indexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Index  Indexer
	Events EventPublisher
}

func validateProductFields(title string, price, discount float64, stock int, category string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if discount < 0 || discount > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrValidation)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validateProductFields(req.Title, req.Price, req.Discount, req.Stock, req.Category); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	prod := &models.Product{
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Summary:     req.Summary,
		Description: req.Description,
		Brand:       req.Brand,
		Price:       req.Price,
		Discount:    req.Discount,
		Thumbnail:   req.Thumbnail,
		Images:      req.Images,
		Category:    req.Category,
		Catalogue:   req.Catalogue,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		IsActive:    active,
	}

	prod, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: product with this title already exists", ErrConflict)
		}
		return nil, err
	}

	s.index(ctx, prod)
	s.publish(ctx, map[string]any{
		"type":       "product_created",
		"product_id": prod.ID.String(),
		"title":      prod.Title,
	})

	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Title != nil && *req.Title != prod.Title {
		prod.Title = *req.Title
		// Slug follows the title only on an explicit title change.
		prod.Slug = slug.Make(*req.Title)
	}
	if req.Summary != nil {
		prod.Summary = *req.Summary
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Brand != nil {
		prod.Brand = *req.Brand
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Discount != nil {
		prod.Discount = *req.Discount
	}
	if req.Thumbnail != nil {
		prod.Thumbnail = *req.Thumbnail
	}
	if req.Images != nil {
		prod.Images = req.Images
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Catalogue != nil {
		prod.Catalogue = *req.Catalogue
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}
	if req.IsFeatured != nil {
		prod.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}

	if err := validateProductFields(prod.Title, prod.Price, prod.Discount, prod.Stock, prod.Category); err != nil {
		return nil, err
	}

	prod, err = s.Repo.SaveProduct(ctx, prod)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: product with this title already exists", ErrConflict)
		}
		return nil, err
	}

	s.index(ctx, prod)
	s.publish(ctx, map[string]any{
		"type":       "product_updated",
		"product_id": prod.ID.String(),
		"title":      prod.Title,
	})

	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id.String(), "error", err)
		}
	}
	s.publish(ctx, map[string]any{
		"type":       "product_deleted",
		"product_id": id.String(),
	})
	return nil
}

// GetProduct is the public detail lookup; it bumps the view counter.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}
	s.countView(ctx, prod)
	return prod, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	prod, err := s.Repo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productSlug)
		}
		return nil, err
	}
	s.countView(ctx, prod)
	return prod, nil
}

func (s *CatalogService) countView(ctx context.Context, prod *models.Product) {
	if err := s.Repo.IncrementProductViews(ctx, prod.ID); err != nil {
		logging.FromContext(ctx).Warn("increment_views_failed", "product_id", prod.ID.String(), "error", err)
		return
	}
	prod.Views++
}

func (s *CatalogService) ListProducts(ctx context.Context, q transport.ProductListQuery, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, q, offset, limit)
}

func (s *CatalogService) RelatedProducts(ctx context.Context, id uuid.UUID) ([]models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}
	return s.Repo.RelatedProducts(ctx, prod.Category, prod.ID, 4)
}

func (s *CatalogService) FlashDeals(ctx context.Context) ([]models.Product, error) {
	return s.Repo.CatalogueSection(ctx, "flash-deals", "discount DESC", sectionLimit)
}

func (s *CatalogService) NewArrivals(ctx context.Context) ([]models.Product, error) {
	return s.Repo.CatalogueSection(ctx, "new-arrivals", "created_at DESC", sectionLimit)
}

func (s *CatalogService) JustForYou(ctx context.Context) ([]models.Product, error) {
	return s.Repo.CatalogueSection(ctx, "just-for-you", "views DESC, rating DESC", sectionLimit)
}

func (s *CatalogService) FeaturedGrid(ctx context.Context) ([]models.Product, error) {
	return s.Repo.CatalogueSection(ctx, "featured-grid", "views DESC, rating DESC", 6)
}

func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.FeaturedProducts(ctx, sectionLimit)
}

func (s *CatalogService) index(ctx context.Context, prod *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "product_id", prod.ID.String(), "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if s.Events == nil {
		return
	}
	key := fmt.Sprint(event["product_id"])
	if err := s.Events.PublishEvent(ctx, productEventsTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_failed", "topic", productEventsTopic, "error", err)
	}
}
