package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, q transport.ProductListQuery, offset, limit int) (int64, []models.Product, error) {
	base := r.DB.WithContext(ctx).Model(&models.Product{})
	if q.Category != "" {
		base = base.Where("category = ?", q.Category)
	}
	if q.Active != nil {
		base = base.Where("is_active = ?", *q.Active)
	}
	if q.MinPrice != nil {
		base = base.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		base = base.Where("price <= ?", *q.MaxPrice)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	order := "created_at DESC"
	switch q.Sort {
	case "price_asc":
		order = "price ASC"
	case "price_desc":
		order = "price DESC"
	case "rating":
		order = "rating DESC"
	case "views":
		order = "views DESC"
	}

	var items []models.Product
	if err := base.Order(order).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Save(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementProductViews bumps the view counter without a read-modify-write
// round trip.
func (r *GormRepo) IncrementProductViews(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// DecrementStock reduces stock only when enough units remain. Zero rows
// affected means the stock check lost the race, so the caller must abort.
func (r *GormRepo) DecrementStock(ctx context.Context, tx *gorm.DB, id uuid.UUID, qty int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	res := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, id)
	}
	return nil
}

func (r *GormRepo) RelatedProducts(ctx context.Context, category string, exclude uuid.UUID, limit int) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Where("category = ? AND id <> ? AND is_active = ?", category, exclude, true).
		Order("views DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CatalogueSection returns the active, in-stock products tagged for one
// homepage section.
func (r *GormRepo) CatalogueSection(ctx context.Context, catalogue, order string, limit int) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Where("catalogue = ? AND is_active = ? AND stock > 0", catalogue, true).
		Order(order).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Where("is_featured = ? AND is_active = ? AND stock > 0", true, true).
		Order("rating DESC, views DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}
