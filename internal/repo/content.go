package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
)

func (r *GormRepo) ListBlogs(ctx context.Context, publishedOnly bool, offset, limit int) (int64, []models.Blog, error) {
	base := r.DB.WithContext(ctx).Model(&models.Blog{})
	if publishedOnly {
		base = base.Where("published = ?", true)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var blogs []models.Blog
	if err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&blogs).Error; err != nil {
		return 0, nil, err
	}
	return total, blogs, nil
}

func (r *GormRepo) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *GormRepo) GetBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *GormRepo) CreateBlog(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if err := r.DB.WithContext(ctx).Create(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

func (r *GormRepo) SaveBlog(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if err := r.DB.WithContext(ctx).Save(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

func (r *GormRepo) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Blog{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) IncrementBlogViews(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *GormRepo) ListBanners(ctx context.Context, bannerType models.BannerType, publishedOnly bool) ([]models.Banner, error) {
	base := r.DB.WithContext(ctx).Model(&models.Banner{})
	if bannerType != "" {
		base = base.Where("type = ?", bannerType)
	}
	if publishedOnly {
		base = base.Where("published = ?", true)
	}

	var banners []models.Banner
	if err := base.Order("sort_order ASC, created_at DESC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *GormRepo) GetBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&banner).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *GormRepo) CreateBanner(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.DB.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *GormRepo) SaveBanner(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.DB.WithContext(ctx).Save(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *GormRepo) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	base := r.DB.WithContext(ctx).Model(&models.Category{})
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var cats []models.Category
	if err := base.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	if err := r.DB.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	base := r.DB.WithContext(ctx).Model(&models.Service{})
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := base.Order("sort_order ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormRepo) CreateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	if err := r.DB.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, err
	}
	return svc, nil
}

func (r *GormRepo) DeleteService(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
