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

// ContentService covers the thin CRUD stores: blogs, banners, categories and
// company services.
type ContentService struct {
	Repo *repo.GormRepo
}

func (s *ContentService) ListBlogs(ctx context.Context, publishedOnly bool, offset, limit int) (int64, []models.Blog, error) {
	return s.Repo.ListBlogs(ctx, publishedOnly, offset, limit)
}

func (s *ContentService) GetBlogBySlug(ctx context.Context, blogSlug string) (*models.Blog, error) {
	blog, err := s.Repo.GetBlogBySlug(ctx, blogSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: blog %s", ErrNotFound, blogSlug)
		}
		return nil, err
	}

	if err := s.Repo.IncrementBlogViews(ctx, blog.ID); err != nil {
		logging.FromContext(ctx).Warn("increment_views_failed", "blog_id", blog.ID.String(), "error", err)
	} else {
		blog.Views++
	}
	return blog, nil
}

func (s *ContentService) CreateBlog(ctx context.Context, req transport.CreateBlogRequest) (*models.Blog, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	blog := &models.Blog{
		Title:     req.Title,
		Slug:      slug.Make(req.Title),
		Content:   req.Content,
		Author:    req.Author,
		Thumbnail: req.Thumbnail,
		Published: req.Published,
	}

	blog, err := s.Repo.CreateBlog(ctx, blog)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: blog with this title already exists", ErrConflict)
		}
		return nil, err
	}
	return blog, nil
}

func (s *ContentService) PatchBlog(ctx context.Context, id uuid.UUID, req transport.PatchBlogRequest) (*models.Blog, error) {
	blog, err := s.Repo.GetBlog(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: blog %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Title != nil && *req.Title != blog.Title {
		blog.Title = *req.Title
		blog.Slug = slug.Make(*req.Title)
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.Thumbnail != nil {
		blog.Thumbnail = *req.Thumbnail
	}
	if req.Published != nil {
		blog.Published = *req.Published
	}

	return s.Repo.SaveBlog(ctx, blog)
}

func (s *ContentService) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteBlog(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: blog %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func validBannerType(t models.BannerType) bool {
	switch t {
	case models.BannerTypeHero, models.BannerTypeCarousel, models.BannerTypePromo:
		return true
	}
	return false
}

func (s *ContentService) ListBanners(ctx context.Context, bannerType models.BannerType, publishedOnly bool) ([]models.Banner, error) {
	if bannerType != "" && !validBannerType(bannerType) {
		return nil, fmt.Errorf("%w: unknown banner type %q", ErrValidation, bannerType)
	}
	return s.Repo.ListBanners(ctx, bannerType, publishedOnly)
}

func (s *ContentService) CreateBanner(ctx context.Context, req transport.CreateBannerRequest) (*models.Banner, error) {
	bt := models.BannerType(req.Type)
	if !validBannerType(bt) {
		return nil, fmt.Errorf("%w: unknown banner type %q", ErrValidation, req.Type)
	}
	if strings.TrimSpace(req.Image) == "" {
		return nil, fmt.Errorf("%w: image is required", ErrValidation)
	}

	return s.Repo.CreateBanner(ctx, &models.Banner{
		Type:      bt,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Image:     req.Image,
		Link:      req.Link,
		Published: req.Published,
		SortOrder: req.SortOrder,
	})
}

func (s *ContentService) PatchBanner(ctx context.Context, id uuid.UUID, req transport.PatchBannerRequest) (*models.Banner, error) {
	banner, err := s.Repo.GetBanner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: banner %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Subtitle != nil {
		banner.Subtitle = *req.Subtitle
	}
	if req.Image != nil {
		if strings.TrimSpace(*req.Image) == "" {
			return nil, fmt.Errorf("%w: image cannot be empty", ErrValidation)
		}
		banner.Image = *req.Image
	}
	if req.Link != nil {
		banner.Link = *req.Link
	}
	if req.Published != nil {
		banner.Published = *req.Published
	}
	if req.SortOrder != nil {
		banner.SortOrder = *req.SortOrder
	}

	return s.Repo.SaveBanner(ctx, banner)
}

func (s *ContentService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteBanner(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: banner %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *ContentService) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx, activeOnly)
}

func (s *ContentService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	cat, err := s.Repo.CreateCategory(ctx, &models.Category{
		Name:     req.Name,
		Slug:     slug.Make(req.Name),
		Image:    req.Image,
		IsActive: active,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category already exists", ErrConflict)
		}
		return nil, err
	}
	return cat, nil
}

func (s *ContentService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *ContentService) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	return s.Repo.ListServices(ctx, activeOnly)
}

func (s *ContentService) CreateService(ctx context.Context, req transport.CreateServiceRequest) (*models.Service, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	return s.Repo.CreateService(ctx, &models.Service{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	})
}

func (s *ContentService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteService(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: service %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
