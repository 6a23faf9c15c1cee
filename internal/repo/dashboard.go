package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
)

// Read-only aggregation queries backing the admin dashboard.

func (r *GormRepo) SumOrderTotals(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

func (r *GormRepo) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&total).Error
	return total, err
}

func (r *GormRepo) SumSoldItems(ctx context.Context) (int64, error) {
	var sum int64
	err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *GormRepo) SumSoldItemsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var sum int64
	err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at <= ?", from, to).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *GormRepo) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
