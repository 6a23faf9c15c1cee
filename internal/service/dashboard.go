package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/repo"
)

// DashboardService computes read-only analytics over the order and product
// collections. No partial results: any failed metric fails the call.
type DashboardService struct {
	Repo *repo.GormRepo

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

type PeriodComparison struct {
	Title                string  `json:"title"`
	Current              float64 `json:"current"`
	Previous             float64 `json:"previous"`
	PercentageDifference float64 `json:"percentage_difference"`
	Status               string  `json:"status"`
}

type Summary struct {
	TodaysSales    float64          `json:"todays_sales"`
	TotalOrders    int64            `json:"total_orders"`
	TotalSoldItems int64            `json:"total_sold_items"`
	TotalProducts  int64            `json:"total_products"`
	SalesThisWeek  PeriodComparison `json:"sales_this_week"`
	SalesThisMonth PeriodComparison `json:"sales_this_month"`
}

type MonthlySales struct {
	Month       int     `json:"month"`
	TotalSales  float64 `json:"total_sales"`
	TotalOrders int64   `json:"total_orders"`
	SoldItems   int64   `json:"sold_items"`
}

type RecentPurchase struct {
	OrderID       uuid.UUID            `json:"order_id"`
	ProductNames  string               `json:"product_names"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Amount        float64              `json:"amount"`
	PurchaseDate  time.Time            `json:"purchase_date"`
}

func (s *DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday midnight preceding t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// percentageDelta is defined as 0 when the previous period sum is 0, never
// NaN or Inf.
func percentageDelta(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func comparison(title string, current, previous float64) PeriodComparison {
	status := "up"
	if current < previous {
		status = "down"
	}
	return PeriodComparison{
		Title:                title,
		Current:              current,
		Previous:             previous,
		PercentageDifference: percentageDelta(current, previous),
		Status:               status,
	}
}

func (s *DashboardService) TodaysTotalSales(ctx context.Context) (float64, error) {
	now := s.now()
	from := startOfDay(now)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.Repo.SumOrderTotals(ctx, from, to)
}

func (s *DashboardService) SalesThisWeek(ctx context.Context) (PeriodComparison, error) {
	now := s.now()
	from := startOfWeek(now)
	to := from.AddDate(0, 0, 7).Add(-time.Nanosecond)

	current, err := s.Repo.SumOrderTotals(ctx, from, to)
	if err != nil {
		return PeriodComparison{}, err
	}

	prevFrom := from.AddDate(0, 0, -7)
	prevTo := from.Add(-time.Nanosecond)
	previous, err := s.Repo.SumOrderTotals(ctx, prevFrom, prevTo)
	if err != nil {
		return PeriodComparison{}, err
	}

	return comparison("Sales This Week", current, previous), nil
}

func (s *DashboardService) SalesThisMonth(ctx context.Context) (PeriodComparison, error) {
	now := s.now()
	from := startOfMonth(now)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	current, err := s.Repo.SumOrderTotals(ctx, from, to)
	if err != nil {
		return PeriodComparison{}, err
	}

	prevFrom := from.AddDate(0, -1, 0)
	prevTo := from.Add(-time.Nanosecond)
	previous, err := s.Repo.SumOrderTotals(ctx, prevFrom, prevTo)
	if err != nil {
		return PeriodComparison{}, err
	}

	return comparison("Sales This Month", current, previous), nil
}

func (s *DashboardService) GetSummary(ctx context.Context) (*Summary, error) {
	todays, err := s.TodaysTotalSales(ctx)
	if err != nil {
		return nil, err
	}

	totalOrders, err := s.Repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}

	soldItems, err := s.Repo.SumSoldItems(ctx)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	week, err := s.SalesThisWeek(ctx)
	if err != nil {
		return nil, err
	}

	month, err := s.SalesThisMonth(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TodaysSales:    todays,
		TotalOrders:    totalOrders,
		TotalSoldItems: soldItems,
		TotalProducts:  totalProducts,
		SalesThisWeek:  week,
		SalesThisMonth: month,
	}, nil
}

// YearlySales returns one aggregate per calendar month of the current year;
// months with no orders report zeros.
func (s *DashboardService) YearlySales(ctx context.Context) ([]MonthlySales, error) {
	now := s.now()
	year := now.Year()

	sales := make([]MonthlySales, 0, 12)
	for month := 1; month <= 12; month++ {
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
		to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

		totalSales, err := s.Repo.SumOrderTotals(ctx, from, to)
		if err != nil {
			return nil, err
		}
		totalOrders, err := s.Repo.CountOrdersBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		soldItems, err := s.Repo.SumSoldItemsBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}

		sales = append(sales, MonthlySales{
			Month:       month,
			TotalSales:  totalSales,
			TotalOrders: totalOrders,
			SoldItems:   soldItems,
		})
	}
	return sales, nil
}

// RecentPurchases projects the ten most recent orders for the dashboard feed.
func (s *DashboardService) RecentPurchases(ctx context.Context) ([]RecentPurchase, error) {
	orders, err := s.Repo.RecentOrders(ctx, 10)
	if err != nil {
		return nil, err
	}

	purchases := make([]RecentPurchase, 0, len(orders))
	for _, order := range orders {
		names := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			names = append(names, item.Title)
		}
		purchases = append(purchases, RecentPurchase{
			OrderID:       order.ID,
			ProductNames:  strings.Join(names, ", "),
			PaymentStatus: order.PaymentStatus,
			Amount:        order.Total,
			PurchaseDate:  order.CreatedAt,
		})
	}
	return purchases, nil
}
