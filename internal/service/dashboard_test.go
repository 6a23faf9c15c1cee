package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/repo"
)

// fixedNow is a Wednesday so the week window test crosses a Monday boundary.
var fixedNow = time.Date(2026, time.June, 10, 15, 0, 0, 0, time.UTC)

func seedOrder(t *testing.T, r *repo.GormRepo, createdAt time.Time, total float64, qty int) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderNumber: fmt.Sprintf("ORD-%s", uuid.NewString()[:10]),
		Items: []models.OrderItem{{
			ProductID: uuid.New(),
			Title:     "Seeded",
			Slug:      "seeded",
			Price:     total,
			Quantity:  qty,
			UnitPrice: total / float64(qty),
			Subtotal:  total,
		}},
		ShippingAddress: models.ShippingAddress{
			Name: "S", Email: "s@example.com", Contact: "1",
			Address: "A", State: "ST", Country: "C",
		},
		Subtotal:      total,
		Total:         total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPaid,
		CreatedAt:     createdAt,
	}
	require.NoError(t, r.DB.Create(order).Error)
	return order
}

func TestGetSummary(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &DashboardService{Repo: r, Now: func() time.Time { return fixedNow }}
	ctx := context.Background()

	createTestProduct(t, r, &models.Product{Title: "P1", Slug: "p1", Price: 1, IsActive: true})

	seedOrder(t, r, fixedNow.Add(-2*time.Hour), 100, 1)       // today
	seedOrder(t, r, fixedNow.AddDate(0, 0, -1), 50, 2)        // this week, not today
	seedOrder(t, r, fixedNow.AddDate(0, 0, -7), 200, 1)       // previous week, this month
	seedOrder(t, r, fixedNow.AddDate(0, -1, 0), 400, 3)       // previous month
	seedOrder(t, r, fixedNow.AddDate(-1, 0, 0), 1000, 5)      // previous year

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 100, summary.TodaysSales, 1e-9)
	assert.EqualValues(t, 5, summary.TotalOrders)
	assert.EqualValues(t, 12, summary.TotalSoldItems)
	assert.EqualValues(t, 1, summary.TotalProducts)

	assert.InDelta(t, 150, summary.SalesThisWeek.Current, 1e-9)
	assert.InDelta(t, 200, summary.SalesThisWeek.Previous, 1e-9)
	assert.InDelta(t, -25, summary.SalesThisWeek.PercentageDifference, 1e-9)
	assert.Equal(t, "down", summary.SalesThisWeek.Status)

	assert.InDelta(t, 350, summary.SalesThisMonth.Current, 1e-9)
	assert.InDelta(t, 400, summary.SalesThisMonth.Previous, 1e-9)
	assert.Equal(t, "down", summary.SalesThisMonth.Status)
}

func TestSummaryZeroPreviousPeriod(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &DashboardService{Repo: r, Now: func() time.Time { return fixedNow }}
	ctx := context.Background()

	seedOrder(t, r, fixedNow.Add(-time.Hour), 75, 1)

	week, err := svc.SalesThisWeek(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 75, week.Current, 1e-9)
	assert.Zero(t, week.Previous)
	// No division blowup when the previous period is empty.
	assert.Zero(t, week.PercentageDifference)
	assert.Equal(t, "up", week.Status)
}

func TestSummaryEmptyDatabase(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &DashboardService{Repo: r, Now: func() time.Time { return fixedNow }}

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TodaysSales)
	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.TotalSoldItems)
	assert.Zero(t, summary.SalesThisWeek.PercentageDifference)
}

func TestYearlySales(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &DashboardService{Repo: r, Now: func() time.Time { return fixedNow }}
	ctx := context.Background()

	seedOrder(t, r, time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC), 120, 2)
	seedOrder(t, r, time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC), 80, 1)
	seedOrder(t, r, time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC), 999, 9)

	sales, err := svc.YearlySales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 12)

	march := sales[2]
	assert.Equal(t, 3, march.Month)
	assert.InDelta(t, 200, march.TotalSales, 1e-9)
	assert.EqualValues(t, 2, march.TotalOrders)
	assert.EqualValues(t, 3, march.SoldItems)

	// Months with no orders report zeros, never an error.
	january := sales[0]
	assert.Equal(t, 1, january.Month)
	assert.Zero(t, january.TotalSales)
	assert.Zero(t, january.TotalOrders)
	assert.Zero(t, january.SoldItems)
}

func TestRecentPurchases(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &DashboardService{Repo: r, Now: func() time.Time { return fixedNow }}
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		seedOrder(t, r, fixedNow.Add(-time.Duration(i)*time.Hour), float64(10+i), 1)
	}

	purchases, err := svc.RecentPurchases(ctx)
	require.NoError(t, err)
	require.Len(t, purchases, 10)

	// Most recent first.
	assert.InDelta(t, 10, purchases[0].Amount, 1e-9)
	assert.Equal(t, "Seeded", purchases[0].ProductNames)
	assert.Equal(t, models.PaymentStatusPaid, purchases[0].PaymentStatus)
}
