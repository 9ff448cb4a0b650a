package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	saleRepo      repository.SaleRepository
	purchaseRepo  repository.PurchaseRepository

	nearExpiryDays int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	nearExpiryDays int,
) *DashboardService {
	return &DashboardService{
		analyticsRepo:  analyticsRepo,
		saleRepo:       saleRepo,
		purchaseRepo:   purchaseRepo,
		nearExpiryDays: nearExpiryDays,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalPatients     int64                          `json:"total_patients"`
	TotalMedicines    int64                          `json:"total_medicines"`
	TotalSales        int64                          `json:"total_sales"`
	TotalRevenue      float64                        `json:"total_revenue"`
	MonthlyRevenue    float64                        `json:"monthly_revenue"`
	TotalTax          float64                        `json:"total_tax"`
	TotalDiscount     float64                        `json:"total_discount"`
	OutstandingDue    float64                        `json:"outstanding_due"`
	LowStockCount     int64                          `json:"low_stock_count"`
	ExpiringSoonCount int64                          `json:"expiring_soon_count"`
	PendingPurchases  int64                          `json:"pending_purchases"`
	DailySalesData    []DailySalesPoint              `json:"daily_sales_data"`
	TopMedicines      []repository.TopMedicineResult `json:"top_medicines"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date       string  `json:"date"`
	SalesCount int     `json:"sales_count"`
	Revenue    float64 `json:"revenue"`
}

// GetDashboardStats returns dashboard statistics for the last 30 days of
// sales plus inventory health counters.
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()

	// Entity counts
	patientCount, err := s.analyticsRepo.CountPatients(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.TotalPatients = patientCount

	medicineCount, err := s.analyticsRepo.CountMedicines(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.TotalMedicines = medicineCount

	lowStockCount, err := s.analyticsRepo.CountLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = lowStockCount

	expiryCutoff := now.AddDate(0, 0, s.nearExpiryDays)
	expiringCount, err := s.analyticsRepo.CountExpiringBefore(ctx, userID, expiryCutoff)
	if err != nil {
		return nil, err
	}
	stats.ExpiringSoonCount = expiringCount

	// All-time sales summary
	allTime, err := s.analyticsRepo.GetSalesSummary(ctx, userID, time.Time{}, now)
	if err != nil {
		return nil, err
	}
	stats.TotalSales = int64(allTime.TotalSales)
	stats.TotalRevenue = float64(allTime.TotalRevenue) / 100
	stats.TotalTax = float64(allTime.TotalTax) / 100
	stats.TotalDiscount = float64(allTime.TotalDiscount) / 100
	stats.OutstandingDue = float64(allTime.TotalDue) / 100

	// Current month revenue
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthly, err := s.analyticsRepo.GetSalesSummary(ctx, userID, startOfMonth, now)
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = float64(monthly.TotalRevenue) / 100

	// Pending purchases
	pendingStatus := enum.PurchaseStatusPending
	pendingParams := &repository.PurchaseFilterParams{
		Pagination:     &pagination.PaginationParams{Page: 1, PerPage: 1},
		Status:         &pendingStatus,
		SkipUserFilter: true,
	}
	_, pendingCount, err := s.purchaseRepo.List(ctx, userID, pendingParams)
	if err != nil {
		return nil, err
	}
	stats.PendingPurchases = pendingCount

	// Daily sales for the last 7 days
	weekStart := now.AddDate(0, 0, -6)
	daily, err := s.analyticsRepo.GetDailySales(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]repository.DailySalesResult, len(daily))
	for _, d := range daily {
		byDate[d.Date.Format("2006-01-02")] = d
	}

	stats.DailySalesData = make([]DailySalesPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		point := DailySalesPoint{Date: date.Format("Jan 02")}
		if d, ok := byDate[date.Format("2006-01-02")]; ok {
			point.SalesCount = d.SalesCount
			point.Revenue = float64(d.TotalValue) / 100
		}
		stats.DailySalesData = append(stats.DailySalesData, point)
	}

	// Top sellers over the last 30 days
	topMedicines, err := s.analyticsRepo.GetTopMedicines(ctx, userID, now.AddDate(0, 0, -30), now, 5)
	if err != nil {
		return nil, err
	}
	stats.TopMedicines = topMedicines

	return stats, nil
}
