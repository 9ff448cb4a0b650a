package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopMedicineResult holds aggregated sales data for a single medicine
type TopMedicineResult struct {
	MedicineID   uuid.UUID `json:"medicine_id"`
	MedicineName string    `json:"medicine_name"`
	TotalSold    int       `json:"total_sold"`
	TotalRevenue int64     `json:"total_revenue"`
}

// DailySalesResult holds aggregated sales data for a single day
type DailySalesResult struct {
	Date       time.Time `json:"date"`
	SalesCount int       `json:"sales_count"`
	TotalValue int64     `json:"total_value"`
}

// SalesSummaryResult holds aggregate figures for a date range
type SalesSummaryResult struct {
	TotalSales    int   `json:"total_sales"`
	TotalRevenue  int64 `json:"total_revenue"`
	TotalTax      int64 `json:"total_tax"`
	TotalDiscount int64 `json:"total_discount"`
	TotalDue      int64 `json:"total_due"`
}

// AnalyticsRepository defines the interface for dashboard analytics queries
type AnalyticsRepository interface {
	GetSalesSummary(ctx context.Context, userID uuid.UUID, start, end time.Time) (*SalesSummaryResult, error)
	GetTopMedicines(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]TopMedicineResult, error)
	GetDailySales(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DailySalesResult, error)
	CountMedicines(ctx context.Context, userID uuid.UUID) (int64, error)
	CountPatients(ctx context.Context, userID uuid.UUID) (int64, error)
	CountLowStock(ctx context.Context, userID uuid.UUID) (int64, error)
	CountExpiringBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int64, error)
}
