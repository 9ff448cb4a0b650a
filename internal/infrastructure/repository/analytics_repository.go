package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	domainRepo "github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetSalesSummary(ctx context.Context, userID uuid.UUID, start, end time.Time) (*domainRepo.SalesSummaryResult, error) {
	var result domainRepo.SalesSummaryResult

	query := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(id) as total_sales,
			COALESCE(SUM(total), 0) as total_revenue,
			COALESCE(SUM(tax), 0) as total_tax,
			COALESCE(SUM(discount), 0) as total_discount,
			COALESCE(SUM(due), 0) as total_due
		FROM sales
		WHERE status = 1
		AND deleted_at IS NULL
		AND user_id = ?
		AND sale_date >= ? AND sale_date < ?
	`, userID, start, end)

	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *analyticsRepository) GetTopMedicines(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]domainRepo.TopMedicineResult, error) {
	var results []domainRepo.TopMedicineResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			si.medicine_id as medicine_id,
			si.medicine_name as medicine_name,
			COALESCE(SUM(si.quantity), 0) as total_sold,
			COALESCE(SUM(si.total), 0) as total_revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.status = 1
		AND s.deleted_at IS NULL
		AND s.user_id = ?
		AND s.sale_date >= ? AND s.sale_date < ?
		GROUP BY si.medicine_id, si.medicine_name
		ORDER BY total_revenue DESC
		LIMIT ?
	`, userID, start, end, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(sale_date) as date,
			COUNT(id) as sales_count,
			COALESCE(SUM(total), 0) as total_value
		FROM sales
		WHERE status = 1
		AND deleted_at IS NULL
		AND user_id = ?
		AND sale_date >= ? AND sale_date < ?
		GROUP BY DATE(sale_date)
		ORDER BY date ASC
	`, userID, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) CountMedicines(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Medicine{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountPatients(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Patient{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountLowStock(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Medicine{}).
		Where("user_id = ? AND quantity <= quantity_alert", userID).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountExpiringBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Medicine{}).
		Where("user_id = ? AND expiry_date IS NOT NULL AND expiry_date < ?", userID, cutoff).
		Count(&count).Error
	return count, err
}
