package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	domainRepo "github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) Update(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

func (r *purchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Purchase{}, "id = ?", id).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	return firstOrNil[entity.Purchase](
		r.db.WithContext(ctx).Scopes(BranchScope(ctx)).Preload("Supplier"),
		"id = ?", id)
}

func (r *purchaseRepository) GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.Purchase, error) {
	return firstOrNil[entity.Purchase](
		r.db.WithContext(ctx).Scopes(BranchScope(ctx)),
		"purchase_no = ?", purchaseNo)
}

func (r *purchaseRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	return firstOrNil[entity.Purchase](
		r.db.WithContext(ctx).
			Scopes(BranchScope(ctx)).
			Preload("Supplier").
			Preload("Details.Medicine"),
		"id = ?", id)
}

func (r *purchaseRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Purchase{}).Scopes(BranchScope(ctx))

	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	if params.Search != "" {
		query = query.Where("purchase_no ILIKE ?", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	var purchases []entity.Purchase
	err := query.
		Preload("Supplier").
		Order(purchaseSortClause(params.SortBy, params.SortOrder)).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&purchases).Error
	return purchases, total, err
}

// purchaseSortClause defaults to newest-first; only an explicit "asc"
// flips the direction.
func purchaseSortClause(sortBy, sortOrder string) string {
	if sortBy == "" {
		sortBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return sortBy + " " + dir
}

func (r *purchaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseRepository) GetPendingPurchases(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Scopes(BranchScope(ctx)).
		Where("user_id = ? AND status = ?", userID, enum.PurchaseStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	var purchases []entity.Purchase
	err := query.
		Preload("Supplier").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&purchases).Error
	return purchases, total, err
}

type purchaseDetailRepository struct {
	db *gorm.DB
}

func NewPurchaseDetailRepository(db *gorm.DB) domainRepo.PurchaseDetailRepository {
	return &purchaseDetailRepository{db: db}
}

func (r *purchaseDetailRepository) Create(ctx context.Context, detail *entity.PurchaseDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *purchaseDetailRepository) CreateBatch(ctx context.Context, details []entity.PurchaseDetail) error {
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *purchaseDetailRepository) GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]entity.PurchaseDetail, error) {
	var details []entity.PurchaseDetail
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Where("purchase_id = ?", purchaseID).
		Find(&details).Error
	return details, err
}

func (r *purchaseDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PurchaseDetail{}, "id = ?", id).Error
}

func (r *purchaseDetailRepository) DeleteByPurchaseID(ctx context.Context, purchaseID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PurchaseDetail{}, "purchase_id = ?", purchaseID).Error
}
