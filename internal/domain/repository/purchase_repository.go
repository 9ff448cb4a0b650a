package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// PurchaseFilterParams narrows and orders purchase listings.
type PurchaseFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Status         *enum.PurchaseStatus
	SupplierID     *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
	SkipUserFilter bool // super-admins see every user's purchases
}

// PurchaseRepository persists supplier purchase orders.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	Update(ctx context.Context, purchase *entity.Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.Purchase, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	List(ctx context.Context, userID uuid.UUID, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error
	GetPendingPurchases(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Purchase, int64, error)
}

// PurchaseDetailRepository persists the line items of a purchase order.
type PurchaseDetailRepository interface {
	Create(ctx context.Context, detail *entity.PurchaseDetail) error
	CreateBatch(ctx context.Context, details []entity.PurchaseDetail) error
	GetByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]entity.PurchaseDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPurchaseID(ctx context.Context, purchaseID uuid.UUID) error
}
