package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// MedicineRepository defines the interface for medicine data operations
type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	CreateBatch(ctx context.Context, medicines []entity.Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error)
	// GetByIDs retrieves multiple medicines by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Medicine, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Medicine, error)
	GetByCode(ctx context.Context, code string) (*entity.Medicine, error)
	Update(ctx context.Context, medicine *entity.Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *MedicineFilterParams) ([]entity.Medicine, int64, error)
	GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.Medicine, error)
	// GetExpiringBefore returns medicines whose expiry date falls before the cutoff
	GetExpiringBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]entity.Medicine, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	// AtomicDecrementBatch atomically decrements stock for multiple medicines.
	// Returns IDs that failed (insufficient stock); if any fail the whole
	// transaction is rolled back.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock (cancellations, received purchases).
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// MedicineFilterParams contains filtering parameters for medicine queries
type MedicineFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	CategoryID     *uuid.UUID
	UnitID         *uuid.UUID
	LowStock       bool
	ExpiringInDays int
	SortBy         string
	SortOrder      string
	SkipUserFilter bool // If true, returns all medicines (for super-admin)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Category, int64, error)
}

// UnitRepository defines the interface for unit data operations
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Unit, int64, error)
}
