package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// PrescriptionRepository defines the interface for prescription data operations
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error)
	GetByReference(ctx context.Context, reference string) (*entity.Prescription, error)
	Update(ctx context.Context, prescription *entity.Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *PrescriptionFilterParams) ([]entity.Prescription, int64, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Prescription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PrescriptionStatus) error
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

// PrescriptionFilterParams contains filtering parameters for prescription queries
type PrescriptionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PrescriptionStatus
	PatientID  *uuid.UUID
	SortBy     string
	SortOrder  string
}

// PrescriptionItemRepository defines the interface for prescription item data operations
type PrescriptionItemRepository interface {
	Create(ctx context.Context, item *entity.PrescriptionItem) error
	CreateBatch(ctx context.Context, items []entity.PrescriptionItem) error
	GetByPrescriptionID(ctx context.Context, prescriptionID uuid.UUID) ([]entity.PrescriptionItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPrescriptionID(ctx context.Context, prescriptionID uuid.UUID) error
}
