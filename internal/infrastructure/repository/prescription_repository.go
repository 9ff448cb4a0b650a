package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	domainRepo "github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"gorm.io/gorm"
)

type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(db *gorm.DB) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *entity.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.db.WithContext(ctx).
		Scopes(BranchScope(ctx)).
		Preload("Patient").
		First(&prescription, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &prescription, err
}

func (r *prescriptionRepository) GetByReference(ctx context.Context, reference string) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.db.WithContext(ctx).Scopes(BranchScope(ctx)).First(&prescription, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &prescription, err
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *entity.Prescription) error {
	return r.db.WithContext(ctx).Save(prescription).Error
}

func (r *prescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Prescription{}, "id = ?", id).Error
}

func (r *prescriptionRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.PrescriptionFilterParams) ([]entity.Prescription, int64, error) {
	var prescriptions []entity.Prescription
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Prescription{}).Scopes(BranchScope(ctx))

	// Only filter by user_id if a non-zero userID is provided (super-admin can see all)
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("reference ILIKE ? OR patient_name ILIKE ? OR prescriber ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PatientID != nil {
		query = query.Where("patient_id = ?", *params.PatientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Order(sortBy + " " + sortOrder).
		Find(&prescriptions).Error

	return prescriptions, total, err
}

func (r *prescriptionRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.db.WithContext(ctx).
		Scopes(BranchScope(ctx)).
		Preload("Patient").
		Preload("Items.Medicine").
		First(&prescription, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &prescription, err
}

func (r *prescriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PrescriptionStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Prescription{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *prescriptionRepository) GetNextReferenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Prescription{}).Count(&count).Error
	return int(count) + 1, err
}

type prescriptionItemRepository struct {
	db *gorm.DB
}

// NewPrescriptionItemRepository creates a new prescription item repository
func NewPrescriptionItemRepository(db *gorm.DB) domainRepo.PrescriptionItemRepository {
	return &prescriptionItemRepository{db: db}
}

func (r *prescriptionItemRepository) Create(ctx context.Context, item *entity.PrescriptionItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *prescriptionItemRepository) CreateBatch(ctx context.Context, items []entity.PrescriptionItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *prescriptionItemRepository) GetByPrescriptionID(ctx context.Context, prescriptionID uuid.UUID) ([]entity.PrescriptionItem, error) {
	var items []entity.PrescriptionItem
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Where("prescription_id = ?", prescriptionID).
		Find(&items).Error
	return items, err
}

func (r *prescriptionItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PrescriptionItem{}, "id = ?", id).Error
}

func (r *prescriptionItemRepository) DeleteByPrescriptionID(ctx context.Context, prescriptionID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PrescriptionItem{}, "prescription_id = ?", prescriptionID).Error
}
