package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// PatientService handles patient-related operations
type PatientService struct {
	patientRepo repository.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// CreatePatientInput represents the create patient input
type CreatePatientInput struct {
	UserID      uuid.UUID
	Name        string
	Email       *string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
	Gender      *string
	BloodGroup  *string
	Allergies   *string
	InsuranceNo *string
}

// CreatePatient creates a new patient
func (s *PatientService) CreatePatient(ctx context.Context, input *CreatePatientInput) (*entity.Patient, error) {
	// Extract branch ID from context
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	patient := &entity.Patient{
		BranchID:    branchID,
		UserID:      input.UserID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		BloodGroup:  input.BloodGroup,
		Allergies:   input.Allergies,
		InsuranceNo: input.InsuranceNo,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// ListPatients lists patients. If isSuperAdmin is true, returns all patients.
func (s *PatientService) ListPatients(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Patient], error) {
	patients, total, err := s.patientRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(patients, pag), nil
}

// ListPatientsWithCursor lists patients using cursor-based pagination. If isSuperAdmin is true, returns all patients.
func (s *PatientService) ListPatientsWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, search string, isSuperAdmin bool) (*pagination.CursorPaginatedResult[entity.Patient], error) {
	patients, err := s.patientRepo.ListWithCursor(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	// Determine if there was a cursor provided (meaning we're not on first page)
	hasPrev := params.Cursor != ""

	// Build cursor pagination response
	cursorPag, items := pagination.NewCursorPagination(patients, params.Limit,
		func(p entity.Patient) string { return p.ID.String() },
		func(p entity.Patient) time.Time { return p.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdatePatientInput represents the update patient input
type UpdatePatientInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	DateOfBirth  *time.Time
	Gender       *string
	BloodGroup   *string
	Allergies    *string
	InsuranceNo  *string
}

// UpdatePatient updates a patient
func (s *PatientService) UpdatePatient(ctx context.Context, input *UpdatePatientInput) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	// Super-admin can update any patient, regular users can only update their own
	if !input.IsSuperAdmin && patient.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		patient.Name = *input.Name
	}
	if input.Email != nil {
		patient.Email = input.Email
	}
	if input.Phone != nil {
		patient.Phone = input.Phone
	}
	if input.Address != nil {
		patient.Address = input.Address
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		patient.Gender = input.Gender
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = input.BloodGroup
	}
	if input.Allergies != nil {
		patient.Allergies = input.Allergies
	}
	if input.InsuranceNo != nil {
		patient.InsuranceNo = input.InsuranceNo
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// DeletePatient deletes a patient
func (s *PatientService) DeletePatient(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return apperror.NewNotFoundError("Patient")
	}

	// Super-admin can delete any patient, regular users can only delete their own
	if !isSuperAdmin && patient.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.patientRepo.Delete(ctx, id)
}

// SupplierService handles supplier-related operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	UserID        uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	Address       *string
	CompanyName   *string
	LicenseNo     *string
	Type          string
	AccountHolder *string
	AccountNumber *string
	BankName      *string
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	// Extract branch ID from context
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	supplier := &entity.Supplier{
		BranchID:      branchID,
		UserID:        input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		CompanyName:   input.CompanyName,
		LicenseNo:     input.LicenseNo,
		AccountHolder: input.AccountHolder,
		AccountNumber: input.AccountNumber,
		BankName:      input.BankName,
	}
	if input.Type != "" {
		supplier.Type = enum.SupplierType(input.Type)
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers. If isSuperAdmin is true, returns all suppliers.
func (s *SupplierService) ListSuppliers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	UserID        uuid.UUID
	ID            uuid.UUID
	IsSuperAdmin  bool
	Name          *string
	Email         *string
	Phone         *string
	Address       *string
	CompanyName   *string
	LicenseNo     *string
	Type          *string
	AccountHolder *string
	AccountNumber *string
	BankName      *string
}

// UpdateSupplier updates a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	// Super-admin can update any supplier, regular users can only update their own
	if !input.IsSuperAdmin && supplier.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.CompanyName != nil {
		supplier.CompanyName = input.CompanyName
	}
	if input.LicenseNo != nil {
		supplier.LicenseNo = input.LicenseNo
	}
	if input.Type != nil {
		supplier.Type = enum.SupplierType(*input.Type)
	}
	if input.AccountHolder != nil {
		supplier.AccountHolder = input.AccountHolder
	}
	if input.AccountNumber != nil {
		supplier.AccountNumber = input.AccountNumber
	}
	if input.BankName != nil {
		supplier.BankName = input.BankName
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier deletes a supplier
func (s *SupplierService) DeleteSupplier(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}

	// Super-admin can delete any supplier, regular users can only delete their own
	if !isSuperAdmin && supplier.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.supplierRepo.Delete(ctx, id)
}
