package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// PrescriptionService handles prescription-related operations
type PrescriptionService struct {
	prescriptionRepo     repository.PrescriptionRepository
	prescriptionItemRepo repository.PrescriptionItemRepository
	medicineRepo         repository.MedicineRepository
	patientRepo          repository.PatientRepository
	cartService          *CartService
}

// NewPrescriptionService creates a new prescription service
func NewPrescriptionService(
	prescriptionRepo repository.PrescriptionRepository,
	prescriptionItemRepo repository.PrescriptionItemRepository,
	medicineRepo repository.MedicineRepository,
	patientRepo repository.PatientRepository,
	cartService *CartService,
) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo:     prescriptionRepo,
		prescriptionItemRepo: prescriptionItemRepo,
		medicineRepo:         medicineRepo,
		patientRepo:          patientRepo,
		cartService:          cartService,
	}
}

// PrescriptionItemInput represents a prescribed medicine line input
type PrescriptionItemInput struct {
	MedicineID uuid.UUID
	Dosage     string
	Quantity   int
}

// CreatePrescriptionInput represents the input for recording a prescription
type CreatePrescriptionInput struct {
	UserID      uuid.UUID
	PatientID   *uuid.UUID
	PatientName string
	Prescriber  string
	Date        time.Time
	Notes       *string
	Items       []PrescriptionItemInput
}

// CreatePrescription records a new prescription
func (s *PrescriptionService) CreatePrescription(ctx context.Context, input *CreatePrescriptionInput) (*entity.Prescription, error) {
	// Extract branch ID from context
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Prescription must have at least one item")
	}
	if input.Prescriber == "" {
		return nil, apperror.NewBadRequestError("Prescriber is required")
	}

	// Generate reference number
	nextNum, err := s.prescriptionRepo.GetNextReferenceNumber(ctx)
	if err != nil {
		return nil, err
	}
	reference := fmt.Sprintf("RX-%06d", nextNum)

	// Get patient name if patient ID is provided
	patientName := input.PatientName
	if input.PatientID != nil {
		patient, err := s.patientRepo.GetByID(ctx, *input.PatientID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, apperror.NewNotFoundError("Patient")
		}
		patientName = patient.Name
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	prescription := &entity.Prescription{
		BranchID:    branchID,
		UserID:      input.UserID,
		PatientID:   input.PatientID,
		PatientName: patientName,
		Prescriber:  input.Prescriber,
		Reference:   reference,
		Date:        date,
		Status:      enum.PrescriptionStatusPending,
		Notes:       input.Notes,
	}

	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, err
	}

	// Create prescription items, snapshotting the medicine name
	items := make([]entity.PrescriptionItem, 0, len(input.Items))
	for _, item := range input.Items {
		medicine, err := s.medicineRepo.GetByID(ctx, item.MedicineID)
		if err != nil {
			return nil, err
		}
		if medicine == nil {
			return nil, apperror.NewNotFoundError("Medicine")
		}

		items = append(items, entity.PrescriptionItem{
			PrescriptionID: prescription.ID,
			MedicineID:     item.MedicineID,
			MedicineName:   medicine.Name,
			Dosage:         item.Dosage,
			Quantity:       item.Quantity,
		})
	}

	if err := s.prescriptionItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.prescriptionRepo.GetWithItems(ctx, prescription.ID)
}

// GetPrescription retrieves a prescription with its items
func (s *PrescriptionService) GetPrescription(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, apperror.NewNotFoundError("Prescription")
	}
	return prescription, nil
}

// ListPrescriptions lists prescriptions with filtering
func (s *PrescriptionService) ListPrescriptions(ctx context.Context, userID uuid.UUID, params *repository.PrescriptionFilterParams) (*pagination.PaginatedResult[entity.Prescription], error) {
	prescriptions, total, err := s.prescriptionRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(prescriptions, pag), nil
}

// DispensePrescription loads a pending prescription's items into the
// operator's POS cart and marks the prescription dispensed. Payment and
// stock movement happen at checkout like any other cart.
func (s *PrescriptionService) DispensePrescription(ctx context.Context, operatorID, prescriptionID uuid.UUID) (*CartView, error) {
	prescription, err := s.prescriptionRepo.GetWithItems(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, apperror.NewNotFoundError("Prescription")
	}

	if prescription.Status == enum.PrescriptionStatusDispensed {
		return nil, apperror.NewBadRequestError("Prescription is already dispensed")
	}
	if prescription.Status == enum.PrescriptionStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot dispense a cancelled prescription")
	}

	var view *CartView
	for _, item := range prescription.Items {
		view, err = s.cartService.AddMedicine(ctx, operatorID, item.MedicineID, item.Quantity)
		if err != nil {
			return nil, err
		}
	}

	if err := s.prescriptionRepo.UpdateStatus(ctx, prescriptionID, enum.PrescriptionStatusDispensed); err != nil {
		return nil, err
	}

	return view, nil
}

// CancelPrescription cancels a pending prescription
func (s *PrescriptionService) CancelPrescription(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	prescription, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if prescription == nil {
		return apperror.NewNotFoundError("Prescription")
	}

	if !isSuperAdmin && prescription.UserID != userID {
		return apperror.ErrForbidden
	}

	if prescription.Status == enum.PrescriptionStatusDispensed {
		return apperror.NewBadRequestError("Cannot cancel a dispensed prescription")
	}

	return s.prescriptionRepo.UpdateStatus(ctx, id, enum.PrescriptionStatusCancelled)
}

// DeletePrescription deletes a prescription and its items
func (s *PrescriptionService) DeletePrescription(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	prescription, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if prescription == nil {
		return apperror.NewNotFoundError("Prescription")
	}

	// Check permission
	if !isSuperAdmin && prescription.UserID != userID {
		return apperror.ErrForbidden
	}

	// Delete items first
	if err := s.prescriptionItemRepo.DeleteByPrescriptionID(ctx, id); err != nil {
		return err
	}

	return s.prescriptionRepo.Delete(ctx, id)
}
