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
	"github.com/pharmacare/pharmacare-api/pkg/currency"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// PurchaseService handles purchase-related operations
type PurchaseService struct {
	purchaseRepo       repository.PurchaseRepository
	purchaseDetailRepo repository.PurchaseDetailRepository
	medicineRepo       repository.MedicineRepository
	supplierRepo       repository.SupplierRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	purchaseDetailRepo repository.PurchaseDetailRepository,
	medicineRepo repository.MedicineRepository,
	supplierRepo repository.SupplierRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:       purchaseRepo,
		purchaseDetailRepo: purchaseDetailRepo,
		medicineRepo:       medicineRepo,
		supplierRepo:       supplierRepo,
	}
}

// PurchaseItemInput represents an item in a purchase
type PurchaseItemInput struct {
	MedicineID  uuid.UUID
	Quantity    int
	UnitCost    float64
	BatchNumber *string
	ExpiryDate  *time.Time
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	UserID        uuid.UUID
	SupplierID    *uuid.UUID
	TaxPercentage float64
	Items         []PurchaseItemInput
}

// CreatePurchase creates a new purchase order with its details
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	// Extract branch ID from context
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Purchase must have at least one item")
	}

	// Validate supplier if provided
	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	// Batch fetch all medicines in one query (prevents N+1)
	medicineIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		medicineIDs[i] = item.MedicineID
	}

	medicines, err := s.medicineRepo.GetByIDs(ctx, medicineIDs)
	if err != nil {
		return nil, err
	}

	// Create a map for quick lookup
	medicineMap := make(map[uuid.UUID]*entity.Medicine, len(medicines))
	for i := range medicines {
		medicineMap[medicines[i].ID] = &medicines[i]
	}

	// Calculate totals and validate medicines
	var totalAmount int64
	purchaseDetails := make([]entity.PurchaseDetail, 0, len(input.Items))

	for _, item := range input.Items {
		if _, exists := medicineMap[item.MedicineID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Medicine %s", item.MedicineID))
		}

		unitCostCents := currency.ToCents(item.UnitCost)
		itemTotal := unitCostCents * int64(item.Quantity)
		totalAmount += itemTotal

		purchaseDetails = append(purchaseDetails, entity.PurchaseDetail{
			MedicineID:  item.MedicineID,
			Quantity:    item.Quantity,
			UnitCost:    unitCostCents,
			Total:       itemTotal,
			BatchNumber: item.BatchNumber,
			ExpiryDate:  item.ExpiryDate,
		})
	}

	// Calculate tax
	taxAmount := int64(float64(totalAmount) * input.TaxPercentage / 100)

	// Generate purchase number
	purchaseNo := fmt.Sprintf("PUR-%s", uuid.New().String()[:8])

	purchase := &entity.Purchase{
		BranchID:      branchID,
		UserID:        input.UserID,
		SupplierID:    input.SupplierID,
		Date:          time.Now(),
		PurchaseNo:    purchaseNo,
		Status:        enum.PurchaseStatusPending,
		TotalAmount:   totalAmount + taxAmount,
		TaxPercentage: input.TaxPercentage,
		TaxAmount:     taxAmount,
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	// Create purchase details
	for i := range purchaseDetails {
		purchaseDetails[i].PurchaseID = purchase.ID
	}

	if err := s.purchaseDetailRepo.CreateBatch(ctx, purchaseDetails); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, purchase.ID)
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, userID uuid.UUID, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// ApprovePurchase marks a pending purchase as approved
func (s *PurchaseService) ApprovePurchase(ctx context.Context, userID, purchaseID uuid.UUID, isSuperAdmin bool) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}

	// Super-admin can approve any purchase, regular users can only approve their own
	if !isSuperAdmin && purchase.UserID != userID {
		return apperror.ErrForbidden
	}

	if purchase.Status != enum.PurchaseStatusPending {
		return apperror.NewAppError(400, "Only pending purchases can be approved")
	}

	return s.purchaseRepo.UpdateStatus(ctx, purchaseID, enum.PurchaseStatusApproved)
}

// ReceivePurchase marks an approved purchase as received and adds the
// purchased quantities to stock. Batch numbers and expiry dates on the
// purchase lines are carried onto the medicine records.
func (s *PurchaseService) ReceivePurchase(ctx context.Context, userID, purchaseID uuid.UUID, isSuperAdmin bool) error {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}

	if !isSuperAdmin && purchase.UserID != userID {
		return apperror.ErrForbidden
	}

	if purchase.Status == enum.PurchaseStatusReceived {
		return apperror.NewAppError(400, "Purchase is already received")
	}
	if purchase.Status == enum.PurchaseStatusCancelled {
		return apperror.NewAppError(400, "Cannot receive a cancelled purchase")
	}

	// Build increment map for stock update
	stockIncrements := make(map[uuid.UUID]int)
	for _, detail := range purchase.Details {
		stockIncrements[detail.MedicineID] += detail.Quantity
	}

	// Atomically add purchased quantities to stock
	if err := s.medicineRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	// Carry batch and expiry onto the medicine records
	for _, detail := range purchase.Details {
		if detail.BatchNumber == nil && detail.ExpiryDate == nil {
			continue
		}
		medicine, err := s.medicineRepo.GetByID(ctx, detail.MedicineID)
		if err != nil || medicine == nil {
			continue
		}
		if detail.BatchNumber != nil {
			medicine.BatchNumber = detail.BatchNumber
		}
		if detail.ExpiryDate != nil {
			medicine.ExpiryDate = detail.ExpiryDate
		}
		if err := s.medicineRepo.Update(ctx, medicine); err != nil {
			return err
		}
	}

	return s.purchaseRepo.UpdateStatus(ctx, purchaseID, enum.PurchaseStatusReceived)
}

// CancelPurchase cancels a purchase that has not been received yet
func (s *PurchaseService) CancelPurchase(ctx context.Context, userID, purchaseID uuid.UUID, isSuperAdmin bool) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}

	if !isSuperAdmin && purchase.UserID != userID {
		return apperror.ErrForbidden
	}

	if purchase.Status == enum.PurchaseStatusReceived {
		return apperror.NewAppError(400, "Cannot cancel a received purchase")
	}

	return s.purchaseRepo.UpdateStatus(ctx, purchaseID, enum.PurchaseStatusCancelled)
}

// DeletePurchase deletes a purchase that has not been received
func (s *PurchaseService) DeletePurchase(ctx context.Context, userID, purchaseID uuid.UUID, isSuperAdmin bool) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}

	// Super-admin can delete any purchase, regular users can only delete their own
	if !isSuperAdmin && purchase.UserID != userID {
		return apperror.ErrForbidden
	}

	if purchase.Status == enum.PurchaseStatusReceived {
		return apperror.NewAppError(400, "Cannot delete a received purchase")
	}

	// Delete details first
	if err := s.purchaseDetailRepo.DeleteByPurchaseID(ctx, purchaseID); err != nil {
		return err
	}

	return s.purchaseRepo.Delete(ctx, purchaseID)
}

// GetPendingPurchases returns pending purchases
func (s *PurchaseService) GetPendingPurchases(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.GetPendingPurchases(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}
