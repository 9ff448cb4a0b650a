package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// SaleService handles completed sale records. Sales are created exclusively
// by the checkout pipeline; this service covers listing, lookup, payment of
// dues and cancellation with stock restoration.
type SaleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	medicineRepo repository.MedicineRepository
}

// NewSaleService creates a new sale service.
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	medicineRepo repository.MedicineRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		medicineRepo: medicineRepo,
	}
}

// GetSale retrieves a sale with its items.
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByInvoiceNo retrieves a sale by its invoice number.
func (s *SaleService) GetSaleByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering and offset pagination.
func (s *SaleService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales using cursor-based pagination.
func (s *SaleService) ListSalesWithCursor(ctx context.Context, userID uuid.UUID, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sa entity.Sale) string { return sa.ID.String() },
		func(sa entity.Sale) time.Time { return sa.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// GetDueSales lists sales that still carry an outstanding balance.
func (s *SaleService) GetDueSales(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.GetDueSales(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// PayDue records a payment against a sale's outstanding balance. Amount is
// a decimal; overpaying beyond the due balance is rejected.
func (s *SaleService) PayDue(ctx context.Context, id uuid.UUID, amount float64) (*entity.Sale, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot pay a cancelled sale")
	}

	amountCents := int64(amount*100 + 0.5)
	if amountCents > sale.Due {
		return nil, apperror.NewBadRequestError("Payment exceeds due amount")
	}

	sale.Paid += amountCents
	sale.Due -= amountCents
	if sale.Due == 0 {
		sale.Status = enum.SaleStatusCompleted
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

// CancelSale cancels a sale and restores the dispensed stock.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return nil, apperror.NewBadRequestError("Sale is already cancelled")
	}

	// Restore stock for every dispensed line
	increments := make(map[uuid.UUID]int, len(sale.Items))
	for _, item := range sale.Items {
		increments[item.MedicineID] += item.Quantity
	}
	if len(increments) > 0 {
		if err := s.medicineRepo.AtomicIncrementBatch(ctx, increments); err != nil {
			log.Printf("Failed to restore stock for cancelled sale %s: %v", id, err)
			return nil, err
		}
	}

	if err := s.saleRepo.UpdateStatus(ctx, id, enum.SaleStatusCancelled); err != nil {
		return nil, err
	}

	sale.Status = enum.SaleStatusCancelled
	return sale, nil
}

// DeleteSale soft-deletes a sale record. Stock is not restored; use
// CancelSale for reversals that should put stock back.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	return s.saleRepo.Delete(ctx, id)
}
