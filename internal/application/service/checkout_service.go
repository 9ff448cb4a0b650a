package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/checkout"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/internal/domain/interaction"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
	"github.com/pharmacare/pharmacare-api/pkg/currency"
	"github.com/pharmacare/pharmacare-api/pkg/utils"
)

// CheckoutState tracks where an operator's checkout attempt currently is.
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "idle"
	CheckoutStateChecking   CheckoutState = "checking_interactions"
	CheckoutStateBlocked    CheckoutState = "blocked_on_alert"
	CheckoutStateSubmitting CheckoutState = "submitting"
	CheckoutStateCompleted  CheckoutState = "completed"
	CheckoutStateFailed     CheckoutState = "failed"
)

// CheckoutService turns a cart into a persisted sale. Every attempt runs
// the interaction safety gate before stock is touched; a blocked attempt
// changes nothing and can be retried with an explicit acknowledgement.
type CheckoutService struct {
	cartService  *CartService
	medicineRepo repository.MedicineRepository
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	patientRepo  repository.PatientRepository
	branchRepo   repository.BranchRepository
	checker      *interaction.Checker

	invoicePrefix      string
	blockOnInteraction bool

	mu      sync.Mutex
	states  map[uuid.UUID]*checkoutStatus
	history map[uuid.UUID][]*entity.Sale
}

// historyLimit caps the per-operator recent-sales list kept in memory.
const historyLimit = 20

type checkoutStatus struct {
	state    CheckoutState
	warnings []interaction.Warning
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartService *CartService,
	medicineRepo repository.MedicineRepository,
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	patientRepo repository.PatientRepository,
	branchRepo repository.BranchRepository,
	checker *interaction.Checker,
	invoicePrefix string,
	blockOnInteraction bool,
) *CheckoutService {
	return &CheckoutService{
		cartService:        cartService,
		medicineRepo:       medicineRepo,
		saleRepo:           saleRepo,
		saleItemRepo:       saleItemRepo,
		patientRepo:        patientRepo,
		branchRepo:         branchRepo,
		checker:            checker,
		invoicePrefix:      invoicePrefix,
		blockOnInteraction: blockOnInteraction,
		states:             make(map[uuid.UUID]*checkoutStatus),
		history:            make(map[uuid.UUID][]*entity.Sale),
	}
}

// CheckoutInput represents the checkout request for an operator's cart.
type CheckoutInput struct {
	UserID                  uuid.UUID
	PatientID               *uuid.UUID
	PaymentMethod           string
	TaxPercent              *float64 // overrides branch settings when set
	Paid                    float64  // decimal amount tendered
	AcknowledgeInteractions bool
}

// CheckoutResult is the outcome of a checkout attempt. Warnings are present
// whenever the interaction gate found known combinations, including on
// completed sales where the operator acknowledged them.
type CheckoutResult struct {
	State    CheckoutState         `json:"state"`
	Warnings []interaction.Warning `json:"warnings,omitempty"`
	Sale     *entity.Sale          `json:"sale,omitempty"`
}

// setState records the operator's checkout state.
func (s *CheckoutService) setState(operatorID uuid.UUID, state CheckoutState, warnings []interaction.Warning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[operatorID] = &checkoutStatus{state: state, warnings: warnings}
}

// appendHistory records a completed sale in the operator's recent list.
func (s *CheckoutService) appendHistory(operatorID uuid.UUID, sale *entity.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales := append(s.history[operatorID], sale)
	if len(sales) > historyLimit {
		sales = sales[len(sales)-historyLimit:]
	}
	s.history[operatorID] = sales
}

// RecentSales returns the operator's completed sales from this session,
// most recent first.
func (s *CheckoutService) RecentSales(operatorID uuid.UUID) []*entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales := s.history[operatorID]
	out := make([]*entity.Sale, 0, len(sales))
	for i := len(sales) - 1; i >= 0; i-- {
		out = append(out, sales[i])
	}
	return out
}

// GetState returns the operator's last checkout state and any pending
// interaction warnings.
func (s *CheckoutService) GetState(operatorID uuid.UUID) *CheckoutResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[operatorID]
	if !ok {
		return &CheckoutResult{State: CheckoutStateIdle}
	}
	return &CheckoutResult{State: st.state, Warnings: st.warnings}
}

// Checkout runs the full checkout pipeline for the operator's cart:
// interaction check, stock decrement, sale creation and cart reset. A
// blocked or failed attempt leaves the cart and stock untouched.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	lines, discount := s.cartService.Snapshot(input.UserID)
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	paymentMethod := enum.PaymentMethod(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = enum.PaymentMethodCash
	}
	if !paymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	// Validate the patient reference before anything irreversible happens
	if input.PatientID != nil {
		patient, err := s.patientRepo.GetByID(ctx, *input.PatientID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, apperror.NewNotFoundError("Patient")
		}
	}

	// Safety gate: check every pair of cart medicines against the known
	// interaction table before any stock moves.
	s.setState(input.UserID, CheckoutStateChecking, nil)

	tokens := make([]string, 0, len(lines))
	for _, l := range lines {
		name := l.GenericName
		if name == "" {
			name = l.Name
		}
		tokens = append(tokens, interaction.Tokenize(name))
	}
	warnings := s.checker.Check(tokens)

	if len(warnings) > 0 && s.shouldBlock(ctx, branchID) && !input.AcknowledgeInteractions {
		s.setState(input.UserID, CheckoutStateBlocked, warnings)
		return &CheckoutResult{State: CheckoutStateBlocked, Warnings: warnings}, nil
	}

	s.setState(input.UserID, CheckoutStateSubmitting, warnings)

	taxPercent := s.cartService.ResolveTaxPercent(ctx)
	if input.TaxPercent != nil {
		taxPercent = *input.TaxPercent
	}

	totals := checkout.ComputeTotals(lines, discount, taxPercent, currency.ToCents(input.Paid))

	// Atomically decrement stock for all lines; any medicine without enough
	// stock fails the whole batch and nothing is decremented.
	stockDecrements := make(map[uuid.UUID]int, len(lines))
	for _, l := range lines {
		stockDecrements[l.MedicineID] = l.Quantity
	}

	failedIDs, err := s.medicineRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		s.setState(input.UserID, CheckoutStateFailed, warnings)
		return nil, err
	}
	if len(failedIDs) > 0 {
		names := s.medicineNames(ctx, failedIDs, lines)
		s.setState(input.UserID, CheckoutStateFailed, warnings)
		return nil, apperror.NewConflictError(fmt.Sprintf("Insufficient stock for: %v", names))
	}

	status := enum.SaleStatusCompleted
	if totals.Due > 0 {
		status = enum.SaleStatusPending
	}

	sale := &entity.Sale{
		BranchID:        branchID,
		UserID:          input.UserID,
		PatientID:       input.PatientID,
		SaleDate:        time.Now(),
		Status:          status,
		InvoiceNo:       utils.GenerateInvoiceNo(s.invoicePrefix),
		TotalItems:      len(lines),
		SubTotal:        totals.SubTotal,
		Tax:             totals.Tax,
		TaxPercentage:   taxPercent,
		Discount:        totals.Discount,
		DiscountPercent: discount.Percent,
		Total:           totals.Total,
		Paid:            totals.Paid,
		Due:             totals.Due,
		ChangeReturn:    totals.ChangeReturn,
		PaymentMethod:   paymentMethod,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		s.restoreStock(ctx, stockDecrements)
		s.setState(input.UserID, CheckoutStateFailed, warnings)
		return nil, err
	}

	items := make([]entity.SaleItem, 0, len(lines))
	for _, l := range lines {
		net := checkout.LineNet(l)
		gross := l.UnitPrice * int64(l.Quantity)
		items = append(items, entity.SaleItem{
			SaleID:       sale.ID,
			MedicineID:   l.MedicineID,
			MedicineName: l.Name,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			Discount:     gross - net,
			Total:        net,
			BatchNumber:  l.BatchNumber,
			ExpiryDate:   l.ExpiryDate,
		})
	}

	if err := s.saleItemRepo.CreateBatch(ctx, items); err != nil {
		s.restoreStock(ctx, stockDecrements)
		s.setState(input.UserID, CheckoutStateFailed, warnings)
		return nil, err
	}

	s.cartService.Reset(input.UserID)
	s.setState(input.UserID, CheckoutStateCompleted, warnings)

	created, err := s.saleRepo.GetWithItems(ctx, sale.ID)
	if err != nil || created == nil {
		created = sale
	}
	s.appendHistory(input.UserID, created)

	return &CheckoutResult{
		State:    CheckoutStateCompleted,
		Warnings: warnings,
		Sale:     created,
	}, nil
}

// shouldBlock resolves whether unacknowledged interaction warnings block
// checkout for this branch.
func (s *CheckoutService) shouldBlock(ctx context.Context, branchID uuid.UUID) bool {
	settings, err := s.branchRepo.GetSettings(ctx, branchID)
	if err != nil || settings == nil {
		return s.blockOnInteraction
	}
	return settings.BlockOnInteraction
}

// restoreStock puts decremented quantities back after a failed submit.
func (s *CheckoutService) restoreStock(ctx context.Context, decrements map[uuid.UUID]int) {
	if err := s.medicineRepo.AtomicIncrementBatch(ctx, decrements); err != nil {
		log.Printf("Failed to restore stock after checkout failure: %v", err)
	}
}

// medicineNames resolves display names for the failed medicine IDs from the
// cart lines, falling back to the raw ID.
func (s *CheckoutService) medicineNames(ctx context.Context, ids []uuid.UUID, lines []*checkout.LineItem) []string {
	byID := make(map[uuid.UUID]string, len(lines))
	for _, l := range lines {
		byID[l.MedicineID] = l.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, id.String())
		}
	}
	return names
}
