package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/checkout"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
)

// CartService manages the in-progress POS cart for each operator. Carts are
// held in memory: a cart is a working document, not a record, and only
// becomes durable when checkout turns it into a sale.
type CartService struct {
	medicineRepo repository.MedicineRepository
	branchRepo   repository.BranchRepository

	defaultTaxRate float64

	mu       sync.Mutex
	sessions map[uuid.UUID]*cartSession
}

type cartSession struct {
	cart     *checkout.Cart
	discount checkout.DiscountConfig
}

// NewCartService creates a new cart service.
func NewCartService(
	medicineRepo repository.MedicineRepository,
	branchRepo repository.BranchRepository,
	defaultTaxRate float64,
) *CartService {
	return &CartService{
		medicineRepo:   medicineRepo,
		branchRepo:     branchRepo,
		defaultTaxRate: defaultTaxRate,
		sessions:       make(map[uuid.UUID]*cartSession),
	}
}

// CartView is the cart state returned to handlers: the lines, the configured
// sale-level discount and the derived totals for the current tax rate.
type CartView struct {
	Lines         []*checkout.LineItem    `json:"lines"`
	TotalQuantity int                     `json:"total_quantity"`
	Discount      checkout.DiscountConfig `json:"discount"`
	Totals        checkout.Totals         `json:"totals"`
}

// session returns the operator's cart session, creating it on first use.
// Callers must hold s.mu.
func (s *CartService) session(operatorID uuid.UUID) *cartSession {
	sess, ok := s.sessions[operatorID]
	if !ok {
		sess = &cartSession{cart: checkout.NewCart()}
		s.sessions[operatorID] = sess
	}
	return sess
}

// AddMedicine adds a medicine to the operator's cart. Adding the same
// medicine again increments its quantity. Price, batch and expiry are
// snapshotted from the inventory record at add time.
func (s *CartService) AddMedicine(ctx context.Context, operatorID, medicineID uuid.UUID, quantity int) (*CartView, error) {
	if quantity < 1 {
		quantity = 1
	}

	medicine, err := s.medicineRepo.GetByID(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}

	line, err := checkout.NewLineItem(medicine.ID, medicine.Name, medicine.SellingPrice, medicine.Quantity)
	if err != nil {
		return nil, err
	}
	if medicine.GenericName != nil {
		line.GenericName = *medicine.GenericName
	}
	line.BatchNumber = medicine.BatchNumber
	line.ExpiryDate = medicine.ExpiryDate

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	sess.cart.AddItem(line)
	if quantity > 1 {
		sess.cart.UpdateQuantity(medicineID, quantity-1)
	}

	return s.view(ctx, sess), nil
}

// UpdateQuantity adjusts a line's quantity by delta. A line whose quantity
// drops to zero or below is removed; unknown medicine IDs are a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, operatorID, medicineID uuid.UUID, delta int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	sess.cart.UpdateQuantity(medicineID, delta)

	return s.view(ctx, sess), nil
}

// RemoveMedicine deletes a line from the cart regardless of its quantity.
func (s *CartService) RemoveMedicine(ctx context.Context, operatorID, medicineID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	sess.cart.RemoveItem(medicineID)

	return s.view(ctx, sess), nil
}

// ClearCart empties the operator's cart and resets the sale-level discount.
func (s *CartService) ClearCart(ctx context.Context, operatorID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	sess.cart.Clear()
	sess.discount = checkout.DiscountConfig{}

	return s.view(ctx, sess), nil
}

// SetDiscountPercent applies a sale-level percentage discount, replacing any
// fixed discount.
func (s *CartService) SetDiscountPercent(ctx context.Context, operatorID uuid.UUID, percent float64) (*CartView, error) {
	if percent < 0 || percent > 100 {
		return nil, apperror.NewBadRequestError("Discount percentage must be between 0 and 100")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	sess.discount.SetPercent(percent)

	return s.view(ctx, sess), nil
}

// SetDiscountAmount applies a fixed sale-level discount in cents, replacing
// any percentage discount.
func (s *CartService) SetDiscountAmount(ctx context.Context, operatorID uuid.UUID, cents int64) (*CartView, error) {
	if cents < 0 {
		return nil, apperror.NewBadRequestError("Discount amount cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	sess.discount.SetAmount(cents)

	return s.view(ctx, sess), nil
}

// SetLineDiscountPercent applies a percentage discount to a single line.
func (s *CartService) SetLineDiscountPercent(ctx context.Context, operatorID, medicineID uuid.UUID, percent float64) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	line := sess.cart.Find(medicineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	if err := line.SetDiscountPercent(percent); err != nil {
		return nil, err
	}

	return s.view(ctx, sess), nil
}

// SetLineDiscountAmount applies a fixed discount in cents to a single line.
func (s *CartService) SetLineDiscountAmount(ctx context.Context, operatorID, medicineID uuid.UUID, cents int64) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	line := sess.cart.Find(medicineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	if err := line.SetDiscountAmount(cents); err != nil {
		return nil, err
	}

	return s.view(ctx, sess), nil
}

// GetCart returns the operator's current cart with live totals.
func (s *CartService) GetCart(ctx context.Context, operatorID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view(ctx, s.session(operatorID)), nil
}

// Snapshot returns a copy of the operator's cart lines and discount for
// checkout. The copy means the checkout pipeline works on stable data even
// if the operator keeps editing the cart.
func (s *CartService) Snapshot(operatorID uuid.UUID) ([]*checkout.LineItem, checkout.DiscountConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	lines := make([]*checkout.LineItem, 0, len(sess.cart.Lines()))
	for _, l := range sess.cart.Lines() {
		copied := *l
		lines = append(lines, &copied)
	}
	return lines, sess.discount
}

// Reset empties the operator's cart and discount after a completed sale.
func (s *CartService) Reset(operatorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(operatorID)
	sess.cart.Clear()
	sess.discount = checkout.DiscountConfig{}
}

// ResolveTaxPercent returns the tax rate for the current branch, falling
// back to the configured default when the branch has none set.
func (s *CartService) ResolveTaxPercent(ctx context.Context) float64 {
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return s.defaultTaxRate
	}
	settings, err := s.branchRepo.GetSettings(ctx, branchID)
	if err != nil || settings == nil {
		return s.defaultTaxRate
	}
	if settings.TaxRate > 0 {
		return settings.TaxRate
	}
	return s.defaultTaxRate
}

// view builds a CartView for the session. Callers must hold s.mu.
func (s *CartService) view(ctx context.Context, sess *cartSession) *CartView {
	lines := sess.cart.Lines()
	if lines == nil {
		lines = []*checkout.LineItem{}
	}
	return &CartView{
		Lines:         lines,
		TotalQuantity: sess.cart.TotalQuantity(),
		Discount:      sess.discount,
		Totals:        checkout.ComputeTotals(lines, sess.discount, s.ResolveTaxPercent(ctx), 0),
	}
}
