package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/internal/domain/interaction"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

type fakeSaleRepo struct {
	sales     map[uuid.UUID]*entity.Sale
	createErr error
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if f.createErr != nil {
		return f.createErr
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	f.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return f.sales[id], nil
}

func (f *fakeSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.InvoiceNo == invoiceNo {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	f.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.sales, id)
	return nil
}

func (f *fakeSaleRepo) List(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (f *fakeSaleRepo) ListWithCursor(ctx context.Context, userID uuid.UUID, params *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return f.sales[id], nil
}

func (f *fakeSaleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	if s, ok := f.sales[id]; ok {
		s.Status = status
	}
	return nil
}

func (f *fakeSaleRepo) GetDueSales(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var due []entity.Sale
	for _, s := range f.sales {
		if s.UserID == userID && s.Due > 0 {
			due = append(due, *s)
		}
	}

	total := int64(len(due))
	params.Validate()
	start := params.Offset()
	if start > len(due) {
		start = len(due)
	}
	end := start + params.PerPage
	if end > len(due) {
		end = len(due)
	}
	return due[start:end], total, nil
}

type fakeSaleItemRepo struct {
	items []entity.SaleItem
}

func (f *fakeSaleItemRepo) Create(ctx context.Context, item *entity.SaleItem) error {
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeSaleItemRepo) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeSaleItemRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	var out []entity.SaleItem
	for _, item := range f.items {
		if item.SaleID == saleID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeSaleItemRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeSaleItemRepo) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error { return nil }

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (f *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) GetByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	return nil, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, patient *entity.Patient) error { return nil }

func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakePatientRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Patient, int64, error) {
	return nil, 0, nil
}

func (f *fakePatientRepo) ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, search string, skipUserFilter bool) ([]entity.Patient, error) {
	return nil, nil
}

// checkoutFixture wires a checkout service over fakes with the given
// block-on-interaction policy.
type checkoutFixture struct {
	medicineRepo *fakeMedicineRepo
	saleRepo     *fakeSaleRepo
	saleItemRepo *fakeSaleItemRepo
	cartService  *CartService
	checkout     *CheckoutService
	branchID     uuid.UUID
	ctx          context.Context
}

func newCheckoutFixture(blockOnInteraction bool) *checkoutFixture {
	medicineRepo := newFakeMedicineRepo()
	branchRepo := newFakeBranchRepo()
	saleRepo := newFakeSaleRepo()
	saleItemRepo := &fakeSaleItemRepo{}

	branchID := uuid.New()
	branchRepo.settings[branchID] = &entity.BranchSettings{
		TaxRate:            0,
		BlockOnInteraction: blockOnInteraction,
	}

	cartService := NewCartService(medicineRepo, branchRepo, 0)
	checkoutService := NewCheckoutService(
		cartService,
		medicineRepo,
		saleRepo,
		saleItemRepo,
		newFakePatientRepo(),
		branchRepo,
		interaction.NewChecker(),
		"INV",
		blockOnInteraction,
	)

	return &checkoutFixture{
		medicineRepo: medicineRepo,
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		cartService:  cartService,
		checkout:     checkoutService,
		branchID:     branchID,
		ctx:          infraRepo.WithBranch(context.Background(), branchID),
	}
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	fx := newCheckoutFixture(true)

	_, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{UserID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
}

func TestCheckoutBlockedOnInteractionLeavesEverythingUntouched(t *testing.T) {
	fx := newCheckoutFixture(true)
	warfarin := fx.medicineRepo.add("Warfarin 5mg", "warfarin", 300, 20)
	aspirin := fx.medicineRepo.add("Aspirin 75mg", "aspirin", 100, 20)

	operator := uuid.New()
	if _, err := fx.cartService.AddMedicine(fx.ctx, operator, warfarin.ID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := fx.cartService.AddMedicine(fx.ctx, operator, aspirin.ID, 1); err != nil {
		t.Fatal(err)
	}

	result, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
		UserID:        operator,
		PaymentMethod: "cash",
		Paid:          10,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.State != CheckoutStateBlocked {
		t.Fatalf("state = %q, want %q", result.State, CheckoutStateBlocked)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected interaction warnings")
	}
	if result.Sale != nil {
		t.Error("blocked checkout must not create a sale")
	}
	if len(fx.saleRepo.sales) != 0 {
		t.Errorf("sales persisted = %d, want 0", len(fx.saleRepo.sales))
	}
	if fx.medicineRepo.medicines[warfarin.ID].Quantity != 20 {
		t.Error("blocked checkout must not decrement stock")
	}

	// Cart survives the block so the operator can acknowledge and retry
	view, _ := fx.cartService.GetCart(fx.ctx, operator)
	if len(view.Lines) != 2 {
		t.Errorf("cart lines after block = %d, want 2", len(view.Lines))
	}

	state := fx.checkout.GetState(operator)
	if state.State != CheckoutStateBlocked || len(state.Warnings) == 0 {
		t.Error("checkout state should report the pending warnings")
	}
}

func TestCheckoutAcknowledgedInteractionProceeds(t *testing.T) {
	fx := newCheckoutFixture(true)
	warfarin := fx.medicineRepo.add("Warfarin 5mg", "warfarin", 300, 20)
	aspirin := fx.medicineRepo.add("Aspirin 75mg", "aspirin", 100, 20)

	operator := uuid.New()
	fx.cartService.AddMedicine(fx.ctx, operator, warfarin.ID, 1)
	fx.cartService.AddMedicine(fx.ctx, operator, aspirin.ID, 1)

	result, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
		UserID:                  operator,
		PaymentMethod:           "cash",
		Paid:                    10,
		AcknowledgeInteractions: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.State != CheckoutStateCompleted {
		t.Fatalf("state = %q, want %q", result.State, CheckoutStateCompleted)
	}
	if result.Sale == nil {
		t.Fatal("completed checkout must return the sale")
	}
	// Warnings stay on the completed sale for the audit trail
	if len(result.Warnings) == 0 {
		t.Error("acknowledged warnings should still be reported")
	}
	if fx.medicineRepo.medicines[warfarin.ID].Quantity != 19 {
		t.Error("stock should be decremented on completion")
	}

	// Completion resets the cart
	view, _ := fx.cartService.GetCart(fx.ctx, operator)
	if len(view.Lines) != 0 {
		t.Errorf("cart lines after checkout = %d, want 0", len(view.Lines))
	}
}

func TestCheckoutNonBlockingBranchWarnsButCompletes(t *testing.T) {
	fx := newCheckoutFixture(false)
	warfarin := fx.medicineRepo.add("Warfarin 5mg", "warfarin", 300, 20)
	aspirin := fx.medicineRepo.add("Aspirin 75mg", "aspirin", 100, 20)

	operator := uuid.New()
	fx.cartService.AddMedicine(fx.ctx, operator, warfarin.ID, 1)
	fx.cartService.AddMedicine(fx.ctx, operator, aspirin.ID, 1)

	result, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
		UserID:        operator,
		PaymentMethod: "cash",
		Paid:          10,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.State != CheckoutStateCompleted {
		t.Fatalf("state = %q, want %q", result.State, CheckoutStateCompleted)
	}
	if len(result.Warnings) == 0 {
		t.Error("warnings should be surfaced even when not blocking")
	}
}

func TestCheckoutInsufficientStockFailsWholeBatch(t *testing.T) {
	fx := newCheckoutFixture(true)
	plenty := fx.medicineRepo.add("Cetirizine 10mg", "cetirizine", 120, 100)
	scarce := fx.medicineRepo.add("Omeprazole 20mg", "omeprazole", 450, 1)

	operator := uuid.New()
	fx.cartService.AddMedicine(fx.ctx, operator, plenty.ID, 2)
	fx.cartService.AddMedicine(fx.ctx, operator, scarce.ID, 5)

	_, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
		UserID:        operator,
		PaymentMethod: "cash",
		Paid:          100,
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}

	if fx.medicineRepo.medicines[plenty.ID].Quantity != 100 {
		t.Error("no stock should move when any line fails")
	}
	if len(fx.saleRepo.sales) != 0 {
		t.Error("no sale should be created on stock failure")
	}

	state := fx.checkout.GetState(operator)
	if state.State != CheckoutStateFailed {
		t.Errorf("state = %q, want %q", state.State, CheckoutStateFailed)
	}
}

func TestCheckoutPartialPaymentLeavesSalePending(t *testing.T) {
	fx := newCheckoutFixture(true)
	med := fx.medicineRepo.add("Metformin 500mg", "metformin", 1000, 10) // 10.00 each

	operator := uuid.New()
	fx.cartService.AddMedicine(fx.ctx, operator, med.ID, 2) // total 20.00

	result, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
		UserID:        operator,
		PaymentMethod: "cash",
		Paid:          15,
	})
	if err != nil {
		t.Fatal(err)
	}

	sale := result.Sale
	if sale.Status != enum.SaleStatusPending {
		t.Errorf("status = %v, want pending", sale.Status)
	}
	if sale.Due != 500 {
		t.Errorf("due = %d cents, want 500", sale.Due)
	}
	if sale.Total != 2000 {
		t.Errorf("total = %d cents, want 2000", sale.Total)
	}
}

func TestCheckoutFullPaymentCompletesWithChange(t *testing.T) {
	fx := newCheckoutFixture(true)
	med := fx.medicineRepo.add("Metformin 500mg", "metformin", 1000, 10)

	operator := uuid.New()
	fx.cartService.AddMedicine(fx.ctx, operator, med.ID, 1)

	result, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
		UserID:        operator,
		PaymentMethod: "cash",
		Paid:          12,
	})
	if err != nil {
		t.Fatal(err)
	}

	sale := result.Sale
	if sale.Status != enum.SaleStatusCompleted {
		t.Errorf("status = %v, want completed", sale.Status)
	}
	if sale.ChangeReturn != 200 {
		t.Errorf("change = %d cents, want 200", sale.ChangeReturn)
	}
	if len(fx.saleItemRepo.items) != 1 {
		t.Errorf("sale items = %d, want 1", len(fx.saleItemRepo.items))
	}
}

func TestRecentSalesMostRecentFirst(t *testing.T) {
	fx := newCheckoutFixture(true)
	first := fx.medicineRepo.add("Cetirizine 10mg", "cetirizine", 120, 50)
	second := fx.medicineRepo.add("Metformin 500mg", "metformin", 1000, 50)

	operator := uuid.New()
	for _, med := range []uuid.UUID{first.ID, second.ID} {
		if _, err := fx.cartService.AddMedicine(fx.ctx, operator, med, 1); err != nil {
			t.Fatal(err)
		}
		if _, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
			UserID:        operator,
			PaymentMethod: "cash",
			Paid:          100,
		}); err != nil {
			t.Fatal(err)
		}
	}

	recent := fx.checkout.RecentSales(operator)
	if len(recent) != 2 {
		t.Fatalf("recent sales = %d, want 2", len(recent))
	}
	if recent[0].Total != 1000 {
		t.Errorf("first entry total = %d, want the most recent sale (1000)", recent[0].Total)
	}

	if got := fx.checkout.RecentSales(uuid.New()); len(got) != 0 {
		t.Errorf("other operator recent sales = %d, want 0", len(got))
	}
}

func TestCheckoutRejectsInvalidPaymentMethod(t *testing.T) {
	fx := newCheckoutFixture(true)
	med := fx.medicineRepo.add("Cetirizine 10mg", "cetirizine", 120, 10)

	operator := uuid.New()
	fx.cartService.AddMedicine(fx.ctx, operator, med.ID, 1)

	_, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
		UserID:        operator,
		PaymentMethod: "barter",
		Paid:          5,
	})
	if err == nil {
		t.Fatal("expected error for invalid payment method")
	}
}

func TestCheckoutSalePersistFailureRestoresStock(t *testing.T) {
	fx := newCheckoutFixture(true)
	med := fx.medicineRepo.add("Paracetamol 500mg", "", 500, 20)

	operator := uuid.New()
	fx.cartService.AddMedicine(fx.ctx, operator, med.ID, 3)

	fx.saleRepo.createErr = errors.New("connection reset by peer")

	_, err := fx.checkout.Checkout(fx.ctx, &CheckoutInput{
		UserID:        operator,
		PaymentMethod: "cash",
		Paid:          20,
	})
	if err == nil {
		t.Fatal("expected the persistence error to surface")
	}

	// Stock was decremented before the write; the failure must put it back
	if got := fx.medicineRepo.medicines[med.ID].Quantity; got != 20 {
		t.Errorf("stock after failed submit = %d, want 20", got)
	}
	if len(fx.saleRepo.sales) != 0 {
		t.Errorf("sales persisted = %d, want 0", len(fx.saleRepo.sales))
	}
	if len(fx.saleItemRepo.items) != 0 {
		t.Errorf("sale items persisted = %d, want 0", len(fx.saleItemRepo.items))
	}

	// Cart survives so the operator can retry once the store recovers
	view, _ := fx.cartService.GetCart(fx.ctx, operator)
	if len(view.Lines) != 1 {
		t.Errorf("cart lines after failure = %d, want 1", len(view.Lines))
	}
	state := fx.checkout.GetState(operator)
	if state.State != CheckoutStateFailed {
		t.Errorf("state = %q, want %q", state.State, CheckoutStateFailed)
	}
}
