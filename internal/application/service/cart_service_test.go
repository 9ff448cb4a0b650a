package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// fakeMedicineRepo backs cart and checkout tests with an in-memory stock map.
type fakeMedicineRepo struct {
	medicines map[uuid.UUID]*entity.Medicine
}

func newFakeMedicineRepo() *fakeMedicineRepo {
	return &fakeMedicineRepo{medicines: make(map[uuid.UUID]*entity.Medicine)}
}

func (f *fakeMedicineRepo) add(name string, genericName string, priceCents int64, stock int) *entity.Medicine {
	m := &entity.Medicine{
		ID:           uuid.New(),
		Name:         name,
		SellingPrice: priceCents,
		Quantity:     stock,
	}
	if genericName != "" {
		m.GenericName = &genericName
	}
	f.medicines[m.ID] = m
	return m
}

func (f *fakeMedicineRepo) Create(ctx context.Context, medicine *entity.Medicine) error {
	f.medicines[medicine.ID] = medicine
	return nil
}

func (f *fakeMedicineRepo) CreateBatch(ctx context.Context, medicines []entity.Medicine) error {
	for i := range medicines {
		m := medicines[i]
		f.medicines[m.ID] = &m
	}
	return nil
}

func (f *fakeMedicineRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error) {
	return f.medicines[id], nil
}

func (f *fakeMedicineRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Medicine, error) {
	var out []entity.Medicine
	for _, id := range ids {
		if m, ok := f.medicines[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMedicineRepo) GetBySlug(ctx context.Context, slug string) (*entity.Medicine, error) {
	return nil, nil
}

func (f *fakeMedicineRepo) GetByCode(ctx context.Context, code string) (*entity.Medicine, error) {
	return nil, nil
}

func (f *fakeMedicineRepo) Update(ctx context.Context, medicine *entity.Medicine) error {
	f.medicines[medicine.ID] = medicine
	return nil
}

func (f *fakeMedicineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.medicines, id)
	return nil
}

func (f *fakeMedicineRepo) List(ctx context.Context, userID uuid.UUID, params *repository.MedicineFilterParams) ([]entity.Medicine, int64, error) {
	return nil, 0, nil
}

func (f *fakeMedicineRepo) GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.Medicine, error) {
	return nil, nil
}

func (f *fakeMedicineRepo) GetExpiringBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]entity.Medicine, error) {
	return nil, nil
}

func (f *fakeMedicineRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if m, ok := f.medicines[id]; ok {
		m.Quantity = quantity
	}
	return nil
}

func (f *fakeMedicineRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		m, ok := f.medicines[id]
		if !ok || m.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		f.medicines[id].Quantity -= qty
	}
	return nil, nil
}

func (f *fakeMedicineRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if m, ok := f.medicines[id]; ok {
			m.Quantity += qty
		}
	}
	return nil
}

// fakeBranchRepo serves branch settings lookups; everything else is unused in
// these tests.
type fakeBranchRepo struct {
	settings map[uuid.UUID]*entity.BranchSettings
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{settings: make(map[uuid.UUID]*entity.BranchSettings)}
}

func (f *fakeBranchRepo) Create(ctx context.Context, branch *entity.Branch) error { return nil }
func (f *fakeBranchRepo) Update(ctx context.Context, branch *entity.Branch) error { return nil }
func (f *fakeBranchRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }

func (f *fakeBranchRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	return nil, nil
}

func (f *fakeBranchRepo) GetBySlug(ctx context.Context, slug string) (*entity.Branch, error) {
	return nil, nil
}

func (f *fakeBranchRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error) {
	return nil, 0, nil
}

func (f *fakeBranchRepo) AddMember(ctx context.Context, membership *entity.BranchMembership) error {
	return nil
}

func (f *fakeBranchRepo) RemoveMember(ctx context.Context, branchID, userID uuid.UUID) error {
	return nil
}

func (f *fakeBranchRepo) GetMembership(ctx context.Context, branchID, userID uuid.UUID) (*entity.BranchMembership, error) {
	return nil, nil
}

func (f *fakeBranchRepo) ListMembers(ctx context.Context, branchID uuid.UUID, params *pagination.PaginationParams) ([]entity.BranchMembership, int64, error) {
	return nil, 0, nil
}

func (f *fakeBranchRepo) ListUserBranches(ctx context.Context, userID uuid.UUID) ([]entity.Branch, error) {
	return nil, nil
}

func (f *fakeBranchRepo) UpdateMemberRole(ctx context.Context, branchID, userID uuid.UUID, role string) error {
	return nil
}

func (f *fakeBranchRepo) GetSettings(ctx context.Context, branchID uuid.UUID) (*entity.BranchSettings, error) {
	return f.settings[branchID], nil
}

func (f *fakeBranchRepo) UpdateSettings(ctx context.Context, branchID uuid.UUID, settings entity.BranchSettings) error {
	f.settings[branchID] = &settings
	return nil
}

func TestAddMedicineIncrementsExistingLine(t *testing.T) {
	medicineRepo := newFakeMedicineRepo()
	med := medicineRepo.add("Paracetamol 500mg", "paracetamol", 250, 100)
	svc := NewCartService(medicineRepo, newFakeBranchRepo(), 0)

	operator := uuid.New()
	ctx := context.Background()

	if _, err := svc.AddMedicine(ctx, operator, med.ID, 2); err != nil {
		t.Fatal(err)
	}
	view, err := svc.AddMedicine(ctx, operator, med.ID, 3)
	if err != nil {
		t.Fatal(err)
	}

	if len(view.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(view.Lines))
	}
	if view.TotalQuantity != 5 {
		t.Errorf("total quantity = %d, want 5", view.TotalQuantity)
	}
}

func TestAddMedicineUnknownID(t *testing.T) {
	svc := NewCartService(newFakeMedicineRepo(), newFakeBranchRepo(), 0)

	_, err := svc.AddMedicine(context.Background(), uuid.New(), uuid.New(), 1)
	if err == nil {
		t.Fatal("expected error for unknown medicine")
	}
}

func TestSetDiscountPercentRejectsOutOfRange(t *testing.T) {
	svc := NewCartService(newFakeMedicineRepo(), newFakeBranchRepo(), 0)

	if _, err := svc.SetDiscountPercent(context.Background(), uuid.New(), 101); err == nil {
		t.Error("percent above 100 should fail")
	}
	if _, err := svc.SetDiscountPercent(context.Background(), uuid.New(), -1); err == nil {
		t.Error("negative percent should fail")
	}
}

func TestCartsAreIsolatedPerOperator(t *testing.T) {
	medicineRepo := newFakeMedicineRepo()
	med := medicineRepo.add("Ibuprofen 200mg", "ibuprofen", 150, 50)
	svc := NewCartService(medicineRepo, newFakeBranchRepo(), 0)
	ctx := context.Background()

	opA := uuid.New()
	opB := uuid.New()

	if _, err := svc.AddMedicine(ctx, opA, med.ID, 2); err != nil {
		t.Fatal(err)
	}

	viewB, err := svc.GetCart(ctx, opB)
	if err != nil {
		t.Fatal(err)
	}
	if len(viewB.Lines) != 0 {
		t.Errorf("operator B cart has %d lines, want 0", len(viewB.Lines))
	}
}

func TestSnapshotIsStableAgainstFurtherEdits(t *testing.T) {
	medicineRepo := newFakeMedicineRepo()
	med := medicineRepo.add("Amoxicillin 250mg", "amoxicillin", 500, 30)
	svc := NewCartService(medicineRepo, newFakeBranchRepo(), 0)
	ctx := context.Background()

	operator := uuid.New()
	if _, err := svc.AddMedicine(ctx, operator, med.ID, 2); err != nil {
		t.Fatal(err)
	}

	lines, _ := svc.Snapshot(operator)
	if _, err := svc.UpdateQuantity(ctx, operator, med.ID, 5); err != nil {
		t.Fatal(err)
	}

	if lines[0].Quantity != 2 {
		t.Errorf("snapshot quantity = %d, want 2 (should not track later edits)", lines[0].Quantity)
	}
}

func TestResolveTaxPercent(t *testing.T) {
	branchRepo := newFakeBranchRepo()
	branchID := uuid.New()
	branchRepo.settings[branchID] = &entity.BranchSettings{TaxRate: 16}
	svc := NewCartService(newFakeMedicineRepo(), branchRepo, 8)

	// No branch in context falls back to the configured default
	if got := svc.ResolveTaxPercent(context.Background()); got != 8 {
		t.Errorf("default tax = %v, want 8", got)
	}

	// Branch settings win when present
	ctx := infraRepo.WithBranch(context.Background(), branchID)
	if got := svc.ResolveTaxPercent(ctx); got != 16 {
		t.Errorf("branch tax = %v, want 16", got)
	}

	// A branch with no tax rate set falls back too
	other := infraRepo.WithBranch(context.Background(), uuid.New())
	if got := svc.ResolveTaxPercent(other); got != 8 {
		t.Errorf("fallback tax = %v, want 8", got)
	}
}
