package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
	"github.com/pharmacare/pharmacare-api/pkg/utils"
)

// MedicineService handles medicine inventory operations
type MedicineService struct {
	medicineRepo repository.MedicineRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
}

// NewMedicineService creates a new medicine service
func NewMedicineService(
	medicineRepo repository.MedicineRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
) *MedicineService {
	return &MedicineService{
		medicineRepo: medicineRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
	}
}

// CreateMedicineInput represents the create medicine input
type CreateMedicineInput struct {
	UserID        uuid.UUID
	CategoryID    *uuid.UUID
	UnitID        *uuid.UUID
	Name          string
	GenericName   *string
	Code          string
	BatchNumber   *string
	ExpiryDate    *time.Time
	Quantity      int
	QuantityAlert int
	BuyingPrice   float64
	SellingPrice  float64
	Tax           int
	TaxType       int
	Notes         *string
}

// CreateMedicine creates a new medicine
func (s *MedicineService) CreateMedicine(ctx context.Context, input *CreateMedicineInput) (*entity.Medicine, error) {
	// Extract branch ID from context
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	// Auto-generate code if not provided
	code := input.Code
	if code == "" {
		code = utils.GenerateMedicineCode()
	}

	// Check if code already exists
	existing, err := s.medicineRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Medicine code already exists")
	}

	// Generate slug
	slug := utils.Slugify(input.Name)

	medicine := &entity.Medicine{
		BranchID:      branchID,
		UserID:        input.UserID,
		CategoryID:    input.CategoryID,
		UnitID:        input.UnitID,
		Name:          input.Name,
		GenericName:   input.GenericName,
		Slug:          slug,
		Code:          code,
		BatchNumber:   input.BatchNumber,
		ExpiryDate:    input.ExpiryDate,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		Tax:           input.Tax,
		TaxType:       enum.TaxType(input.TaxType),
		Notes:         input.Notes,
	}
	medicine.SetBuyingPriceFromDecimal(input.BuyingPrice)
	medicine.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		return nil, err
	}

	return s.medicineRepo.GetByID(ctx, medicine.ID)
}

// GetMedicine retrieves a medicine by slug
func (s *MedicineService) GetMedicine(ctx context.Context, slug string) (*entity.Medicine, error) {
	medicine, err := s.medicineRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}
	return medicine, nil
}

// GetMedicineByID retrieves a medicine by ID
func (s *MedicineService) GetMedicineByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error) {
	medicine, err := s.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}
	return medicine, nil
}

// ListMedicines lists medicines with filtering
func (s *MedicineService) ListMedicines(ctx context.Context, userID uuid.UUID, params *repository.MedicineFilterParams) (*pagination.PaginatedResult[entity.Medicine], error) {
	medicines, total, err := s.medicineRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(medicines, pag), nil
}

// UpdateMedicineInput represents the update medicine input
type UpdateMedicineInput struct {
	UserID        uuid.UUID
	MedicineSlug  string
	SkipUserCheck bool // If true (super-admin), skip ownership check
	CategoryID    *uuid.UUID
	UnitID        *uuid.UUID
	Name          *string
	GenericName   *string
	Code          *string
	BatchNumber   *string
	ExpiryDate    *time.Time
	Quantity      *int
	QuantityAlert *int
	BuyingPrice   *float64
	SellingPrice  *float64
	Tax           *int
	TaxType       *int
	Notes         *string
}

// UpdateMedicine updates a medicine
func (s *MedicineService) UpdateMedicine(ctx context.Context, input *UpdateMedicineInput) (*entity.Medicine, error) {
	medicine, err := s.medicineRepo.GetBySlug(ctx, input.MedicineSlug)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}

	// Ensure user owns the medicine (unless super-admin)
	if !input.SkipUserCheck && medicine.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	// Check if new code is unique
	if input.Code != nil && *input.Code != medicine.Code {
		existing, err := s.medicineRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != medicine.ID {
			return nil, apperror.NewConflictError("Medicine code already exists")
		}
		medicine.Code = *input.Code
	}

	if input.CategoryID != nil {
		medicine.CategoryID = input.CategoryID
	}
	if input.UnitID != nil {
		medicine.UnitID = input.UnitID
	}
	if input.Name != nil {
		medicine.Name = *input.Name
		medicine.Slug = utils.Slugify(*input.Name)
	}
	if input.GenericName != nil {
		medicine.GenericName = input.GenericName
	}
	if input.BatchNumber != nil {
		medicine.BatchNumber = input.BatchNumber
	}
	if input.ExpiryDate != nil {
		medicine.ExpiryDate = input.ExpiryDate
	}
	if input.Quantity != nil {
		medicine.Quantity = *input.Quantity
	}
	if input.QuantityAlert != nil {
		medicine.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		medicine.SetBuyingPriceFromDecimal(*input.BuyingPrice)
	}
	if input.SellingPrice != nil {
		medicine.SetSellingPriceFromDecimal(*input.SellingPrice)
	}
	if input.Tax != nil {
		medicine.Tax = *input.Tax
	}
	if input.TaxType != nil {
		medicine.TaxType = enum.TaxType(*input.TaxType)
	}
	if input.Notes != nil {
		medicine.Notes = input.Notes
	}

	if err := s.medicineRepo.Update(ctx, medicine); err != nil {
		return nil, err
	}

	return s.medicineRepo.GetByID(ctx, medicine.ID)
}

// DeleteMedicine deletes a medicine
// If skipOwnerCheck is true (e.g., for super-admins), ownership check is bypassed
func (s *MedicineService) DeleteMedicine(ctx context.Context, userID uuid.UUID, slug string, skipOwnerCheck bool) error {
	medicine, err := s.medicineRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if medicine == nil {
		return apperror.NewNotFoundError("Medicine")
	}

	// Only check ownership if not a super-admin
	if !skipOwnerCheck && medicine.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.medicineRepo.Delete(ctx, medicine.ID)
}

// GetLowStockMedicines returns medicines at or below their alert quantity
func (s *MedicineService) GetLowStockMedicines(ctx context.Context, userID uuid.UUID) ([]entity.Medicine, error) {
	return s.medicineRepo.GetLowStock(ctx, userID)
}

// GetExpiringMedicines returns medicines expiring within the given number
// of days from now.
func (s *MedicineService) GetExpiringMedicines(ctx context.Context, userID uuid.UUID, days int) ([]entity.Medicine, error) {
	if days < 1 {
		return nil, apperror.NewBadRequestError("Days must be positive")
	}
	cutoff := time.Now().AddDate(0, 0, days)
	return s.medicineRepo.GetExpiringBefore(ctx, userID, cutoff)
}

// ImportMedicineRow represents a single row from the import file
type ImportMedicineRow struct {
	Name          string
	GenericName   string
	Code          string
	BatchNumber   string
	ExpiryDate    string // YYYY-MM-DD
	Quantity      int
	QuantityAlert int
	BuyingPrice   float64
	SellingPrice  float64
	Tax           int
	TaxType       int
	Notes         string
	CategoryName  string
	UnitName      string
}

// ImportResult contains the result of a medicine import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportMedicines validates and bulk-creates medicines from parsed import rows
func (s *MedicineService) ImportMedicines(ctx context.Context, userID uuid.UUID, rows []ImportMedicineRow) (*ImportResult, error) {
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError

	// Load categories and units for the branch for name-based matching
	categoryMap := make(map[string]*uuid.UUID)
	unitMap := make(map[string]*uuid.UUID)

	categories, _, _ := s.categoryRepo.List(ctx, uuid.Nil, &pagination.PaginationParams{Page: 1, PerPage: 1000}, "", true)
	for i := range categories {
		categoryMap[strings.ToLower(categories[i].Name)] = &categories[i].ID
	}

	units, _, _ := s.unitRepo.List(ctx, uuid.Nil, &pagination.PaginationParams{Page: 1, PerPage: 1000}, "", true)
	for i := range units {
		unitMap[strings.ToLower(units[i].Name)] = &units[i].ID
	}

	// Track codes seen in this import batch to detect duplicates within the file
	seenCodes := make(map[string]int) // code -> row number (1-indexed)

	var validMedicines []entity.Medicine

	for i, row := range rows {
		rowNum := i + 2 // +2 because row 1 is the header, data starts at row 2

		// Validate required fields
		if strings.TrimSpace(row.Name) == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		// Auto-generate code if empty
		code := strings.TrimSpace(row.Code)
		if code == "" {
			code = utils.GenerateMedicineCode()
		}

		// Check for duplicate code within the file
		if prevRow, exists := seenCodes[code]; exists {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Duplicate code '%s' (same as row %d)", code, prevRow),
			})
			continue
		}

		// Check if code already exists in DB
		existing, err := s.medicineRepo.GetByCode(ctx, code)
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "code", Message: "Error checking code: " + err.Error()})
			continue
		}
		if existing != nil {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Medicine code '%s' already exists", code),
			})
			continue
		}

		// Parse expiry date if provided
		var expiryDate *time.Time
		if strings.TrimSpace(row.ExpiryDate) != "" {
			parsed, err := time.Parse("2006-01-02", strings.TrimSpace(row.ExpiryDate))
			if err != nil {
				rowErrors = append(rowErrors, ImportRowError{
					Row:     rowNum,
					Field:   "expiry_date",
					Message: fmt.Sprintf("Invalid expiry date '%s' (use YYYY-MM-DD)", row.ExpiryDate),
				})
				continue
			}
			expiryDate = &parsed
		}

		seenCodes[code] = rowNum

		// Generate slug with uniqueness suffix
		slug := utils.Slugify(row.Name) + "-" + strings.ToLower(uuid.New().String()[:8])

		// Match category by name
		var categoryID *uuid.UUID
		if row.CategoryName != "" {
			if id, ok := categoryMap[strings.ToLower(strings.TrimSpace(row.CategoryName))]; ok {
				categoryID = id
			}
		}

		// Match unit by name
		var unitID *uuid.UUID
		if row.UnitName != "" {
			if id, ok := unitMap[strings.ToLower(strings.TrimSpace(row.UnitName))]; ok {
				unitID = id
			}
		}

		medicine := entity.Medicine{
			BranchID:      branchID,
			UserID:        userID,
			CategoryID:    categoryID,
			UnitID:        unitID,
			Name:          strings.TrimSpace(row.Name),
			Slug:          slug,
			Code:          code,
			ExpiryDate:    expiryDate,
			Quantity:      row.Quantity,
			QuantityAlert: row.QuantityAlert,
			Tax:           row.Tax,
			TaxType:       enum.TaxType(row.TaxType),
		}
		medicine.SetBuyingPriceFromDecimal(row.BuyingPrice)
		medicine.SetSellingPriceFromDecimal(row.SellingPrice)

		if row.GenericName != "" {
			generic := strings.TrimSpace(row.GenericName)
			medicine.GenericName = &generic
		}
		if row.BatchNumber != "" {
			batch := strings.TrimSpace(row.BatchNumber)
			medicine.BatchNumber = &batch
		}
		if row.Notes != "" {
			notes := row.Notes
			medicine.Notes = &notes
		}

		validMedicines = append(validMedicines, medicine)
	}

	// Batch create valid medicines
	if len(validMedicines) > 0 {
		if err := s.medicineRepo.CreateBatch(ctx, validMedicines); err != nil {
			return nil, apperror.NewAppError(500, "Failed to import medicines: "+err.Error())
		}
	}

	result.Successful = len(validMedicines)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors

	return result, nil
}
