package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/application/service"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/request"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

// MedicineHandler handles medicine-related HTTP requests
type MedicineHandler struct {
	medicineService *service.MedicineService
}

// NewMedicineHandler creates a new medicine handler
func NewMedicineHandler(medicineService *service.MedicineService) *MedicineHandler {
	return &MedicineHandler{medicineService: medicineService}
}

// List handles listing medicines
func (h *MedicineHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	var filter request.MedicineFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.MedicineFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:         filter.Search,
		LowStock:       filter.LowStock,
		ExpiringInDays: filter.ExpiringInDays,
		SortBy:         filter.SortBy,
		SortOrder:      filter.SortOrder,
		SkipUserFilter: isSuperAdmin,
	}

	if filter.CategoryID != "" {
		catID, err := uuid.Parse(filter.CategoryID)
		if err == nil {
			params.CategoryID = &catID
		}
	}

	if filter.UnitID != "" {
		unitID, err := uuid.Parse(filter.UnitID)
		if err == nil {
			params.UnitID = &unitID
		}
	}

	// For super admins, skip branch scope to see all medicines
	ctx := c.Request.Context()
	if isSuperAdmin {
		ctx = infraRepo.WithSkipBranchScope(ctx, true)
		// Allow super admin to filter by specific branch if provided
		if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
			if branchID, err := uuid.Parse(branchIDStr); err == nil {
				ctx = infraRepo.WithBranch(ctx, branchID)
				ctx = infraRepo.WithSkipBranchScope(ctx, false)
			}
		}
	}

	result, err := h.medicineService.ListMedicines(ctx, *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Medicines retrieved successfully", result)
}

// Create handles creating a medicine
func (h *MedicineHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	expiryDate, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		response.BadRequest(c, "Invalid expiry date. Use YYYY-MM-DD")
		return
	}

	medicine, err := h.medicineService.CreateMedicine(c.Request.Context(), &service.CreateMedicineInput{
		UserID:        *userID,
		CategoryID:    req.CategoryID,
		UnitID:        req.UnitID,
		Name:          req.Name,
		GenericName:   req.GenericName,
		Code:          req.Code,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    expiryDate,
		Quantity:      req.Quantity,
		QuantityAlert: req.QuantityAlert,
		BuyingPrice:   req.BuyingPrice,
		SellingPrice:  req.SellingPrice,
		Tax:           req.Tax,
		TaxType:       req.TaxType,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Medicine created successfully", medicine)
}

// Get handles getting a single medicine
func (h *MedicineHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Medicine slug is required")
		return
	}

	medicine, err := h.medicineService.GetMedicine(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicine retrieved successfully", medicine)
}

// Update handles updating a medicine
func (h *MedicineHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Medicine slug is required")
		return
	}

	var req request.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	expiryDate, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		response.BadRequest(c, "Invalid expiry date. Use YYYY-MM-DD")
		return
	}

	medicine, err := h.medicineService.UpdateMedicine(c.Request.Context(), &service.UpdateMedicineInput{
		UserID:        *userID,
		MedicineSlug:  slug,
		SkipUserCheck: isSuperAdmin,
		CategoryID:    req.CategoryID,
		UnitID:        req.UnitID,
		Name:          req.Name,
		GenericName:   req.GenericName,
		Code:          req.Code,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    expiryDate,
		Quantity:      req.Quantity,
		QuantityAlert: req.QuantityAlert,
		BuyingPrice:   req.BuyingPrice,
		SellingPrice:  req.SellingPrice,
		Tax:           req.Tax,
		TaxType:       req.TaxType,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicine updated successfully", medicine)
}

// Delete handles deleting a medicine by slug
func (h *MedicineHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Medicine slug is required")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	if err := h.medicineService.DeleteMedicine(c.Request.Context(), *userID, slug, isSuperAdmin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetLowStock handles getting low stock medicines
func (h *MedicineHandler) GetLowStock(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	medicines, err := h.medicineService.GetLowStockMedicines(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock medicines retrieved successfully", medicines)
}

// GetExpiring handles getting medicines expiring within the given window
func (h *MedicineHandler) GetExpiring(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "90"))
	if days <= 0 {
		days = 90
	}

	medicines, err := h.medicineService.GetExpiringMedicines(c.Request.Context(), *userID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expiring medicines retrieved successfully", medicines)
}

// importColumns maps spreadsheet columns to import fields, in order.
var importColumns = []string{
	"Name", "Generic Name", "Code", "Batch Number", "Expiry Date",
	"Quantity", "Quantity Alert", "Buying Price", "Selling Price",
	"Tax", "Tax Type", "Notes", "Category", "Unit",
}

// Import handles bulk medicine import from an uploaded Excel file
func (h *MedicineHandler) Import(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Excel file is required (field name: file)")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		response.BadRequest(c, "Invalid Excel file")
		return
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		response.BadRequest(c, "Failed to read Excel sheet")
		return
	}

	if len(rows) < 2 {
		response.BadRequest(c, "Excel file has no data rows")
		return
	}

	// First row is the header
	importRows := make([]service.ImportMedicineRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(i int) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		}

		quantity, _ := strconv.Atoi(cell(5))
		quantityAlert, _ := strconv.Atoi(cell(6))
		buyingPrice, _ := strconv.ParseFloat(cell(7), 64)
		sellingPrice, _ := strconv.ParseFloat(cell(8), 64)
		tax, _ := strconv.Atoi(cell(9))
		taxType, _ := strconv.Atoi(cell(10))

		importRows = append(importRows, service.ImportMedicineRow{
			Name:          cell(0),
			GenericName:   cell(1),
			Code:          cell(2),
			BatchNumber:   cell(3),
			ExpiryDate:    cell(4),
			Quantity:      quantity,
			QuantityAlert: quantityAlert,
			BuyingPrice:   buyingPrice,
			SellingPrice:  sellingPrice,
			Tax:           tax,
			TaxType:       taxType,
			Notes:         cell(11),
			CategoryName:  cell(12),
			UnitName:      cell(13),
		})
	}

	result, err := h.medicineService.ImportMedicines(c.Request.Context(), *userID, importRows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", result)
}

// Export handles exporting the medicine list as an Excel file
func (h *MedicineHandler) Export(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.MedicineFilterParams{
		Pagination:     &pagination.PaginationParams{Page: 1, PerPage: 10000},
		Search:         c.Query("search"),
		SkipUserFilter: IsSuperAdmin(c),
	}

	result, err := h.medicineService.ListMedicines(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	for i, header := range importColumns {
		cellRef, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = workbook.SetCellValue(sheet, cellRef, header)
	}

	for rowIdx, m := range result.Items {
		genericName := ""
		if m.GenericName != nil {
			genericName = *m.GenericName
		}
		batchNumber := ""
		if m.BatchNumber != nil {
			batchNumber = *m.BatchNumber
		}
		expiryDate := ""
		if m.ExpiryDate != nil {
			expiryDate = m.ExpiryDate.Format("2006-01-02")
		}
		notes := ""
		if m.Notes != nil {
			notes = *m.Notes
		}
		categoryName := ""
		if m.Category != nil {
			categoryName = m.Category.Name
		}
		unitName := ""
		if m.Unit != nil {
			unitName = m.Unit.Name
		}

		values := []interface{}{
			m.Name, genericName, m.Code, batchNumber, expiryDate,
			m.Quantity, m.QuantityAlert,
			float64(m.BuyingPrice) / 100, float64(m.SellingPrice) / 100,
			m.Tax, m.TaxType, notes, categoryName, unitName,
		}
		for colIdx, value := range values {
			cellRef, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = workbook.SetCellValue(sheet, cellRef, value)
		}
	}

	filename := fmt.Sprintf("medicines-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write Excel file")
	}
}
