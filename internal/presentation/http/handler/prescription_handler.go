package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/application/service"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// PrescriptionHandler handles prescription-related HTTP requests
type PrescriptionHandler struct {
	prescriptionService *service.PrescriptionService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(prescriptionService *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: prescriptionService}
}

// List handles listing prescriptions
func (h *PrescriptionHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.PrescriptionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.PrescriptionStatus(statusInt)
			params.Status = &status
		}
	}

	if patientIDStr := c.Query("patient_id"); patientIDStr != "" {
		if patientID, err := uuid.Parse(patientIDStr); err == nil {
			params.PatientID = &patientID
		}
	}

	ctx := c.Request.Context()
	if isSuperAdmin {
		ctx = infraRepo.WithSkipBranchScope(ctx, true)
	}

	result, err := h.prescriptionService.ListPrescriptions(ctx, *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Prescriptions retrieved successfully", result)
}

// Create handles recording a prescription
func (h *PrescriptionHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		PatientID   *uuid.UUID `json:"patient_id"`
		PatientName string     `json:"patient_name"`
		Prescriber  string     `json:"prescriber" binding:"required"`
		Date        string     `json:"date"` // YYYY-MM-DD, defaults to today
		Notes       *string    `json:"notes"`
		Items       []struct {
			MedicineID uuid.UUID `json:"medicine_id" binding:"required"`
			Dosage     string    `json:"dosage"`
			Quantity   int       `json:"quantity" binding:"required,min=1"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date. Use YYYY-MM-DD")
			return
		}
		date = parsed
	}

	items := make([]service.PrescriptionItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.PrescriptionItemInput{
			MedicineID: item.MedicineID,
			Dosage:     item.Dosage,
			Quantity:   item.Quantity,
		}
	}

	prescription, err := h.prescriptionService.CreatePrescription(c.Request.Context(), &service.CreatePrescriptionInput{
		UserID:      *userID,
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		Prescriber:  req.Prescriber,
		Date:        date,
		Notes:       req.Notes,
		Items:       items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Prescription recorded successfully", prescription)
}

// Get handles getting a single prescription
func (h *PrescriptionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	prescription, err := h.prescriptionService.GetPrescription(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription retrieved successfully", prescription)
}

// Dispense handles loading a prescription's items into the operator's cart
func (h *PrescriptionHandler) Dispense(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	cart, err := h.prescriptionService.DispensePrescription(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription loaded into cart", cart)
}

// Cancel handles cancelling a prescription
func (h *PrescriptionHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	if err := h.prescriptionService.CancelPrescription(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription cancelled successfully", nil)
}

// Delete handles deleting a prescription
func (h *PrescriptionHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	if err := h.prescriptionService.DeletePrescription(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
