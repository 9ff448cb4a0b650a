package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/application/service"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	patientService *service.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// List handles listing patients (supports both page-based and cursor-based pagination)
func (h *PatientHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	ctx := c.Request.Context()
	if isSuperAdmin {
		ctx = infraRepo.WithSkipBranchScope(ctx, true)
	}

	search := c.Query("search")

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
		params := &pagination.CursorParams{
			Cursor:    cursor,
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		}

		result, err := h.patientService.ListPatientsWithCursor(ctx, *userID, params, search, isSuperAdmin)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, 200, "Patients retrieved successfully", result)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.patientService.ListPatients(ctx, *userID, params, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Patients retrieved successfully", result)
}

// Create handles creating a patient
func (h *PatientHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required,min=2,max=255"`
		Email       *string `json:"email" binding:"omitempty,email"`
		Phone       *string `json:"phone"`
		Address     *string `json:"address"`
		DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD
		Gender      *string `json:"gender"`
		BloodGroup  *string `json:"blood_group"`
		Allergies   *string `json:"allergies"`
		InsuranceNo *string `json:"insurance_no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		response.BadRequest(c, "Invalid date of birth. Use YYYY-MM-DD")
		return
	}

	patient, err := h.patientService.CreatePatient(c.Request.Context(), &service.CreatePatientInput{
		UserID:      *userID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		DateOfBirth: dob,
		Gender:      req.Gender,
		BloodGroup:  req.BloodGroup,
		Allergies:   req.Allergies,
		InsuranceNo: req.InsuranceNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Patient created successfully", patient)
}

// Get handles getting a single patient
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// Update handles updating a patient
func (h *PatientHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	var req struct {
		Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
		Email       *string `json:"email" binding:"omitempty,email"`
		Phone       *string `json:"phone"`
		Address     *string `json:"address"`
		DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD
		Gender      *string `json:"gender"`
		BloodGroup  *string `json:"blood_group"`
		Allergies   *string `json:"allergies"`
		InsuranceNo *string `json:"insurance_no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		response.BadRequest(c, "Invalid date of birth. Use YYYY-MM-DD")
		return
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), &service.UpdatePatientInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: IsSuperAdmin(c),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  dob,
		Gender:       req.Gender,
		BloodGroup:   req.BloodGroup,
		Allergies:    req.Allergies,
		InsuranceNo:  req.InsuranceNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient updated successfully", patient)
}

// Delete handles deleting a patient
func (h *PatientHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	if err := h.patientService.DeletePatient(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseOptionalDate parses an optional YYYY-MM-DD date string
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
