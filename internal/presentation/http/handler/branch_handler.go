package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/application/service"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/middleware"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// BranchHandler handles branch-related HTTP requests
type BranchHandler struct {
	branchService *service.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// GetCurrentBranch returns the current user's active branch
func (h *BranchHandler) GetCurrentBranch(c *gin.Context) {
	branchID := middleware.GetBranchID(c)
	if branchID == uuid.Nil {
		response.BadRequest(c, "No active branch")
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch retrieved successfully", gin.H{
		"branch": branch,
	})
}

// List returns all branches for super admins, or only branches the user belongs to
func (h *BranchHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	// Super admins see all branches, paginated
	if IsSuperAdmin(c) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
		params := &pagination.PaginationParams{Page: page, PerPage: perPage}

		result, err := h.branchService.ListBranches(c.Request.Context(), params, c.Query("search"))
		if err != nil {
			response.Error(c, err)
			return
		}

		response.SuccessWithPagination(c, 200, "Branches retrieved successfully", result)
		return
	}

	branches, err := h.branchService.GetUserBranches(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved successfully", gin.H{
		"branches": branches,
	})
}

// Create handles creating a branch
func (h *BranchHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name     string                 `json:"name" binding:"required,min=2,max=255"`
		Address  *string                `json:"address"`
		Phone    *string                `json:"phone"`
		Settings *entity.BranchSettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), &service.CreateBranchInput{
		Name:     req.Name,
		OwnerID:  *userID,
		Address:  req.Address,
		Phone:    req.Phone,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", gin.H{
		"branch": branch,
	})
}

// Update updates the current branch
func (h *BranchHandler) Update(c *gin.Context) {
	branchID := middleware.GetBranchID(c)
	if branchID == uuid.Nil {
		response.BadRequest(c, "No active branch")
		return
	}

	var req struct {
		Name    string  `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), &service.UpdateBranchInput{
		ID:      branchID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch updated successfully", gin.H{
		"branch": branch,
	})
}

// Delete deletes a branch (super admin only)
func (h *BranchHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.branchService.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListMembers returns all members of the current branch
func (h *BranchHandler) ListMembers(c *gin.Context) {
	branchID := middleware.GetBranchID(c)
	if branchID == uuid.Nil {
		response.BadRequest(c, "No active branch")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.branchService.ListMembers(c.Request.Context(), branchID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Members retrieved successfully", result)
}

// AddMember adds a user to the current branch
func (h *BranchHandler) AddMember(c *gin.Context) {
	branchID := middleware.GetBranchID(c)
	if branchID == uuid.Nil {
		response.BadRequest(c, "No active branch")
		return
	}

	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Role   string    `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.branchService.AddMember(c.Request.Context(), &service.AddMemberInput{
		BranchID: branchID,
		UserID:   req.UserID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", nil)
}

// RemoveMember removes a user from the current branch
func (h *BranchHandler) RemoveMember(c *gin.Context) {
	branchID := middleware.GetBranchID(c)
	if branchID == uuid.Nil {
		response.BadRequest(c, "No active branch")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.branchService.RemoveMember(c.Request.Context(), branchID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}

// UpdateMemberRole updates a member's role in the current branch
func (h *BranchHandler) UpdateMemberRole(c *gin.Context) {
	branchID := middleware.GetBranchID(c)
	if branchID == uuid.Nil {
		response.BadRequest(c, "No active branch")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.branchService.UpdateMemberRole(c.Request.Context(), branchID, userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member role updated successfully", nil)
}

// GetSettings returns the current branch's settings
func (h *BranchHandler) GetSettings(c *gin.Context) {
	branchID := middleware.GetBranchID(c)
	if branchID == uuid.Nil {
		response.BadRequest(c, "No active branch")
		return
	}

	settings, err := h.branchService.GetBranchSettings(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch settings retrieved successfully", gin.H{
		"settings": settings,
	})
}

// UpdateSettings replaces the current branch's settings
func (h *BranchHandler) UpdateSettings(c *gin.Context) {
	branchID := middleware.GetBranchID(c)
	if branchID == uuid.Nil {
		response.BadRequest(c, "No active branch")
		return
	}

	var req entity.BranchSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.branchService.UpdateBranchSettings(c.Request.Context(), branchID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch settings updated successfully", gin.H{
		"settings": settings,
	})
}

// AssignUserToBranch assigns a user to a branch (super admin only)
func (h *BranchHandler) AssignUserToBranch(c *gin.Context) {
	var req struct {
		BranchID uuid.UUID `json:"branch_id" binding:"required"`
		UserID   uuid.UUID `json:"user_id" binding:"required"`
		Role     string    `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Default role to member if not specified
	if req.Role == "" {
		req.Role = "member"
	}

	err := h.branchService.AddMember(c.Request.Context(), &service.AddMemberInput{
		BranchID: req.BranchID,
		UserID:   req.UserID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User assigned to branch successfully", nil)
}
