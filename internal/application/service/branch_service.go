package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
	"github.com/pharmacare/pharmacare-api/pkg/utils"
)

// BranchService handles branch-related operations
type BranchService struct {
	branchRepo repository.BranchRepository
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo}
}

// CreateBranchInput represents input for creating a branch
type CreateBranchInput struct {
	Name     string
	OwnerID  uuid.UUID
	Address  *string
	Phone    *string
	Settings *entity.BranchSettings
}

// CreateBranch creates a new branch and registers the owner as a member
func (s *BranchService) CreateBranch(ctx context.Context, input *CreateBranchInput) (*entity.Branch, error) {
	slug := utils.Slugify(input.Name)

	// Check if slug already exists
	existing, err := s.branchRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Branch with this name already exists")
	}

	settings := entity.DefaultBranchSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	branch := &entity.Branch{
		Name:     input.Name,
		Slug:     slug,
		OwnerID:  input.OwnerID,
		Address:  input.Address,
		Phone:    input.Phone,
		Settings: settings,
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	// Add owner as member
	membership := &entity.BranchMembership{
		BranchID: branch.ID,
		UserID:   input.OwnerID,
		Role:     "owner",
	}
	_ = s.branchRepo.AddMember(ctx, membership)

	return branch, nil
}

// GetBranch retrieves a branch by ID
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// GetUserBranches retrieves all branches a user belongs to
func (s *BranchService) GetUserBranches(ctx context.Context, userID uuid.UUID) ([]entity.Branch, error) {
	return s.branchRepo.ListUserBranches(ctx, userID)
}

// ListBranches returns a paginated list of branches (for super admin use)
func (s *BranchService) ListBranches(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Branch], error) {
	branches, total, err := s.branchRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(branches, pag), nil
}

// UpdateBranchInput represents input for updating a branch
type UpdateBranchInput struct {
	ID      uuid.UUID
	Name    string
	Address *string
	Phone   *string
}

// UpdateBranch updates a branch
func (s *BranchService) UpdateBranch(ctx context.Context, input *UpdateBranchInput) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.Name != "" {
		branch.Name = input.Name
	}
	if input.Address != nil {
		branch.Address = input.Address
	}
	if input.Phone != nil {
		branch.Phone = input.Phone
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}

	return branch, nil
}

// DeleteBranch soft deletes a branch
func (s *BranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}

	return s.branchRepo.Delete(ctx, id)
}

// AddMemberInput represents input for adding a user to a branch
type AddMemberInput struct {
	BranchID uuid.UUID
	UserID   uuid.UUID
	Role     string
}

// AddMember adds a user to a branch
func (s *BranchService) AddMember(ctx context.Context, input *AddMemberInput) error {
	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}

	// Check if user is already a member
	existing, err := s.branchRepo.GetMembership(ctx, input.BranchID, input.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflictError("User is already a member of this branch")
	}

	// Default role to member if not specified
	role := input.Role
	if role == "" {
		role = "member"
	}

	membership := &entity.BranchMembership{
		BranchID: input.BranchID,
		UserID:   input.UserID,
		Role:     role,
	}

	return s.branchRepo.AddMember(ctx, membership)
}

// RemoveMember removes a user from a branch
func (s *BranchService) RemoveMember(ctx context.Context, branchID, userID uuid.UUID) error {
	membership, err := s.branchRepo.GetMembership(ctx, branchID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NewNotFoundError("Membership")
	}
	if membership.Role == "owner" {
		return apperror.NewBadRequestError("Branch owner cannot be removed")
	}

	return s.branchRepo.RemoveMember(ctx, branchID, userID)
}

// ListMembers retrieves members of a branch with pagination
func (s *BranchService) ListMembers(ctx context.Context, branchID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.BranchMembership], error) {
	members, total, err := s.branchRepo.ListMembers(ctx, branchID, params)
	if err != nil {
		return nil, err
	}

	// Populate user details for JSON response
	for i := range members {
		members[i].PopulateUserDetails()
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(members, pag), nil
}

// UpdateMemberRole updates a member's role in a branch
func (s *BranchService) UpdateMemberRole(ctx context.Context, branchID, userID uuid.UUID, role string) error {
	membership, err := s.branchRepo.GetMembership(ctx, branchID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NewNotFoundError("Membership")
	}

	return s.branchRepo.UpdateMemberRole(ctx, branchID, userID, role)
}

// GetMembership returns a user's membership in a branch, or nil
func (s *BranchService) GetMembership(ctx context.Context, branchID, userID uuid.UUID) (*entity.BranchMembership, error) {
	return s.branchRepo.GetMembership(ctx, branchID, userID)
}

// GetBranchSettings retrieves a branch's settings
func (s *BranchService) GetBranchSettings(ctx context.Context, branchID uuid.UUID) (*entity.BranchSettings, error) {
	settings, err := s.branchRepo.GetSettings(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return settings, nil
}

// UpdateBranchSettings replaces a branch's settings
func (s *BranchService) UpdateBranchSettings(ctx context.Context, branchID uuid.UUID, settings entity.BranchSettings) (*entity.BranchSettings, error) {
	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if err := s.branchRepo.UpdateSettings(ctx, branchID, settings); err != nil {
		return nil, err
	}

	return &settings, nil
}
