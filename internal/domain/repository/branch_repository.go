package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error)

	// Membership operations
	AddMember(ctx context.Context, membership *entity.BranchMembership) error
	RemoveMember(ctx context.Context, branchID, userID uuid.UUID) error
	GetMembership(ctx context.Context, branchID, userID uuid.UUID) (*entity.BranchMembership, error)
	ListMembers(ctx context.Context, branchID uuid.UUID, params *pagination.PaginationParams) ([]entity.BranchMembership, int64, error)
	ListUserBranches(ctx context.Context, userID uuid.UUID) ([]entity.Branch, error)
	UpdateMemberRole(ctx context.Context, branchID, userID uuid.UUID, role string) error

	// Settings operations
	GetSettings(ctx context.Context, branchID uuid.UUID) (*entity.BranchSettings, error)
	UpdateSettings(ctx context.Context, branchID uuid.UUID, settings entity.BranchSettings) error
}
