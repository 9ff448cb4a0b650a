package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	domainRepo "github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
	"gorm.io/gorm"
)

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) GetBySlug(ctx context.Context, slug string) (*entity.Branch, error) {
	var branch entity.Branch
	err := r.db.WithContext(ctx).First(&branch, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Branch{}, "id = ?", id).Error
}

func (r *branchRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error) {
	var branches []entity.Branch
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Branch{})

	if search != "" {
		query = query.Where("name ILIKE ? OR slug ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&branches).Error

	return branches, total, err
}

func (r *branchRepository) AddMember(ctx context.Context, membership *entity.BranchMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *branchRepository) RemoveMember(ctx context.Context, branchID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.BranchMembership{}, "branch_id = ? AND user_id = ?", branchID, userID).Error
}

func (r *branchRepository) GetMembership(ctx context.Context, branchID, userID uuid.UUID) (*entity.BranchMembership, error) {
	var membership entity.BranchMembership
	err := r.db.WithContext(ctx).
		First(&membership, "branch_id = ? AND user_id = ?", branchID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &membership, err
}

func (r *branchRepository) ListMembers(ctx context.Context, branchID uuid.UUID, params *pagination.PaginationParams) ([]entity.BranchMembership, int64, error) {
	var members []entity.BranchMembership
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BranchMembership{}).
		Where("branch_id = ?", branchID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error

	return members, total, err
}

func (r *branchRepository) ListUserBranches(ctx context.Context, userID uuid.UUID) ([]entity.Branch, error) {
	var branches []entity.Branch
	err := r.db.WithContext(ctx).
		Joins("JOIN branch_memberships ON branch_memberships.branch_id = branches.id").
		Where("branch_memberships.user_id = ?", userID).
		Find(&branches).Error
	return branches, err
}

func (r *branchRepository) UpdateMemberRole(ctx context.Context, branchID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).
		Model(&entity.BranchMembership{}).
		Where("branch_id = ? AND user_id = ?", branchID, userID).
		Update("role", role).Error
}

func (r *branchRepository) GetSettings(ctx context.Context, branchID uuid.UUID) (*entity.BranchSettings, error) {
	branch, err := r.GetByID(ctx, branchID)
	if err != nil || branch == nil {
		return nil, err
	}
	return &branch.Settings, nil
}

func (r *branchRepository) UpdateSettings(ctx context.Context, branchID uuid.UUID, settings entity.BranchSettings) error {
	return r.db.WithContext(ctx).
		Model(&entity.Branch{}).
		Where("id = ?", branchID).
		Update("settings", settings).Error
}
