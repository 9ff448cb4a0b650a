package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
	"github.com/pharmacare/pharmacare-api/pkg/utils"
)

// canModifyOwned is the ownership rule shared by categories and units:
// super-admins touch anything, everyone else only their own records.
func canModifyOwned(ownerID, userID uuid.UUID, isSuperAdmin bool) bool {
	return isSuperAdmin || ownerID == userID
}

// CategoryService manages the medicine category catalogue of a branch.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
}

type UpdateCategoryInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         string
}

func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.Category{
		BranchID: branchID,
		UserID:   input.UserID,
		Name:     input.Name,
		Slug:     slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(categories,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	if !canModifyOwned(category.UserID, input.UserID, input.IsSuperAdmin) {
		return nil, apperror.ErrForbidden
	}

	// Renaming moves the slug, which must stay unique within the branch.
	if newSlug := utils.Slugify(input.Name); newSlug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
		category.Slug = newSlug
	}
	category.Name = input.Name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	if !canModifyOwned(category.UserID, userID, isSuperAdmin) {
		return apperror.ErrForbidden
	}
	return s.categoryRepo.Delete(ctx, id)
}

// UnitService manages dosage units (tablet, bottle, strip) used on
// medicine records.
type UnitService struct {
	unitRepo repository.UnitRepository
}

func NewUnitService(unitRepo repository.UnitRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo}
}

type CreateUnitInput struct {
	UserID    uuid.UUID
	Name      string
	ShortCode string
}

type UpdateUnitInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         string
	ShortCode    string
}

func (s *UnitService) CreateUnit(ctx context.Context, input *CreateUnitInput) (*entity.Unit, error) {
	branchID, ok := infraRepo.GetBranchID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Branch context required")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.unitRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Unit with this name already exists")
	}

	unit := &entity.Unit{
		BranchID:  branchID,
		UserID:    input.UserID,
		Name:      input.Name,
		Slug:      slug,
		ShortCode: input.ShortCode,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) GetUnit(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}
	return unit, nil
}

func (s *UnitService) ListUnits(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Unit], error) {
	units, total, err := s.unitRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(units,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func (s *UnitService) UpdateUnit(ctx context.Context, input *UpdateUnitInput) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}
	if !canModifyOwned(unit.UserID, input.UserID, input.IsSuperAdmin) {
		return nil, apperror.ErrForbidden
	}

	if newSlug := utils.Slugify(input.Name); newSlug != unit.Slug {
		existing, err := s.unitRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != unit.ID {
			return nil, apperror.NewConflictError("Unit with this name already exists")
		}
		unit.Slug = newSlug
	}
	unit.Name = input.Name
	unit.ShortCode = input.ShortCode

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) DeleteUnit(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}
	if !canModifyOwned(unit.UserID, userID, isSuperAdmin) {
		return apperror.ErrForbidden
	}
	return s.unitRepo.Delete(ctx, id)
}
