package services

import (
	"errors"
	"fmt"

	"docuvault/models"
	"docuvault/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(req models.CategoryCreateRequest) (*models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	AddChild(parentID, childID uint) error
	AttachToType(categoryID, typeID uint) error
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	typeRepo     repositories.DocumentTypeRepository
	logger       *zap.Logger
}

func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	typeRepo repositories.DocumentTypeRepository,
	logger *zap.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		typeRepo:     typeRepo,
		logger:       logger.With(zap.String("service", "category")),
	}
}

func (s *categoryService) CreateCategory(req models.CategoryCreateRequest) (*models.Category, error) {
	if _, err := s.categoryRepo.GetByName(req.Name); err == nil {
		return nil, models.NewValidationError("name", fmt.Sprintf("category %q already exists", req.Name))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.GetCategory(*req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if err := s.categoryRepo.AddChild(*req.ParentID, category.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("category created", zap.Uint("category_id", category.ID), zap.String("name", category.Name))
	return category, nil
}

func (s *categoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Entity: "category", ID: id}
	}
	return category, err
}

func (s *categoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *categoryService) AddChild(parentID, childID uint) error {
	if parentID == childID {
		return models.NewValidationError("child_id", "a category cannot be its own child")
	}
	if _, err := s.GetCategory(parentID); err != nil {
		return err
	}
	if _, err := s.GetCategory(childID); err != nil {
		return err
	}
	return s.categoryRepo.AddChild(parentID, childID)
}

func (s *categoryService) AttachToType(categoryID, typeID uint) error {
	if _, err := s.GetCategory(categoryID); err != nil {
		return err
	}
	if _, err := s.typeRepo.GetByID(typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Entity: "document type", ID: typeID}
		}
		return err
	}
	return s.typeRepo.AttachCategory(typeID, categoryID)
}

// DeleteCategory rejects deletion while the category has children or is
// attached to a document type.
func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	children, err := s.categoryRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return models.ErrorConflict{Message: fmt.Sprintf("category %d has %d child categories", id, children)}
	}

	links, err := s.typeRepo.CountCategoryLinks(id)
	if err != nil {
		return err
	}
	if links > 0 {
		return models.ErrorConflict{Message: fmt.Sprintf("category %d is attached to %d document type(s)", id, links)}
	}

	return s.categoryRepo.Delete(id)
}
