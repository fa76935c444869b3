package repositories

import (
	"docuvault/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	GetAll() ([]models.Category, error)
	AddChild(parentID, childID uint) error
	CountChildren(id uint) (int64, error)
	Delete(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.Preload("Children").First(&category, id).Error
	return &category, err
}

func (r *categoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	return &category, err
}

func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Preload("Children").Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) AddChild(parentID, childID uint) error {
	parent := models.Category{ID: parentID}
	return r.db.Model(&parent).Association("Children").Append(&models.Category{ID: childID})
}

func (r *categoryRepository) CountChildren(id uint) (int64, error) {
	var count int64
	err := r.db.Table("category_hierarchy").
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *categoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM category_hierarchy WHERE parent_id = ? OR child_id = ?", id, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}
