package repositories

import (
	"docuvault/models"

	"gorm.io/gorm"
)

type DocumentTypeRepository interface {
	Create(docType *models.DocumentType) error
	GetByID(id uint) (*models.DocumentType, error)
	GetByName(name string) (*models.DocumentType, error)
	GetAll() ([]models.DocumentType, error)
	ReplaceFieldAssociations(typeID uint, associations []models.DocumentTypeField) error
	Delete(id uint) error
	AttachCategory(typeID, categoryID uint) error
	CountCategoryLinks(categoryID uint) (int64, error)
}

type documentTypeRepository struct {
	db *gorm.DB
}

func NewDocumentTypeRepository(db *gorm.DB) DocumentTypeRepository {
	return &documentTypeRepository{db: db}
}

func (r *documentTypeRepository) Create(docType *models.DocumentType) error {
	return r.db.Create(docType).Error
}

func (r *documentTypeRepository) GetByID(id uint) (*models.DocumentType, error) {
	var docType models.DocumentType
	err := r.db.
		Preload("FieldAssociations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("FieldAssociations.MetadataField").
		Preload("Categories").
		First(&docType, id).Error
	return &docType, err
}

func (r *documentTypeRepository) GetByName(name string) (*models.DocumentType, error) {
	var docType models.DocumentType
	err := r.db.Where("name = ?", name).First(&docType).Error
	return &docType, err
}

func (r *documentTypeRepository) GetAll() ([]models.DocumentType, error) {
	var types []models.DocumentType
	err := r.db.
		Preload("FieldAssociations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("FieldAssociations.MetadataField").
		Order("name asc").
		Find(&types).Error
	return types, err
}

// ReplaceFieldAssociations swaps the full association set in one transaction.
func (r *documentTypeRepository) ReplaceFieldAssociations(typeID uint, associations []models.DocumentTypeField) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_type_id = ?", typeID).
			Delete(&models.DocumentTypeField{}).Error; err != nil {
			return err
		}
		if len(associations) == 0 {
			return nil
		}
		return tx.Create(&associations).Error
	})
}

func (r *documentTypeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_type_id = ?", id).
			Delete(&models.DocumentTypeField{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM document_type_categories WHERE document_type_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DocumentType{}, id).Error
	})
}

func (r *documentTypeRepository) AttachCategory(typeID, categoryID uint) error {
	docType := models.DocumentType{ID: typeID}
	return r.db.Model(&docType).Association("Categories").Append(&models.Category{ID: categoryID})
}

func (r *documentTypeRepository) CountCategoryLinks(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Table("document_type_categories").
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
