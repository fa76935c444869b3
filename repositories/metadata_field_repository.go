package repositories

import (
	"docuvault/models"

	"gorm.io/gorm"
)

type MetadataFieldRepository interface {
	Create(field *models.MetadataField) error
	GetByID(id uint) (*models.MetadataField, error)
	GetByName(name string) (*models.MetadataField, error)
	GetByIDs(ids []uint) ([]models.MetadataField, error)
	GetAll() ([]models.MetadataField, error)
	Update(field *models.MetadataField) error
	Delete(id uint) error
	CountTypeAssociations(fieldID uint) (int64, error)
}

type metadataFieldRepository struct {
	db *gorm.DB
}

func NewMetadataFieldRepository(db *gorm.DB) MetadataFieldRepository {
	return &metadataFieldRepository{db: db}
}

func (r *metadataFieldRepository) Create(field *models.MetadataField) error {
	return r.db.Create(field).Error
}

func (r *metadataFieldRepository) GetByID(id uint) (*models.MetadataField, error) {
	var field models.MetadataField
	err := r.db.First(&field, id).Error
	return &field, err
}

func (r *metadataFieldRepository) GetByName(name string) (*models.MetadataField, error) {
	var field models.MetadataField
	err := r.db.Where("name = ?", name).First(&field).Error
	return &field, err
}

func (r *metadataFieldRepository) GetByIDs(ids []uint) ([]models.MetadataField, error) {
	var fields []models.MetadataField
	err := r.db.Where("id IN ?", ids).Find(&fields).Error
	return fields, err
}

func (r *metadataFieldRepository) GetAll() ([]models.MetadataField, error) {
	var fields []models.MetadataField
	err := r.db.Order("name asc").Find(&fields).Error
	return fields, err
}

func (r *metadataFieldRepository) Update(field *models.MetadataField) error {
	return r.db.Save(field).Error
}

func (r *metadataFieldRepository) Delete(id uint) error {
	return r.db.Delete(&models.MetadataField{}, id).Error
}

func (r *metadataFieldRepository) CountTypeAssociations(fieldID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DocumentTypeField{}).
		Where("metadata_field_id = ?", fieldID).
		Count(&count).Error
	return count, err
}
