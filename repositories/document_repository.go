package repositories

import (
	"strings"

	"docuvault/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) DocumentRepository
	Create(doc *models.Document) error
	GetByID(id uint) (*models.Document, error)
	GetList(params models.DocumentListParams) ([]models.Document, int64, error)
	Update(doc *models.Document) error
	CountByType(typeID uint) (int64, error)
	CreateVersion(version *models.DocumentVersion) error
	GetVersions(documentID uint) ([]models.DocumentVersion, error)
	GetVersion(documentID, versionID uint) (*models.DocumentVersion, error)
	GetLatestVersion(documentID uint) (*models.DocumentVersion, error)
	MaxVersionNumber(documentID uint) (int, error)
	ReplaceMetadataValues(versionID uint, values []models.MetadataValue) error
	DeleteCascade(id uint) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) WithTx(tx *gorm.DB) DocumentRepository {
	return &documentRepository{db: tx}
}

func (r *documentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.
		Preload("DocumentType.FieldAssociations.MetadataField").
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version_number asc")
		}).
		Preload("Versions.MetadataValues.Field").
		First(&doc, id).Error
	return &doc, err
}

func (r *documentRepository) GetList(params models.DocumentListParams) ([]models.Document, int64, error) {
	var docs []models.Document
	var total int64

	query := r.db.Model(&models.Document{}).Preload("DocumentType")

	if params.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}
	if params.DocumentTypeID > 0 {
		query = query.Where("document_type_id = ?", params.DocumentTypeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Order("created_at desc").Order("id desc").
		Offset(offset).Limit(params.Limit).
		Find(&docs).Error

	return docs, total, err
}

func (r *documentRepository) Update(doc *models.Document) error {
	return r.db.Omit(clause.Associations).Save(doc).Error
}

func (r *documentRepository) CountByType(typeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Document{}).
		Where("document_type_id = ?", typeID).
		Count(&count).Error
	return count, err
}

func (r *documentRepository) CreateVersion(version *models.DocumentVersion) error {
	return r.db.Create(version).Error
}

func (r *documentRepository) GetVersions(documentID uint) ([]models.DocumentVersion, error) {
	var versions []models.DocumentVersion
	err := r.db.Where("document_id = ?", documentID).
		Preload("MetadataValues.Field").
		Order("version_number asc").
		Find(&versions).Error
	return versions, err
}

func (r *documentRepository) GetVersion(documentID, versionID uint) (*models.DocumentVersion, error) {
	var version models.DocumentVersion
	err := r.db.Where("document_id = ? AND id = ?", documentID, versionID).
		Preload("MetadataValues.Field").
		First(&version).Error
	return &version, err
}

func (r *documentRepository) GetLatestVersion(documentID uint) (*models.DocumentVersion, error) {
	var version models.DocumentVersion
	err := r.db.Where("document_id = ?", documentID).
		Preload("MetadataValues").
		Order("version_number desc").
		First(&version).Error
	return &version, err
}

func (r *documentRepository) MaxVersionNumber(documentID uint) (int, error) {
	var max int
	err := r.db.Model(&models.DocumentVersion{}).
		Where("document_id = ?", documentID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&max).Error
	return max, err
}

// ReplaceMetadataValues swaps a version's metadata snapshot.
func (r *documentRepository) ReplaceMetadataValues(versionID uint, values []models.MetadataValue) error {
	if err := r.db.Where("version_id = ?", versionID).
		Delete(&models.MetadataValue{}).Error; err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.Create(&values).Error
}

// DeleteCascade removes a document with all of its versions and metadata rows.
func (r *documentRepository) DeleteCascade(id uint) error {
	if err := r.db.Where("document_id = ?", id).
		Delete(&models.MetadataValue{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("document_id = ?", id).
		Delete(&models.DocumentVersion{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Document{}, id).Error
}
