package models

import "time"

type DocumentType struct {
	ID                uint                `json:"id" gorm:"primarykey"`
	Name              string              `json:"name" gorm:"uniqueIndex;not null"`
	Description       string              `json:"description" gorm:"size:512"`
	FieldAssociations []DocumentTypeField `json:"field_associations" gorm:"foreignKey:DocumentTypeID"`
	Categories        []Category          `json:"categories,omitempty" gorm:"many2many:document_type_categories;"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// DocumentTypeField is the explicit join entity between a document type and
// a metadata field, carrying the per-association required flag.
type DocumentTypeField struct {
	ID              uint           `json:"id" gorm:"primarykey"`
	DocumentTypeID  uint           `json:"document_type_id" gorm:"uniqueIndex:idx_type_field;not null"`
	MetadataFieldID uint           `json:"metadata_field_id" gorm:"uniqueIndex:idx_type_field;not null"`
	MetadataField   *MetadataField `json:"metadata_field,omitempty" gorm:"foreignKey:MetadataFieldID"`
	IsRequired      bool           `json:"is_required" gorm:"default:false"`
	Position        int            `json:"position" gorm:"default:0"`
	CreatedAt       time.Time      `json:"created_at"`
}
