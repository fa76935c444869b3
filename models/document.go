package models

import "time"

type Document struct {
	ID             uint              `json:"id" gorm:"primarykey"`
	Title          string            `json:"title" gorm:"not null"`
	DocumentTypeID *uint             `json:"document_type_id"`
	DocumentType   *DocumentType     `json:"document_type,omitempty" gorm:"foreignKey:DocumentTypeID"`
	Versions       []DocumentVersion `json:"versions,omitempty" gorm:"foreignKey:DocumentID"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
