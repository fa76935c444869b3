package models

import "time"

// DocumentVersion is immutable once written; version numbers per document
// form a gap-free sequence starting at 1, enforced by idx_document_version.
type DocumentVersion struct {
	ID             uint            `json:"id" gorm:"primarykey"`
	DocumentID     uint            `json:"document_id" gorm:"uniqueIndex:idx_document_version;not null"`
	VersionNumber  int             `json:"version_number" gorm:"uniqueIndex:idx_document_version;not null"`
	StorageKey     string          `json:"storage_key" gorm:"size:512"`
	FileName       string          `json:"file_name" gorm:"size:255"`
	FileSize       int64           `json:"file_size"`
	MetadataValues []MetadataValue `json:"metadata_values,omitempty" gorm:"foreignKey:VersionID"`
	CreatedAt      time.Time       `json:"created_at"`
}

// HasFile reports whether this version carries stored bytes.
func (v *DocumentVersion) HasFile() bool {
	return v.StorageKey != ""
}
