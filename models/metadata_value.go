package models

import "strings"

// MetadataValue is one field of a version's metadata snapshot. Multi-valued
// entries are stored as a single delimiter-joined string.
type MetadataValue struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	VersionID  uint           `json:"version_id" gorm:"index;not null"`
	DocumentID uint           `json:"document_id" gorm:"index;not null"`
	FieldID    uint           `json:"field_id" gorm:"not null"`
	Field      *MetadataField `json:"field,omitempty" gorm:"foreignKey:FieldID"`
	Value      string         `json:"value" gorm:"size:2048"`
}

// Values splits a multi-valued entry back into its parts.
func (m *MetadataValue) Values() []string {
	if m.Value == "" {
		return nil
	}
	raw := strings.Split(m.Value, MultiValueDelimiter)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
