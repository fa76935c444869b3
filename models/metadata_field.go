package models

import (
	"strings"
	"time"
)

type MetadataFieldType string

const (
	FieldTypeText    MetadataFieldType = "text"
	FieldTypeInteger MetadataFieldType = "integer"
	FieldTypeDate    MetadataFieldType = "date"
	FieldTypeBoolean MetadataFieldType = "boolean"
	FieldTypeEnum    MetadataFieldType = "enum"
)

// EnumValues and multi-valued metadata are stored comma-separated.
const MultiValueDelimiter = ","

type MetadataField struct {
	ID            uint              `json:"id" gorm:"primarykey"`
	Name          string            `json:"name" gorm:"uniqueIndex;not null"`
	DisplayName   string            `json:"display_name"`
	Description   string            `json:"description" gorm:"size:512"`
	FieldType     MetadataFieldType `json:"field_type" gorm:"not null"`
	EnumValues    string            `json:"enum_values" gorm:"size:1024"`
	IsMultiValued bool              `json:"is_multi_valued" gorm:"default:false"`
	DefaultValue  string            `json:"default_value"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// EnumMembers splits the stored enum definition into its trimmed members.
func (f *MetadataField) EnumMembers() []string {
	if f.EnumValues == "" {
		return nil
	}
	raw := strings.Split(f.EnumValues, MultiValueDelimiter)
	members := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			members = append(members, v)
		}
	}
	return members
}
