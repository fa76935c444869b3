package models

type MetadataFieldCreateRequest struct {
	Name          string            `json:"name" binding:"required,min=1,max=255"`
	DisplayName   string            `json:"display_name"`
	Description   string            `json:"description"`
	FieldType     MetadataFieldType `json:"field_type" binding:"required,oneof=text integer date boolean enum"`
	EnumValues    []string          `json:"enum_values"`
	IsMultiValued bool              `json:"is_multi_valued"`
	DefaultValue  string            `json:"default_value"`
}

type MetadataFieldUpdateRequest struct {
	DisplayName   *string  `json:"display_name"`
	Description   *string  `json:"description"`
	EnumValues    []string `json:"enum_values"`
	IsMultiValued *bool    `json:"is_multi_valued"`
	DefaultValue  *string  `json:"default_value"`
}

type FieldAssociationRequest struct {
	MetadataFieldID uint `json:"metadata_field_id" binding:"required"`
	IsRequired      bool `json:"is_required"`
}

type DocumentTypeCreateRequest struct {
	Name        string                    `json:"name" binding:"required,min=1,max=255"`
	Description string                    `json:"description"`
	Fields      []FieldAssociationRequest `json:"fields"`
}

type FieldAssociationUpdateRequest struct {
	Fields []FieldAssociationRequest `json:"fields"`
}

type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
}

type DocumentUpdateRequest struct {
	Title          *string                `json:"title"`
	DocumentTypeID *uint                  `json:"document_type_id"`
	MetadataValues map[string]interface{} `json:"metadata_values"`
}

type DocumentListParams struct {
	Page           int    `form:"page,default=1"`
	Limit          int    `form:"limit,default=20"`
	Search         string `form:"search"`
	DocumentTypeID uint   `form:"document_type_id"`
}

// CommitVersionInput drives the create-document / new-version /
// metadata-only paths of the coordination service. A nil DocumentID means
// create; nil MetadataValues means leave the existing snapshot untouched.
type CommitVersionInput struct {
	DocumentID     *uint
	Title          string
	DocumentTypeID *uint
	MetadataValues map[string]interface{}
	FileBytes      []byte
	FileName       string
}
