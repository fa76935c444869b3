package models

import "time"

// Category is a hierarchical label attachable to document types.
type Category struct {
	ID          uint        `json:"id" gorm:"primarykey"`
	Name        string      `json:"name" gorm:"uniqueIndex;not null"`
	Description string      `json:"description" gorm:"size:512"`
	Children    []*Category `json:"children,omitempty" gorm:"many2many:category_hierarchy;joinForeignKey:ParentID;joinReferences:ChildID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
