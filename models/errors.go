package models

import (
	"fmt"
	"strings"
)

// FieldViolation describes a single metadata validation failure.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ErrorNotFound struct {
	Entity string
	ID     interface{}
}

func (e ErrorNotFound) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// ErrorValidation carries every violation found in one pass so the caller
// sees the full picture instead of the first failing field.
type ErrorValidation struct {
	Violations []FieldViolation
}

func (e ErrorValidation) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, reason string) ErrorValidation {
	return ErrorValidation{Violations: []FieldViolation{{Field: field, Reason: reason}}}
}

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

// StorageFailure records one version whose stored file could not be removed.
type StorageFailure struct {
	VersionID  uint   `json:"version_id"`
	StorageKey string `json:"storage_key"`
	Reason     string `json:"reason"`
}

type ErrorStorage struct {
	Op       string
	Key      string
	Err      error
	Failures []StorageFailure
}

func (e ErrorStorage) Error() string {
	if len(e.Failures) > 0 {
		return fmt.Sprintf("storage %s: %d file(s) could not be removed", e.Op, len(e.Failures))
	}
	if e.Key != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e ErrorStorage) Unwrap() error {
	return e.Err
}
