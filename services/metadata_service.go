package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"docuvault/models"
	"docuvault/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MetadataService interface {
	CreateField(req models.MetadataFieldCreateRequest) (*models.MetadataField, error)
	GetField(id uint) (*models.MetadataField, error)
	ListFields() ([]models.MetadataField, error)
	UpdateField(id uint, req models.MetadataFieldUpdateRequest) (*models.MetadataField, error)
	DeleteField(id uint) error
	// ValidateDocumentMetadata checks the supplied values against the type's
	// field associations and returns the normalized snapshot rows. All
	// violations are collected into a single ErrorValidation.
	ValidateDocumentMetadata(docType *models.DocumentType, values map[string]interface{}) ([]models.MetadataValue, error)
}

type metadataService struct {
	fieldRepo repositories.MetadataFieldRepository
	logger    *zap.Logger
}

func NewMetadataService(fieldRepo repositories.MetadataFieldRepository, logger *zap.Logger) MetadataService {
	return &metadataService{
		fieldRepo: fieldRepo,
		logger:    logger.With(zap.String("service", "metadata")),
	}
}

func (s *metadataService) CreateField(req models.MetadataFieldCreateRequest) (*models.MetadataField, error) {
	if _, ok := valueValidators[req.FieldType]; !ok {
		return nil, models.NewValidationError("field_type", fmt.Sprintf("unknown field type %q", req.FieldType))
	}
	if req.FieldType == models.FieldTypeEnum && len(req.EnumValues) == 0 {
		return nil, models.NewValidationError("enum_values", "enum fields require at least one value")
	}

	if _, err := s.fieldRepo.GetByName(req.Name); err == nil {
		return nil, models.NewValidationError("name", fmt.Sprintf("field %q already exists", req.Name))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	field := &models.MetadataField{
		Name:          req.Name,
		DisplayName:   req.DisplayName,
		Description:   req.Description,
		FieldType:     req.FieldType,
		EnumValues:    strings.Join(req.EnumValues, models.MultiValueDelimiter),
		IsMultiValued: req.IsMultiValued,
		DefaultValue:  req.DefaultValue,
	}
	if err := s.fieldRepo.Create(field); err != nil {
		return nil, err
	}

	s.logger.Info("metadata field created",
		zap.Uint("field_id", field.ID),
		zap.String("name", field.Name),
		zap.String("field_type", string(field.FieldType)))
	return field, nil
}

func (s *metadataService) GetField(id uint) (*models.MetadataField, error) {
	field, err := s.fieldRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Entity: "metadata field", ID: id}
	}
	return field, err
}

func (s *metadataService) ListFields() ([]models.MetadataField, error) {
	return s.fieldRepo.GetAll()
}

// UpdateField patches an existing definition. Previously stored values are
// never revalidated against the new definition.
func (s *metadataService) UpdateField(id uint, req models.MetadataFieldUpdateRequest) (*models.MetadataField, error) {
	field, err := s.GetField(id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		field.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		field.Description = *req.Description
	}
	if req.EnumValues != nil {
		field.EnumValues = strings.Join(req.EnumValues, models.MultiValueDelimiter)
	}
	if req.IsMultiValued != nil {
		field.IsMultiValued = *req.IsMultiValued
	}
	if req.DefaultValue != nil {
		field.DefaultValue = *req.DefaultValue
	}

	if field.FieldType == models.FieldTypeEnum && len(field.EnumMembers()) == 0 {
		return nil, models.NewValidationError("enum_values", "enum fields require at least one value")
	}

	if err := s.fieldRepo.Update(field); err != nil {
		return nil, err
	}
	return field, nil
}

func (s *metadataService) DeleteField(id uint) error {
	if _, err := s.GetField(id); err != nil {
		return err
	}

	count, err := s.fieldRepo.CountTypeAssociations(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrorConflict{
			Message: fmt.Sprintf("metadata field %d is associated with %d document type(s)", id, count),
		}
	}

	return s.fieldRepo.Delete(id)
}

func (s *metadataService) ValidateDocumentMetadata(docType *models.DocumentType, values map[string]interface{}) ([]models.MetadataValue, error) {
	if docType == nil {
		if len(values) == 0 {
			return nil, nil
		}
		violations := make([]models.FieldViolation, 0, len(values))
		for _, name := range sortedKeys(values) {
			violations = append(violations, models.FieldViolation{
				Field:  name,
				Reason: "document has no type, metadata is not accepted",
			})
		}
		return nil, models.ErrorValidation{Violations: violations}
	}

	byName := make(map[string]*models.DocumentTypeField, len(docType.FieldAssociations))
	for i := range docType.FieldAssociations {
		assoc := &docType.FieldAssociations[i]
		if assoc.MetadataField != nil {
			byName[assoc.MetadataField.Name] = assoc
		}
	}

	var violations []models.FieldViolation
	snapshot := make([]models.MetadataValue, 0, len(values))
	seen := make(map[string]bool, len(values))

	for _, name := range sortedKeys(values) {
		assoc, ok := byName[name]
		if !ok {
			violations = append(violations, models.FieldViolation{
				Field:  name,
				Reason: fmt.Sprintf("not associated with document type %q", docType.Name),
			})
			continue
		}

		value, vv := normalizeValue(assoc.MetadataField, values[name])
		if len(vv) > 0 {
			violations = append(violations, vv...)
			continue
		}
		if value == "" {
			continue
		}

		seen[name] = true
		snapshot = append(snapshot, models.MetadataValue{
			FieldID: assoc.MetadataFieldID,
			Value:   value,
		})
	}

	for _, assoc := range docType.FieldAssociations {
		if assoc.IsRequired && assoc.MetadataField != nil && !seen[assoc.MetadataField.Name] {
			violations = append(violations, models.FieldViolation{
				Field:  assoc.MetadataField.Name,
				Reason: "required field is missing",
			})
		}
	}

	if len(violations) > 0 {
		return nil, models.ErrorValidation{Violations: violations}
	}
	return snapshot, nil
}

// normalizeValue coerces a raw JSON value to the stored textual form,
// running the per-type validator on every element.
func normalizeValue(field *models.MetadataField, raw interface{}) (string, []models.FieldViolation) {
	validate := valueValidators[field.FieldType]

	if field.IsMultiValued {
		list, ok := raw.([]interface{})
		if !ok {
			return "", []models.FieldViolation{{Field: field.Name, Reason: "expects a list of values"}}
		}
		var violations []models.FieldViolation
		parts := make([]string, 0, len(list))
		for _, item := range list {
			value, ok := scalarString(item)
			if !ok {
				violations = append(violations, models.FieldViolation{Field: field.Name, Reason: "contains a non-scalar value"})
				continue
			}
			if value == "" {
				continue
			}
			if reason := validate(field, value); reason != "" {
				violations = append(violations, models.FieldViolation{Field: field.Name, Reason: reason})
				continue
			}
			parts = append(parts, value)
		}
		if len(violations) > 0 {
			return "", violations
		}
		return strings.Join(parts, models.MultiValueDelimiter), nil
	}

	if _, isList := raw.([]interface{}); isList {
		return "", []models.FieldViolation{{Field: field.Name, Reason: "expects a single value"}}
	}
	value, ok := scalarString(raw)
	if !ok {
		return "", []models.FieldViolation{{Field: field.Name, Reason: "expects a scalar value"}}
	}
	if value == "" {
		return "", nil
	}
	if reason := validate(field, value); reason != "" {
		return "", []models.FieldViolation{{Field: field.Name, Reason: reason}}
	}
	return value, nil
}

// One pure validator per field type, selected by the type tag. Each returns
// an empty string when the value is acceptable.
type valueValidator func(field *models.MetadataField, value string) string

var valueValidators = map[models.MetadataFieldType]valueValidator{
	models.FieldTypeText:    validateTextValue,
	models.FieldTypeInteger: validateIntegerValue,
	models.FieldTypeDate:    validateDateValue,
	models.FieldTypeBoolean: validateBooleanValue,
	models.FieldTypeEnum:    validateEnumValue,
}

func validateTextValue(_ *models.MetadataField, _ string) string {
	return ""
}

func validateIntegerValue(_ *models.MetadataField, value string) string {
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return fmt.Sprintf("%q is not an integer", value)
	}
	return ""
}

func validateDateValue(_ *models.MetadataField, value string) string {
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return ""
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return ""
	}
	return fmt.Sprintf("%q is not an ISO date", value)
}

func validateBooleanValue(_ *models.MetadataField, value string) string {
	if _, err := strconv.ParseBool(value); err != nil {
		return fmt.Sprintf("%q is not a boolean", value)
	}
	return ""
}

func validateEnumValue(field *models.MetadataField, value string) string {
	members := field.EnumMembers()
	for _, m := range members {
		if m == value {
			return ""
		}
	}
	return fmt.Sprintf("must be one of: %s", strings.Join(members, ", "))
}

func scalarString(v interface{}) (string, bool) {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value), true
	case bool:
		return strconv.FormatBool(value), true
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10), true
		}
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
