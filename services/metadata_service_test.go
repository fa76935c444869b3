package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"docuvault/models"
	"docuvault/repositories"
)

type MetadataServiceSuite struct {
	suite.Suite
	svc   MetadataService
	types DocumentTypeService
}

func TestMetadataServiceSuite(t *testing.T) {
	suite.Run(t, new(MetadataServiceSuite))
}

func (s *MetadataServiceSuite) SetupTest() {
	db := newTestDB(s.T())
	log := zap.NewNop()

	fieldRepo := repositories.NewMetadataFieldRepository(db)
	typeRepo := repositories.NewDocumentTypeRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)

	s.svc = NewMetadataService(fieldRepo, log)
	s.types = NewDocumentTypeService(typeRepo, fieldRepo, documentRepo, log)
}

func (s *MetadataServiceSuite) TestCreateFieldRejectsUnknownType() {
	_, err := s.svc.CreateField(models.MetadataFieldCreateRequest{
		Name:      "priority",
		FieldType: "decimal",
	})

	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)
	s.Equal("field_type", verr.Violations[0].Field)
}

func (s *MetadataServiceSuite) TestCreateEnumFieldRequiresValues() {
	_, err := s.svc.CreateField(models.MetadataFieldCreateRequest{
		Name:      "status",
		FieldType: models.FieldTypeEnum,
	})

	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)
	s.Equal("enum_values", verr.Violations[0].Field)
}

func (s *MetadataServiceSuite) TestCreateFieldRejectsDuplicateName() {
	_, err := s.svc.CreateField(models.MetadataFieldCreateRequest{
		Name:      "author",
		FieldType: models.FieldTypeText,
	})
	s.Require().NoError(err)

	_, err = s.svc.CreateField(models.MetadataFieldCreateRequest{
		Name:      "author",
		FieldType: models.FieldTypeText,
	})

	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)
	s.Equal("name", verr.Violations[0].Field)
}

func (s *MetadataServiceSuite) TestGetFieldNotFound() {
	_, err := s.svc.GetField(4242)

	var nf models.ErrorNotFound
	s.Require().ErrorAs(err, &nf)
	s.Equal("metadata field", nf.Entity)
}

func (s *MetadataServiceSuite) TestUpdateFieldPatchesOnlyGivenFields() {
	field, err := s.svc.CreateField(models.MetadataFieldCreateRequest{
		Name:        "department",
		DisplayName: "Department",
		FieldType:   models.FieldTypeEnum,
		EnumValues:  []string{"Legal", "Finance"},
	})
	s.Require().NoError(err)

	display := "Owning Department"
	updated, err := s.svc.UpdateField(field.ID, models.MetadataFieldUpdateRequest{
		DisplayName: &display,
	})
	s.Require().NoError(err)

	s.Equal("Owning Department", updated.DisplayName)
	s.Equal([]string{"Legal", "Finance"}, updated.EnumMembers())
}

func (s *MetadataServiceSuite) TestUpdateEnumFieldCannotDropAllValues() {
	field, err := s.svc.CreateField(models.MetadataFieldCreateRequest{
		Name:       "status",
		FieldType:  models.FieldTypeEnum,
		EnumValues: []string{"draft", "final"},
	})
	s.Require().NoError(err)

	_, err = s.svc.UpdateField(field.ID, models.MetadataFieldUpdateRequest{
		EnumValues: []string{},
	})

	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)
	s.Equal("enum_values", verr.Violations[0].Field)
}

func (s *MetadataServiceSuite) TestDeleteFieldInUseIsRejected() {
	field, err := s.svc.CreateField(models.MetadataFieldCreateRequest{
		Name:      "author",
		FieldType: models.FieldTypeText,
	})
	s.Require().NoError(err)

	_, err = s.types.CreateType(models.DocumentTypeCreateRequest{
		Name:   "Report",
		Fields: []models.FieldAssociationRequest{{MetadataFieldID: field.ID, IsRequired: true}},
	})
	s.Require().NoError(err)

	err = s.svc.DeleteField(field.ID)

	var conflict models.ErrorConflict
	s.Require().ErrorAs(err, &conflict)
}

func (s *MetadataServiceSuite) TestDeleteUnusedField() {
	field, err := s.svc.CreateField(models.MetadataFieldCreateRequest{
		Name:      "notes",
		FieldType: models.FieldTypeText,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteField(field.ID))

	_, err = s.svc.GetField(field.ID)
	var nf models.ErrorNotFound
	s.ErrorAs(err, &nf)
}

// The validation path is pure given a loaded type, so it is exercised
// against a hand-built one.
func contractType() *models.DocumentType {
	department := &models.MetadataField{
		ID: 1, Name: "department",
		FieldType:  models.FieldTypeEnum,
		EnumValues: "Legal,Finance,Engineering",
	}
	year := &models.MetadataField{ID: 2, Name: "fiscal_year", FieldType: models.FieldTypeInteger}
	effective := &models.MetadataField{ID: 3, Name: "effective_date", FieldType: models.FieldTypeDate}
	confidential := &models.MetadataField{ID: 4, Name: "confidential", FieldType: models.FieldTypeBoolean}
	keywords := &models.MetadataField{ID: 5, Name: "keywords", FieldType: models.FieldTypeText, IsMultiValued: true}

	return &models.DocumentType{
		ID:   1,
		Name: "Contract",
		FieldAssociations: []models.DocumentTypeField{
			{MetadataFieldID: 1, MetadataField: department, IsRequired: true},
			{MetadataFieldID: 2, MetadataField: year},
			{MetadataFieldID: 3, MetadataField: effective},
			{MetadataFieldID: 4, MetadataField: confidential},
			{MetadataFieldID: 5, MetadataField: keywords},
		},
	}
}

func newValidatorService(t *testing.T) MetadataService {
	db := newTestDB(t)
	return NewMetadataService(repositories.NewMetadataFieldRepository(db), zap.NewNop())
}

func TestValidateDocumentMetadataAcceptsValidValues(t *testing.T) {
	svc := newValidatorService(t)

	snapshot, err := svc.ValidateDocumentMetadata(contractType(), map[string]interface{}{
		"department":     "Finance",
		"fiscal_year":    float64(2025),
		"effective_date": "2025-03-01",
		"confidential":   true,
		"keywords":       []interface{}{"tax", "audit"},
	})
	require.NoError(t, err)
	require.Len(t, snapshot, 5)

	byField := map[uint]string{}
	for _, mv := range snapshot {
		byField[mv.FieldID] = mv.Value
	}
	assert.Equal(t, "Finance", byField[1])
	assert.Equal(t, "2025", byField[2])
	assert.Equal(t, "2025-03-01", byField[3])
	assert.Equal(t, "true", byField[4])
	assert.Equal(t, "tax,audit", byField[5])
}

func TestValidateDocumentMetadataMissingRequired(t *testing.T) {
	svc := newValidatorService(t)

	_, err := svc.ValidateDocumentMetadata(contractType(), map[string]interface{}{
		"fiscal_year": float64(2025),
	})

	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "department", verr.Violations[0].Field)
	assert.Equal(t, "required field is missing", verr.Violations[0].Reason)
}

func TestValidateDocumentMetadataCollectsAllViolations(t *testing.T) {
	svc := newValidatorService(t)

	_, err := svc.ValidateDocumentMetadata(contractType(), map[string]interface{}{
		"department":     "Marketing",
		"fiscal_year":    "not-a-number",
		"effective_date": "01/03/2025",
		"shoe_size":      "44",
	})

	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)

	fields := map[string]bool{}
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	assert.True(t, fields["department"])
	assert.True(t, fields["fiscal_year"])
	assert.True(t, fields["effective_date"])
	assert.True(t, fields["shoe_size"])
}

func TestValidateDocumentMetadataTypeRules(t *testing.T) {
	svc := newValidatorService(t)

	cases := []struct {
		name   string
		values map[string]interface{}
		wantOK bool
	}{
		{"enum member", map[string]interface{}{"department": "Legal"}, true},
		{"enum outsider", map[string]interface{}{"department": "HR"}, false},
		{"integer as string", map[string]interface{}{"department": "Legal", "fiscal_year": "2024"}, true},
		{"integer garbage", map[string]interface{}{"department": "Legal", "fiscal_year": "20x4"}, false},
		{"rfc3339 date", map[string]interface{}{"department": "Legal", "effective_date": "2025-03-01T10:00:00Z"}, true},
		{"boolean string", map[string]interface{}{"department": "Legal", "confidential": "true"}, true},
		{"boolean garbage", map[string]interface{}{"department": "Legal", "confidential": "yep"}, false},
		{"list on single-valued field", map[string]interface{}{"department": []interface{}{"Legal", "Finance"}}, false},
		{"scalar on multi-valued field", map[string]interface{}{"department": "Legal", "keywords": "tax"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateDocumentMetadata(contractType(), tc.values)
			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				var verr models.ErrorValidation
				assert.ErrorAs(t, err, &verr)
			}
		})
	}
}

func TestValidateDocumentMetadataWithoutType(t *testing.T) {
	svc := newValidatorService(t)

	snapshot, err := svc.ValidateDocumentMetadata(nil, map[string]interface{}{})
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	_, err = svc.ValidateDocumentMetadata(nil, map[string]interface{}{"department": "Legal"})
	var verr models.ErrorValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "department", verr.Violations[0].Field)
}
