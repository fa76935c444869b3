package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"docuvault/models"
	"docuvault/repositories"
)

type DocumentTypeServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc DocumentTypeService

	authorID uint
	yearID   uint
}

func TestDocumentTypeServiceSuite(t *testing.T) {
	suite.Run(t, new(DocumentTypeServiceSuite))
}

func (s *DocumentTypeServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	log := zap.NewNop()

	fieldRepo := repositories.NewMetadataFieldRepository(s.db)
	typeRepo := repositories.NewDocumentTypeRepository(s.db)
	documentRepo := repositories.NewDocumentRepository(s.db)

	metadata := NewMetadataService(fieldRepo, log)
	s.svc = NewDocumentTypeService(typeRepo, fieldRepo, documentRepo, log)

	author, err := metadata.CreateField(models.MetadataFieldCreateRequest{
		Name:      "author",
		FieldType: models.FieldTypeText,
	})
	s.Require().NoError(err)
	s.authorID = author.ID

	year, err := metadata.CreateField(models.MetadataFieldCreateRequest{
		Name:      "fiscal_year",
		FieldType: models.FieldTypeInteger,
	})
	s.Require().NoError(err)
	s.yearID = year.ID
}

func (s *DocumentTypeServiceSuite) TestCreateTypeWithAssociations() {
	docType, err := s.svc.CreateType(models.DocumentTypeCreateRequest{
		Name:        "Report",
		Description: "Periodic reports",
		Fields: []models.FieldAssociationRequest{
			{MetadataFieldID: s.authorID, IsRequired: true},
			{MetadataFieldID: s.yearID},
		},
	})
	s.Require().NoError(err)

	s.Require().Len(docType.FieldAssociations, 2)
	s.Equal("author", docType.FieldAssociations[0].MetadataField.Name)
	s.True(docType.FieldAssociations[0].IsRequired)
	s.Equal("fiscal_year", docType.FieldAssociations[1].MetadataField.Name)
	s.False(docType.FieldAssociations[1].IsRequired)
}

func (s *DocumentTypeServiceSuite) TestCreateTypeRejectsUnknownField() {
	_, err := s.svc.CreateType(models.DocumentTypeCreateRequest{
		Name: "Report",
		Fields: []models.FieldAssociationRequest{
			{MetadataFieldID: s.authorID},
			{MetadataFieldID: 9999},
		},
	})

	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Violations[0].Reason, "9999")
}

func (s *DocumentTypeServiceSuite) TestCreateTypeRejectsDuplicateName() {
	_, err := s.svc.CreateType(models.DocumentTypeCreateRequest{Name: "Report"})
	s.Require().NoError(err)

	_, err = s.svc.CreateType(models.DocumentTypeCreateRequest{Name: "Report"})

	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)
}

func (s *DocumentTypeServiceSuite) TestUpdateFieldAssociationsReplacesSet() {
	docType, err := s.svc.CreateType(models.DocumentTypeCreateRequest{
		Name:   "Report",
		Fields: []models.FieldAssociationRequest{{MetadataFieldID: s.authorID, IsRequired: true}},
	})
	s.Require().NoError(err)

	updated, err := s.svc.UpdateFieldAssociations(docType.ID, models.FieldAssociationUpdateRequest{
		Fields: []models.FieldAssociationRequest{{MetadataFieldID: s.yearID, IsRequired: true}},
	})
	s.Require().NoError(err)

	s.Require().Len(updated.FieldAssociations, 1)
	s.Equal(s.yearID, updated.FieldAssociations[0].MetadataFieldID)
}

func (s *DocumentTypeServiceSuite) TestUpdateFieldAssociationsUnknownFieldKeepsOldSet() {
	docType, err := s.svc.CreateType(models.DocumentTypeCreateRequest{
		Name:   "Report",
		Fields: []models.FieldAssociationRequest{{MetadataFieldID: s.authorID}},
	})
	s.Require().NoError(err)

	_, err = s.svc.UpdateFieldAssociations(docType.ID, models.FieldAssociationUpdateRequest{
		Fields: []models.FieldAssociationRequest{{MetadataFieldID: 9999}},
	})
	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)

	current, err := s.svc.GetType(docType.ID)
	s.Require().NoError(err)
	s.Require().Len(current.FieldAssociations, 1)
	s.Equal(s.authorID, current.FieldAssociations[0].MetadataFieldID)
}

func (s *DocumentTypeServiceSuite) TestDeleteTypeInUseIsRejected() {
	docType, err := s.svc.CreateType(models.DocumentTypeCreateRequest{Name: "Report"})
	s.Require().NoError(err)

	doc := &models.Document{Title: "Q3 report", DocumentTypeID: &docType.ID}
	s.Require().NoError(s.db.Create(doc).Error)

	err = s.svc.DeleteType(docType.ID)

	var conflict models.ErrorConflict
	s.Require().ErrorAs(err, &conflict)
}

func (s *DocumentTypeServiceSuite) TestDeleteUnusedType() {
	docType, err := s.svc.CreateType(models.DocumentTypeCreateRequest{
		Name:   "Report",
		Fields: []models.FieldAssociationRequest{{MetadataFieldID: s.authorID}},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteType(docType.ID))

	_, err = s.svc.GetType(docType.ID)
	var nf models.ErrorNotFound
	s.Require().ErrorAs(err, &nf)

	// the field itself survives the association cleanup
	var fields int64
	s.Require().NoError(s.db.Model(&models.MetadataField{}).Count(&fields).Error)
	s.Equal(int64(2), fields)
}
