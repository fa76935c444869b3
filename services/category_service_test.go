package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"docuvault/models"
	"docuvault/repositories"
)

type CategoryServiceSuite struct {
	suite.Suite
	db    *gorm.DB
	svc   CategoryService
	types DocumentTypeService
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceSuite))
}

func (s *CategoryServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	log := zap.NewNop()

	categoryRepo := repositories.NewCategoryRepository(s.db)
	typeRepo := repositories.NewDocumentTypeRepository(s.db)
	fieldRepo := repositories.NewMetadataFieldRepository(s.db)
	documentRepo := repositories.NewDocumentRepository(s.db)

	s.svc = NewCategoryService(categoryRepo, typeRepo, log)
	s.types = NewDocumentTypeService(typeRepo, fieldRepo, documentRepo, log)
}

func (s *CategoryServiceSuite) TestCreateCategoryWithParent() {
	root, err := s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Corporate"})
	s.Require().NoError(err)

	child, err := s.svc.CreateCategory(models.CategoryCreateRequest{
		Name:     "Compliance",
		ParentID: &root.ID,
	})
	s.Require().NoError(err)

	parent, err := s.svc.GetCategory(root.ID)
	s.Require().NoError(err)
	s.Require().Len(parent.Children, 1)
	s.Equal(child.ID, parent.Children[0].ID)
}

func (s *CategoryServiceSuite) TestCreateCategoryRejectsDuplicateName() {
	_, err := s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Corporate"})
	s.Require().NoError(err)

	_, err = s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Corporate"})

	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)
}

func (s *CategoryServiceSuite) TestCreateCategoryUnknownParent() {
	parentID := uint(4242)
	_, err := s.svc.CreateCategory(models.CategoryCreateRequest{
		Name:     "Orphan",
		ParentID: &parentID,
	})

	var nf models.ErrorNotFound
	s.Require().ErrorAs(err, &nf)
}

func (s *CategoryServiceSuite) TestAddChildRejectsSelf() {
	root, err := s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Corporate"})
	s.Require().NoError(err)

	err = s.svc.AddChild(root.ID, root.ID)

	var verr models.ErrorValidation
	s.Require().ErrorAs(err, &verr)
}

func (s *CategoryServiceSuite) TestDeleteCategoryWithChildrenIsRejected() {
	root, err := s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Corporate"})
	s.Require().NoError(err)
	_, err = s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Compliance", ParentID: &root.ID})
	s.Require().NoError(err)

	err = s.svc.DeleteCategory(root.ID)

	var conflict models.ErrorConflict
	s.Require().ErrorAs(err, &conflict)
}

func (s *CategoryServiceSuite) TestDeleteCategoryAttachedToTypeIsRejected() {
	category, err := s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Procurement"})
	s.Require().NoError(err)
	docType, err := s.types.CreateType(models.DocumentTypeCreateRequest{Name: "Contract"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.AttachToType(category.ID, docType.ID))

	err = s.svc.DeleteCategory(category.ID)

	var conflict models.ErrorConflict
	s.Require().ErrorAs(err, &conflict)
}

func (s *CategoryServiceSuite) TestDeleteLeafCategory() {
	root, err := s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Corporate"})
	s.Require().NoError(err)
	leaf, err := s.svc.CreateCategory(models.CategoryCreateRequest{Name: "Compliance", ParentID: &root.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteCategory(leaf.ID))

	_, err = s.svc.GetCategory(leaf.ID)
	var nf models.ErrorNotFound
	s.Require().ErrorAs(err, &nf)
}
