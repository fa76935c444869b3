package services

import (
	"errors"
	"fmt"

	"docuvault/models"
	"docuvault/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DocumentTypeService interface {
	CreateType(req models.DocumentTypeCreateRequest) (*models.DocumentType, error)
	GetType(id uint) (*models.DocumentType, error)
	ListTypes() ([]models.DocumentType, error)
	UpdateFieldAssociations(typeID uint, req models.FieldAssociationUpdateRequest) (*models.DocumentType, error)
	DeleteType(id uint) error
}

type documentTypeService struct {
	typeRepo     repositories.DocumentTypeRepository
	fieldRepo    repositories.MetadataFieldRepository
	documentRepo repositories.DocumentRepository
	logger       *zap.Logger
}

func NewDocumentTypeService(
	typeRepo repositories.DocumentTypeRepository,
	fieldRepo repositories.MetadataFieldRepository,
	documentRepo repositories.DocumentRepository,
	logger *zap.Logger,
) DocumentTypeService {
	return &documentTypeService{
		typeRepo:     typeRepo,
		fieldRepo:    fieldRepo,
		documentRepo: documentRepo,
		logger:       logger.With(zap.String("service", "document_type")),
	}
}

func (s *documentTypeService) CreateType(req models.DocumentTypeCreateRequest) (*models.DocumentType, error) {
	if _, err := s.typeRepo.GetByName(req.Name); err == nil {
		return nil, models.NewValidationError("name", fmt.Sprintf("document type %q already exists", req.Name))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	associations, err := s.buildAssociations(req.Fields)
	if err != nil {
		return nil, err
	}

	docType := &models.DocumentType{
		Name:              req.Name,
		Description:       req.Description,
		FieldAssociations: associations,
	}
	if err := s.typeRepo.Create(docType); err != nil {
		return nil, err
	}

	s.logger.Info("document type created",
		zap.Uint("type_id", docType.ID),
		zap.String("name", docType.Name),
		zap.Int("fields", len(associations)))
	return s.GetType(docType.ID)
}

func (s *documentTypeService) GetType(id uint) (*models.DocumentType, error) {
	docType, err := s.typeRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Entity: "document type", ID: id}
	}
	return docType, err
}

func (s *documentTypeService) ListTypes() ([]models.DocumentType, error) {
	return s.typeRepo.GetAll()
}

// UpdateFieldAssociations replaces the full association set atomically.
// Existing documents of the type are not revalidated.
func (s *documentTypeService) UpdateFieldAssociations(typeID uint, req models.FieldAssociationUpdateRequest) (*models.DocumentType, error) {
	if _, err := s.GetType(typeID); err != nil {
		return nil, err
	}

	associations, err := s.buildAssociations(req.Fields)
	if err != nil {
		return nil, err
	}
	for i := range associations {
		associations[i].DocumentTypeID = typeID
	}

	if err := s.typeRepo.ReplaceFieldAssociations(typeID, associations); err != nil {
		return nil, err
	}
	return s.GetType(typeID)
}

// DeleteType rejects deletion while documents still reference the type.
func (s *documentTypeService) DeleteType(id uint) error {
	if _, err := s.GetType(id); err != nil {
		return err
	}

	count, err := s.documentRepo.CountByType(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrorConflict{
			Message: fmt.Sprintf("document type %d is referenced by %d document(s)", id, count),
		}
	}

	return s.typeRepo.Delete(id)
}

// buildAssociations resolves the requested field ids, failing with a
// ValidationError naming every id that does not exist.
func (s *documentTypeService) buildAssociations(requests []models.FieldAssociationRequest) ([]models.DocumentTypeField, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.MetadataFieldID)
	}
	fields, err := s.fieldRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(fields))
	for _, f := range fields {
		known[f.ID] = true
	}

	var violations []models.FieldViolation
	associations := make([]models.DocumentTypeField, 0, len(requests))
	for i, req := range requests {
		if !known[req.MetadataFieldID] {
			violations = append(violations, models.FieldViolation{
				Field:  "fields",
				Reason: fmt.Sprintf("metadata field %d does not exist", req.MetadataFieldID),
			})
			continue
		}
		associations = append(associations, models.DocumentTypeField{
			MetadataFieldID: req.MetadataFieldID,
			IsRequired:      req.IsRequired,
			Position:        i,
		})
	}
	if len(violations) > 0 {
		return nil, models.ErrorValidation{Violations: violations}
	}
	return associations, nil
}
