package services

import (
	"context"
	"errors"

	"docuvault/metrics"
	"docuvault/models"
	"docuvault/repositories"
	"docuvault/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxCommitRetries bounds how often a commit is replayed after losing a
// version-number race to a concurrent commit on the same document.
const maxCommitRetries = 3

type DocumentService interface {
	// CommitVersion is the single entry point for creating a document,
	// adding a version with a file, or editing title/type/metadata only.
	CommitVersion(ctx context.Context, input models.CommitVersionInput) (*models.Document, error)
	UpdateDocument(ctx context.Context, id uint, req models.DocumentUpdateRequest) (*models.Document, error)
	GetDocument(id uint) (*models.Document, error)
	ListDocuments(params models.DocumentListParams) ([]models.Document, int64, error)
	GetVersions(documentID uint) ([]models.DocumentVersion, error)
	DownloadVersion(ctx context.Context, documentID uint, versionID *uint) (*models.DocumentVersion, []byte, error)
	DeleteDocument(ctx context.Context, id uint) error
}

type documentService struct {
	db           *gorm.DB
	documentRepo repositories.DocumentRepository
	typeRepo     repositories.DocumentTypeRepository
	metadata     MetadataService
	store        storage.Store
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

func NewDocumentService(
	db *gorm.DB,
	documentRepo repositories.DocumentRepository,
	typeRepo repositories.DocumentTypeRepository,
	metadata MetadataService,
	store storage.Store,
	logger *zap.Logger,
	m *metrics.Metrics,
) DocumentService {
	return &documentService{
		db:           db,
		documentRepo: documentRepo,
		typeRepo:     typeRepo,
		metadata:     metadata,
		store:        store,
		logger:       logger.With(zap.String("service", "document")),
		metrics:      m,
	}
}

func (s *documentService) CommitVersion(ctx context.Context, in models.CommitVersionInput) (*models.Document, error) {
	createPath := in.DocumentID == nil

	var existing *models.Document
	if !createPath {
		doc, err := s.documentRepo.GetByID(*in.DocumentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Entity: "document", ID: *in.DocumentID}
		}
		if err != nil {
			return nil, err
		}
		existing = doc
	}

	docType, typeID, err := s.resolveType(in.DocumentTypeID, existing)
	if err != nil {
		return nil, err
	}

	snapshot, stamp, err := s.buildSnapshot(in, createPath, existing, docType)
	if err != nil {
		return nil, err
	}

	// The file is written before the database transaction; if the
	// transaction fails the orphaned file is removed below.
	var key string
	if in.FileBytes != nil {
		key, err = s.store.Put(ctx, in.FileBytes, in.FileName)
		if err != nil {
			return nil, err
		}
		s.metrics.StorageBytesWritten.Add(float64(len(in.FileBytes)))
	}

	var docID uint
	var versionNumber int
	commit := func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			repo := s.documentRepo.WithTx(tx)

			var doc *models.Document
			if createPath {
				doc = &models.Document{Title: in.Title, DocumentTypeID: typeID}
				if err := repo.Create(doc); err != nil {
					return err
				}
			} else {
				doc = existing
				if in.Title != "" {
					doc.Title = in.Title
				}
				doc.DocumentTypeID = typeID
				if err := repo.Update(doc); err != nil {
					return err
				}
			}

			var version *models.DocumentVersion
			if createPath || in.FileBytes != nil {
				max, err := repo.MaxVersionNumber(doc.ID)
				if err != nil {
					return err
				}
				version = &models.DocumentVersion{
					DocumentID:    doc.ID,
					VersionNumber: max + 1,
					StorageKey:    key,
					FileName:      in.FileName,
					FileSize:      int64(len(in.FileBytes)),
				}
				if err := repo.CreateVersion(version); err != nil {
					return err
				}
			} else {
				latest, err := repo.GetLatestVersion(doc.ID)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewValidationError("document", "document has no version to attach metadata to")
				}
				if err != nil {
					return err
				}
				version = latest
			}

			if stamp {
				values := make([]models.MetadataValue, len(snapshot))
				for i, mv := range snapshot {
					values[i] = models.MetadataValue{
						VersionID:  version.ID,
						DocumentID: doc.ID,
						FieldID:    mv.FieldID,
						Value:      mv.Value,
					}
				}
				if err := repo.ReplaceMetadataValues(version.ID, values); err != nil {
					return err
				}
			}

			docID = doc.ID
			versionNumber = version.VersionNumber
			return nil
		})
	}

	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		err = commit()
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		// a concurrent commit claimed the version number; recompute and retry
	}
	if err != nil {
		if key != "" {
			if derr := s.store.Delete(ctx, key); derr != nil {
				s.logger.Warn("compensating storage delete failed, file orphaned",
					zap.String("storage_key", key), zap.Error(derr))
			}
		}
		return nil, err
	}

	if createPath {
		s.metrics.DocumentsCreated.Inc()
	}
	if createPath || in.FileBytes != nil {
		s.metrics.VersionsCreated.Inc()
	}
	s.logger.Info("version committed",
		zap.Uint("document_id", docID),
		zap.Int("version_number", versionNumber),
		zap.Bool("has_file", in.FileBytes != nil))

	return s.documentRepo.GetByID(docID)
}

func (s *documentService) UpdateDocument(ctx context.Context, id uint, req models.DocumentUpdateRequest) (*models.Document, error) {
	in := models.CommitVersionInput{
		DocumentID:     &id,
		DocumentTypeID: req.DocumentTypeID,
		MetadataValues: req.MetadataValues,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	return s.CommitVersion(ctx, in)
}

func (s *documentService) GetDocument(id uint) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Entity: "document", ID: id}
	}
	return doc, err
}

func (s *documentService) ListDocuments(params models.DocumentListParams) ([]models.Document, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	return s.documentRepo.GetList(params)
}

func (s *documentService) GetVersions(documentID uint) ([]models.DocumentVersion, error) {
	if _, err := s.GetDocument(documentID); err != nil {
		return nil, err
	}
	return s.documentRepo.GetVersions(documentID)
}

// DownloadVersion returns the stored bytes of the given version, defaulting
// to the latest one.
func (s *documentService) DownloadVersion(ctx context.Context, documentID uint, versionID *uint) (*models.DocumentVersion, []byte, error) {
	if _, err := s.GetDocument(documentID); err != nil {
		return nil, nil, err
	}

	var version *models.DocumentVersion
	var err error
	if versionID != nil {
		version, err = s.documentRepo.GetVersion(documentID, *versionID)
	} else {
		version, err = s.documentRepo.GetLatestVersion(documentID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, models.ErrorNotFound{Entity: "version", ID: documentID}
	}
	if err != nil {
		return nil, nil, err
	}
	if !version.HasFile() {
		return nil, nil, models.ErrorNotFound{Entity: "file", ID: version.ID}
	}

	data, err := s.store.Get(ctx, version.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return version, data, nil
}

// DeleteDocument removes stored files best-effort, then the database rows
// in one transaction. Storage failures are aggregated per version so the
// caller can retry just the failed keys.
func (s *documentService) DeleteDocument(ctx context.Context, id uint) error {
	if _, err := s.GetDocument(id); err != nil {
		return err
	}
	versions, err := s.documentRepo.GetVersions(id)
	if err != nil {
		return err
	}

	var failures []models.StorageFailure
	for _, v := range versions {
		if !v.HasFile() {
			continue
		}
		if err := s.store.Delete(ctx, v.StorageKey); err != nil {
			failures = append(failures, models.StorageFailure{
				VersionID:  v.ID,
				StorageKey: v.StorageKey,
				Reason:     err.Error(),
			})
		}
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.documentRepo.WithTx(tx).DeleteCascade(id)
	}); err != nil {
		return err
	}

	s.metrics.DocumentsDeleted.Inc()
	s.logger.Info("document deleted",
		zap.Uint("document_id", id),
		zap.Int("versions", len(versions)),
		zap.Int("storage_failures", len(failures)))

	if len(failures) > 0 {
		return models.ErrorStorage{Op: "delete", Failures: failures}
	}
	return nil
}

// resolveType picks the effective document type: the requested one if set,
// otherwise the document's current one.
func (s *documentService) resolveType(requested *uint, existing *models.Document) (*models.DocumentType, *uint, error) {
	typeID := requested
	if typeID == nil && existing != nil {
		typeID = existing.DocumentTypeID
	}
	if typeID == nil {
		return nil, nil, nil
	}

	docType, err := s.typeRepo.GetByID(*typeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, models.ErrorNotFound{Entity: "document type", ID: *typeID}
	}
	if err != nil {
		return nil, nil, err
	}
	return docType, typeID, nil
}

// buildSnapshot validates the supplied metadata, or carries the latest
// version's snapshot forward when a new file arrives without fresh values.
// The second return value reports whether the snapshot should be stamped.
func (s *documentService) buildSnapshot(
	in models.CommitVersionInput,
	createPath bool,
	existing *models.Document,
	docType *models.DocumentType,
) ([]models.MetadataValue, bool, error) {
	values := in.MetadataValues
	if values == nil && createPath {
		values = map[string]interface{}{}
	}

	if values != nil {
		snapshot, err := s.metadata.ValidateDocumentMetadata(docType, values)
		if err != nil {
			return nil, false, err
		}
		return snapshot, true, nil
	}

	if in.FileBytes != nil && existing != nil {
		latest, err := s.documentRepo.GetLatestVersion(existing.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		snapshot := make([]models.MetadataValue, 0, len(latest.MetadataValues))
		for _, mv := range latest.MetadataValues {
			snapshot = append(snapshot, models.MetadataValue{FieldID: mv.FieldID, Value: mv.Value})
		}
		return snapshot, true, nil
	}

	return nil, false, nil
}
