// Package seed populates the database with realistic sample data for
// local development and demos.
package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"docuvault/models"
	"docuvault/services"
)

type Deps struct {
	Metadata   services.MetadataService
	Types      services.DocumentTypeService
	Categories services.CategoryService
	Documents  services.DocumentService
	Logger     *zap.Logger
}

var departments = []string{"Legal", "Finance", "Engineering", "Operations"}

func Run(ctx context.Context, deps Deps, documents int) error {
	log := deps.Logger.With(zap.String("component", "seeder"))

	fields, err := createFields(deps)
	if err != nil {
		return err
	}
	types, err := createTypes(deps, fields)
	if err != nil {
		return err
	}
	if err := createCategories(deps, types); err != nil {
		return err
	}

	for i := 0; i < documents; i++ {
		docType := types[i%len(types)]
		input := models.CommitVersionInput{
			Title:          gofakeit.Sentence(3),
			DocumentTypeID: &docType.ID,
			MetadataValues: metadataFor(docType),
			FileBytes:      []byte(gofakeit.Paragraph(3, 4, 10, "\n")),
			FileName:       gofakeit.Word() + ".txt",
		}
		doc, err := deps.Documents.CommitVersion(ctx, input)
		if err != nil {
			return fmt.Errorf("seed document %d: %w", i, err)
		}

		// Give roughly a third of the documents a second version.
		if i%3 == 0 {
			_, err = deps.Documents.CommitVersion(ctx, models.CommitVersionInput{
				DocumentID: &doc.ID,
				FileBytes:  []byte(gofakeit.Paragraph(3, 4, 10, "\n")),
				FileName:   gofakeit.Word() + ".txt",
			})
			if err != nil {
				return fmt.Errorf("seed document %d version 2: %w", i, err)
			}
		}
	}

	log.Info("seeding complete", zap.Int("documents", documents))
	return nil
}

func createFields(deps Deps) (map[string]*models.MetadataField, error) {
	requests := []models.MetadataFieldCreateRequest{
		{Name: "department", DisplayName: "Department", FieldType: models.FieldTypeEnum, EnumValues: departments},
		{Name: "author", DisplayName: "Author", FieldType: models.FieldTypeText},
		{Name: "fiscal_year", DisplayName: "Fiscal Year", FieldType: models.FieldTypeInteger},
		{Name: "effective_date", DisplayName: "Effective Date", FieldType: models.FieldTypeDate},
		{Name: "confidential", DisplayName: "Confidential", FieldType: models.FieldTypeBoolean},
		{Name: "keywords", DisplayName: "Keywords", FieldType: models.FieldTypeText, IsMultiValued: true},
	}

	fields := make(map[string]*models.MetadataField, len(requests))
	for _, req := range requests {
		field, err := deps.Metadata.CreateField(req)
		if err != nil {
			return nil, fmt.Errorf("seed field %s: %w", req.Name, err)
		}
		fields[field.Name] = field
	}
	return fields, nil
}

func createTypes(deps Deps, fields map[string]*models.MetadataField) ([]*models.DocumentType, error) {
	requests := []models.DocumentTypeCreateRequest{
		{
			Name:        "Contract",
			Description: "Signed agreements and amendments",
			Fields: []models.FieldAssociationRequest{
				{MetadataFieldID: fields["department"].ID, IsRequired: true},
				{MetadataFieldID: fields["effective_date"].ID, IsRequired: true},
				{MetadataFieldID: fields["confidential"].ID},
			},
		},
		{
			Name:        "Report",
			Description: "Periodic internal reports",
			Fields: []models.FieldAssociationRequest{
				{MetadataFieldID: fields["author"].ID, IsRequired: true},
				{MetadataFieldID: fields["fiscal_year"].ID, IsRequired: true},
				{MetadataFieldID: fields["keywords"].ID},
			},
		},
		{
			Name:        "Memo",
			Description: "Informal notes",
			Fields: []models.FieldAssociationRequest{
				{MetadataFieldID: fields["author"].ID},
				{MetadataFieldID: fields["keywords"].ID},
			},
		},
	}

	types := make([]*models.DocumentType, 0, len(requests))
	for _, req := range requests {
		docType, err := deps.Types.CreateType(req)
		if err != nil {
			return nil, fmt.Errorf("seed type %s: %w", req.Name, err)
		}
		types = append(types, docType)
	}
	return types, nil
}

func createCategories(deps Deps, types []*models.DocumentType) error {
	root, err := deps.Categories.CreateCategory(models.CategoryCreateRequest{
		Name:        "Corporate",
		Description: "Company-wide documents",
	})
	if err != nil {
		return err
	}

	for _, name := range []string{"Procurement", "Compliance"} {
		child, err := deps.Categories.CreateCategory(models.CategoryCreateRequest{
			Name:     name,
			ParentID: &root.ID,
		})
		if err != nil {
			return err
		}
		if err := deps.Categories.AttachToType(child.ID, types[0].ID); err != nil {
			return err
		}
	}
	return nil
}

func metadataFor(docType *models.DocumentType) map[string]interface{} {
	switch docType.Name {
	case "Contract":
		return map[string]interface{}{
			"department":     departments[gofakeit.Number(0, len(departments)-1)],
			"effective_date": gofakeit.Date().Format("2006-01-02"),
			"confidential":   gofakeit.Bool(),
		}
	case "Report":
		return map[string]interface{}{
			"author":      gofakeit.Name(),
			"fiscal_year": gofakeit.Number(2018, 2026),
			"keywords":    []interface{}{gofakeit.Word(), gofakeit.Word()},
		}
	default:
		return map[string]interface{}{
			"author": gofakeit.Name(),
		}
	}
}
