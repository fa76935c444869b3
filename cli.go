package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docuvault/models"
	"docuvault/seed"
)

func documentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Manage documents from the command line",
	}
	cmd.AddCommand(documentUploadCmd(), documentListCmd(), documentDeleteCmd())
	return cmd
}

func documentUploadCmd() *cobra.Command {
	var title string
	var typeID uint
	var metadataJSON string

	cmd := &cobra.Command{
		Use:   "upload <filepath>",
		Short: "Upload a new document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			input := models.CommitVersionInput{
				Title:     title,
				FileBytes: data,
				FileName:  filepath.Base(args[0]),
			}
			if input.Title == "" {
				input.Title = input.FileName
			}
			if typeID > 0 {
				input.DocumentTypeID = &typeID
			}
			if metadataJSON != "" {
				var values map[string]interface{}
				if err := json.Unmarshal([]byte(metadataJSON), &values); err != nil {
					return fmt.Errorf("parse metadata: %w", err)
				}
				input.MetadataValues = values
			}

			doc, err := a.documentService.CommitVersion(context.Background(), input)
			if err != nil {
				return err
			}
			fmt.Printf("Document uploaded successfully. ID: %d\n", doc.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "document title (defaults to the file name)")
	cmd.Flags().UintVar(&typeID, "type-id", 0, "document type ID")
	cmd.Flags().StringVarP(&metadataJSON, "metadata", "m", "", "metadata values as a JSON object")
	return cmd
}

func documentListCmd() *cobra.Command {
	var params models.DocumentListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			docs, total, err := a.documentService.ListDocuments(params)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				typeName := "-"
				if doc.DocumentType != nil {
					typeName = doc.DocumentType.Name
				}
				fmt.Printf("%d\t%s\t%s\t%s\n", doc.ID, doc.Title, typeName, doc.CreatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Printf("%d document(s) total\n", total)
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 20, "documents per page")
	cmd.Flags().StringVar(&params.Search, "search", "", "filter by title substring")
	cmd.Flags().UintVar(&params.DocumentTypeID, "type-id", 0, "filter by document type ID")
	return cmd
}

func documentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document with all of its versions and files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id uint
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return fmt.Errorf("invalid document ID %q", args[0])
			}

			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			if err := a.documentService.DeleteDocument(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Document %d deleted\n", id)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var documents int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with realistic sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			return seed.Run(context.Background(), seed.Deps{
				Metadata:   a.metadataService,
				Types:      a.typeService,
				Categories: a.categoryService,
				Documents:  a.documentService,
				Logger:     a.log,
			}, documents)
		},
	}

	cmd.Flags().IntVar(&documents, "documents", 25, "number of documents to create")
	return cmd
}
