package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"docuvault/config"
	"docuvault/handlers"
	"docuvault/helper"
	"docuvault/logger"
	"docuvault/metrics"
	"docuvault/repositories"
	"docuvault/services"
	"docuvault/storage"
)

// app bundles the wired-up layers shared by the serve, seed and document commands.
type app struct {
	cfg     config.Config
	db      *gorm.DB
	log     *zap.Logger
	metrics *metrics.Metrics
	store   storage.Store

	metadataService services.MetadataService
	typeService     services.DocumentTypeService
	categoryService services.CategoryService
	documentService services.DocumentService

	documentHandler *handlers.DocumentHandler
	fieldHandler    *handlers.MetadataFieldHandler
	typeHandler     *handlers.DocumentTypeHandler
	categoryHandler *handlers.CategoryHandler
}

func buildApp() (*app, error) {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	db := config.InitDB(cfg)

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New("docuvault")

	// Repositories
	documentRepo := repositories.NewDocumentRepository(db)
	fieldRepo := repositories.NewMetadataFieldRepository(db)
	typeRepo := repositories.NewDocumentTypeRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	// Services
	metadataService := services.NewMetadataService(fieldRepo, zapLogger)
	typeService := services.NewDocumentTypeService(typeRepo, fieldRepo, documentRepo, zapLogger)
	categoryService := services.NewCategoryService(categoryRepo, typeRepo, zapLogger)
	documentService := services.NewDocumentService(db, documentRepo, typeRepo, metadataService, store, zapLogger, m)

	// Handlers
	h := &helper.HTTPHelper{}
	return &app{
		cfg:     cfg,
		db:      db,
		log:     zapLogger,
		metrics: m,
		store:   store,

		metadataService: metadataService,
		typeService:     typeService,
		categoryService: categoryService,
		documentService: documentService,

		documentHandler: handlers.NewDocumentHandler(documentService, h),
		fieldHandler:    handlers.NewMetadataFieldHandler(metadataService, h),
		typeHandler:     handlers.NewDocumentTypeHandler(typeService, h),
		categoryHandler: handlers.NewCategoryHandler(categoryService, h),
	}, nil
}

func newStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
	default:
		return storage.NewLocal(cfg.StoragePath)
	}
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	root := &cobra.Command{
		Use:   "docuvault",
		Short: "Document management service",
	}
	root.AddCommand(serveCmd(), seedCmd(), documentCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
