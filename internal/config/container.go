package config

import (
	"studium-server/internal/domain"
	"studium-server/internal/repository"
	"studium-server/internal/service"
	"studium-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	DocumentStore     domain.DocumentStore
	StudyPlanStore    domain.StudyPlanStore
	DocumentService   *service.DocumentService
	Extractor         domain.TextExtractor
	ProcessingQueue   *service.ProcessingQueue
	GenerationService domain.GenerationService
	StudyPlanService  domain.StudyPlanService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	documentStore := repository.NewInMemoryDocumentStore()
	studyPlanStore := repository.NewInMemoryStudyPlanStore()

	documentService := service.NewDocumentService(documentStore, config, appLogger)
	ocr := service.NewTesseractOCR(config.GetOCRLanguages(), appLogger)
	extractor := service.NewExtractor(ocr, appLogger)
	queue := service.NewProcessingQueue(documentStore, documentService, extractor, config, appLogger)

	generation, err := service.NewGenerationService(config, appLogger)
	if err != nil {
		return nil, err
	}
	runner, _ := generation.(domain.PromptRunner)
	studyPlans, err := service.NewStudyPlanGenerator(runner, config, appLogger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:            config,
		Logger:            appLogger,
		DocumentStore:     documentStore,
		StudyPlanStore:    studyPlanStore,
		DocumentService:   documentService,
		Extractor:         extractor,
		ProcessingQueue:   queue,
		GenerationService: generation,
		StudyPlanService:  studyPlans,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
