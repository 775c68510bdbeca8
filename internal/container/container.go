package container

import (
	"fmt"
	"net/http"

	"go-alpha-extractor/internal/config"
	"go-alpha-extractor/internal/extractor"
	"go-alpha-extractor/internal/factory"
	"go-alpha-extractor/internal/logger"
	"go-alpha-extractor/internal/observer"
	"go-alpha-extractor/internal/repository"
	"go-alpha-extractor/internal/service"
	"go-alpha-extractor/internal/storage"
	"go-alpha-extractor/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config            *config.Config
	imageFetcher      storage.ImageFetcher
	alphaExtractor    extractor.Extractor
	pairRepository    repository.PairRepository
	extractionService service.ExtractionService
	publisher         observer.Subject
	handler           http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	factories := factory.NewComponentFactory()

	imageFetcher, err := factories.StorageFactory.CreateStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	alphaExtractor, err := factories.ExtractorFactory.CreateExtractor()
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(observer.NewMetricsObserver())

	// Blob-backed storage can also persist results; other backends cannot
	resultStore, _ := imageFetcher.(storage.BlobStorage)

	pairRepository := repository.NewPairRepository(imageFetcher)
	extractionService := service.NewExtractionService(pairRepository, alphaExtractor, publisher, resultStore)
	handler := transport.NewHandler(extractionService, cfg)

	return &Container{
		config:            cfg,
		imageFetcher:      imageFetcher,
		alphaExtractor:    alphaExtractor,
		pairRepository:    pairRepository,
		extractionService: extractionService,
		publisher:         publisher,
		handler:           handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases container-held resources
func (c *Container) Close() error {
	return c.alphaExtractor.Close()
}
