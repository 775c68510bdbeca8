package factory

import (
	"fmt"

	"go-alpha-extractor/internal/config"
	"go-alpha-extractor/internal/extractor"
	"go-alpha-extractor/internal/storage"
)

// StorageFactory creates image fetcher implementations
type StorageFactory interface {
	CreateStorage(cfg *config.Config) (storage.ImageFetcher, error)
}

// ExtractorFactory creates alpha extractors
type ExtractorFactory interface {
	CreateExtractor() (extractor.Extractor, error)
}

// storageFactory implements StorageFactory
type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateStorage creates the fetcher selected by the configuration
func (f *storageFactory) CreateStorage(cfg *config.Config) (storage.ImageFetcher, error) {
	switch cfg.Storage {
	case config.StorageHTTP:
		return storage.NewHTTPImageFetcher(), nil
	case config.StorageAzure:
		return storage.NewAzureStorage(cfg.AzureAccountName, cfg.AzureAccountKey)
	case config.StorageLocal:
		return storage.NewLocalImageFetcher(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage)
	}
}

// extractorFactory implements ExtractorFactory
type extractorFactory struct{}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory() ExtractorFactory {
	return &extractorFactory{}
}

// CreateExtractor creates the two-pass alpha extractor
func (f *extractorFactory) CreateExtractor() (extractor.Extractor, error) {
	return extractor.NewExtractor()
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	StorageFactory   StorageFactory
	ExtractorFactory ExtractorFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		StorageFactory:   NewStorageFactory(),
		ExtractorFactory: NewExtractorFactory(),
	}
}
