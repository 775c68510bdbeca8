package strategy

import (
	"go-alpha-extractor/internal/extractor"
	"go-alpha-extractor/internal/raster"
)

// ExtractionStrategy abstracts how transparency is recovered from source
// imagery. The two-pass strategy is the only built-in; a single-image
// AI-segmentation fallback lives outside this module and can be plugged in
// by callers that carry such a collaborator, the core takes no dependency on
// one.
type ExtractionStrategy interface {
	Extract(pair *raster.ImagePair, options extractor.ExtractionOptions) (*extractor.ExtractionResult, error)
	GetStrategyName() string
}

// TwoPassStrategy recovers alpha by comparing white-backdrop and
// black-backdrop renderings
type TwoPassStrategy struct {
	extractor extractor.Extractor
}

// NewTwoPassStrategy creates the two-pass recovery strategy
func NewTwoPassStrategy(alphaExtractor extractor.Extractor) ExtractionStrategy {
	return &TwoPassStrategy{extractor: alphaExtractor}
}

// Extract performs two-pass alpha recovery
func (s *TwoPassStrategy) Extract(pair *raster.ImagePair, options extractor.ExtractionOptions) (*extractor.ExtractionResult, error) {
	return s.extractor.Extract(pair, options)
}

// GetStrategyName returns the strategy name
func (s *TwoPassStrategy) GetStrategyName() string {
	return "two_pass"
}

// ExtractionContext manages the active extraction strategy
type ExtractionContext struct {
	strategy ExtractionStrategy
}

// NewExtractionContext creates a new extraction context
func NewExtractionContext(strategy ExtractionStrategy) *ExtractionContext {
	return &ExtractionContext{strategy: strategy}
}

// SetStrategy changes the extraction strategy
func (c *ExtractionContext) SetStrategy(strategy ExtractionStrategy) {
	c.strategy = strategy
}

// ExecuteExtraction performs extraction using the current strategy
func (c *ExtractionContext) ExecuteExtraction(pair *raster.ImagePair, options extractor.ExtractionOptions) (*extractor.ExtractionResult, error) {
	return c.strategy.Extract(pair, options)
}

// GetCurrentStrategy returns the current strategy name
func (c *ExtractionContext) GetCurrentStrategy() string {
	return c.strategy.GetStrategyName()
}
