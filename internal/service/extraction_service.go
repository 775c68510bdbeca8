package service

import (
	"bytes"
	"context"
	"time"

	apperrors "go-alpha-extractor/internal/errors"
	"go-alpha-extractor/internal/extractor"
	"go-alpha-extractor/internal/observer"
	"go-alpha-extractor/internal/raster"
	"go-alpha-extractor/internal/repository"
	"go-alpha-extractor/internal/storage"
	"go-alpha-extractor/pkg/models"
)

// ExtractionService defines the application-level alpha recovery operation:
// fetch a source pair, run the recovery pipeline, and hand back the encoded
// PNG plus a response describing the run. StoreResult persists an encoded
// result to blob storage when the configured backend supports it.
type ExtractionService interface {
	Extract(ctx context.Context, whiteRef, blackRef string, options extractor.ExtractionOptions) (*models.ExtractionResponse, []byte, error)
	StoreResult(ctx context.Context, container, blobName string, pngData []byte) error
	ValidateRef(ref string) error
}

// extractionService implements ExtractionService
type extractionService struct {
	pairRepo    repository.PairRepository
	extractor   extractor.Extractor
	publisher   observer.Subject
	resultStore storage.BlobStorage
}

// NewExtractionService creates a new extraction service. resultStore may be
// nil when the configured storage backend cannot persist results.
func NewExtractionService(
	pairRepo repository.PairRepository,
	alphaExtractor extractor.Extractor,
	publisher observer.Subject,
	resultStore storage.BlobStorage,
) ExtractionService {
	return &extractionService{
		pairRepo:    pairRepo,
		extractor:   alphaExtractor,
		publisher:   publisher,
		resultStore: resultStore,
	}
}

// Extract runs one full recovery: validate refs, fetch the pair, recover the
// alpha channel, encode the result as PNG. Fetch, dimension, and encode
// failures abort the run; per-pixel numerical edge cases never surface here.
func (s *extractionService) Extract(ctx context.Context, whiteRef, blackRef string, options extractor.ExtractionOptions) (*models.ExtractionResponse, []byte, error) {
	start := time.Now()
	s.notify(ctx, observer.ExtractionEvent{
		EventType: observer.ExtractionStarted,
		Timestamp: start,
		WhiteRef:  whiteRef,
		BlackRef:  blackRef,
	})

	if err := s.ValidateRef(whiteRef); err != nil {
		return nil, nil, apperrors.NewValidationError("invalid white image reference", err)
	}
	if err := s.ValidateRef(blackRef); err != nil {
		return nil, nil, apperrors.NewValidationError("invalid black image reference", err)
	}

	pair, err := s.pairRepo.FetchPair(ctx, whiteRef, blackRef)
	if err != nil {
		s.notifyFailure(ctx, observer.PairFetchFailed, whiteRef, blackRef, start, err)
		return nil, nil, err
	}
	s.notify(ctx, observer.ExtractionEvent{
		EventType: observer.PairFetched,
		Timestamp: time.Now(),
		WhiteRef:  whiteRef,
		BlackRef:  blackRef,
		Success:   true,
		Metadata: map[string]interface{}{
			"width":  pair.Width(),
			"height": pair.Height(),
		},
	})

	result, err := s.extractor.Extract(pair, options)
	if err != nil {
		s.notifyFailure(ctx, observer.ExtractionFailed, whiteRef, blackRef, start, err)
		return nil, nil, err
	}

	if result.Backdrops.Checked && (!result.Backdrops.WhiteClean || !result.Backdrops.BlackClean) {
		s.notify(ctx, observer.ExtractionEvent{
			EventType: observer.BackdropSuspect,
			Timestamp: time.Now(),
			WhiteRef:  whiteRef,
			BlackRef:  blackRef,
			Success:   true,
			Metadata: map[string]interface{}{
				"white_distance": result.Backdrops.WhiteDistance,
				"black_distance": result.Backdrops.BlackDistance,
			},
		})
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, result.Image); err != nil {
		s.notifyFailure(ctx, observer.ExtractionFailed, whiteRef, blackRef, start, err)
		return nil, nil, err
	}

	s.notify(ctx, observer.ExtractionEvent{
		EventType:      observer.ExtractionCompleted,
		Timestamp:      time.Now(),
		WhiteRef:       whiteRef,
		BlackRef:       blackRef,
		ProcessingTime: time.Since(start),
		Success:        true,
	})

	response := &models.ExtractionResponse{
		WhiteRef:          whiteRef,
		BlackRef:          blackRef,
		Timestamp:         start.Format("2006-01-02T15:04:05Z07:00"),
		ProcessingTimeSec: result.ProcessingTimeSec,
		Width:             result.Width,
		Height:            result.Height,
		Threshold:         options.Threshold,
		Stats:             result.Stats,
		Backdrops:         result.Backdrops,
	}
	return response, buf.Bytes(), nil
}

// StoreResult uploads an encoded result PNG to blob storage.
func (s *extractionService) StoreResult(ctx context.Context, container, blobName string, pngData []byte) error {
	if s.resultStore == nil {
		return apperrors.NewValidationError("result storage is not configured for this backend", nil)
	}
	if container == "" || blobName == "" {
		return apperrors.NewValidationError("result storage requires a container and blob name", nil)
	}
	if err := s.resultStore.UploadResult(ctx, container, blobName, pngData); err != nil {
		return apperrors.NewNetworkError("failed to store result", err)
	}
	return nil
}

// ValidateRef validates a source image reference
func (s *extractionService) ValidateRef(ref string) error {
	return s.pairRepo.ValidateRef(ref)
}

func (s *extractionService) notify(ctx context.Context, event observer.ExtractionEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

func (s *extractionService) notifyFailure(ctx context.Context, eventType observer.EventType, whiteRef, blackRef string, start time.Time, err error) {
	s.notify(ctx, observer.ExtractionEvent{
		EventType:      eventType,
		Timestamp:      time.Now(),
		WhiteRef:       whiteRef,
		BlackRef:       blackRef,
		ProcessingTime: time.Since(start),
		Success:        false,
		ErrorMessage:   err.Error(),
	})
}
