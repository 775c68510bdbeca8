package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	apperrors "go-alpha-extractor/internal/errors"
	"go-alpha-extractor/internal/extractor"
	"go-alpha-extractor/internal/observer"
	"go-alpha-extractor/internal/raster"
	"go-alpha-extractor/internal/repository"
)

// fakePairRepo serves a fixed pair or error
type fakePairRepo struct {
	pair *raster.ImagePair
	err  error
}

func (f *fakePairRepo) FetchPair(ctx context.Context, whiteRef, blackRef string) (*raster.ImagePair, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pair, nil
}

func (f *fakePairRepo) ValidateRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return repository.ErrInvalidRef
	}
	return nil
}

func grayPair(t *testing.T) *raster.ImagePair {
	t.Helper()
	white := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	black := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			white.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
			black.SetNRGBA(x, y, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
		}
	}
	pair, err := raster.NewPair(white, black)
	if err != nil {
		t.Fatalf("NewPair failed: %v", err)
	}
	return pair
}

func newService(t *testing.T, repo repository.PairRepository) ExtractionService {
	t.Helper()
	ex, err := extractor.NewExtractor()
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	t.Cleanup(func() { ex.Close() })
	return NewExtractionService(repo, ex, nil, nil)
}

func TestExtract(t *testing.T) {
	svc := newService(t, &fakePairRepo{pair: grayPair(t)})

	options := extractor.DefaultOptions().WithoutBackdropCheck()
	response, pngData, err := svc.Extract(context.Background(), "white.png", "black.png", options)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if response.Width != 4 || response.Height != 4 {
		t.Errorf("response size %dx%d, want 4x4", response.Width, response.Height)
	}
	if response.Stats.PartialPixels != 16 {
		t.Errorf("stats = %+v, want 16 partial pixels", response.Stats)
	}
	if response.Threshold != options.Threshold {
		t.Errorf("response threshold %v, want %v", response.Threshold, options.Threshold)
	}

	decoded, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	_, _, _, a := decoded.At(0, 0).RGBA()
	if a == 0 || a == 0xffff {
		t.Errorf("expected partial alpha in output, got %d", a)
	}
}

func TestExtract_InvalidRefs(t *testing.T) {
	svc := newService(t, &fakePairRepo{pair: grayPair(t)})

	_, _, err := svc.Extract(context.Background(), "  ", "black.png", extractor.DefaultOptions())
	if err == nil {
		t.Fatal("expected validation error for blank ref")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("expected validation error type, got %v", err)
	}
}

func TestExtract_PropagatesFetchError(t *testing.T) {
	fetchErr := apperrors.NewNetworkError("upstream down", nil)
	svc := newService(t, &fakePairRepo{err: fetchErr})

	_, _, err := svc.Extract(context.Background(), "white.png", "black.png", extractor.DefaultOptions())
	if !errors.Is(err, fetchErr) {
		t.Errorf("Extract = %v, want the fetch error", err)
	}
}

// recordingPublisher captures events synchronously, unlike the production
// publisher which fans out on goroutines
type recordingPublisher struct {
	events []observer.EventType
}

func (p *recordingPublisher) Subscribe(observer.Observer)   {}
func (p *recordingPublisher) Unsubscribe(observer.Observer) {}
func (p *recordingPublisher) NotifyObservers(ctx context.Context, event observer.ExtractionEvent) {
	p.events = append(p.events, event.EventType)
}

func TestExtract_PublishesLifecycleEvents(t *testing.T) {
	publisher := &recordingPublisher{}
	ex, err := extractor.NewExtractor()
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	defer ex.Close()

	svc := NewExtractionService(&fakePairRepo{pair: grayPair(t)}, ex, publisher, nil)
	if _, _, err := svc.Extract(context.Background(), "w.png", "b.png", extractor.DefaultOptions().WithoutBackdropCheck()); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []observer.EventType{
		observer.ExtractionStarted,
		observer.PairFetched,
		observer.ExtractionCompleted,
	}
	if len(publisher.events) != len(want) {
		t.Fatalf("events = %v, want %v", publisher.events, want)
	}
	for i, eventType := range want {
		if publisher.events[i] != eventType {
			t.Errorf("event[%d] = %s, want %s", i, publisher.events[i], eventType)
		}
	}
}

func TestExtract_PublishesFailureEvent(t *testing.T) {
	publisher := &recordingPublisher{}
	ex, err := extractor.NewExtractor()
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	defer ex.Close()

	svc := NewExtractionService(&fakePairRepo{err: apperrors.NewNetworkError("down", nil)}, ex, publisher, nil)
	if _, _, err := svc.Extract(context.Background(), "w.png", "b.png", extractor.DefaultOptions()); err == nil {
		t.Fatal("expected fetch error")
	}

	last := publisher.events[len(publisher.events)-1]
	if last != observer.PairFetchFailed {
		t.Errorf("last event = %s, want %s", last, observer.PairFetchFailed)
	}
}

// fakeBlobStore records uploads for StoreResult tests
type fakeBlobStore struct {
	container string
	blobName  string
	data      []byte
}

func (f *fakeBlobStore) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBlobStore) UploadResult(ctx context.Context, container, blobName string, pngData []byte) error {
	f.container = container
	f.blobName = blobName
	f.data = pngData
	return nil
}

func TestStoreResult(t *testing.T) {
	store := &fakeBlobStore{}
	ex, err := extractor.NewExtractor()
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	defer ex.Close()
	svc := NewExtractionService(&fakePairRepo{}, ex, nil, store)

	if err := svc.StoreResult(context.Background(), "results", "out.png", []byte{1, 2, 3}); err != nil {
		t.Fatalf("StoreResult failed: %v", err)
	}
	if store.container != "results" || store.blobName != "out.png" || len(store.data) != 3 {
		t.Errorf("upload recorded (%q, %q, %d bytes), want (results, out.png, 3 bytes)",
			store.container, store.blobName, len(store.data))
	}

	if err := svc.StoreResult(context.Background(), "", "out.png", nil); err == nil {
		t.Error("expected error for missing container")
	}
}

func TestStoreResult_NoBackend(t *testing.T) {
	svc := newService(t, &fakePairRepo{})

	err := svc.StoreResult(context.Background(), "results", "out.png", []byte{1})
	if err == nil {
		t.Fatal("expected error when no blob backend is configured")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("expected validation error type, got %v", err)
	}
}

func TestValidateRef(t *testing.T) {
	svc := newService(t, &fakePairRepo{})

	if err := svc.ValidateRef("white.png"); err != nil {
		t.Errorf("valid ref rejected: %v", err)
	}
	if err := svc.ValidateRef(""); err == nil {
		t.Error("blank ref accepted")
	}
}
