package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperrors "go-alpha-extractor/internal/errors"
)

func pngFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestHTTPImageFetcher_FetchImage(t *testing.T) {
	data := pngFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	img, err := fetcher.FetchImage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchImage failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded image is %v, want 4x4", img.Bounds())
	}
}

func TestHTTPImageFetcher_RetriesServerErrors(t *testing.T) {
	data := pngFixture(t)
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(data)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), server.URL); err != nil {
		t.Fatalf("FetchImage should succeed after retries: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestHTTPImageFetcher_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("client errors must not be retried, got %d attempts", got)
	}
}

func TestHTTPImageFetcher_NonImageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	_, err := fetcher.FetchImage(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("expected decode error type, got %v", err)
	}
}

func TestHTTPImageFetcher_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewHTTPImageFetcher()
	if _, err := fetcher.FetchImage(ctx, server.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestHTTPImageFetcher_InvalidURL(t *testing.T) {
	fetcher := NewHTTPImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), "://bad-url"); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}
