package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	_ "golang.org/x/image/webp"

	apperrors "go-alpha-extractor/internal/errors"
)

// ImageFetcher retrieves a decoded source image from a reference (URL or
// path, depending on the backend).
type ImageFetcher interface {
	FetchImage(ctx context.Context, ref string) (image.Image, error)
}

// HTTPImageFetcher implements ImageFetcher over HTTP with retries
type HTTPImageFetcher struct {
	client *http.Client
}

// NewHTTPImageFetcher creates an HTTP image fetcher with a transport tuned
// for fetching a pair of images per request.
func NewHTTPImageFetcher() ImageFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// FetchImage downloads and decodes one source image. Server errors are
// retried up to three attempts with linear backoff; client errors are not
// retried, they need a corrected input.
func (h *HTTPImageFetcher) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/png, image/webp, image/jpeg, image/gif, */*")
	req.Header.Set("User-Agent", "Go-Alpha-Extractor/1.0")

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			img, _, err := image.Decode(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, apperrors.NewDecodeError(ref, err)
			}
			return img, nil
		}

		resp.Body.Close()
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client errors are input problems, retrying cannot help
			return nil, fmt.Errorf("client error: status code %d", resp.StatusCode)
		}
		lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("failed to fetch image after 3 attempts: %w", lastErr)
}
