package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-alpha-extractor/internal/errors"
)

// BlobStorage fetches source images from and uploads result rasters to a
// blob container.
type BlobStorage interface {
	ImageFetcher
	UploadResult(ctx context.Context, container, blobName string, pngData []byte) error
}

type azureStorage struct {
	client *azblob.Client
}

// NewAzureStorage creates a blob storage backed by an Azure account
func NewAzureStorage(accountName string, accountKey string) (BlobStorage, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureStorage{client: client}, nil
}

// FetchImage downloads and decodes a source image. The ref is a blob URL of
// the form /<container>?blob=<name>.
func (s *azureStorage) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	containerName, blobName, err := splitBlobRef(ref)
	if err != nil {
		return nil, err
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	img, _, err := image.Decode(retryReader)
	if err != nil {
		return nil, apperrors.NewDecodeError(ref, err)
	}
	return img, nil
}

// UploadResult stores an encoded PNG result in the container
func (s *azureStorage) UploadResult(ctx context.Context, container, blobName string, pngData []byte) error {
	_, err := s.client.UploadBuffer(ctx, container, blobName, pngData, nil)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	return nil
}

func splitBlobRef(ref string) (container, blob string, err error) {
	parsedURL, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("invalid blob URL: %w", err)
	}
	if len(parsedURL.Path) < 2 {
		return "", "", fmt.Errorf("blob URL missing container: %q", ref)
	}
	container = parsedURL.Path[1:] // Remove leading slash
	blob = parsedURL.Query().Get("blob")
	if blob == "" {
		return "", "", fmt.Errorf("blob URL missing blob name: %q", ref)
	}
	return container, blob, nil
}
