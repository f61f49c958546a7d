package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureBlobStorage archives PDFs to an Azure Blob Storage container.
// This is the production backend the form archive runs against.
type AzureBlobStorage struct {
	client    *azblob.Client
	container string
}

func NewAzureBlobStorage(cfg Config) (*AzureBlobStorage, error) {
	if cfg.ConnectionString == "" {
		return nil, fmt.Errorf("connection string is required for Azure Blob storage")
	}
	if cfg.Container == "" {
		return nil, fmt.Errorf("container is required for Azure Blob storage")
	}

	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure Blob client: %w", err)
	}

	return &AzureBlobStorage{
		client:    client,
		container: cfg.Container,
	}, nil
}

func (s *AzureBlobStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	_, err := s.client.UploadStream(ctx, s.container, path, reader, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload to Azure Blob: %w", err)
	}
	return nil
}

func (s *AzureBlobStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download from Azure Blob: %w", err)
	}
	return resp.Body, nil
}

func (s *AzureBlobStorage) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteBlob(ctx, s.container, path, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("failed to delete from Azure Blob: %w", err)
	}
	return nil
}

func (s *AzureBlobStorage) Exists(ctx context.Context, path string) (bool, error) {
	blobClient := s.client.ServiceClient().NewContainerClient(s.container).NewBlobClient(path)
	_, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check Azure blob: %w", err)
	}
	return true, nil
}

func (s *AzureBlobStorage) GetURL(ctx context.Context, path string) (string, error) {
	blobClient := s.client.ServiceClient().NewContainerClient(s.container).NewBlobClient(path)
	return blobClient.URL(), nil
}
