package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is the archival backend for rendered application PDFs.
type Storage interface {
	// Save stores a file at the given path.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a file from the given path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns the durable URL for the stored file.
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration.
type Config struct {
	Type             string // local, s3, azure_blob
	BasePath         string // for local storage
	BaseURL          string // public URL base
	Bucket           string // for S3
	Region           string // for S3
	AccessKey        string // for S3
	SecretKey        string // for S3
	Endpoint         string // for custom S3 endpoints
	ConnectionString string // for Azure Blob
	Container        string // for Azure Blob
}

// NewStorage creates a storage backend from configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "azure_blob":
		return NewAzureBlobStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
