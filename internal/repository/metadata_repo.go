package repository

import (
	"context"

	"github.com/user/vidmeta/internal/entity"
)

// MetadataRepository defines the contract for the external scrape service.
type MetadataRepository interface {
	// FetchMetadata issues one request for the given URL and platform and
	// returns the service's metadata payload unmodified.
	FetchMetadata(ctx context.Context, req entity.SubmissionRequest) (entity.ScrapeResult, error)
}
