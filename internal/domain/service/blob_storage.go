package service

import "context"

// BlobStorage stores uploaded pickup photos and returns a publicly
// dereferenceable URL. Storage failures are degradable: booking never fails
// because an image could not be stored.
type BlobStorage interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}
