package domain

import (
	"context"
	"errors"
)

// ErrUploadFailed is returned when the image store rejects an upload,
// including transport failures. A failed upload fails the whole
// event-creation request; there are no retries.
var ErrUploadFailed = errors.New("image upload failed")

// ImageStore accepts a binary blob and returns a durable public URL.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)
}
