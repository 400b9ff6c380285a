package port

import (
	"context"
	"errors"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentStorage reads and writes whole documents by name.
// Read returns ErrDocumentNotFound when nothing is stored under name.
type DocumentStorage interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}
