package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nikolayk812/inventory-cart/internal/port"
	"github.com/sirupsen/logrus"
)

// document is a JSON value persisted as a whole under a single name.
type document[T any] struct {
	storage port.DocumentStorage
	name    string
	empty   func() T
	log     logrus.FieldLogger
}

// load never fails: a missing or unreadable document is an empty one.
func (d document[T]) load(ctx context.Context) T {
	v, err := d.loadForUpdate(ctx)
	if err != nil {
		d.log.WithField("document", d.name).WithError(err).Warn("document read failed, starting empty")
		return d.empty()
	}

	return v
}

// loadForUpdate treats a missing or malformed document as empty but returns any other
// read error, so a failed read is never written back as an empty document.
func (d document[T]) loadForUpdate(ctx context.Context) (T, error) {
	log := d.log.WithField("document", d.name)

	data, err := d.storage.Read(ctx, d.name)
	if errors.Is(err, port.ErrDocumentNotFound) {
		log.Debug("document not found, starting empty")
		return d.empty(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("storage.Read: %w", err)
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return d.empty(), nil
	}

	v := d.empty()
	if err := json.Unmarshal(data, &v); err != nil {
		log.WithError(err).Warn("document is malformed, starting empty")
		return d.empty(), nil
	}

	return v, nil
}

func (d document[T]) save(ctx context.Context, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}
	data = append(data, '\n')

	if err := d.storage.Write(ctx, d.name, data); err != nil {
		d.log.WithField("document", d.name).WithError(err).Error("document write failed")
		return fmt.Errorf("storage.Write: %w", err)
	}

	return nil
}

// mutate applies fn to a freshly loaded document and writes the result back in full.
// Nothing is written when fn fails.
func mutate[T, R any](ctx context.Context, mu *sync.RWMutex, d document[T], fn func(v T) (T, R, error)) (R, error) {
	var zero R

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	mu.Lock()
	defer mu.Unlock()

	current, err := d.loadForUpdate(ctx)
	if err != nil {
		d.log.WithField("document", d.name).WithError(err).Error("document read failed, nothing written")
		return zero, err
	}

	v, result, err := fn(current)
	if err != nil {
		return zero, err
	}

	if err := d.save(ctx, v); err != nil {
		return zero, err
	}

	return result, nil
}

func read[T any](ctx context.Context, mu *sync.RWMutex, d document[T]) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	mu.RLock()
	defer mu.RUnlock()

	return d.load(ctx), nil
}
