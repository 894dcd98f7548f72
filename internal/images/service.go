package images

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/apperr"
)

// Service validates, optimizes and stores image uploads.
type Service struct {
	storage Storage
	log     *zap.Logger
}

func NewService(storage Storage, log *zap.Logger) *Service {
	return &Service{storage: storage, log: log}
}

func (s *Service) List(ctx context.Context) ([]Asset, error) {
	return s.storage.List(ctx)
}

// Upload decodes a base64 payload, enforces the size cap, sanitizes the
// filename, optimizes the image and writes it to the active backend.
func (s *Service) Upload(ctx context.Context, name, data string) (*Asset, error) {
	if name == "" || data == "" {
		return nil, apperr.Invalid("name and data are required")
	}
	raw, err := DecodePayload(data)
	if err != nil {
		return nil, apperr.Invalid("invalid base64 image data")
	}
	if len(raw) > MaxUploadBytes {
		return nil, apperr.Invalid("image exceeds maximum size")
	}
	safe := SanitizeName(name)
	if safe == "" {
		return nil, apperr.Invalid("invalid file name")
	}

	processed, err := Optimize(raw, extOf(safe))
	if err != nil {
		return nil, fmt.Errorf("optimize %s: %w", safe, err)
	}
	if err := s.storage.Write(ctx, safe, processed); err != nil {
		return nil, fmt.Errorf("store %s: %w", safe, err)
	}
	s.log.Info("image stored", zap.String("name", safe), zap.Int("bytes", len(processed)))
	return &Asset{Name: safe, URL: URLPrefix + safe}, nil
}

// Rename moves an asset to a new name. When the extension changes the bytes
// are re-encoded into the new format before the old file is removed.
func (s *Service) Rename(ctx context.Context, oldName, newName string) error {
	if oldName == "" || newName == "" {
		return apperr.Invalid("old and new names are required")
	}
	safeOld := SanitizeName(oldName)
	safeNew := SanitizeName(newName)
	if safeOld == "" || safeNew == "" {
		return apperr.Invalid("invalid file name")
	}

	if extOf(safeOld) == extOf(safeNew) {
		return s.wrapMissing(s.storage.Rename(ctx, safeOld, safeNew))
	}

	data, err := s.storage.Read(ctx, safeOld)
	if err != nil {
		return s.wrapMissing(err)
	}
	converted, err := Optimize(data, extOf(safeNew))
	if err != nil {
		return fmt.Errorf("convert %s: %w", safeNew, err)
	}
	if err := s.storage.Write(ctx, safeNew, converted); err != nil {
		return fmt.Errorf("store %s: %w", safeNew, err)
	}
	return s.storage.Delete(ctx, safeOld)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	if name == "" {
		return apperr.Invalid("name required")
	}
	safe := SanitizeName(name)
	if safe == "" {
		return apperr.Invalid("invalid file name")
	}
	return s.wrapMissing(s.storage.Delete(ctx, safe))
}

func (s *Service) wrapMissing(err error) error {
	if err == ErrNoFile {
		return apperr.ErrNotFound
	}
	return err
}
