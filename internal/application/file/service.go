package file

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"

	domain "filehub/internal/domain/file"
)

// DefaultMaxPreviewSize bounds how much of a file Preview loads into memory
const DefaultMaxPreviewSize int64 = 10 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Service defines the business logic for file operations. Every method
// takes the caller's identity and resolves its namespace first.
type Service interface {
	List(identity, sort, filter string) (*domain.Listing, error)
	Upload(identity, name string, content io.Reader, size int64, overwrite bool) (*domain.UploadResult, error)
	Delete(identity, name string) error
	Open(identity, name string) (*os.File, error)
	Preview(identity, name string) (*domain.Preview, error)
}

type service struct {
	resolver       domain.Resolver
	repo           domain.Repository
	maxPreviewSize int64
}

// NewService creates a new file service. A non-positive maxPreviewSize
// selects DefaultMaxPreviewSize.
func NewService(resolver domain.Resolver, repo domain.Repository, maxPreviewSize int64) Service {
	if maxPreviewSize <= 0 {
		maxPreviewSize = DefaultMaxPreviewSize
	}
	return &service{
		resolver:       resolver,
		repo:           repo,
		maxPreviewSize: maxPreviewSize,
	}
}

func (s *service) List(identity, sort, filter string) (*domain.Listing, error) {
	ns, err := s.resolver.Resolve(identity)
	if err != nil {
		return nil, err
	}

	files, err := s.repo.List(ns)
	if err != nil {
		return nil, err
	}

	sortKey := domain.ParseSort(sort)
	filterKey := domain.ParseFilter(filter)

	files = filterKey.Apply(files)
	sortKey.Apply(files)

	return &domain.Listing{
		Sort:   sortKey,
		Filter: filterKey,
		Files:  files,
	}, nil
}

func (s *service) Upload(identity, name string, content io.Reader, size int64, overwrite bool) (*domain.UploadResult, error) {
	if content == nil || size <= 0 {
		observe(opUpload, domain.ErrEmptyContent)
		return nil, domain.ErrEmptyContent
	}

	ns, err := s.resolver.Resolve(identity)
	if err != nil {
		observe(opUpload, err)
		return nil, err
	}

	written, err := s.repo.Save(ns, name, content, overwrite)
	observe(opUpload, err)
	if err != nil {
		return nil, err
	}

	uploadedBytes.Add(float64(written))
	return &domain.UploadResult{Name: name, Size: written}, nil
}

func (s *service) Delete(identity, name string) error {
	ns, err := s.resolver.Resolve(identity)
	if err != nil {
		observe(opDelete, err)
		return err
	}

	err = s.repo.Delete(ns, name)
	observe(opDelete, err)
	return err
}

func (s *service) Open(identity, name string) (*os.File, error) {
	ns, err := s.resolver.Resolve(identity)
	if err != nil {
		observe(opDownload, err)
		return nil, err
	}

	f, err := s.repo.Open(ns, name)
	observe(opDownload, err)
	return f, err
}

func (s *service) Preview(identity, name string) (*domain.Preview, error) {
	ns, err := s.resolver.Resolve(identity)
	if err != nil {
		observe(opPreview, err)
		return nil, err
	}

	preview, err := s.preview(ns, name)
	observe(opPreview, err)
	return preview, err
}

func (s *service) preview(ns domain.Namespace, name string) (*domain.Preview, error) {
	desc, err := s.repo.Stat(ns, name)
	if err != nil {
		return nil, err
	}

	kind := domain.PreviewTypeFor(name)
	if kind == domain.PreviewUnsupported {
		return &domain.Preview{Type: domain.PreviewUnsupported}, nil
	}

	if desc.Size > s.maxPreviewSize {
		return nil, domain.ErrTooLarge
	}

	data, err := s.repo.ReadFile(ns, name)
	if err != nil {
		return nil, err
	}

	if kind == domain.PreviewImage {
		return &domain.Preview{
			Type:   domain.PreviewImage,
			Base64: base64.StdEncoding.EncodeToString(data),
			Mime:   domain.ImageMimeType(name),
		}, nil
	}

	return &domain.Preview{
		Type: domain.PreviewText,
		Text: string(bytes.TrimPrefix(data, utf8BOM)),
	}, nil
}
