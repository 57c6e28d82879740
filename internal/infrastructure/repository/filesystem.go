package repository

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	domain "filehub/internal/domain/file"
)

type filesystemRepository struct{}

// NewFilesystemRepository creates a repository that stores files directly
// inside namespace directories
func NewFilesystemRepository() domain.Repository {
	return &filesystemRepository{}
}

// path joins a validated file name onto the namespace directory
func (r *filesystemRepository) path(ns domain.Namespace, name string) (string, error) {
	if err := domain.ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(ns.Dir, name), nil
}

func (r *filesystemRepository) describe(ns domain.Namespace, fullPath string, info fs.FileInfo) domain.Descriptor {
	return domain.Descriptor{
		Name:       info.Name(),
		Path:       fullPath,
		CreatedAt:  createdAt(fullPath, info),
		ModifiedAt: info.ModTime(),
		Size:       info.Size(),
		// The namespace owner is the only writer, so uploader and editor coincide.
		UploadedBy: ns.Owner,
		EditedBy:   ns.Owner,
	}
}

func (r *filesystemRepository) List(ns domain.Namespace) ([]domain.Descriptor, error) {
	entries, err := os.ReadDir(ns.Dir)
	if err != nil {
		return nil, fmt.Errorf("read namespace %s: %w", ns.Owner, err)
	}

	files := make([]domain.Descriptor, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		files = append(files, r.describe(ns, filepath.Join(ns.Dir, entry.Name()), info))
	}

	return files, nil
}

func (r *filesystemRepository) Stat(ns domain.Namespace, name string) (domain.Descriptor, error) {
	fullPath, err := r.path(ns, name)
	if err != nil {
		return domain.Descriptor{}, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Descriptor{}, domain.ErrNotFound
		}
		return domain.Descriptor{}, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return domain.Descriptor{}, domain.ErrNotFound
	}

	return r.describe(ns, fullPath, info), nil
}

// Save writes content to name. Without overwrite the file is created with
// O_EXCL, so an existing file is reported as domain.ErrExists and left
// untouched. The write is not atomic: a failed copy leaves a partial file.
func (r *filesystemRepository) Save(ns domain.Namespace, name string, content io.Reader, overwrite bool) (int64, error) {
	fullPath, err := r.path(ns, name)
	if err != nil {
		return 0, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	dst, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, domain.ErrExists
		}
		return 0, fmt.Errorf("create %s: %w", name, err)
	}

	n, err := io.Copy(dst, content)
	if err != nil {
		dst.Close()
		return n, fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", name, err)
	}

	return n, nil
}

func (r *filesystemRepository) Delete(ns domain.Namespace, name string) error {
	fullPath, err := r.path(ns, name)
	if err != nil {
		return err
	}

	info, err := os.Lstat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	// Directories are never removed; only single files.
	if info.IsDir() {
		return nil
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (r *filesystemRepository) Open(ns domain.Namespace, name string) (*os.File, error) {
	if _, err := r.Stat(ns, name); err != nil {
		return nil, err
	}

	fullPath, _ := r.path(ns, name)
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

func (r *filesystemRepository) ReadFile(ns domain.Namespace, name string) ([]byte, error) {
	fullPath, err := r.path(ns, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
