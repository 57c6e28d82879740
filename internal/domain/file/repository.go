package file

import (
	"io"
	"os"
)

// Resolver maps an identity to its namespace, creating the directory on first use
type Resolver interface {
	Resolve(identity string) (Namespace, error)
}

// Repository defines the contract for file storage operations inside a namespace
type Repository interface {
	List(ns Namespace) ([]Descriptor, error)
	Stat(ns Namespace, name string) (Descriptor, error)
	Save(ns Namespace, name string, content io.Reader, overwrite bool) (int64, error)
	Delete(ns Namespace, name string) error
	Open(ns Namespace, name string) (*os.File, error)
	ReadFile(ns Namespace, name string) ([]byte, error)
}
