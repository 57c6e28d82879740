package repository

import (
	"fmt"
	"os"
	"path/filepath"

	domain "filehub/internal/domain/file"
)

type namespaceResolver struct {
	root string
}

// NewNamespaceResolver creates a resolver that keeps one directory per
// identity under root
func NewNamespaceResolver(root string) domain.Resolver {
	return &namespaceResolver{root: root}
}

func (r *namespaceResolver) Resolve(identity string) (domain.Namespace, error) {
	if identity == "" {
		identity = domain.AnonymousOwner
	}
	if err := domain.ValidateName(identity); err != nil {
		return domain.Namespace{}, err
	}

	dir := filepath.Join(r.root, identity)
	// MkdirAll succeeds when the directory already exists, so concurrent
	// first requests for the same identity are harmless.
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.Namespace{}, fmt.Errorf("create namespace %s: %w", identity, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return domain.Namespace{}, fmt.Errorf("resolve namespace %s: %w", identity, err)
	}

	return domain.Namespace{Owner: identity, Dir: abs}, nil
}
