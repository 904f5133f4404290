package tree

import "github.com/utkarsh5026/gitcore/pkg/objects"

// KindResolver finds the kind of the object behind a hash. Stores implement
// it by reading object headers only, and may cache.
type KindResolver interface {
	ResolveKind(hash objects.ObjectHash) (objects.ObjectKind, error)
}

// KindResolverFunc adapts a function to KindResolver.
type KindResolverFunc func(hash objects.ObjectHash) (objects.ObjectKind, error)

// ResolveKind calls f.
func (f KindResolverFunc) ResolveKind(hash objects.ObjectHash) (objects.ObjectKind, error) {
	return f(hash)
}
