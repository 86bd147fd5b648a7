package replitdb

import (
	"context"
	"strings"
)

// KeyNamespaceConfig is the configuration structure for [KeyNamespace].
type KeyNamespaceConfig struct {
	// KV is the database to be wrapped.  It must not be nil.
	KV Interface

	// Prefix is the custom prefix to be added to the keys.
	Prefix string
}

// KeyNamespace is wrapper around [Interface] that adds a custom prefix to the
// keys.  Listing, Empty, and GetAll only see keys with the prefix, and the
// prefix is removed from the keys they return.
type KeyNamespace struct {
	// kv is the database to be wrapped.
	kv Interface

	// prefix is the custom prefix to be added to the keys.
	prefix string
}

// NewKeyNamespace returns a properly initialized *KeyNamespace.  conf must not
// be nil.
func NewKeyNamespace(conf *KeyNamespaceConfig) (n *KeyNamespace) {
	return &KeyNamespace{
		kv:     conf.KV,
		prefix: conf.Prefix,
	}
}

// type check
var _ Interface = (*KeyNamespace)(nil)

// Get implements the [Interface] interface for *KeyNamespace.
func (n *KeyNamespace) Get(ctx context.Context, key string) (val string, ok bool, err error) {
	return n.kv.Get(ctx, n.prefix+key)
}

// Set implements the [Interface] interface for *KeyNamespace.
func (n *KeyNamespace) Set(ctx context.Context, key, val string) (err error) {
	return n.kv.Set(ctx, n.prefix+key, val)
}

// Delete implements the [Interface] interface for *KeyNamespace.
func (n *KeyNamespace) Delete(ctx context.Context, key string) (err error) {
	return n.kv.Delete(ctx, n.prefix+key)
}

// List implements the [Interface] interface for *KeyNamespace.
func (n *KeyNamespace) List(ctx context.Context) (keys []string, err error) {
	return n.ListPrefix(ctx, "")
}

// ListPrefix implements the [Interface] interface for *KeyNamespace.
func (n *KeyNamespace) ListPrefix(ctx context.Context, prefix string) (keys []string, err error) {
	full, err := n.kv.ListPrefix(ctx, n.prefix+prefix)
	if err != nil {
		return nil, err
	}

	keys = make([]string, 0, len(full))
	for _, k := range full {
		// Skip keys outside of the namespace.
		if trimmed, ok := strings.CutPrefix(k, n.prefix); ok {
			keys = append(keys, trimmed)
		}
	}

	return keys, nil
}

// Empty implements the [Interface] interface for *KeyNamespace.  Only the keys
// within the namespace are deleted, one by one.
func (n *KeyNamespace) Empty(ctx context.Context) (err error) {
	keys, err := n.List(ctx)
	if err != nil {
		return err
	}

	return forEachKey(ctx, 1, keys, func(ctx context.Context, _ int, key string) (err error) {
		return n.Delete(ctx, key)
	})
}

// GetAll implements the [Interface] interface for *KeyNamespace.  Only the
// keys within the namespace are returned, without the prefix.
func (n *KeyNamespace) GetAll(ctx context.Context) (kvs map[string]string, err error) {
	keys, err := n.List(ctx)
	if err != nil {
		return nil, err
	}

	return getAll(ctx, n, 1, keys)
}
