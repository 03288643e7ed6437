// Package kv provides the keyed JSON-blob storage the storefront persists its
// state in: cart, cached catalog, session, saved addresses. Every consumer must
// tolerate an absent or malformed blob and degrade to empty state.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
