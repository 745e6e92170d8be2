// Package store is the persistent key-value store behind the storefront:
// serialized JSON blobs addressed by a small fixed set of keys. Two
// implementations exist, a Postgres table for the server and a plain file
// directory for single-user runs.
package store

import "context"

// Storage keys. The names are load-bearing: carts written by earlier builds
// of the app are read back under the same keys.
const (
	KeyCart         = "cart"
	KeyUsers        = "users"
	KeyCustomerName = "customerName"
)

// SharedNamespace holds data that is not scoped to one account, such as the
// registered user list.
const SharedNamespace = "shared"

// Store reads and writes raw JSON blobs. Get returns domain.ErrNotFound
// when the key has never been set or has been removed.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Provider hands out a Store scoped to a namespace, so each account gets an
// isolated cart while key names stay identical inside every namespace.
type Provider interface {
	Namespace(ns string) Store
}
