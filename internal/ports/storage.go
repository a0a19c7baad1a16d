package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the key-value persistence surface for client state: the session
// snapshot, the serialized cart, and the device identifier. Implementations
// must make Set atomic per key.
type KVStore interface {
	Set(ctx context.Context, key string, value []byte) error
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Storage keys owned by the client. The session manager is the only writer of
// KeySession and KeyDeviceID; the cart reconciler is the only writer of KeyCart.
const (
	KeySession  = "session"
	KeyCart     = "cart"
	KeyDeviceID = "device_id"
)
