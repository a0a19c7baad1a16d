package cryptostore

// Package cryptostore wraps a KVStore with AES-GCM encryption at rest, for
// deployments where the state file holds the bearer token on shared machines.

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/ecomsuite/storefront-client/internal/ports"
)

// Store encrypts values before handing them to the underlying KVStore.
// Keys are not encrypted; only values are sensitive.
type Store struct {
	inner ports.KVStore
	aead  cipher.AEAD
}

// New derives an AES-256 key from the passphrase and wraps inner.
func New(inner ports.KVStore, passphrase string) (*Store, error) {
	if inner == nil {
		return nil, errors.New("inner store is required")
	}
	if passphrase == "" {
		return nil, errors.New("passphrase is required")
	}

	key := sha256.Sum256([]byte(passphrase))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return &Store{inner: inner, aead: aead}, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, value, []byte(key))
	return s.inner.Set(ctx, key, sealed)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, errors.New("stored value too short to decrypt")
	}
	plain, err := s.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], []byte(key))
	if err != nil {
		return nil, fmt.Errorf("decrypt stored value: %w", err)
	}
	return plain, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

var _ ports.KVStore = (*Store)(nil)
