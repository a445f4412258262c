// Package sealed wraps a durable.Store so that every value is encrypted at
// rest with a key derived from a passphrase.
//
// The argon2id salt is kept in the wrapped store itself under SaltKey and is
// created on first use, so the same passphrase opens the store after a
// restart. A wrong passphrase makes every Get fail with cryptox.ErrCiphertext,
// which the cache treats like any other unreadable value.
package sealed

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcache/internal/client/durable"
	"github.com/dmitrijs2005/gophcache/internal/cryptox"
)

// SaltKey is reserved; the cache never uses keys with a leading underscore.
const SaltKey = "_sealed-salt"

type Store struct {
	inner durable.Store
	key   []byte
}

// Wrap loads or creates the salt in inner and derives the sealing key.
func Wrap(ctx context.Context, inner durable.Store, passphrase []byte) (*Store, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase is required")
	}

	salt, err := inner.Get(ctx, SaltKey)
	if errors.Is(err, durable.ErrNotFound) {
		salt, err = cryptox.RandomBytes(cryptox.SaltSize)
		if err != nil {
			return nil, err
		}
		if err := inner.Set(ctx, SaltKey, salt); err != nil {
			return nil, fmt.Errorf("store salt: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("load salt: %w", err)
	}

	return &Store{inner: inner, key: cryptox.DeriveKey(passphrase, salt)}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	plain, err := cryptox.Open(s.key, b)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return plain, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	b, err := cryptox.Seal(s.key, value)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, b)
}

func (s *Store) Update(ctx context.Context, key string, mutate durable.Mutator) error {
	return s.inner.Update(ctx, key, func(current []byte, found bool) ([]byte, error) {
		var plain []byte
		if found {
			p, err := cryptox.Open(s.key, current)
			if err != nil {
				// an unreadable value is treated as absent and overwritten
				found = false
			} else {
				plain = p
			}
		}

		next, err := mutate(plain, found)
		if err != nil {
			return nil, err
		}
		return cryptox.Seal(s.key, next)
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// Close zeroes the derived key.
func (s *Store) Close() error {
	cryptox.Wipe(s.key)
	return nil
}
