// Package tokenstore persists bearer tokens between process runs, one entry
// per credential pair.
package tokenstore

import (
	"context"
	"crypto/md5"
	"encoding/hex"
)

// Store holds the current token for a cache key. Save always replaces the
// previous value.
type Store interface {
	// Load returns the token saved under key. ok is false when nothing is stored.
	Load(ctx context.Context, key string) (token string, ok bool, err error)

	// Save overwrites the token saved under key.
	Save(ctx context.Context, key string, token string) error
}

// Key derives the cache key for a credential pair.
func Key(clientID, clientSecret string) string {
	sum := md5.Sum([]byte(clientID + "::" + clientSecret))
	return hex.EncodeToString(sum[:])
}
