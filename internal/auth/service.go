package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidKey is returned when the provided API key matches no
// configured operator key.
var ErrInvalidKey = errors.New("invalid API key")

// Service authenticates operator API keys against a fixed set of bcrypt
// hashes. Only hashes are configured; raw keys exist solely on the
// operator's side.
type Service struct {
	hashes     []string
	bcryptCost int
}

// NewService creates a new auth Service over the given key hashes.
func NewService(keyHashes []string, bcryptCost int) *Service {
	return &Service{
		hashes:     keyHashes,
		bcryptCost: bcryptCost,
	}
}

// GenerateKey mints a new operator key. Returns the raw key and the
// bcrypt hash to put into ADMIN_KEY_HASHES. The raw key is 32 random
// bytes, base64url-encoded, with a "rosterd_" prefix.
func (s *Service) GenerateKey() (rawKey, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}

	rawKey = "rosterd_" + base64.RawURLEncoding.EncodeToString(b)

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(rawKey), s.bcryptCost)
	if err != nil {
		return "", "", fmt.Errorf("hashing key: %w", err)
	}

	return rawKey, string(hashBytes), nil
}

// Authenticate checks a raw API key against every configured hash.
// With no hashes configured every key is rejected.
func (s *Service) Authenticate(rawKey string) error {
	if rawKey == "" {
		return ErrInvalidKey
	}

	for _, h := range s.hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(rawKey)) == nil {
			return nil
		}
	}

	return ErrInvalidKey
}
