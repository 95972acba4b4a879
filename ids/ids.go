// Package ids provides identifier generation shared by the Phoenix services.
package ids

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const shortIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultShortIDLength is the length used by ShortID when callers pass a
// non-positive length.
const DefaultShortIDLength = 8

// ShortID generates a short random identifier of lowercase letters and
// digits, using a cryptographic randomness source.
func ShortID(length int) string {
	if length <= 0 {
		length = DefaultShortIDLength
	}

	max := big.NewInt(int64(len(shortIDAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failure means the platform RNG is broken;
			// nothing sensible to degrade to.
			panic(err)
		}
		b[i] = shortIDAlphabet[n.Int64()]
	}
	return string(b)
}

// NewID returns a random UUIDv4 string for entity identifiers.
func NewID() string {
	return uuid.NewString()
}
