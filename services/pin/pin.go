package pin

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generate returns a random 4-digit collection PIN as a string,
// zero-padded so "0042" round-trips through the API unchanged.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
