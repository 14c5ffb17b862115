package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber produces an ORD-<year>-<6 digits> number. The
// suffix is cryptographically random; a unique constraint on the
// orders table catches the rare collision and the caller retries.
func GenerateOrderNumber() string {
	now := time.Now().UTC()

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 1000000)
	}

	return fmt.Sprintf("ORD-%d-%06d", now.Year(), n.Int64())
}
