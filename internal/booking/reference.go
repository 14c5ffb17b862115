package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateReference produces a BK<timestamp><3 digits> reference. A
// unique constraint catches the rare same-second collision and the
// caller retries.
func GenerateReference() string {
	now := time.Now().UTC()

	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 900)
	}

	return fmt.Sprintf("BK%s%03d", now.Format("20060102150405"), n.Int64()+100)
}
