package order

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{4}-\d{6}$`)

	for i := 0; i < 50; i++ {
		n := GenerateOrderNumber()
		assert.Regexp(t, pattern, n)
	}

	year := fmt.Sprintf("ORD-%d-", time.Now().UTC().Year())
	assert.Contains(t, GenerateOrderNumber(), year)
}
