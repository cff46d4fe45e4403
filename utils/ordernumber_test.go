package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2026, 8, 29, 14, 32, 7, 118*1e6, time.UTC)

	number := GenerateOrderNumber(at)
	assert.True(t, ValidOrderNumber(number), "generated number should match the format: %s", number)

	parts := strings.Split(number, "-")
	assert.Equal(t, "BO", parts[0])
	assert.Equal(t, "260829", parts[1])
	assert.Equal(t, "1432", parts[2])
	assert.Equal(t, "118", parts[3])
	assert.Len(t, parts[4], 4)
}

func TestGenerateOrderNumber_RandomSuffixVaries(t *testing.T) {
	at := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateOrderNumber(at)] = true
	}
	// Same timestamp, so only the random suffix distinguishes them.
	assert.Greater(t, len(seen), 1)
}

func TestValidOrderNumber(t *testing.T) {
	assert.True(t, ValidOrderNumber("BO-250829-1432-118-4821"))

	invalid := []string{
		"",
		"BO-INVALID",
		"XX-250829-1432-118-4821",
		"BO-250829-1432-118-482",
		"BO-250829-1432-118-48211",
		"bo-250829-1432-118-4821",
		"BO-250829-1432-118-4821 ",
	}
	for _, s := range invalid {
		assert.False(t, ValidOrderNumber(s), "should be invalid: %q", s)
	}
}
