package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ParseIntDefault("5", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("abc", 1))
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	offset, limit := Calculate(1, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Calculate(3, 10)
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Calculate(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, DefaultPageSize, limit)

	// Oversized requests are clamped.
	offset, limit = Calculate(2, 500)
	assert.Equal(t, MaxPageSize, offset)
	assert.Equal(t, MaxPageSize, limit)
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(5, 0))
}
