package ethaddr

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAddress(t *testing.T) {
	pattern := regexp.MustCompile(`^0x[0-9a-f]{40}$`)

	addr := NewAddress()
	assert.Regexp(t, pattern, addr)

	other := NewAddress()
	assert.NotEqual(t, addr, other)
}

func TestNewTxHash(t *testing.T) {
	pattern := regexp.MustCompile(`^0x[0-9a-f]{64}$`)

	hash := NewTxHash()
	assert.Regexp(t, pattern, hash)

	other := NewTxHash()
	assert.NotEqual(t, hash, other)
}
