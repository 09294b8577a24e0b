package helpers_test

import (
	"testing"

	"github.com/cengizhan/substack-sync/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", helpers.Hash([]byte("")))
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", helpers.Hash([]byte("hello world")))
	// Deterministic
	assert.Equal(t, helpers.Hash([]byte("abc")), helpers.Hash([]byte("abc")))
}
