package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "metadots.com", extractOriginHost("https://metadots.com"))
	assert.Equal(t, "metadots.com:8443", extractOriginHost("https://metadots.com:8443/path"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("metadots.com", "metadots.com"))
	assert.True(t, matchOriginPattern("*.metadots.com", "admin.metadots.com"))
	assert.False(t, matchOriginPattern("*.metadots.com", "metadotsxcom"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:3000"))
	assert.False(t, matchOriginPattern("metadots.com", "evil.com"))
}
