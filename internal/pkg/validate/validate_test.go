package validate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingNone(t *testing.T) {
	assert.NoError(t, Missing(nil))
	assert.NoError(t, Missing([]string{}))
}

func TestMissingEnumeratesFields(t *testing.T) {
	err := Missing([]string{"title", "salary"})
	require.Error(t, err)
	assert.Equal(t, "missing required fields: title, salary", err.Error())
}

func TestAsError(t *testing.T) {
	err := Missing([]string{"title"})
	ve, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"title"}, ve.Fields)

	wrapped := fmt.Errorf("create: %w", err)
	_, ok = AsError(wrapped)
	assert.True(t, ok)

	_, ok = AsError(errors.New("other"))
	assert.False(t, ok)
}
