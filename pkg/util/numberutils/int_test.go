package numberutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIntWithDefault(t *testing.T) {
	assert.Equal(t, 7, ToIntWithDefault("7", 0))
	assert.Equal(t, 10, ToIntWithDefault("", 10))
	assert.Equal(t, 10, ToIntWithDefault("abc", 10))
	assert.Equal(t, -3, ToIntWithDefault("-3", 0))
}

func TestToUintWithError(t *testing.T) {
	v, err := ToUintWithError("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), v)

	_, err = ToUintWithError("-1")
	assert.Error(t, err)

	_, err = ToUintWithError("abc")
	assert.Error(t, err)
}
