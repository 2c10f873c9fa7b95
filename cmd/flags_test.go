package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/clipbar/pkg/resize"
)

func TestOrientationValue(t *testing.T) {
	var v orientationValue
	assert.Equal(t, "", v.String())
	assert.Equal(t, "orientation", v.Type())

	require.NoError(t, v.Set("v"))
	assert.True(t, v.set)
	assert.Equal(t, resize.Vertical, v.value)
	assert.Equal(t, "vertical", v.String())

	require.Error(t, v.Set("sideways"))
	assert.Equal(t, resize.Vertical, v.value)
}

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{
		"debug=true",
		"count=3",
		"user.role=admin",
		"user.level=1.5",
		"name=",
		"raw=[1, 2]",
		"expr=a=b",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"debug": true,
		"count": 3,
		"user":  map[string]any{"role": "admin", "level": 1.5},
		"name":  "",
		"raw":   "[1, 2]",
		"expr":  "a=b",
	}, got)

	for _, bad := range []string{"novalue", "=x", " =x"} {
		_, err := parseSets([]string{bad})
		require.Error(t, err, bad)
	}
}
