package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("", "tags")
	require.NoError(t, err)
	assert.Nil(t, ids)

	ids, err = parseIDList("1", "tags")
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids)

	ids, err = parseIDList("3,1,2", "tags")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 2}, ids)

	ids, err = parseIDList(" 1 , 2 ", "tags")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, ids)

	for _, bad := range []string{"abc", "1,abc", "1,,2", "-1", "1.5"} {
		_, err := parseIDList(bad, "tags")
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseAssignedOnly(t *testing.T) {
	assert.False(t, parseAssignedOnly(""))
	assert.False(t, parseAssignedOnly("0"))
	assert.True(t, parseAssignedOnly("1"))
	assert.True(t, parseAssignedOnly("2"))
	assert.False(t, parseAssignedOnly("yes"))
}
