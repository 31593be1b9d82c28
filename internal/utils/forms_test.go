package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int32(42), id)

	for _, bad := range []string{"", "0", "-3", "abc", "99999999999"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseOptionalID(t *testing.T) {
	id, err := ParseOptionalID("")
	assert.NoError(t, err)
	assert.Nil(t, id)

	id, err = ParseOptionalID("7")
	require.NoError(t, err)
	assert.Equal(t, int32(7), *id)
}

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList([]string{"1,2", "", "3"})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, ids)

	_, err = ParseIDList([]string{"1,x"})
	assert.Error(t, err)
}

func TestPagination(t *testing.T) {
	limit, offset, page := Pagination("3", 12)
	assert.Equal(t, int32(12), limit)
	assert.Equal(t, int32(24), offset)
	assert.Equal(t, int32(3), page)

	_, offset, page = Pagination("nope", 12)
	assert.Zero(t, offset)
	assert.Equal(t, int32(1), page)

	assert.Equal(t, int32(1), TotalPages(0, 12))
	assert.Equal(t, int32(2), TotalPages(13, 12))
	assert.Equal(t, int32(1), TotalPages(12, 12))
}
