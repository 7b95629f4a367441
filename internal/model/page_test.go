package model

import (
	"testing"

	"github.com/deppfellow/review-api/internal/errs"
	"github.com/deppfellow/review-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageQueryValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		q := &PageQuery{}
		require.NoError(t, q.Validate())
		assert.Equal(t, Page{Offset: 0, Limit: 3}, q.Page())
	})

	t.Run("Explicit", func(t *testing.T) {
		q := &PageQuery{Offset: "4", Limit: "100"}
		require.NoError(t, q.Validate())
		assert.Equal(t, Page{Offset: 4, Limit: 100}, q.Page())
		assert.Equal(t, 104, q.Page().NextOffset())
	})

	invalid := []PageQuery{
		{Offset: "-1"},
		{Offset: "abc"},
		{Limit: "0"},
		{Limit: "101"},
		{Limit: "2.5"},
		{Offset: "1", Limit: "-3"},
	}
	for _, q := range invalid {
		t.Run("Invalid_"+q.Offset+"_"+q.Limit, func(t *testing.T) {
			err := q.Validate()
			require.Error(t, err)

			var custom validation.CustomValidationErrors
			require.ErrorAs(t, err, &custom)
			assert.Equal(t, errs.MsgInvalidPagination, custom[0].Message)
		})
	}
}

func TestNewPageResult(t *testing.T) {
	page := Page{Offset: 0, Limit: 2}

	full := NewPageResult([]int{1, 2, 3}, page)
	assert.Equal(t, []int{1, 2}, full.Items)
	assert.True(t, full.HasMore)

	last := NewPageResult([]int{5}, page)
	assert.Equal(t, []int{5}, last.Items)
	assert.False(t, last.HasMore)
}
