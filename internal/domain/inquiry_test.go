package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	t.Run("ZeroValuesGetDefaults", func(t *testing.T) {
		p := Pagination{}
		p.Normalize()
		assert.Equal(t, int64(1), p.Page)
		assert.Equal(t, int64(10), p.Limit)
	})

	t.Run("OversizedLimitIsClamped", func(t *testing.T) {
		p := Pagination{Page: 2, Limit: 5000}
		p.Normalize()
		assert.Equal(t, int64(2), p.Page)
		assert.Equal(t, int64(100), p.Limit)
	})

	t.Run("SkipIsZeroBasedOffset", func(t *testing.T) {
		p := Pagination{Page: 4, Limit: 25}
		assert.Equal(t, int64(75), p.Skip())
	})
}

func TestSortAllowed(t *testing.T) {
	assert.True(t, SortAllowed("propertyPrice", PropertySorts))
	assert.True(t, SortAllowed("memberRank", AgentSorts))
	assert.False(t, SortAllowed("memberRank", MemberSorts))
	assert.False(t, SortAllowed("propertyAddress", PropertySorts))
	assert.False(t, SortAllowed("", PropertySorts))
}

func TestDirectionIsValid(t *testing.T) {
	assert.True(t, DirectionAsc.IsValid())
	assert.True(t, DirectionDesc.IsValid())
	assert.False(t, Direction(0).IsValid())
	assert.False(t, Direction(2).IsValid())
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, MemberStatusBlock.IsValid())
	assert.False(t, MemberStatus("SUSPENDED").IsValid())
	assert.True(t, PropertyStatusSold.IsValid())
	assert.False(t, PropertyStatus("ARCHIVED").IsValid())
}
