package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"defaults applied", Pagination{Page: 0, Limit: 0}, Pagination{Page: 1, Limit: DefaultLimit}},
		{"negative page", Pagination{Page: -3, Limit: 10}, Pagination{Page: 1, Limit: 10}},
		{"limit capped", Pagination{Page: 2, Limit: 500}, Pagination{Page: 2, Limit: MaxLimit}},
		{"valid untouched", Pagination{Page: 4, Limit: 12}, Pagination{Page: 4, Limit: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(Pagination{Page: 1, Limit: 12}, 25)
	assert.Equal(t, int64(25), info.Total)
	assert.Equal(t, 3, info.Pages)

	info = NewPageInfo(Pagination{Page: 1, Limit: 12}, 24)
	assert.Equal(t, 2, info.Pages)

	info = NewPageInfo(Pagination{Page: 1, Limit: 12}, 0)
	assert.Equal(t, 0, info.Pages)
	assert.Equal(t, int64(0), info.Total)
}

func TestNewPageInfoPastTheEndKeepsTotals(t *testing.T) {
	// Requesting page 99 of a 2-page result reports the same totals.
	info := NewPageInfo(Pagination{Page: 99, Limit: 12}, 20)
	assert.Equal(t, 99, info.Page)
	assert.Equal(t, int64(20), info.Total)
	assert.Equal(t, 2, info.Pages)
}
