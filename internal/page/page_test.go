package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/copycorner/internal/page"
)

func TestRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   page.Request
		want page.Request
	}{
		{name: "Defaults", in: page.Request{}, want: page.Request{Page: 1, PerPage: 10}},
		{name: "Negative", in: page.Request{Page: -3, PerPage: -1}, want: page.Request{Page: 1, PerPage: 10}},
		{name: "Capped", in: page.Request{Page: 2, PerPage: 500}, want: page.Request{Page: 2, PerPage: 100}},
		{name: "Unchanged", in: page.Request{Page: 4, PerPage: 25}, want: page.Request{Page: 4, PerPage: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestNewInfo(t *testing.T) {
	t.Run("CeilTotalPages", func(t *testing.T) {
		info := page.NewInfo(page.Request{Page: 1, PerPage: 10}, 21)
		assert.Equal(t, 3, info.TotalPages)
		assert.Equal(t, 1, info.Page)
	})

	t.Run("PastLastPageClampsToLast", func(t *testing.T) {
		info := page.NewInfo(page.Request{Page: 9, PerPage: 10}, 21)
		assert.Equal(t, 3, info.Page)
	})

	t.Run("EmptyKeepsRequestedPage", func(t *testing.T) {
		info := page.NewInfo(page.Request{Page: 2, PerPage: 10}, 0)
		assert.Equal(t, 0, info.TotalPages)
		assert.Equal(t, 2, info.Page)
	})
}

func TestRequest_OffsetAndClamp(t *testing.T) {
	assert.Equal(t, 20, page.Request{Page: 3, PerPage: 10}.Offset())
	assert.Equal(t, 0, page.Request{}.Offset())

	clamped := page.Request{Page: 7, PerPage: 5}.Clamp(12)
	assert.Equal(t, page.Request{Page: 3, PerPage: 5}, clamped)
	assert.Equal(t, 10, clamped.Offset())
}
