package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, p.Items)
	assert.Equal(t, 3, p.Pagination.TotalPages)
	assert.Equal(t, 5, p.Pagination.TotalItems)
	assert.Equal(t, 2, p.Pagination.CurrentPage)

	last := Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, last.Items)

	past := Paginate(items, 9, 2)
	assert.Empty(t, past.Items)
	assert.NotNil(t, past.Items)
	assert.Equal(t, 3, past.Pagination.CurrentPage)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string(nil), 1, 10)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.Pagination.TotalPages)
	assert.Equal(t, 0, p.Pagination.TotalItems)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", DefaultPage, DefaultPageSize},
		{"?page=3&pageSize=5", 3, 5},
		{"?page=0&pageSize=500", DefaultPage, DefaultPageSize},
		{"?page=abc&pageSize=-1", DefaultPage, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)
			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, size)
		})
	}
}
