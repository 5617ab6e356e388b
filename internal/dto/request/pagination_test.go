package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedRequest(t *testing.T) {
	tests := []struct {
		name                  string
		page, perPage         int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, DefaultPerPage, 0},
		{"third page", 3, 20, 20, 40},
		{"capped", 2, 500, MaxPerPage, MaxPerPage},
		{"negative page", -4, 5, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewPaginatedRequest(tt.page, tt.perPage)
			assert.Equal(t, tt.wantLimit, req.Limit())
			assert.Equal(t, tt.wantOffset, req.Offset())
		})
	}
}

func TestPaginatedRequest_LimitWithoutConstructor(t *testing.T) {
	assert.Equal(t, DefaultPerPage, PaginatedRequest{Page: 2}.Limit())
	assert.Equal(t, DefaultPerPage, PaginatedRequest{Page: 2}.Offset())
}
