// internal/domain/page_test.go
package domain

import (
	"math"
	"testing"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                  string
		total, page, size     int64
		wantStart, wantEnd    int64
		wantSize, wantLast    int64
	}{
		{name: "Defaults", total: 25, page: 0, size: 0, wantStart: 0, wantEnd: 10, wantSize: 10, wantLast: 3},
		{name: "Last partial page", total: 25, page: 3, size: 10, wantStart: 20, wantEnd: 25, wantSize: 10, wantLast: 3},
		{name: "Past the end", total: 25, page: 4, size: 10, wantStart: 25, wantEnd: 25, wantSize: 10, wantLast: 3},
		{name: "Empty list", total: 0, page: 1, size: 10, wantStart: 0, wantEnd: 0, wantSize: 10, wantLast: 0},
		{name: "Size clamped", total: 250, page: 2, size: 1000, wantStart: 100, wantEnd: 200, wantSize: MaxPageSize, wantLast: 3},
		{name: "Huge size", total: 3, page: 2, size: math.MaxInt64, wantStart: 3, wantEnd: 3, wantSize: MaxPageSize, wantLast: 1},
		{name: "Huge page", total: 3, page: math.MaxInt64, size: 10, wantStart: 3, wantEnd: 3, wantSize: 10, wantLast: 1},
		{name: "Huge page and size", total: 3, page: math.MaxInt64, size: math.MaxInt64, wantStart: 3, wantEnd: 3, wantSize: MaxPageSize, wantLast: 1},
		{name: "Negative page", total: 3, page: -5, size: 2, wantStart: 0, wantEnd: 2, wantSize: 2, wantLast: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.page, tt.size)
			if p.Start != tt.wantStart || p.End != tt.wantEnd || p.Size != tt.wantSize || p.LastPage != tt.wantLast {
				t.Errorf("Paginate(%d, %d, %d) = %+v, want start %d end %d size %d last %d",
					tt.total, tt.page, tt.size, p, tt.wantStart, tt.wantEnd, tt.wantSize, tt.wantLast)
			}
			if p.Start < 0 || p.End < p.Start || p.End > tt.total {
				t.Errorf("Paginate(%d, %d, %d) bounds out of range: %+v", tt.total, tt.page, tt.size, p)
			}
		})
	}
}
