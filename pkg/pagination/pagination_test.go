package pagination_test

import (
	"math"
	"testing"

	"github.com/JaimeStill/system-api/pkg/pagination"
)

func TestPageRequest_Normalize(t *testing.T) {
	cfg := pagination.Config{
		DefaultLimit: 20,
		MaxLimit:     100,
	}

	tests := []struct {
		name       string
		request    pagination.PageRequest
		wantOffset int
		wantLimit  int
	}{
		{"valid values unchanged", pagination.PageRequest{Offset: 40, Limit: 25}, 40, 25},
		{"negative offset becomes 0", pagination.PageRequest{Offset: -5, Limit: 25}, 0, 25},
		{"zero limit gets default", pagination.PageRequest{Offset: 0, Limit: 0}, 0, 20},
		{"negative limit gets default", pagination.PageRequest{Offset: 0, Limit: -10}, 0, 20},
		{"limit exceeding max gets capped", pagination.PageRequest{Offset: 0, Limit: 500}, 0, 100},
		{"offset above bound gets capped", pagination.PageRequest{Offset: math.MaxInt, Limit: 10}, pagination.MaxOffset, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Normalize(cfg)

			if tt.request.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", tt.request.Offset, tt.wantOffset)
			}
			if tt.request.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", tt.request.Limit, tt.wantLimit)
			}
		})
	}
}

func TestApply(t *testing.T) {
	items := make([]int, 250)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      pagination.PageRequest
		wantLen   int
		wantFirst int
		wantNext  bool
		wantPrev  bool
	}{
		{"first page", pagination.PageRequest{Offset: 0, Limit: 100}, 100, 0, true, false},
		{"middle page", pagination.PageRequest{Offset: 100, Limit: 100}, 100, 100, true, true},
		{"last partial page", pagination.PageRequest{Offset: 200, Limit: 100}, 50, 200, false, true},
		{"offset beyond total", pagination.PageRequest{Offset: 300, Limit: 100}, 0, -1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.Apply(items, tt.page)

			if result.Total != 250 {
				t.Errorf("Total = %d, want 250", result.Total)
			}
			if len(result.Data) != tt.wantLen {
				t.Fatalf("len(Data) = %d, want %d", len(result.Data), tt.wantLen)
			}
			if tt.wantLen > 0 && result.Data[0] != tt.wantFirst {
				t.Errorf("Data[0] = %d, want %d", result.Data[0], tt.wantFirst)
			}
			if result.HasNext() != tt.wantNext {
				t.Errorf("HasNext() = %v, want %v", result.HasNext(), tt.wantNext)
			}
			if result.HasPrev() != tt.wantPrev {
				t.Errorf("HasPrev() = %v, want %v", result.HasPrev(), tt.wantPrev)
			}
		})
	}
}

func TestPageResult_HasNextLargeOffset(t *testing.T) {
	result := pagination.PageResult[int]{Total: 5, Offset: math.MaxInt - 1, Limit: 100}
	if result.HasNext() {
		t.Error("HasNext() = true for an offset past the total")
	}
}

func TestPageResult_LastOffset(t *testing.T) {
	tests := []struct {
		total int
		limit int
		want  int
	}{
		{0, 10, 0},
		{10, 10, 0},
		{11, 10, 10},
		{250, 100, 200},
	}

	for _, tt := range tests {
		result := pagination.PageResult[int]{Total: tt.total, Limit: tt.limit}
		if got := result.LastOffset(); got != tt.want {
			t.Errorf("LastOffset(total=%d, limit=%d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     pagination.Config
		want    pagination.Config
		wantErr bool
	}{
		{"defaults", pagination.Config{}, pagination.Config{DefaultLimit: 100, MaxLimit: 100}, false},
		{"default follows max", pagination.Config{MaxLimit: 50}, pagination.Config{DefaultLimit: 50, MaxLimit: 50}, false},
		{"explicit values", pagination.Config{DefaultLimit: 10, MaxLimit: 40}, pagination.Config{DefaultLimit: 10, MaxLimit: 40}, false},
		{"default above max", pagination.Config{DefaultLimit: 60, MaxLimit: 40}, pagination.Config{}, true},
		{"max above hard cap", pagination.Config{MaxLimit: 500}, pagination.Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.want {
				t.Errorf("Finalize() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}
