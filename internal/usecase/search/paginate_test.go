package search

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/feedlens/internal/domain"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
		{26, 5, 6},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.n, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestPaginate_Slices(t *testing.T) {
	items := seq(7)
	page, total, err := Paginate(items, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if !reflect.DeepEqual(page, []int{3, 4, 5}) {
		t.Errorf("page = %v", page)
	}

	last, _, err := Paginate(items, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(last, []int{6}) {
		t.Errorf("last page = %v", last)
	}
}

func TestPaginate_EmptyFirstPage(t *testing.T) {
	page, total, err := Paginate([]int{}, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(page) != 0 {
		t.Errorf("page = %v, total = %d; want empty page and total 1", page, total)
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	_, total, err := Paginate(seq(5), 3, 5)
	if !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	var oor *domain.OutOfRangeError
	if !errors.As(err, &oor) || oor.Requested != 3 || oor.TotalPages != 1 {
		t.Errorf("OutOfRangeError = %+v", oor)
	}
}

func TestPaginate_InvalidInput(t *testing.T) {
	if _, _, err := Paginate(seq(5), 0, 5); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("page 0: err = %v", err)
	}
	if _, _, err := Paginate(seq(5), 1, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("size 0: err = %v", err)
	}
}

// Concatenating every page reproduces the input exactly once.
func TestPaginate_Completeness(t *testing.T) {
	for n := 0; n <= 23; n++ {
		for size := 1; size <= 8; size++ {
			items := seq(n)
			total := TotalPages(n, size)
			var all []int
			for p := 1; p <= total; p++ {
				page, gotTotal, err := Paginate(items, p, size)
				if err != nil {
					t.Fatalf("n=%d size=%d page=%d: %v", n, size, p, err)
				}
				if gotTotal != total {
					t.Fatalf("n=%d size=%d: total %d != %d", n, size, gotTotal, total)
				}
				all = append(all, page...)
			}
			if all == nil {
				all = []int{}
			}
			if !reflect.DeepEqual(all, items) {
				t.Fatalf("n=%d size=%d: concatenated %v", n, size, all)
			}
		}
	}
}
