package pagination

import "testing"

func TestPageCount(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
		{13, 0, 3}, // zero size falls back to the default
	}
	for _, tc := range cases {
		if got := PageCount(tc.total, tc.size); got != tc.want {
			t.Fatalf("PageCount(%d,%d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestPaginateSlicesHalfOpenWindow(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	page, meta := Paginate(items, 2, 5)
	if meta.TotalPages != 3 || meta.TotalItems != 13 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if len(page) != 5 || page[0] != 5 || page[4] != 9 {
		t.Fatalf("page 2 should hold items [5,10), got %v", page)
	}

	page, _ = Paginate(items, 3, 5)
	if len(page) != 3 || page[0] != 10 {
		t.Fatalf("last page should hold the remainder, got %v", page)
	}

	page, meta = Paginate(items, 9, 5)
	if len(page) != 0 || meta.Page != 9 {
		t.Fatalf("out-of-range page should be empty, got %v %+v", page, meta)
	}
}

func TestParsePage(t *testing.T) {
	if ParsePage("3") != 3 {
		t.Fatal("expected 3")
	}
	for _, raw := range []string{"", "0", "-2", "x"} {
		if ParsePage(raw) != 1 {
			t.Fatalf("ParsePage(%q) should be 1", raw)
		}
	}
}
