package query

import (
	"errors"
	"testing"

	"todo-api/domain"
)

func item(id int64, text string, completed bool, createdMs int64) domain.TodoItem {
	return domain.TodoItem{
		ID:        id,
		Text:      text,
		Completed: completed,
		CreatedAt: domain.FromUnixMilli(createdMs),
	}
}

func fixture() []domain.TodoItem {
	return []domain.TodoItem{
		item(1, "charlie", false, 300),
		item(2, "alpha", true, 100),
		item(3, "bravo", false, 200),
		item(4, "delta", true, 400),
	}
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func edgeIDs(conn domain.Connection) []int64 {
	ids := make([]int64, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		ids = append(ids, e.Node.ID)
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTotalCountReflectsFilter(t *testing.T) {
	cases := []struct {
		name      string
		completed *bool
		want      int
	}{
		{"unfiltered", nil, 4},
		{"completed", boolPtr(true), 2},
		{"open", boolPtr(false), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn, err := Run(fixture(), Params{Completed: tc.completed})
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if conn.TotalCount != tc.want {
				t.Fatalf("expected totalCount %d, got %d", tc.want, conn.TotalCount)
			}
			if len(conn.Edges) != tc.want {
				t.Fatalf("expected %d edges, got %d", tc.want, len(conn.Edges))
			}
		})
	}
}

func TestOrderBySingleField(t *testing.T) {
	cases := []struct {
		name string
		by   OrderBy
		want []int64
	}{
		{"id asc", OrderBy{FieldID, Asc}, []int64{1, 2, 3, 4}},
		{"id desc", OrderBy{FieldID, Desc}, []int64{4, 3, 2, 1}},
		{"text asc", OrderBy{FieldText, Asc}, []int64{2, 3, 1, 4}},
		{"text desc", OrderBy{FieldText, Desc}, []int64{4, 1, 3, 2}},
		{"createdAt asc", OrderBy{FieldCreatedAt, Asc}, []int64{2, 3, 1, 4}},
		{"createdAt desc", OrderBy{FieldCreatedAt, Desc}, []int64{4, 1, 3, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn, err := Run(fixture(), Params{OrderBy: []OrderBy{tc.by}})
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got := edgeIDs(conn); !equalIDs(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMultipleOrderFieldsRejected(t *testing.T) {
	_, err := Run(fixture(), Params{
		OrderBy: []OrderBy{{FieldID, Asc}, {FieldText, Desc}},
	})
	if !errors.Is(err, ErrMultipleOrderFields) {
		t.Fatalf("expected ErrMultipleOrderFields, got %v", err)
	}
}

func TestUnknownOrderFieldRejected(t *testing.T) {
	_, err := Run(fixture(), Params{OrderBy: []OrderBy{{"notes", Asc}}})
	if !errors.Is(err, ErrUnknownOrderField) {
		t.Fatalf("expected ErrUnknownOrderField, got %v", err)
	}
}

func TestAfterCursorIsExclusive(t *testing.T) {
	conn, err := Run(fixture(), Params{After: "2"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := edgeIDs(conn); !equalIDs(got, []int64{3, 4}) {
		t.Fatalf("expected items after cursor 2, got %v", got)
	}
	if !conn.PageInfo.HasPreviousPage {
		t.Fatal("expected hasPreviousPage after skipping")
	}
	if conn.PageInfo.HasNextPage {
		t.Fatal("did not expect a next page")
	}
}

func TestAfterWithFirstTruncates(t *testing.T) {
	conn, err := Run(fixture(), Params{After: "1", First: intPtr(2)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := edgeIDs(conn); !equalIDs(got, []int64{2, 3}) {
		t.Fatalf("expected [2 3], got %v", got)
	}
	if !conn.PageInfo.HasNextPage {
		t.Fatal("expected hasNextPage with one item remaining")
	}
	if !conn.PageInfo.HasPreviousPage {
		t.Fatal("expected hasPreviousPage after cursor skip")
	}
	if conn.PageInfo.StartCursor != "2" || conn.PageInfo.EndCursor != "3" {
		t.Fatalf("unexpected cursors %q %q", conn.PageInfo.StartCursor, conn.PageInfo.EndCursor)
	}
}

func TestAfterMatchingNothingYieldsEmptyPage(t *testing.T) {
	conn, err := Run(fixture(), Params{After: "99"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(conn.Edges) != 0 {
		t.Fatalf("expected empty page, got %d edges", len(conn.Edges))
	}
	// Every record was discarded looking for the cursor, so the page
	// still reports a previous page and no next page.
	if !conn.PageInfo.HasPreviousPage {
		t.Fatal("expected hasPreviousPage when all records were skipped")
	}
	if conn.PageInfo.HasNextPage {
		t.Fatal("did not expect hasNextPage")
	}
	if conn.PageInfo.StartCursor != "" || conn.PageInfo.EndCursor != "" {
		t.Fatal("expected unset cursors on an empty page")
	}
	if conn.TotalCount != 4 {
		t.Fatalf("totalCount must ignore pagination, got %d", conn.TotalCount)
	}
}

func TestFirstWithoutAfter(t *testing.T) {
	conn, err := Run(fixture(), Params{First: intPtr(3)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := edgeIDs(conn); !equalIDs(got, []int64{1, 2, 3}) {
		t.Fatalf("expected first three, got %v", got)
	}
	if conn.PageInfo.HasPreviousPage {
		t.Fatal("hasPreviousPage must be false without a cursor")
	}
	if !conn.PageInfo.HasNextPage {
		t.Fatal("expected hasNextPage")
	}
}

func TestOrderAppliesBeforeCursor(t *testing.T) {
	// Ordered by text the set is [2 3 1 4]; the cursor cut happens on
	// that ordering, not on insertion order.
	conn, err := Run(fixture(), Params{
		OrderBy: []OrderBy{{FieldText, Asc}},
		After:   "3",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := edgeIDs(conn); !equalIDs(got, []int64{1, 4}) {
		t.Fatalf("expected [1 4], got %v", got)
	}
}

func TestFilterCombinesWithPagination(t *testing.T) {
	conn, err := Run(fixture(), Params{Completed: boolPtr(true), After: "2", First: intPtr(5)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := edgeIDs(conn); !equalIDs(got, []int64{4}) {
		t.Fatalf("expected [4], got %v", got)
	}
	if conn.TotalCount != 2 {
		t.Fatalf("expected totalCount 2, got %d", conn.TotalCount)
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	items := fixture()
	if _, err := Run(items, Params{OrderBy: []OrderBy{{FieldID, Desc}}}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if items[0].ID != 1 {
		t.Fatal("ordering mutated the input snapshot")
	}
}
