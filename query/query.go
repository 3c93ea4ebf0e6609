package query

import (
	"errors"
	"sort"
	"strings"

	"todo-api/domain"
)

// Order field names. Exactly one field may be ordered on per query.
const (
	FieldID        = "id"
	FieldText      = "text"
	FieldCreatedAt = "createdAt"
)

// Direction of an ordering.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// OrderBy pairs an item field with a sort direction.
type OrderBy struct {
	Field     string
	Direction Direction
}

// Params are the inputs of the items query. Absent values mean "no
// constraint": a nil Completed disables filtering, a nil First returns
// everything after the cursor cut, an empty After starts at the front.
type Params struct {
	Completed *bool
	After     string
	First     *int
	OrderBy   []OrderBy
}

var (
	// ErrMultipleOrderFields rejects a query ordering on more than one field.
	ErrMultipleOrderFields = errors.New("only one orderBy field at a time is supported")
	// ErrUnknownOrderField rejects an ordering on a field that does not exist.
	ErrUnknownOrderField = errors.New("unknown orderBy field")
)

// Run computes one page over a snapshot of the item set: filter, then
// order, then an after-exclusive linear cursor scan, then truncation to
// First. The scan deliberately walks the ordered set from the front and
// discards up to and including the cursor match; a cursor that matches
// nothing discards everything and yields an empty page.
func Run(items []domain.TodoItem, p Params) (domain.Connection, error) {
	if len(p.OrderBy) > 1 {
		return domain.Connection{}, ErrMultipleOrderFields
	}

	filtered := items
	if p.Completed != nil {
		filtered = make([]domain.TodoItem, 0, len(items))
		for _, item := range items {
			if item.Completed == *p.Completed {
				filtered = append(filtered, item)
			}
		}
	}

	target := make([]domain.TodoItem, len(filtered))
	copy(target, filtered)

	if len(p.OrderBy) == 1 {
		if err := order(target, p.OrderBy[0]); err != nil {
			return domain.Connection{}, err
		}
	}

	// Discard from the front until the cursor item itself has been
	// discarded; a cursor that matches nothing discards everything.
	skipped := 0
	if p.After != "" {
		var head *domain.TodoItem
		for len(target) > 0 && (head == nil || head.Cursor() != p.After) {
			head = &target[0]
			target = target[1:]
			skipped++
		}
	}

	if p.First != nil {
		n := *p.First
		if n < 0 {
			n = 0
		}
		if n < len(target) {
			target = target[:n]
		}
	}

	conn := domain.Connection{
		TotalCount: len(filtered),
		PageInfo: domain.PageInfo{
			HasNextPage:     len(target)+skipped < len(filtered),
			HasPreviousPage: skipped > 0,
		},
		Edges: make([]domain.Edge, 0, len(target)),
	}
	if len(target) > 0 {
		conn.PageInfo.StartCursor = target[0].Cursor()
		conn.PageInfo.EndCursor = target[len(target)-1].Cursor()
	}
	for _, item := range target {
		conn.Edges = append(conn.Edges, domain.Edge{Cursor: item.Cursor(), Node: item})
	}
	return conn, nil
}

func order(items []domain.TodoItem, by OrderBy) error {
	var less func(a, b domain.TodoItem) bool
	switch by.Field {
	case FieldID:
		less = func(a, b domain.TodoItem) bool { return a.ID < b.ID }
	case FieldText:
		less = func(a, b domain.TodoItem) bool { return strings.Compare(a.Text, b.Text) < 0 }
	case FieldCreatedAt:
		less = func(a, b domain.TodoItem) bool { return a.CreatedAt.UnixMilli() < b.CreatedAt.UnixMilli() }
	default:
		return ErrUnknownOrderField
	}
	sort.SliceStable(items, func(i, j int) bool {
		if by.Direction == Desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
	return nil
}
