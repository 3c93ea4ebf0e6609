package query

import (
	"strconv"
	"testing"

	"todo-api/domain"
)

func BenchmarkRunCursorScan(b *testing.B) {
	items := make([]domain.TodoItem, 10000)
	for i := range items {
		items[i] = domain.TodoItem{
			ID:        int64(i + 1),
			Text:      "item " + strconv.Itoa(i),
			Completed: i%2 == 0,
			CreatedAt: domain.FromUnixMilli(int64(i)),
		}
	}
	completed := false
	first := 50
	p := Params{
		Completed: &completed,
		After:     "5001",
		First:     &first,
		OrderBy:   []OrderBy{{FieldCreatedAt, Desc}},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(items, p); err != nil {
			b.Fatal(err)
		}
	}
}
