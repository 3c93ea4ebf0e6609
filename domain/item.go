package domain

import "strconv"

// TodoItem is a single task entry. IDs are assigned monotonically on
// creation and never reused; they serialize as strings on the wire.
type TodoItem struct {
	ID        int64    `json:"id,string"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	CreatedAt DateTime `json:"createdAt"`
}

// Cursor returns the item's pagination cursor, which is its id in
// decimal string form.
func (t TodoItem) Cursor() string {
	return strconv.FormatInt(t.ID, 10)
}
