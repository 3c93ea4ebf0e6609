package domain

// Connection is a page of items with cursor pagination metadata. It is
// built fresh for every query and never cached.
type Connection struct {
	TotalCount int      `json:"totalCount"`
	PageInfo   PageInfo `json:"pageInfo"`
	Edges      []Edge   `json:"edges"`
}

// PageInfo describes the page's position within the filtered set. The
// cursors are unset on an empty page.
type PageInfo struct {
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
}

// Edge pairs an item with its cursor.
type Edge struct {
	Cursor string   `json:"cursor"`
	Node   TodoItem `json:"node"`
}
