package api

import (
	"context"

	"todo-api/domain"
	"todo-api/query"
)

// Querier runs the items query over the current record set.
type Querier interface {
	Items(p query.Params) (domain.Connection, error)
}

// Commander applies mutations. Expected failures such as a missing id
// come back inside the result.
type Commander interface {
	AddItem(text string) domain.ItemResult
	ToggleItem(id int64, completed bool) domain.ItemResult
	ToggleItems(ids []int64, completed bool) domain.ItemsResult
	ChangeTextItem(id int64, text string) domain.ItemResult
	DeleteItem(id int64) domain.ItemResult
	DeleteCompleteItems(ids []int64) domain.ItemsResult
}

// Subscriber provides per-topic event streams. The returned channel is
// closed when ctx is cancelled.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) <-chan domain.Event
}

// Deduper prevents reprocessing of duplicate commands.
type Deduper interface {
	// Add records the idempotency key and returns true if it was newly added.
	Add(ctx context.Context, key string) (bool, error)
	// Remove deletes a previously added key.
	Remove(ctx context.Context, key string) error
}
