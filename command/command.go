package command

import (
	"time"

	"todo-api/domain"
	"todo-api/pubsub"
	"todo-api/store"
)

// Processor validates and applies mutations. Every successful mutation
// publishes exactly one event, after the store write has committed.
// Expected failures come back inside the result, never as a Go error.
type Processor struct {
	store *store.Store
	bus   *pubsub.Bus
	now   func() time.Time
}

// New creates a processor writing to st and publishing to bus.
func New(st *store.Store, bus *pubsub.Bus) *Processor {
	return &Processor{store: st, bus: bus, now: time.Now}
}

// AddItem creates an item with a fresh id and appends it to the end of
// the set. New items land at the end on purpose, even though clients
// display newest first: a paginating consumer later encounters the item
// inside a page it has not fetched yet, which is the arrival pattern the
// pagination code has to survive.
func (p *Processor) AddItem(text string) domain.ItemResult {
	item := domain.TodoItem{
		ID:        p.store.NextID(),
		Text:      text,
		Completed: false,
		CreatedAt: domain.NewDateTime(p.now()),
	}
	p.store.Insert(item)
	p.bus.Publish(domain.TopicNewItem, domain.ItemEvent(item))
	return domain.ItemResult{Item: &item}
}

// ToggleItem sets the completed flag of one item.
func (p *Processor) ToggleItem(id int64, completed bool) domain.ItemResult {
	item, ok := p.store.Update(id, func(it *domain.TodoItem) {
		it.Completed = completed
	})
	if !ok {
		return domain.ItemResult{Error: domain.NotFoundError("could not find item")}
	}
	p.bus.Publish(domain.TopicItemUpdate, domain.ItemEvent(item))
	return domain.ItemResult{Item: &item}
}

// ToggleItems sets the completed flag on every id that resolves,
// silently skipping the rest. It fails only when nothing resolved, and
// publishes a single toggle-all event carrying the full updated set.
func (p *Processor) ToggleItems(ids []int64, completed bool) domain.ItemsResult {
	updated := make([]domain.TodoItem, 0, len(ids))
	for _, id := range ids {
		item, ok := p.store.Update(id, func(it *domain.TodoItem) {
			it.Completed = completed
		})
		if !ok {
			continue
		}
		updated = append(updated, item)
	}
	if len(updated) == 0 {
		return domain.ItemsResult{Error: domain.NotFoundError("could not find any items")}
	}
	p.bus.Publish(domain.TopicItemsToggleAll, domain.ItemsEvent(updated))
	return domain.ItemsResult{Items: updated}
}

// ChangeTextItem replaces the text of one item.
func (p *Processor) ChangeTextItem(id int64, text string) domain.ItemResult {
	item, ok := p.store.Update(id, func(it *domain.TodoItem) {
		it.Text = text
	})
	if !ok {
		return domain.ItemResult{Error: domain.NotFoundError("could not find item")}
	}
	p.bus.Publish(domain.TopicItemUpdate, domain.ItemEvent(item))
	return domain.ItemResult{Item: &item}
}

// DeleteItem removes one item.
func (p *Processor) DeleteItem(id int64) domain.ItemResult {
	item, ok := p.store.RemoveByID(id)
	if !ok {
		return domain.ItemResult{Error: domain.NotFoundError("could not find item")}
	}
	p.bus.Publish(domain.TopicItemDelete, domain.ItemEvent(item))
	return domain.ItemResult{Item: &item}
}

// DeleteCompleteItems removes every id that resolves to a completed
// item; ids that are absent or still open are skipped. Unlike
// ToggleItems this never fails on an empty match: the delete event is
// published either way, possibly with an empty set.
func (p *Processor) DeleteCompleteItems(ids []int64) domain.ItemsResult {
	deleted := make([]domain.TodoItem, 0, len(ids))
	for _, id := range ids {
		removed, ok := p.store.RemoveByIDIf(id, func(it domain.TodoItem) bool {
			return it.Completed
		})
		if !ok {
			continue
		}
		deleted = append(deleted, removed)
	}
	p.bus.Publish(domain.TopicItemsDelete, domain.ItemsEvent(deleted))
	return domain.ItemsResult{Items: deleted}
}
