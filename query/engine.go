package query

import "todo-api/domain"

// Source provides a point-in-time copy of the item set.
type Source interface {
	All() []domain.TodoItem
}

// Engine executes item queries against a snapshot source. It never
// mutates the underlying set.
type Engine struct {
	src Source
}

// NewEngine creates an engine reading from src.
func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// Items runs one query over the current snapshot.
func (e *Engine) Items(p Params) (domain.Connection, error) {
	return Run(e.src.All(), p)
}
