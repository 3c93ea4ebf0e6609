package domain

import "github.com/bytedance/sonic"

// Event bus topics. One event is published per successful mutation.
const (
	TopicItemUpdate     = "ITEM_UPDATE"
	TopicNewItem        = "NEW_ITEM"
	TopicItemDelete     = "ITEM_DELETE"
	TopicItemsDelete    = "ITEMS_DELETE"
	TopicItemsToggleAll = "ITEMS_TOGGLE_ALL"
)

// Event is the payload delivered to topic subscribers. Single-item
// topics carry Item; bulk topics carry Items, which may be empty but is
// never nil.
type Event struct {
	Item  *TodoItem
	Items []TodoItem
}

// ItemEvent wraps a single updated item.
func ItemEvent(item TodoItem) Event {
	return Event{Item: &item}
}

// ItemsEvent wraps a bulk mutation result.
func ItemsEvent(items []TodoItem) Event {
	if items == nil {
		items = []TodoItem{}
	}
	return Event{Items: items}
}

func (e Event) MarshalJSON() ([]byte, error) {
	if e.Item != nil {
		return sonic.ConfigStd.Marshal(struct {
			Item TodoItem `json:"item"`
		}{*e.Item})
	}
	items := e.Items
	if items == nil {
		items = []TodoItem{}
	}
	return sonic.ConfigStd.Marshal(struct {
		Items []TodoItem `json:"items"`
	}{items})
}
