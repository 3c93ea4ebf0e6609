package api

import (
	"strconv"

	"github.com/bytedance/sonic"

	"todo-api/domain"
)

const postCommandMaxSize = 64 * 1024 // 64 KiB

// Command names accepted by POST /api/commands.
const (
	cmdAddItem             = "addItem"
	cmdDeleteItem          = "deleteItem"
	cmdChangeTextItem      = "changeTextItem"
	cmdToggleItem          = "toggleItem"
	cmdToggleItems         = "toggleItems"
	cmdDeleteCompleteItems = "deleteCompleteItems"
)

// subscriptionTopics maps stream names to event bus topics, 1:1.
var subscriptionTopics = map[string]string{
	"itemUpdate": domain.TopicItemUpdate,
	"newItem":    domain.TopicNewItem,
	"itemDel":    domain.TopicItemDelete,
	"itemsDel":   domain.TopicItemsDelete,
	"toggleAll":  domain.TopicItemsToggleAll,
}

// commandRequest is one entry of a POST /api/commands batch. Data holds
// the command-specific payload and is decoded per command name.
type commandRequest struct {
	IdempotencyKey string                 `json:"idempotencyKey"`
	Type           string                 `json:"type"`
	Data           sonic.NoCopyRawMessage `json:"data,omitempty"`
}

// commandsResponse is the POST /api/commands body: one result per
// submitted command, in order.
type commandsResponse struct {
	Results []commandResult `json:"results"`
}

// commandResult mirrors the mutation result shapes: a populated error or
// the affected item(s), never both.
type commandResult struct {
	IdempotencyKey string            `json:"idempotencyKey"`
	Error          *domain.Error     `json:"error"`
	Item           *domain.TodoItem  `json:"item,omitempty"`
	Items          []domain.TodoItem `json:"items,omitempty"`
}

// Per-command payloads. Item ids arrive as strings, matching the wire
// form of TodoItem.ID.
type addItemData struct {
	Text string `json:"text"`
}

type itemTargetData struct {
	Item string `json:"item"`
}

type changeTextData struct {
	Item string `json:"item"`
	Text string `json:"text"`
}

type toggleItemData struct {
	Item      string `json:"item"`
	Completed bool   `json:"completed"`
}

type toggleItemsData struct {
	Items     []string `json:"items"`
	Completed bool     `json:"completed"`
}

type deleteItemsData struct {
	Items []string `json:"items"`
}

// parseItemID converts a wire id to its numeric form. An unparseable id
// maps to zero, which no stored item ever has, so it behaves like any
// other id that does not resolve.
func parseItemID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func parseItemIDs(ss []string) []int64 {
	ids := make([]int64, 0, len(ss))
	for _, s := range ss {
		ids = append(ids, parseItemID(s))
	}
	return ids
}
