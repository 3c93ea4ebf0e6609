package domain

import (
	"strings"
	"testing"
)

func TestItemEventMarshalsItemPayload(t *testing.T) {
	ev := ItemEvent(TodoItem{ID: 3, Text: "walk dog"})
	data, err := ev.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"item":{`) || !strings.Contains(body, `"id":"3"`) {
		t.Fatalf("unexpected payload %s", body)
	}
}

func TestItemsEventMarshalsEmptySetAsEmptyArray(t *testing.T) {
	ev := ItemsEvent(nil)
	data, err := ev.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", data)
	}
}

func TestItemsEventMarshalsItemsPayload(t *testing.T) {
	ev := ItemsEvent([]TodoItem{{ID: 1}, {ID: 2}})
	data, err := ev.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"items":[`) || !strings.Contains(body, `"id":"2"`) {
		t.Fatalf("unexpected payload %s", body)
	}
}
