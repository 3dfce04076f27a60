package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeConstants(t *testing.T) {
	tests := []struct {
		name     string
		et       EventType
		expected string
	}{
		{"created", EventTypeCreated, "created"},
		{"updated", EventTypeUpdated, "updated"},
		{"deleted", EventTypeDeleted, "deleted"},
		{"alert", EventTypeAlert, "alert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":     1,
		"amount": "100.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
	after := time.Now()

	assert.Equal(t, "transaction.created", evt.Type)
	assert.Equal(t, EntityTypeTransaction, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestBudgetAlertEvent(t *testing.T) {
	evt := BudgetAlert(map[string]string{"categoryName": "Food", "percentageUsed": "120.0"})

	assert.Equal(t, "budget.alert", evt.Type)
	assert.Equal(t, EntityTypeBudget, evt.Entity)
}

func TestEventToJSON(t *testing.T) {
	evt := TransactionCreated(map[string]interface{}{"id": float64(7)})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "transaction.created", decoded["type"])
	assert.Equal(t, "transaction", decoded["entity"])

	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), payload["id"])
}
