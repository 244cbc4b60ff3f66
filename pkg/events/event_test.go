package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := NewBaseEvent("credit.loan.created", "42", "Loan")

	assert.NotEmpty(t, evt.EventID())
	assert.Equal(t, "credit.loan.created", evt.EventType())
	assert.Equal(t, "42", evt.AggregateID())
	assert.Equal(t, "Loan", evt.AggregateType())
	assert.False(t, evt.OccurredAt().Before(before))

	other := NewBaseEvent("credit.loan.created", "42", "Loan")
	assert.NotEqual(t, evt.EventID(), other.EventID(), "event IDs must be unique")
}

func TestBaseEvent_MarshalsEnvelope(t *testing.T) {
	evt := NewBaseEvent("credit.customer.registered", "7", "Customer")

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(raw, &envelope))

	assert.Equal(t, "credit.customer.registered", envelope["event_type"])
	assert.Equal(t, "7", envelope["aggregate_id"])
	assert.Equal(t, "Customer", envelope["aggregate_type"])
	assert.NotEmpty(t, envelope["event_id"])
	assert.NotEmpty(t, envelope["occurred_at"])
}
