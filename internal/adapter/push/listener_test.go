package push

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/infrastructure/metrics"
	"github.com/iho/ledgerview/internal/reconcile"
)

func TestDecodeEvent_FullPayload(t *testing.T) {
	payload := []byte(`{
		"type": "TRANSACTION_UPDATE",
		"id": "key-1",
		"status": "SUCCESS",
		"amount": "42.50",
		"fromId": "A",
		"toId": "B",
		"newBalance": "957.50",
		"timestamp": 1724800000000
	}`)

	ev, err := decodeEvent(payload)
	require.NoError(t, err)

	assert.Equal(t, domain.EventTypeTransactionUpdate, ev.Type)
	assert.Equal(t, "key-1", ev.ID)
	assert.True(t, ev.HasRecord())

	require.NotNil(t, ev.Status)
	assert.Equal(t, domain.StatusSuccess, *ev.Status)

	require.NotNil(t, ev.Amount)
	assert.True(t, ev.Amount.Equal(decimal.RequireFromString("42.50")))

	require.NotNil(t, ev.NewBalance)
	assert.True(t, ev.NewBalance.Equal(decimal.RequireFromString("957.50")))
}

func TestDecodeEvent_BalanceOnly(t *testing.T) {
	// Events without an id carry no record identity and only move the balance.
	payload := []byte(`{"type":"TRANSACTION_UPDATE","status":"SUCCESS","newBalance":"100"}`)

	ev, err := decodeEvent(payload)
	require.NoError(t, err)

	assert.False(t, ev.HasRecord())
	assert.Nil(t, ev.Amount)
	require.NotNil(t, ev.NewBalance)
	assert.True(t, ev.NewBalance.Equal(decimal.NewFromInt(100)))
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := decodeEvent([]byte(`{"status":`))
	assert.Error(t, err)

	_, err = decodeEvent([]byte(`{"amount":"not-a-number"}`))
	assert.Error(t, err)
}

func TestDecodeEvent_UnknownStatusPassedThrough(t *testing.T) {
	// Validation is the merge's job; the decoder stays dumb.
	ev, err := decodeEvent([]byte(`{"id":"k","status":"SETTLING"}`))
	require.NoError(t, err)
	require.NotNil(t, ev.Status)
	assert.False(t, ev.Status.Valid())
}

func TestListener_Topic(t *testing.T) {
	l := NewListener(Config{TopicPrefix: "updates"})
	assert.Equal(t, "updates.acc-1", l.Topic("acc-1"))

	l = NewListener(Config{})
	assert.Equal(t, DefaultTopicPrefix+".acc-1", l.Topic("acc-1"))
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, metrics.OutcomeInserted, outcomeLabel(reconcile.MergeInserted))
	assert.Equal(t, metrics.OutcomeUpdated, outcomeLabel(reconcile.MergeUpdated))
	assert.Equal(t, metrics.OutcomeStaleDropped, outcomeLabel(reconcile.MergeStaleDropped))
	assert.Equal(t, metrics.OutcomeNoop, outcomeLabel(reconcile.MergeNoop))
}
