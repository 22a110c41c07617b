package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucessoImediato(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_SucessoAposFalha(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(int) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_EsgotaTentativas(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := withRetry(context.Background(), 3, func(int) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := withRetry(ctx, 3, func(int) error {
		calls++
		cancel() // cancel before the first backoff wait
		return errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

// Malformed payloads must not enter the retry/DLQ path.
func TestReceiptWorker_PayloadInvalidoNaoRetentavel(t *testing.T) {
	w := NewReceiptWorker(nil, nil, t.TempDir(), "Ótica Teste")

	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{invalid`)))
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{"sale_id":"not-a-uuid"}`)))
}
