package clients

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
)

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")))
	assert.True(t, isConnectionError(errors.New("unexpected EOF")))
	assert.True(t, isConnectionError(errors.New("read tcp: i/o timeout")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE Operation against a key")))
}

func TestNewValkeyClient_UnreachableFails(t *testing.T) {
	_, err := NewValkeyClient(ValkeyOptions{Address: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestRetry_StopsAtFirstSuccess(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 5, time.Millisecond, func(int) error {
		calls++
		if calls < 3 {
			return errors.New("read tcp: i/o timeout")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ReturnsLastErrorWhenExhausted(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, func(i int) error {
		calls++
		return fmt.Errorf("attempt %d failed", i)
	})
	assert.EqualError(t, err, "attempt 3 failed")
	assert.Equal(t, 3, calls)
}

func TestRetry_MissingKeyIsNotRetried(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, func(int) error {
		calls++
		return valkey.Nil
	})
	assert.True(t, valkey.IsValkeyNil(err))
	assert.Equal(t, 1, calls)
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, 3, time.Hour, func(int) error {
		calls++
		return errors.New("connection refused")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

// stubClient satisfies valkey.Client; calling any method panics.
type stubClient struct {
	valkey.Client
}

func TestWithRetry_RunsAttemptPerTryAgainstCurrentClient(t *testing.T) {
	stub := stubClient{}
	vc := &ValkeyClient{Client: stub}

	var clients []valkey.Client
	err := vc.withRetry(context.Background(), "GET", 3, func(c valkey.Client) error {
		clients = append(clients, c)
		return errors.New("WRONGTYPE Operation against a key")
	})

	assert.EqualError(t, err, "WRONGTYPE Operation against a key")
	require.Len(t, clients, 3)
	for _, c := range clients {
		assert.Equal(t, valkey.Client(stub), c)
	}
}
