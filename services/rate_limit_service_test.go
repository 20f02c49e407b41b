package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitService_CheckLimit(t *testing.T) {
	ctx := context.Background()
	window := 15 * time.Minute

	t.Run("admits while under ceiling", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		svc := NewRateLimitService(client)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("rate_limit:api:203.0.113.7").SetVal(42)
		mock.ExpectExpire("rate_limit:api:203.0.113.7", window).SetVal(true)
		mock.ExpectTxPipelineExec()

		allowed, retryAfter, err := svc.CheckLimit(ctx, "api:203.0.113.7", 100, window)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects above ceiling with ttl", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		svc := NewRateLimitService(client)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("rate_limit:contact:203.0.113.7").SetVal(6)
		mock.ExpectExpire("rate_limit:contact:203.0.113.7", time.Hour).SetVal(true)
		mock.ExpectTxPipelineExec()
		mock.ExpectTTL("rate_limit:contact:203.0.113.7").SetVal(30 * time.Minute)

		allowed, retryAfter, err := svc.CheckLimit(ctx, "contact:203.0.113.7", 5, time.Hour)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 30*time.Minute, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admits exactly at ceiling", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		svc := NewRateLimitService(client)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("rate_limit:contact:203.0.113.7").SetVal(5)
		mock.ExpectExpire("rate_limit:contact:203.0.113.7", time.Hour).SetVal(true)
		mock.ExpectTxPipelineExec()

		allowed, _, err := svc.CheckLimit(ctx, "contact:203.0.113.7", 5, time.Hour)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("propagates redis failure", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		svc := NewRateLimitService(client)

		mock.ExpectTxPipeline()
		mock.ExpectIncr("rate_limit:api:203.0.113.7").SetErr(assert.AnError)

		_, _, err := svc.CheckLimit(ctx, "api:203.0.113.7", 100, window)
		assert.Error(t, err)
	})
}
