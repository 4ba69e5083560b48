package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStuckTransfers(t *testing.T) {
	ctx := context.Background()

	debit := func(t *testing.T, env *testEnv) {
		t.Helper()
		env.createRune(ctx, "MEME", 1000, 10)
		_, err := env.usecase.HandleTransferNotification(ctx, testPayment, "alice.test", uint128.From64(100), "MEME")
		require.NoError(t, err)
		_, err = env.usecase.CreatorWithdraw(ctx, testCreator, "MEME")
		require.NoError(t, err)
	}

	t.Run("fresh transfer is not stuck", func(t *testing.T) {
		env := newTestEnv()
		debit(t, env)

		stuck, err := env.usecase.ReportStuckTransfers(ctx, time.Hour)
		require.NoError(t, err)
		assert.Empty(t, stuck)
	})
	t.Run("aged transfer is reported", func(t *testing.T) {
		env := newTestEnv()
		debit(t, env)

		env.clock.Advance(2 * time.Hour)
		stuck, err := env.usecase.ReportStuckTransfers(ctx, time.Hour)
		require.NoError(t, err)
		require.Len(t, stuck, 1)
		assert.Equal(t, entity.TransferStatusDebited, stuck[0].Status)
		assert.Equal(t, "MEME", stuck[0].Ticker)
	})
	t.Run("settled transfer is not reported", func(t *testing.T) {
		env := newTestEnv()
		debit(t, env)
		require.NoError(t, env.usecase.HandleTransferResult(ctx, testPayment, env.payment.requests[0].ID, true))

		env.clock.Advance(2 * time.Hour)
		stuck, err := env.usecase.ReportStuckTransfers(ctx, time.Hour)
		require.NoError(t, err)
		assert.Empty(t, stuck)
	})
}
