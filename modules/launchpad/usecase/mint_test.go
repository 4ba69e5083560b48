package usecase

import (
	"context"
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTransferNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		env := newTestEnv()
		env.createRune(ctx, "MEME", 1000, 10)

		refund, err := env.usecase.HandleTransferNotification(ctx, testPayment, "alice.test", uint128.From64(105), "MEME")
		require.NoError(t, err)
		assert.True(t, refund.IsZero())

		rune, err := env.usecase.GetRune(ctx, "MEME")
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(10), rune.Minted)
		assert.Equal(t, uint128.From64(105), rune.CreatorBalance)

		balance, err := env.usecase.GetRuneBalance(ctx, "MEME", "alice.test")
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(10), balance)

		balances, err := env.usecase.GetRuneBalances(ctx, "alice.test", 0, 10)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "MEME", balances[0].Ticker)
	})
	t.Run("only payment service may notify", func(t *testing.T) {
		env := newTestEnv()
		env.createRune(ctx, "MEME", 1000, 10)

		_, err := env.usecase.HandleTransferNotification(ctx, "alice.test", "alice.test", uint128.From64(100), "MEME")
		assert.ErrorIs(t, err, errs.Unauthorized)
	})
	t.Run("unknown ticker", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.HandleTransferNotification(ctx, testPayment, "alice.test", uint128.From64(100), "NOPE")
		assert.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("insufficient payment persists nothing", func(t *testing.T) {
		env := newTestEnv()
		env.createRune(ctx, "MEME", 1000, 10)

		_, err := env.usecase.HandleTransferNotification(ctx, testPayment, "alice.test", uint128.From64(9), "MEME")
		assert.ErrorIs(t, err, runes.ErrInsufficientPayment)

		rune, err := env.usecase.GetRune(ctx, "MEME")
		require.NoError(t, err)
		assert.True(t, rune.Minted.IsZero())
		assert.True(t, rune.CreatorBalance.IsZero())

		balance, err := env.usecase.GetRuneBalance(ctx, "MEME", "alice.test")
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})
	t.Run("supply cap aborts whole payment", func(t *testing.T) {
		env := newTestEnv()
		env.createRune(ctx, "MEME", 10, 1)

		_, err := env.usecase.HandleTransferNotification(ctx, testPayment, "alice.test", uint128.From64(11), "MEME")
		assert.ErrorIs(t, err, runes.ErrSupplyExceeded)

		rune, err := env.usecase.GetRune(ctx, "MEME")
		require.NoError(t, err)
		assert.True(t, rune.Minted.IsZero())
	})
	t.Run("repeat mints accumulate balance", func(t *testing.T) {
		env := newTestEnv()
		env.createRune(ctx, "MEME", 1000, 10)

		for range 3 {
			_, err := env.usecase.HandleTransferNotification(ctx, testPayment, "alice.test", uint128.From64(100), "MEME")
			require.NoError(t, err)
		}

		balance, err := env.usecase.GetRuneBalance(ctx, "MEME", "alice.test")
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(30), balance)

		// the holdings index stays deduplicated
		balances, err := env.usecase.GetRuneBalances(ctx, "alice.test", 0, 10)
		require.NoError(t, err)
		assert.Len(t, balances, 1)

		balances, err = env.usecase.GetRuneBalances(ctx, "alice.test", -1, -1)
		require.NoError(t, err)
		assert.Len(t, balances, 1)
	})
}

func TestGetRuneBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown ticker is an error, not zero", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.GetRuneBalance(ctx, "NOPE", "alice.test")
		assert.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("known ticker unknown account is zero", func(t *testing.T) {
		env := newTestEnv()
		env.createRune(ctx, "MEME", 1000, 10)

		balance, err := env.usecase.GetRuneBalance(ctx, "MEME", "nobody.test")
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})
}
