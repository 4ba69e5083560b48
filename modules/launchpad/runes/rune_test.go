package runes

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRune(total, price uint64) *Rune {
	return NewRune("MEME", LaunchTypeFixedPrice, uint128.From64(total), uint128.From64(price), "creator.test", time.Unix(1700000000, 0))
}

func TestMint(t *testing.T) {
	t.Run("exact payment", func(t *testing.T) {
		rune := newTestRune(1000, 10)

		units, err := rune.Mint(uint128.From64(100))
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(10), units)
		assert.Equal(t, uint128.From64(10), rune.Minted)
		assert.Equal(t, uint128.From64(100), rune.CreatorBalance)
	})
	t.Run("floor division credits dust to creator", func(t *testing.T) {
		rune := newTestRune(1000, 10)

		units, err := rune.Mint(uint128.From64(109))
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(10), units)
		// creator escrow gets the full payment, dust included
		assert.Equal(t, uint128.From64(109), rune.CreatorBalance)
	})
	t.Run("payment below price", func(t *testing.T) {
		rune := newTestRune(1000, 10)

		_, err := rune.Mint(uint128.From64(9))
		assert.ErrorIs(t, err, ErrInsufficientPayment)
		assert.True(t, rune.Minted.IsZero())
		assert.True(t, rune.CreatorBalance.IsZero())
	})
	t.Run("exceeds remaining supply", func(t *testing.T) {
		rune := newTestRune(10, 1)

		_, err := rune.Mint(uint128.From64(11))
		assert.ErrorIs(t, err, ErrSupplyExceeded)
		assert.True(t, rune.Minted.IsZero())
	})
	t.Run("mint up to exactly total", func(t *testing.T) {
		rune := newTestRune(10, 1)

		units, err := rune.Mint(uint128.From64(10))
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(10), units)
		assert.True(t, rune.RemainingSupply().IsZero())

		_, err = rune.Mint(uint128.From64(1))
		assert.ErrorIs(t, err, ErrSupplyExceeded)
	})
	t.Run("sequential mints accumulate", func(t *testing.T) {
		rune := newTestRune(1000, 10)

		_, err := rune.Mint(uint128.From64(55))
		require.NoError(t, err)
		_, err = rune.Mint(uint128.From64(45))
		require.NoError(t, err)

		assert.Equal(t, uint128.From64(9), rune.Minted)
		assert.Equal(t, uint128.From64(100), rune.CreatorBalance)
	})
	t.Run("zero price is invalid state", func(t *testing.T) {
		rune := newTestRune(1000, 0)

		_, err := rune.Mint(uint128.From64(100))
		assert.ErrorIs(t, err, errs.InvalidState)
	})
	t.Run("minted overflow", func(t *testing.T) {
		rune := NewRune("MEME", LaunchTypeFixedPrice, uint128.Max, uint128.From64(1), "creator.test", time.Unix(1700000000, 0))
		rune.Minted = uint128.Max

		_, err := rune.Mint(uint128.From64(1))
		assert.ErrorIs(t, err, errs.OverflowUint128)
	})
}

func TestCreatorWithdraw(t *testing.T) {
	t.Run("read and zero", func(t *testing.T) {
		rune := newTestRune(1000, 10)
		_, err := rune.Mint(uint128.From64(109))
		require.NoError(t, err)

		amount := rune.CreatorWithdraw()
		assert.Equal(t, uint128.From64(109), amount)
		assert.True(t, rune.CreatorBalance.IsZero())
	})
	t.Run("second withdraw returns zero", func(t *testing.T) {
		rune := newTestRune(1000, 10)
		_, err := rune.Mint(uint128.From64(100))
		require.NoError(t, err)

		rune.CreatorWithdraw()
		assert.True(t, rune.CreatorWithdraw().IsZero())
	})
	t.Run("failed transfer compensation restores escrow", func(t *testing.T) {
		rune := newTestRune(1000, 10)
		_, err := rune.Mint(uint128.From64(100))
		require.NoError(t, err)

		amount := rune.CreatorWithdraw()
		rune.CreatorWithdrawFailed(amount)
		assert.Equal(t, uint128.From64(100), rune.CreatorBalance)
	})
}

func TestRemainingSupply(t *testing.T) {
	rune := newTestRune(1000, 10)
	assert.Equal(t, uint128.From64(1000), rune.RemainingSupply())

	_, err := rune.Mint(uint128.From64(250))
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(975), rune.RemainingSupply())
}

func TestDerivationPath(t *testing.T) {
	rune := newTestRune(1000, 10)
	assert.Equal(t, "MEME", rune.DerivationPath())
}
