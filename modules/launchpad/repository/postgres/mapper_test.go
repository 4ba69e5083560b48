package postgres

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint128FromNumeric(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		numeric := pgtype.Numeric{}
		require.NoError(t, numeric.ScanInt64(pgtype.Int8{
			Int64: 1000,
			Valid: true,
		}))

		result, err := uint128FromNumeric(numeric)
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(1000), result)
	})
	t.Run("null maps to zero", func(t *testing.T) {
		result, err := uint128FromNumeric(pgtype.Numeric{})
		require.NoError(t, err)
		assert.True(t, result.IsZero())
	})
	t.Run("beyond uint64", func(t *testing.T) {
		big, err := uint128.FromString("340282366920938463463374607431768211455")
		require.NoError(t, err)
		numeric, err := numericFromUint128(big)
		require.NoError(t, err)

		result, err := uint128FromNumeric(numeric)
		require.NoError(t, err)
		assert.Equal(t, big, result)
	})
}

func TestNumericFromUint128(t *testing.T) {
	u128 := uint128.From64(1)

	expected := pgtype.Numeric{}
	require.NoError(t, expected.ScanInt64(pgtype.Int8{
		Int64: 1,
		Valid: true,
	}))

	result, err := numericFromUint128(u128)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestRuneModelRoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rune := &runes.Rune{
		Ticker:         "MEME",
		LaunchType:     runes.LaunchTypeFixedPrice,
		Total:          uint128.From64(1000),
		Minted:         uint128.From64(25),
		Price:          uint128.From64(10),
		CreatorBalance: uint128.From64(255),
		CreatorAddress: "creator.test",
		CreatedAt:      createdAt,
	}

	model, err := mapRuneTypeToModel(rune)
	require.NoError(t, err)
	result, err := mapRuneModelToType(model)
	require.NoError(t, err)
	assert.Equal(t, rune, result)
}
