package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferStatusIsValid(t *testing.T) {
	assert.True(t, TransferStatusDebited.IsValid())
	assert.True(t, TransferStatusSettled.IsValid())
	assert.True(t, TransferStatusCompensationPending.IsValid())
	assert.True(t, TransferStatusCompensated.IsValid())
	assert.False(t, TransferStatus("unknown").IsValid())
	assert.False(t, TransferStatus("").IsValid())
}

func TestTransferStatusCanTransitionTo(t *testing.T) {
	test := func(from, to TransferStatus, expected bool) {
		t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
			assert.Equal(t, expected, from.CanTransitionTo(to))
		})
	}

	test(TransferStatusDebited, TransferStatusSettled, true)
	test(TransferStatusDebited, TransferStatusCompensationPending, true)
	test(TransferStatusDebited, TransferStatusCompensated, false)
	test(TransferStatusDebited, TransferStatusDebited, false)

	// terminal states accept nothing
	test(TransferStatusSettled, TransferStatusDebited, false)
	test(TransferStatusSettled, TransferStatusCompensationPending, false)
	test(TransferStatusCompensated, TransferStatusDebited, false)
	test(TransferStatusCompensated, TransferStatusSettled, false)

	test(TransferStatusCompensationPending, TransferStatusCompensated, true)
	test(TransferStatusCompensationPending, TransferStatusSettled, false)
}
