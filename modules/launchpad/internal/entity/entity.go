package entity

import (
	"time"

	"github.com/gaze-network/uint128"
	"github.com/google/uuid"
)

// Balance is an account's unredeemed rune quantity for one ticker. The
// authoritative value lives here; the holdings index only enumerates tickers.
type Balance struct {
	Ticker  string
	Account string
	Amount  uint128.Uint128
}

// TransferStatus tracks an optimistically debited creator withdrawal through
// its external settlement.
type TransferStatus string

const (
	// TransferStatusDebited: escrow is zeroed, external transfer in flight.
	TransferStatusDebited TransferStatus = "debited"
	// TransferStatusSettled: external transfer confirmed, nothing left to do.
	TransferStatusSettled TransferStatus = "settled"
	// TransferStatusCompensationPending: external transfer failed, escrow
	// credit not applied yet.
	TransferStatusCompensationPending TransferStatus = "compensation_pending"
	// TransferStatusCompensated: escrow restored after a failed transfer.
	TransferStatusCompensated TransferStatus = "compensated"
)

func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusDebited, TransferStatusSettled, TransferStatusCompensationPending, TransferStatusCompensated:
		return true
	}
	return false
}

// CanTransitionTo enforces the saga's state machine: a transfer leaves
// Debited exactly once, and compensation is applied exactly once.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	switch s {
	case TransferStatusDebited:
		return next == TransferStatusSettled || next == TransferStatusCompensationPending
	case TransferStatusCompensationPending:
		return next == TransferStatusCompensated
	}
	return false
}

// PendingTransfer is the persisted record of a creator withdrawal between the
// optimistic debit and the asynchronous transfer outcome.
type PendingTransfer struct {
	ID        uuid.UUID
	Ticker    string
	Recipient string
	Amount    uint128.Uint128
	Status    TransferStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
