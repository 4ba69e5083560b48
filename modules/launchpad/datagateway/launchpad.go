package datagateway

import (
	"context"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/google/uuid"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
)

type LaunchpadDataGateway interface {
	// BeginLaunchpadTx starts a DB transaction and returns a gateway bound to
	// it. The ledger's mutation entry points each run inside exactly one such
	// transaction; this is what stands in for the host's serialized execution.
	BeginLaunchpadTx(ctx context.Context) (LaunchpadDataGatewayWithTx, error)

	// GetRune returns errs.NotFound if the ticker does not exist.
	GetRune(ctx context.Context, ticker string) (*runes.Rune, error)
	// GetRuneForUpdate locks the rune row for the current transaction.
	GetRuneForUpdate(ctx context.Context, ticker string) (*runes.Rune, error)
	// CreateRune returns errs.Duplicate if the ticker already exists.
	CreateRune(ctx context.Context, rune *runes.Rune) error
	// UpdateRune persists the mutable counters (minted, creator balance).
	UpdateRune(ctx context.Context, rune *runes.Rune) error
	// GetRunes pages through runes in insertion order.
	GetRunes(ctx context.Context, offset, limit int32) ([]*runes.Rune, error)

	// GetBalance returns a zero balance (not an error) for absent entries.
	GetBalance(ctx context.Context, ticker, account string) (*entity.Balance, error)
	GetBalanceForUpdate(ctx context.Context, ticker, account string) (*entity.Balance, error)
	// AddBalance credits delta to the (ticker, account) balance, creating the
	// entry if absent.
	AddBalance(ctx context.Context, ticker, account string, delta uint128.Uint128) error
	SetBalance(ctx context.Context, ticker, account string, amount uint128.Uint128) error

	// AddHolding records that account holds ticker; idempotent.
	AddHolding(ctx context.Context, account, ticker string) error
	RemoveHolding(ctx context.Context, account, ticker string) error
	// GetHoldings pages through the tickers held by account, oldest first.
	GetHoldings(ctx context.Context, account string, offset, limit int32) ([]string, error)

	CreatePendingTransfer(ctx context.Context, transfer *entity.PendingTransfer) error
	// GetPendingTransferForUpdate returns errs.NotFound for unknown ids.
	GetPendingTransferForUpdate(ctx context.Context, id uuid.UUID) (*entity.PendingTransfer, error)
	UpdatePendingTransferStatus(ctx context.Context, id uuid.UUID, status entity.TransferStatus) error
	// GetPendingTransfersStuckSince lists transfers still in the given status
	// created at or before the cutoff.
	GetPendingTransfersStuckSince(ctx context.Context, status entity.TransferStatus, cutoff time.Time) ([]*entity.PendingTransfer, error)

	// GetSetting returns errs.NotFound for unset keys.
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

type LaunchpadDataGatewayWithTx interface {
	LaunchpadDataGateway
	Tx
}
