package usecase

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/pkg/logger"
	"github.com/runeforge-network/launchpad/pkg/logger/slogx"
)

// Withdraw zeroes account's balance for ticker and records the destination
// bitcoin address for the out-of-band payout process. The ledger only debits;
// delivery happens outside its consistency boundary. A zero prior balance is
// a no-op.
func (u *Usecase) Withdraw(ctx context.Context, caller, ticker, account, bitcoinAddress string) (uint128.Uint128, error) {
	if err := u.assertAdmin(caller); err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	if _, err := btcutil.DecodeAddress(bitcoinAddress, u.network.ChainParams()); err != nil {
		return uint128.Uint128{}, errors.Wrapf(errs.InvalidArgument, "invalid bitcoin address %q: %v", bitcoinAddress, err)
	}

	tx, err := u.dg.BeginLaunchpadTx(ctx)
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.GetRune(ctx, ticker); err != nil {
		return uint128.Uint128{}, errors.Wrapf(err, "failed to get rune %q", ticker)
	}

	balance, err := tx.GetBalanceForUpdate(ctx, ticker, account)
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to get balance")
	}
	if balance.Amount.IsZero() {
		return uint128.Uint128{}, nil
	}

	if err := tx.SetBalance(ctx, ticker, account, uint128.Uint128{}); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to zero balance")
	}
	if err := tx.RemoveHolding(ctx, account, ticker); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to update holdings")
	}
	if err := tx.Commit(ctx); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to commit transaction")
	}

	logger.InfoContext(ctx, "holder withdrawal recorded for settlement",
		slogx.String("ticker", ticker),
		slogx.String("account", account),
		slogx.String("bitcoinAddress", bitcoinAddress),
		slogx.Stringer("amount", balance.Amount),
	)
	return balance.Amount, nil
}
