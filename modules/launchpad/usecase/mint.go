package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/pkg/logger"
	"github.com/runeforge-network/launchpad/pkg/logger/slogx"
)

// HandleTransferNotification is the mint pipeline: the payment-token service
// notifies us that payer transferred amount, with the target ticker as the
// message. The returned value is the amount to refund; zero means the whole
// payment is accepted. Any error aborts the call with nothing persisted.
//
// The payment is already irrevocably received when this runs, so a failed
// lookup or mint strands the payment at the payment service's discretion;
// the error is surfaced to it in full.
func (u *Usecase) HandleTransferNotification(ctx context.Context, caller, payer string, amount uint128.Uint128, msg string) (uint128.Uint128, error) {
	if err := u.assertPaymentService(caller); err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}

	ticker := msg
	tx, err := u.dg.BeginLaunchpadTx(ctx)
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rune, err := tx.GetRuneForUpdate(ctx, ticker)
	if err != nil {
		return uint128.Uint128{}, errors.Wrapf(err, "failed to get rune %q", ticker)
	}
	if !rune.LaunchType.IsOperable() {
		return uint128.Uint128{}, errors.Wrapf(errs.Unimplemented, "launch type %q is not implemented", rune.LaunchType)
	}

	units, err := rune.Mint(amount)
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "mint failed")
	}

	if err := tx.UpdateRune(ctx, rune); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to update rune")
	}
	if err := tx.AddBalance(ctx, ticker, payer, units); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to credit balance")
	}
	if err := tx.AddHolding(ctx, payer, ticker); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to update holdings")
	}
	if err := tx.Commit(ctx); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to commit transaction")
	}

	logger.InfoContext(ctx, "minted rune units",
		slogx.String("ticker", ticker),
		slogx.String("payer", payer),
		slogx.Stringer("payment", amount),
		slogx.Stringer("units", units),
	)

	// accept the full payment, refund nothing
	return uint128.Uint128{}, nil
}
