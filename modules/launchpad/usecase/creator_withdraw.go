package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/google/uuid"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
	"github.com/runeforge-network/launchpad/modules/launchpad/paymentclient"
	"github.com/runeforge-network/launchpad/pkg/logger"
	"github.com/runeforge-network/launchpad/pkg/logger/slogx"
)

// CreatorWithdraw settles the creator escrow as an optimistic-debit saga.
// Phase 1 zeroes the escrow and persists a pending transfer atomically; once
// committed the funds are in flight and a repeat call sees a zero escrow.
// Phase 2 submits the external transfer. Its outcome arrives later through
// HandleTransferResult; only a failure result re-credits the escrow. A failed
// attempt is never retried here - the creator triggers a fresh withdrawal
// after the compensation lands.
func (u *Usecase) CreatorWithdraw(ctx context.Context, caller, ticker string) (uint128.Uint128, error) {
	tx, err := u.dg.BeginLaunchpadTx(ctx)
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rune, err := tx.GetRuneForUpdate(ctx, ticker)
	if err != nil {
		return uint128.Uint128{}, errors.Wrapf(err, "failed to get rune %q", ticker)
	}
	if rune.CreatorAddress != caller {
		return uint128.Uint128{}, errors.Wrapf(errs.Unauthorized, "caller %q is not the creator of %q", caller, ticker)
	}

	amount := rune.CreatorWithdraw()
	if amount.IsZero() {
		return uint128.Uint128{}, nil
	}

	if err := tx.UpdateRune(ctx, rune); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to update rune")
	}

	transfer := &entity.PendingTransfer{
		ID:        uuid.New(),
		Ticker:    ticker,
		Recipient: rune.CreatorAddress,
		Amount:    amount,
		Status:    entity.TransferStatusDebited,
		CreatedAt: u.clock.Now(),
	}
	if err := tx.CreatePendingTransfer(ctx, transfer); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to create pending transfer")
	}
	if err := tx.Commit(ctx); err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to commit transaction")
	}

	// The debit is durable from here on. A submission failure leaves the
	// transfer in flight exactly like a lost result; the sweeper will report
	// it and the operator resolves it through the transfer-result endpoint.
	if err := u.payment.Transfer(ctx, paymentclient.TransferRequest{
		ID:        transfer.ID,
		Recipient: transfer.Recipient,
		Amount:    amount,
		Memo:      "creator withdrawal " + ticker,
	}); err != nil {
		logger.WarnContext(ctx, "failed to submit external transfer, funds remain in flight",
			slogx.Stringer("transferId", transfer.ID),
			slogx.String("ticker", ticker),
			slogx.Error(err),
		)
		return amount, nil
	}

	logger.InfoContext(ctx, "creator withdrawal debited, external transfer submitted",
		slogx.Stringer("transferId", transfer.ID),
		slogx.String("ticker", ticker),
		slogx.Stringer("amount", amount),
	)
	return amount, nil
}

// HandleTransferResult finalizes a pending transfer with the outcome reported
// by the payment service. Success closes the saga; failure compensates by
// crediting the amount back into the creator escrow. Results are accepted at
// most once per transfer.
func (u *Usecase) HandleTransferResult(ctx context.Context, caller string, id uuid.UUID, success bool) error {
	if err := u.assertPaymentService(caller); err != nil {
		return errors.WithStack(err)
	}

	tx, err := u.dg.BeginLaunchpadTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	transfer, err := tx.GetPendingTransferForUpdate(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "failed to get pending transfer %q", id)
	}

	if success {
		if !transfer.Status.CanTransitionTo(entity.TransferStatusSettled) {
			return errors.Wrapf(errs.InvalidState, "transfer %q is %q, cannot settle", id, transfer.Status)
		}
		if err := tx.UpdatePendingTransferStatus(ctx, id, entity.TransferStatusSettled); err != nil {
			return errors.Wrap(err, "failed to update transfer status")
		}
		if err := tx.Commit(ctx); err != nil {
			return errors.Wrap(err, "failed to commit transaction")
		}
		logger.InfoContext(ctx, "creator withdrawal settled", slogx.Stringer("transferId", id))
		return nil
	}

	if !transfer.Status.CanTransitionTo(entity.TransferStatusCompensationPending) {
		return errors.Wrapf(errs.InvalidState, "transfer %q is %q, cannot compensate", id, transfer.Status)
	}
	if err := tx.UpdatePendingTransferStatus(ctx, id, entity.TransferStatusCompensationPending); err != nil {
		return errors.Wrap(err, "failed to update transfer status")
	}

	rune, err := tx.GetRuneForUpdate(ctx, transfer.Ticker)
	if err != nil {
		return errors.Wrapf(err, "failed to get rune %q", transfer.Ticker)
	}
	rune.CreatorWithdrawFailed(transfer.Amount)
	if err := tx.UpdateRune(ctx, rune); err != nil {
		return errors.Wrap(err, "failed to restore creator balance")
	}

	if err := tx.UpdatePendingTransferStatus(ctx, id, entity.TransferStatusCompensated); err != nil {
		return errors.Wrap(err, "failed to update transfer status")
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	logger.WarnContext(ctx, "external transfer failed, creator escrow compensated",
		slogx.Stringer("transferId", id),
		slogx.String("ticker", transfer.Ticker),
		slogx.Stringer("amount", transfer.Amount),
	)
	return nil
}
