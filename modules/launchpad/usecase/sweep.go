package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
	"github.com/runeforge-network/launchpad/pkg/logger"
	"github.com/runeforge-network/launchpad/pkg/logger/slogx"
)

// ReportStuckTransfers logs transfers that have been in flight longer than
// maxAge and returns them. Report only: a transfer whose result never arrives
// stays debited until the payment service (or an operator acting for it)
// posts the outcome - automatic recovery could double-pay.
func (u *Usecase) ReportStuckTransfers(ctx context.Context, maxAge time.Duration) ([]*entity.PendingTransfer, error) {
	cutoff := u.clock.Now().Add(-maxAge)
	transfers, err := u.dg.GetPendingTransfersStuckSince(ctx, entity.TransferStatusDebited, cutoff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stuck transfers")
	}

	for _, transfer := range transfers {
		logger.WarnContext(ctx, "external transfer still awaiting result",
			slogx.Stringer("transferId", transfer.ID),
			slogx.String("ticker", transfer.Ticker),
			slogx.Stringer("amount", transfer.Amount),
			slogx.Duration("age", u.clock.Now().Sub(transfer.CreatedAt)),
		)
	}
	return transfers, nil
}
