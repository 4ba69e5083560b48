package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
)

func (u *Usecase) GetRuneBalance(ctx context.Context, ticker, account string) (uint128.Uint128, error) {
	// surface unknown tickers instead of reporting a zero balance
	if _, err := u.dg.GetRune(ctx, ticker); err != nil {
		return uint128.Uint128{}, errors.Wrapf(err, "failed to get rune %q", ticker)
	}
	balance, err := u.dg.GetBalance(ctx, ticker, account)
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to get balance")
	}
	return balance.Amount, nil
}

// GetRuneBalances pages through the account's held tickers and re-reads each
// live balance. The holdings index never stores amounts, so a page is always
// current as of this call.
func (u *Usecase) GetRuneBalances(ctx context.Context, account string, offset, limit int32) ([]*entity.Balance, error) {
	offset, limit = normalizePage(offset, limit)
	tickers, err := u.dg.GetHoldings(ctx, account, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get holdings")
	}

	balances := make([]*entity.Balance, 0, len(tickers))
	for _, ticker := range tickers {
		balance, err := u.dg.GetBalance(ctx, ticker, account)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get balance for ticker %q", ticker)
		}
		balances = append(balances, balance)
	}
	return balances, nil
}
