package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
)

type CreateRuneParams struct {
	Ticker         string
	LaunchType     runes.LaunchType
	Total          uint128.Uint128
	Price          uint128.Uint128
	CreatorAddress string
}

func (p CreateRuneParams) Validate() error {
	var errList []error
	if p.Ticker == "" {
		errList = append(errList, errors.Wrap(errs.InvalidArgument, "ticker must not be empty"))
	}
	if p.Total.IsZero() {
		errList = append(errList, errors.Wrap(errs.InvalidArgument, "total must be positive"))
	}
	if p.Price.IsZero() {
		errList = append(errList, errors.Wrap(errs.InvalidArgument, "price must be positive"))
	}
	if p.CreatorAddress == "" {
		errList = append(errList, errors.Wrap(errs.InvalidArgument, "creator address must not be empty"))
	}
	return errors.Join(errList...)
}

// CreateRune registers a new rune. Tickers are unique forever; there is no
// delete or rename.
func (u *Usecase) CreateRune(ctx context.Context, caller string, params CreateRuneParams) (*runes.Rune, error) {
	if err := u.assertAdmin(caller); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := params.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	if !params.LaunchType.IsOperable() {
		return nil, errors.Wrapf(errs.Unimplemented, "launch type %q is not implemented", params.LaunchType)
	}

	rune := runes.NewRune(params.Ticker, params.LaunchType, params.Total, params.Price, params.CreatorAddress, u.clock.Now())
	if err := u.dg.CreateRune(ctx, rune); err != nil {
		return nil, errors.Wrap(err, "failed to create rune")
	}
	return rune, nil
}
