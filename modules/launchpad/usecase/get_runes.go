package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
)

// DefaultListLimit caps one page of list results when no limit is given.
const DefaultListLimit = 10

// normalizePage keeps offset and limit inside what OFFSET/LIMIT accept.
func normalizePage(offset, limit int32) (int32, int32) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return offset, limit
}

func (u *Usecase) GetRune(ctx context.Context, ticker string) (*runes.Rune, error) {
	rune, err := u.dg.GetRune(ctx, ticker)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get rune %q", ticker)
	}
	return rune, nil
}

// GetRunes pages through all runes in creation order. The page is not
// restartable: a concurrent creation may shift subsequent offsets.
func (u *Usecase) GetRunes(ctx context.Context, offset, limit int32) ([]*runes.Rune, error) {
	offset, limit = normalizePage(offset, limit)
	result, err := u.dg.GetRunes(ctx, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runes")
	}
	return result, nil
}
