package runes

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/runeforge-network/launchpad/common/errs"
)

// Rune is a fixed-supply issuance unit sold for a stable payment token at a
// fixed price. Supply counters and the creator proceeds escrow live here;
// per-account balances are stored separately and keyed by (ticker, account).
type Rune struct {
	Ticker     string
	LaunchType LaunchType
	// Total is the maximum mintable supply, fixed at creation.
	Total  uint128.Uint128
	Minted uint128.Uint128
	// Price is the payment-token amount required per one unit of rune.
	Price uint128.Uint128
	// CreatorBalance is the payment-token amount owed to the creator but not
	// yet withdrawn.
	CreatorBalance uint128.Uint128
	CreatorAddress string
	CreatedAt      time.Time
}

var (
	ErrInsufficientPayment = errors.New("transferred amount is insufficient")
	ErrSupplyExceeded      = errors.New("insufficient remaining supply")
)

func NewRune(ticker string, launchType LaunchType, total, price uint128.Uint128, creatorAddress string, now time.Time) *Rune {
	return &Rune{
		Ticker:         ticker,
		LaunchType:     launchType,
		Total:          total,
		Price:          price,
		CreatorAddress: creatorAddress,
		CreatedAt:      now,
	}
}

// Mint converts a received payment into rune units at the fixed price, using
// floor division. The entire payment, including rounding dust, is credited to
// the creator escrow. Mint must only be called after the payment has been
// irrevocably received; it is never rolled back by the caller.
func (r *Rune) Mint(payment uint128.Uint128) (uint128.Uint128, error) {
	if r.Price.IsZero() {
		return uint128.Uint128{}, errors.Wrapf(errs.InvalidState, "rune %q has zero price", r.Ticker)
	}

	units := payment.Div(r.Price)
	if units.IsZero() {
		return uint128.Uint128{}, errors.WithStack(ErrInsufficientPayment)
	}

	minted, overflow := r.Minted.AddOverflow(units)
	if overflow {
		return uint128.Uint128{}, errors.WithStack(errs.OverflowUint128)
	}
	if minted.Cmp(r.Total) > 0 {
		return uint128.Uint128{}, errors.WithStack(ErrSupplyExceeded)
	}

	creatorBalance, overflow := r.CreatorBalance.AddOverflow(payment)
	if overflow {
		return uint128.Uint128{}, errors.WithStack(errs.OverflowUint128)
	}

	r.Minted = minted
	r.CreatorBalance = creatorBalance
	return units, nil
}

// CreatorWithdraw zeroes the creator escrow and returns the prior value. The
// caller is responsible for delivering the amount through an external
// transfer and for compensating via CreatorWithdrawFailed if it fails.
func (r *Rune) CreatorWithdraw() uint128.Uint128 {
	balance := r.CreatorBalance
	r.CreatorBalance = uint128.Uint128{}
	return balance
}

// CreatorWithdrawFailed credits amount back into the creator escrow. Used
// exclusively to compensate a failed external transfer.
func (r *Rune) CreatorWithdrawFailed(amount uint128.Uint128) {
	r.CreatorBalance = r.CreatorBalance.Add(amount)
}

// RemainingSupply returns the amount of rune still mintable.
func (r Rune) RemainingSupply() uint128.Uint128 {
	return r.Total.Sub(r.Minted)
}

// DerivationPath is the path handed to the signer service to derive this
// rune's foreign-chain address. The ticker itself doubles as the path.
func (r Rune) DerivationPath() string {
	return r.Ticker
}
