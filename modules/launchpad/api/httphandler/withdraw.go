package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
)

type withdrawRequest struct {
	Ticker         string `params:"ticker"`
	Account        string `json:"account"`
	BitcoinAddress string `json:"bitcoinAddress"`
}

type withdrawResult struct {
	Ticker string          `json:"ticker"`
	Amount uint128.Uint128 `json:"amount"`
}

type withdrawResponse = common.HttpResponse[withdrawResult]

func (h *HttpHandler) Withdraw(ctx *fiber.Ctx) (err error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	var req withdrawRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}

	amount, err := h.usecase.Withdraw(ctx.UserContext(), caller, req.Ticker, req.Account, req.BitcoinAddress)
	if err != nil {
		if errors.Is(err, errs.Unauthorized) {
			return errs.WithPublicMessage(err, "unauthorized")
		}
		if errors.Is(err, errs.NotFound) {
			return errs.WithPublicMessage(err, "rune not found")
		}
		if errors.Is(err, errs.InvalidArgument) {
			return errs.WithPublicMessage(err, "validation error")
		}
		return errors.Wrap(err, "error during Withdraw")
	}

	resp := withdrawResponse{
		Result: &withdrawResult{
			Ticker: req.Ticker,
			Amount: amount,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
