package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
)

type creatorWithdrawRequest struct {
	Ticker string `params:"ticker"`
}

type creatorWithdrawResult struct {
	Ticker string          `json:"ticker"`
	Amount uint128.Uint128 `json:"amount"`
}

type creatorWithdrawResponse = common.HttpResponse[creatorWithdrawResult]

func (h *HttpHandler) CreatorWithdraw(ctx *fiber.Ctx) (err error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	var req creatorWithdrawRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}

	amount, err := h.usecase.CreatorWithdraw(ctx.UserContext(), caller, req.Ticker)
	if err != nil {
		if errors.Is(err, errs.Unauthorized) {
			return errs.WithPublicMessage(err, "unauthorized")
		}
		if errors.Is(err, errs.NotFound) {
			return errs.WithPublicMessage(err, "rune not found")
		}
		return errors.Wrap(err, "error during CreatorWithdraw")
	}

	resp := creatorWithdrawResponse{
		Result: &creatorWithdrawResult{
			Ticker: req.Ticker,
			Amount: amount,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
