package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
)

type getBalanceRequest struct {
	Account string `params:"account"`
	Ticker  string `params:"ticker"`
}

type getBalanceResult struct {
	Ticker  string          `json:"ticker"`
	Account string          `json:"account"`
	Amount  uint128.Uint128 `json:"amount"`
}

type getBalanceResponse = common.HttpResponse[getBalanceResult]

func (h *HttpHandler) GetBalance(ctx *fiber.Ctx) (err error) {
	var req getBalanceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}

	amount, err := h.usecase.GetRuneBalance(ctx.UserContext(), req.Ticker, req.Account)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.WithPublicMessage(err, "rune not found")
		}
		return errors.Wrap(err, "error during GetRuneBalance")
	}

	resp := getBalanceResponse{
		Result: &getBalanceResult{
			Ticker:  req.Ticker,
			Account: req.Account,
			Amount:  amount,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
