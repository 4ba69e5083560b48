package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
	"github.com/samber/lo"
)

type getBalancesRequest struct {
	Account string `params:"account"`
	Offset  int32  `query:"offset"`
	Limit   int32  `query:"limit"`
}

type balanceView struct {
	Ticker string          `json:"ticker"`
	Amount uint128.Uint128 `json:"amount"`
}

type getBalancesResult struct {
	Account  string        `json:"account"`
	Balances []balanceView `json:"balances"`
}

type getBalancesResponse = common.HttpResponse[getBalancesResult]

func (h *HttpHandler) GetBalances(ctx *fiber.Ctx) (err error) {
	var req getBalancesRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}

	balances, err := h.usecase.GetRuneBalances(ctx.UserContext(), req.Account, req.Offset, req.Limit)
	if err != nil {
		return errors.Wrap(err, "error during GetRuneBalances")
	}

	resp := getBalancesResponse{
		Result: &getBalancesResult{
			Account: req.Account,
			Balances: lo.Map(balances, func(balance *entity.Balance, _ int) balanceView {
				return balanceView{
					Ticker: balance.Ticker,
					Amount: balance.Amount,
				}
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
