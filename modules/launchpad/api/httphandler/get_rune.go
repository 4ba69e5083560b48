package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
)

type runeView struct {
	Ticker         string          `json:"ticker"`
	LaunchType     string          `json:"launchType"`
	Total          uint128.Uint128 `json:"total"`
	Minted         uint128.Uint128 `json:"minted"`
	Price          uint128.Uint128 `json:"price"`
	CreatorAddress string          `json:"creatorAddress"`
	DerivationPath string          `json:"derivationPath"`
}

func runeViewFromRune(rune *runes.Rune) runeView {
	return runeView{
		Ticker:         rune.Ticker,
		LaunchType:     rune.LaunchType.String(),
		Total:          rune.Total,
		Minted:         rune.Minted,
		Price:          rune.Price,
		CreatorAddress: rune.CreatorAddress,
		DerivationPath: rune.DerivationPath(),
	}
}

type getRuneRequest struct {
	Ticker string `params:"ticker"`
}

type getRuneResponse = common.HttpResponse[runeView]

func (h *HttpHandler) GetRune(ctx *fiber.Ctx) (err error) {
	var req getRuneRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}

	rune, err := h.usecase.GetRune(ctx.UserContext(), req.Ticker)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.WithPublicMessage(err, "rune not found")
		}
		return errors.Wrap(err, "error during GetRune")
	}

	view := runeViewFromRune(rune)
	resp := getRuneResponse{Result: &view}
	return errors.WithStack(ctx.JSON(resp))
}
