package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
	"github.com/samber/lo"
)

type getRunesRequest struct {
	Offset int32 `query:"offset"`
	Limit  int32 `query:"limit"`
}

type getRunesResult struct {
	Runes []runeView `json:"runes"`
}

type getRunesResponse = common.HttpResponse[getRunesResult]

func (h *HttpHandler) GetRunes(ctx *fiber.Ctx) (err error) {
	var req getRunesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.GetRunes(ctx.UserContext(), req.Offset, req.Limit)
	if err != nil {
		return errors.Wrap(err, "error during GetRunes")
	}

	resp := getRunesResponse{
		Result: &getRunesResult{
			Runes: lo.Map(result, func(rune *runes.Rune, _ int) runeView {
				return runeViewFromRune(rune)
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
