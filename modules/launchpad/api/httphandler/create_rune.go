package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
	"github.com/runeforge-network/launchpad/modules/launchpad/usecase"
)

type createRuneRequest struct {
	Ticker         string `json:"ticker"`
	LaunchType     string `json:"launchType"`
	Total          string `json:"total"`
	Price          string `json:"price"`
	CreatorAddress string `json:"creatorAddress"`
}

type createRuneResult struct {
	Rune runeView `json:"rune"`
}

type createRuneResponse = common.HttpResponse[createRuneResult]

func (h *HttpHandler) CreateRune(ctx *fiber.Ctx) (err error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	var req createRuneRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}

	launchType, err := runes.NewLaunchTypeFromString(req.LaunchType)
	if err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "validation error")
	}
	total, err := parseUint128(req.Total, "total")
	if err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "validation error")
	}
	price, err := parseUint128(req.Price, "price")
	if err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "validation error")
	}

	rune, err := h.usecase.CreateRune(ctx.UserContext(), caller, usecase.CreateRuneParams{
		Ticker:         req.Ticker,
		LaunchType:     launchType,
		Total:          total,
		Price:          price,
		CreatorAddress: req.CreatorAddress,
	})
	if err != nil {
		if errors.Is(err, errs.Duplicate) {
			return errs.NewPublicError("rune with the same ticker already exists")
		}
		if errors.Is(err, errs.Unimplemented) {
			return errs.NewPublicError("launch type is not implemented")
		}
		if errors.Is(err, errs.InvalidArgument) {
			return errs.WithPublicMessage(err, "validation error")
		}
		if errors.Is(err, errs.Unauthorized) {
			return errs.WithPublicMessage(err, "unauthorized")
		}
		return errors.Wrap(err, "error during CreateRune")
	}

	resp := createRuneResponse{
		Result: &createRuneResult{Rune: runeViewFromRune(rune)},
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(resp))
}
