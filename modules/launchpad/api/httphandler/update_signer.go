package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
)

type updateSignerRequest struct {
	Account string `json:"account"`
}

type updateSignerResponse = common.HttpResponse[any]

func (h *HttpHandler) UpdateSigner(ctx *fiber.Ctx) (err error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateSignerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if req.Account == "" {
		return errs.WithPublicMessage(errors.Wrap(errs.InvalidArgument, "account must not be empty"), "validation error")
	}

	if err := h.usecase.UpdateSignerAccount(ctx.UserContext(), caller, req.Account); err != nil {
		if errors.Is(err, errs.Unauthorized) {
			return errs.WithPublicMessage(err, "unauthorized")
		}
		return errors.Wrap(err, "error during UpdateSignerAccount")
	}

	return errors.WithStack(ctx.JSON(updateSignerResponse{}))
}
