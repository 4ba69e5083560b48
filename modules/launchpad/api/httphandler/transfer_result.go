package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
)

type transferResultRequest struct {
	ID      string `params:"id"`
	Success bool   `json:"success"`
}

type transferResultResponse = common.HttpResponse[any]

// TransferResult receives the outcome of a submitted creator withdrawal from
// the payment service and closes the pending transfer either way.
func (h *HttpHandler) TransferResult(ctx *fiber.Ctx) (err error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	var req transferResultRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return errs.WithPublicMessage(errors.Wrapf(errs.InvalidArgument, "id %q is not a valid uuid", req.ID), "validation error")
	}

	if err := h.usecase.HandleTransferResult(ctx.UserContext(), caller, id, req.Success); err != nil {
		if errors.Is(err, errs.Unauthorized) {
			return errs.WithPublicMessage(err, "unauthorized")
		}
		if errors.Is(err, errs.NotFound) {
			return errs.WithPublicMessage(err, "pending transfer not found")
		}
		if errors.Is(err, errs.InvalidState) {
			return errs.WithPublicMessage(err, "transfer result already applied")
		}
		return errors.Wrap(err, "error during HandleTransferResult")
	}

	return errors.WithStack(ctx.JSON(transferResultResponse{}))
}
