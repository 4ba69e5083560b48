package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
)

type transferNotifyRequest struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
	Msg    string `json:"msg"`
}

type transferNotifyResult struct {
	Refund uint128.Uint128 `json:"refund"`
}

type transferNotifyResponse = common.HttpResponse[transferNotifyResult]

// TransferNotify receives mint notifications from the payment-token service.
// The response carries the amount to refund to the payer; errors abort the
// call and leave it to the payment service to dispose of the funds.
func (h *HttpHandler) TransferNotify(ctx *fiber.Ctx) (err error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	var req transferNotifyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	amount, err := parseUint128(req.Amount, "amount")
	if err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "validation error")
	}

	refund, err := h.usecase.HandleTransferNotification(ctx.UserContext(), caller, req.From, amount, req.Msg)
	if err != nil {
		if errors.Is(err, errs.Unauthorized) {
			return errs.WithPublicMessage(err, "unauthorized")
		}
		if errors.Is(err, errs.NotFound) {
			return errs.WithPublicMessage(err, "rune not found")
		}
		if errors.Is(err, errs.Unimplemented) {
			return errs.NewPublicError("launch type is not implemented")
		}
		if errors.Is(err, runes.ErrInsufficientPayment) {
			return errs.NewPublicError("transferred amount is insufficient for one unit")
		}
		if errors.Is(err, runes.ErrSupplyExceeded) {
			return errs.NewPublicError("insufficient remaining supply")
		}
		return errors.Wrap(err, "error during HandleTransferNotification")
	}

	resp := transferNotifyResponse{
		Result: &transferNotifyResult{Refund: refund},
	}
	return errors.WithStack(ctx.JSON(resp))
}
