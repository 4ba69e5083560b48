package httphandler

import (
	"encoding/base64"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/signerclient"
)

type signRequest struct {
	Payload    string `json:"payload"` // base64, exactly 32 bytes once decoded
	Ticker     string `json:"ticker"`
	KeyVersion uint32 `json:"keyVersion"`
}

type signResult struct {
	Signature json.RawMessage `json:"signature"`
	RequestID string          `json:"requestId,omitempty"`
}

type signResponse = common.HttpResponse[signResult]

func (h *HttpHandler) Sign(ctx *fiber.Ctx) (err error) {
	caller, err := h.caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	var req signRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		return errs.WithPublicMessage(errors.Wrap(errs.InvalidArgument, "payload is not valid base64"), "validation error")
	}
	if len(payload) != signerclient.PayloadSize {
		return errs.WithPublicMessage(errors.Wrapf(errs.InvalidArgument, "payload must be exactly %d bytes, got %d", signerclient.PayloadSize, len(payload)), "validation error")
	}

	result, err := h.usecase.Sign(ctx.UserContext(), caller, payload, req.Ticker, req.KeyVersion)
	if err != nil {
		if errors.Is(err, errs.Unauthorized) {
			return errs.WithPublicMessage(err, "unauthorized")
		}
		return errors.Wrap(err, "error during Sign")
	}

	resp := signResponse{
		Result: &signResult{
			Signature: result.Signature,
			RequestID: result.RequestID,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
