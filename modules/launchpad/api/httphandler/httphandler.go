package httphandler

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/usecase"
)

type HttpHandler struct {
	usecase *usecase.Usecase

	// authTokens maps bearer tokens to account ids. The token is the caller's
	// identity proof; the account is what the ledger reasons about.
	authTokens map[string]string
}

func New(usecase *usecase.Usecase, authTokens map[string]string) *HttpHandler {
	return &HttpHandler{
		usecase:    usecase,
		authTokens: authTokens,
	}
}

const callerLocalKey = "launchpad:caller"

// WithCaller resolves the calling account from the Authorization header.
// Unauthenticated requests pass through with no caller; each mutating
// endpoint decides whether a caller is required.
func (h *HttpHandler) WithCaller() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if account, ok := h.authTokens[token]; ok {
				ctx.Locals(callerLocalKey, account)
			}
		}
		return ctx.Next()
	}
}

func (h *HttpHandler) caller(ctx *fiber.Ctx) (string, error) {
	account, ok := ctx.Locals(callerLocalKey).(string)
	if !ok || account == "" {
		return "", errs.WithPublicMessage(errors.Wrap(errs.Unauthorized, "missing or unknown bearer token"), "unauthorized")
	}
	return account, nil
}

func parseUint128(value, field string) (uint128.Uint128, error) {
	result, err := uint128.FromString(value)
	if err != nil {
		return uint128.Uint128{}, errors.Wrapf(errs.InvalidArgument, "%s %q is not a valid uint128", field, value)
	}
	return result, nil
}
