package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/launchpad", h.WithCaller())

	r.Post("/runes", h.CreateRune)
	r.Get("/runes", h.GetRunes)
	r.Get("/runes/:ticker", h.GetRune)
	r.Post("/runes/:ticker/withdraw", h.Withdraw)
	r.Post("/runes/:ticker/creator-withdraw", h.CreatorWithdraw)
	r.Get("/balances/:account", h.GetBalances)
	r.Get("/balances/:account/:ticker", h.GetBalance)
	r.Post("/transfers/notify", h.TransferNotify)
	r.Post("/transfers/:id/result", h.TransferResult)
	r.Post("/sign", h.Sign)
	r.Put("/admin/signer", h.UpdateSigner)
	return nil
}
