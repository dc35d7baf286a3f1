package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ingresso/backend/internal/infrastructure/deadletter"
	"github.com/ingresso/backend/pkg/httpcontext"
	"github.com/ingresso/backend/repository"
)

// AdminHandler serves the operator surface: wiping state between load tests
// and inspecting facts that could not be published.
type AdminHandler struct {
	baseHandler
	customers repository.CustomerRepository
	partners  repository.PartnerRepository
	events    repository.EventRepository
	tickets   repository.TicketRepository
	outbox    repository.OutboxRepository
	letters   *deadletter.Store
}

func NewAdminHandler(
	customers repository.CustomerRepository,
	partners repository.PartnerRepository,
	events repository.EventRepository,
	tickets repository.TicketRepository,
	outbox repository.OutboxRepository,
	letters *deadletter.Store,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		customers:   customers,
		partners:    partners,
		events:      events,
		tickets:     tickets,
		outbox:      outbox,
		letters:     letters,
	}
}

// @Summary Wipe all state
// @Tags admin
// @Router /admin/reset [delete]
func (h *AdminHandler) Reset(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// Children go before their owners.
	steps := []func() error{
		func() error { return h.tickets.DeleteAll(stdCtx) },
		func() error { return h.events.DeleteAll(stdCtx) },
		func() error { return h.customers.DeleteAll(stdCtx) },
		func() error { return h.partners.DeleteAll(stdCtx) },
		func() error { return h.outbox.DeleteAll(stdCtx) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			h.respondError(ctx, err)
			return
		}
	}

	h.logger.Warn("all state wiped by admin request")
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"result": "reset"})
}

// @Summary List dead letters
// @Tags admin
// @Router /admin/dead-letters [get]
func (h *AdminHandler) DeadLetters(ctx *fasthttp.RequestCtx) {
	letters, err := h.letters.List(parseInt(string(ctx.QueryArgs().Peek("limit")), 50))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, letters)
}

// @Summary Discard dead letter
// @Tags admin
// @Router /admin/dead-letters/{id} [delete]
func (h *AdminHandler) DiscardDeadLetter(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondBadRequest(ctx, "missing dead letter id")
		return
	}
	if err := h.letters.Discard(id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil && v > 0 {
		return v
	}
	return fallback
}
