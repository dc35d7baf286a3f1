package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ingresso/backend/api/transport"
	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/pkg/httpcontext"
	eventUC "github.com/ingresso/backend/usecase/event"
)

type EventHandler struct {
	baseHandler
	uc *eventUC.UseCase
}

func NewEventHandler(uc *eventUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register event
// @Tags events
// @Router /events [post]
func (h *EventHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreateEventRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out, err := h.uc.Create(stdCtx, eventUC.CreateInput{
		PartnerID:  req.PartnerID,
		Name:       req.Name,
		Date:       req.Date,
		TotalSpots: req.TotalSpots,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, eventResponse(out))
}

// @Summary Get event
// @Tags events
// @Router /events/{id} [get]
func (h *EventHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondBadRequest(ctx, "missing event id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out, err := h.uc.GetByID(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if out == nil {
		h.respondNotFound(ctx, domain.ErrEventNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, eventResponse(*out))
}

// @Summary Subscribe customer to event
// @Tags events
// @Router /events/{id}/subscribe [post]
func (h *EventHandler) Subscribe(ctx *fasthttp.RequestCtx) {
	eventID, _ := ctx.UserValue("id").(string)
	if eventID == "" {
		h.respondBadRequest(ctx, "missing event id")
		return
	}

	var req transport.SubscribeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out, err := h.uc.Subscribe(stdCtx, eventUC.SubscribeInput{
		EventID:    eventID,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.SubscriptionResponse{
		EventID:       out.EventID,
		EventTicketID: out.EventTicketID,
		CustomerID:    out.CustomerID,
		Ordering:      out.Ordering,
		ReservedAt:    out.ReservedAt.Format(time.RFC3339),
	})
}

func eventResponse(out eventUC.Output) transport.EventResponse {
	return transport.EventResponse{
		ID:             out.ID,
		Name:           out.Name,
		Date:           out.Date,
		TotalSpots:     out.TotalSpots,
		PartnerID:      out.PartnerID,
		RemainingSpots: out.RemainingSpots,
	}
}
