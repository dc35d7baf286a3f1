package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ingresso/backend/api/transport"
	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/pkg/httpcontext"
	customerUC "github.com/ingresso/backend/usecase/customer"
)

type CustomerHandler struct {
	baseHandler
	uc *customerUC.UseCase
}

func NewCustomerHandler(uc *customerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register customer
// @Tags customers
// @Router /customers [post]
func (h *CustomerHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreateCustomerRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out, err := h.uc.Create(stdCtx, customerUC.CreateInput{
		Name:  req.Name,
		CPF:   req.CPF,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, customerResponse(out))
}

// @Summary Get customer
// @Tags customers
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondBadRequest(ctx, "missing customer id")
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
		h.respondNotFound(ctx, domain.ErrCustomerNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, customerResponse(*out))
}

func customerResponse(out customerUC.Output) transport.CustomerResponse {
	return transport.CustomerResponse{
		ID:    out.ID,
		Name:  out.Name,
		CPF:   out.CPF,
		Email: out.Email,
	}
}
