package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ingresso/backend/api/transport"
	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/pkg/httpcontext"
	partnerUC "github.com/ingresso/backend/usecase/partner"
)

type PartnerHandler struct {
	baseHandler
	uc *partnerUC.UseCase
}

func NewPartnerHandler(uc *partnerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register partner
// @Tags partners
// @Router /partners [post]
func (h *PartnerHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreatePartnerRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out, err := h.uc.Create(stdCtx, partnerUC.CreateInput{
		Name:  req.Name,
		CNPJ:  req.CNPJ,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, partnerResponse(out))
}

// @Summary Get partner
// @Tags partners
// @Router /partners/{id} [get]
func (h *PartnerHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondBadRequest(ctx, "missing partner id")
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
		h.respondNotFound(ctx, domain.ErrPartnerNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, partnerResponse(*out))
}

func partnerResponse(out partnerUC.Output) transport.PartnerResponse {
	return transport.PartnerResponse{
		ID:    out.ID,
		Name:  out.Name,
		CNPJ:  out.CNPJ,
		Email: out.Email,
	}
}
