package http

import (
	"net/http"

	"github.com/kerjahub/hris-backend/internal/domain/billing"
	"github.com/kerjahub/hris-backend/internal/handler/http/response"
)

type BillingHandler interface {
	ListPlans(w http.ResponseWriter, r *http.Request)
	GetUsage(w http.ResponseWriter, r *http.Request)
	RecordUsage(w http.ResponseWriter, r *http.Request)
}

type BillingHandlerImpl struct {
	billingService billing.BillingService
}

func NewBillingHandler(billingService billing.BillingService) BillingHandler {
	return &BillingHandlerImpl{billingService: billingService}
}

// ListPlans implements BillingHandler. The catalog route is public.
func (h *BillingHandlerImpl) ListPlans(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.billingService.ListPlans(r.Context()))
}

// GetUsage implements BillingHandler.
func (h *BillingHandlerImpl) GetUsage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	usage, err := h.billingService.GetUsage(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, usage)
}

// RecordUsage implements BillingHandler.
func (h *BillingHandlerImpl) RecordUsage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	log, err := h.billingService.RecordUsage(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Usage recorded", log)
}
