package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"eduportal/errors"
	"eduportal/http/response"
	"eduportal/services"
	"eduportal/utils"
)

// webhookBodyLimit caps how much of a webhook delivery gets read.
const webhookBodyLimit = 1 << 20

// PaymentHandler serves checkout initiation, payment status and the
// provider's webhook endpoint.
type PaymentHandler struct {
	payments *services.PaymentService
	webhooks *services.WebhookService
}

func NewPaymentHandler(payments *services.PaymentService, webhooks *services.WebhookService) *PaymentHandler {
	return &PaymentHandler{payments: payments, webhooks: webhooks}
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		RegistrationID int    `json:"registration_id"`
		Origin         string `json:"origin,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RegistrationID <= 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "registration_id is required")
		return
	}
	origin := req.Origin
	if origin == "" {
		origin = r.Header.Get("Origin")
	}
	if origin == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "origin is required")
		return
	}

	result, err := h.payments.CreateIntent(r.Context(), req.RegistrationID, origin)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "checkout session created", result)
}

// Status handles GET /payment-status?registration_id=.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, "registration_id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := h.payments.GetByRegistrationID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if payment == nil {
		response.ErrorResponse(w, http.StatusNotFound, "payment not found")
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", payment)
}

// Webhook handles POST /webhook/stripe. The raw body is what was signed, so
// it is read before any decoding. A bad signature answers 400, not 401: the
// caller is the provider, not a user session.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "error reading request body")
		return
	}

	ack, err := h.webhooks.Process(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.IsKind(err, errors.Unauthorized) {
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(w, err)
		return
	}
	response.SendJSON(w, http.StatusOK, ack)
}
