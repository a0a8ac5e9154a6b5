package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stripe/stripe-go/v76"

	"github.com/vinted-clone/marketplace-backend/internal/logging"
	"github.com/vinted-clone/marketplace-backend/internal/services"
)

type paymentForm struct {
	StripeToken string `schema:"stripeToken"`
	TotalPrice  string `schema:"totalPrice"`
	Description string `schema:"description"`
}

// Payment handles POST /payment and relays the processor's charge object.
func (h *Handler) Payment(w http.ResponseWriter, r *http.Request) {
	if h.payments == nil {
		writeError(w, r, http.StatusInternalServerError, services.ErrPaymentsDisabled)
		return
	}

	var form paymentForm
	if err := h.decodeForm(w, r, &form); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	amount, err := strconv.ParseFloat(form.TotalPrice, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("totalPrice must be a number"))
		return
	}

	raw, err := h.payments.Charge(r.Context(), services.ChargeRequest{
		Token:       form.StripeToken,
		Amount:      amount,
		Description: form.Description,
	})
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			logging.FromContext(r.Context()).Warn("charge rejected", "code", stripeErr.Code, "status", stripeErr.HTTPStatusCode)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: stripeErr.Msg})
			return
		}
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}
