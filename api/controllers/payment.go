package controllers

import (
	"net/http"

	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
)

// PaymentVerify is hit when the payment provider sends the shopper back.
func PaymentVerify(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		q := r.URL.Query()
		result, err := ws.Orders.VerifyPayment(r.Context(), q.Get("session_id"), q.Get("order_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, result)
	}
}
