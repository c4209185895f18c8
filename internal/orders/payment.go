package orders

import (
	"context"
	"strings"
)

// PaymentState is the outcome shown on the page a hosted payment returns to.
type PaymentState string

const (
	PaymentVerified PaymentState = "success"
	PaymentFailed   PaymentState = "error"
)

const (
	MsgPaymentSuccessful   = "Payment successful!"
	MsgPaymentNotVerified  = "Payment verification failed"
	MsgPaymentVerifyError  = "Failed to verify payment"
	MsgInvalidSession      = "Invalid payment session"
	msgLoginForPaymentView = "Please log in to view payment status"
)

// PaymentResult is the payment return page state.
type PaymentResult struct {
	State PaymentState `json:"state"`
	// ViewOrder is where "View Order Details" leads.
	ViewOrder string `json:"viewOrder"`
}

// VerifyPayment confirms a hosted payment session with the backend. Verification
// failures are reported through the result state, not the error.
func (s *Store) VerifyPayment(ctx context.Context, sessionID, orderID string) (PaymentResult, error) {
	identity, err := s.auth.Identity(ctx)
	if err != nil {
		return PaymentResult{}, err
	}
	if identity == nil {
		s.notices.Error(msgLoginForPaymentView)
		return PaymentResult{}, s.auth.Unauthenticated("")
	}

	result := PaymentResult{State: PaymentFailed, ViewOrder: myOrdersPath}
	if id := strings.TrimSpace(orderID); id != "" {
		result.ViewOrder = OrderPath(id)
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		s.notices.Error(MsgInvalidSession)
		return result, nil
	}

	ok, err := s.backend.VerifyPayment(ctx, sessionID)
	switch {
	case err != nil:
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "orders.verify_payment_failed")
		s.notices.Error(MsgPaymentVerifyError)
	case ok:
		result.State = PaymentVerified
		s.notices.Success(MsgPaymentSuccessful)
	default:
		s.notices.Error(MsgPaymentNotVerified)
	}
	return result, nil
}
