package enums

import "fmt"

// PaymentMethod describes how a shopper intends to settle an order.
type PaymentMethod string

const (
	PaymentMethodCash           PaymentMethod = "CASH"
	PaymentMethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard      PaymentMethod = "DEBIT_CARD"
	PaymentMethodPaypal         PaymentMethod = "PAYPAL"
	PaymentMethodStripe         PaymentMethod = "STRIPE"
	PaymentMethodGooglePay      PaymentMethod = "GOOGLE_PAY"
	PaymentMethodApplePay       PaymentMethod = "APPLE_PAY"
	PaymentMethodCryptocurrency PaymentMethod = "CRYPTOCURRENCY"
	PaymentMethodOther          PaymentMethod = "OTHER"
)

// DefaultPaymentMethod is preselected on a fresh checkout form.
const DefaultPaymentMethod = PaymentMethodCash

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodBankTransfer,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodPaypal,
	PaymentMethodStripe,
	PaymentMethodGooglePay,
	PaymentMethodApplePay,
	PaymentMethodCryptocurrency,
	PaymentMethodOther,
}

var paymentMethodNames = map[PaymentMethod]string{
	PaymentMethodCash:           "Cash on Delivery",
	PaymentMethodBankTransfer:   "Bank Transfer",
	PaymentMethodCreditCard:     "Credit Card",
	PaymentMethodDebitCard:      "Debit Card",
	PaymentMethodPaypal:         "PayPal",
	PaymentMethodStripe:         "Stripe",
	PaymentMethodGooglePay:      "Google Pay",
	PaymentMethodApplePay:       "Apple Pay",
	PaymentMethodCryptocurrency: "Cryptocurrency",
	PaymentMethodOther:          "Other",
}

// PaymentMethods lists every payment channel in display order.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(validPaymentMethods))
	copy(out, validPaymentMethods)
	return out
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// DisplayName returns the label shown to shoppers.
func (p PaymentMethod) DisplayName() string {
	if name, ok := paymentMethodNames[p]; ok {
		return name
	}
	return string(p)
}

// RequiresHostedSession reports whether checkout must hand off to the hosted payment page.
// Only cash on delivery settles without one.
func (p PaymentMethod) RequiresHostedSession() bool {
	return p != PaymentMethodCash
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
