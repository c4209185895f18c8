package enums

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DeliveryMethod names the carrier that ships an order.
type DeliveryMethod string

const (
	DeliveryMethodViettelPost     DeliveryMethod = "VIETTEL_POST"
	DeliveryMethodGrabExpress     DeliveryMethod = "GRAB_EXPRESS"
	DeliveryMethodShopeeExpress   DeliveryMethod = "SHOPEE_EXPRESS"
	DeliveryMethodRaumaniaExpress DeliveryMethod = "RAUMANIA_EXPRESS"
)

// DefaultDeliveryMethod is preselected on a fresh checkout form.
const DefaultDeliveryMethod = DeliveryMethodRaumaniaExpress

var validDeliveryMethods = []DeliveryMethod{
	DeliveryMethodViettelPost,
	DeliveryMethodGrabExpress,
	DeliveryMethodShopeeExpress,
	DeliveryMethodRaumaniaExpress,
}

var deliveryMethodNames = map[DeliveryMethod]string{
	DeliveryMethodViettelPost:     "Viettel Post",
	DeliveryMethodGrabExpress:     "Grab Express",
	DeliveryMethodShopeeExpress:   "Shopee Express",
	DeliveryMethodRaumaniaExpress: "Raumania Express",
}

// Flat fees mirror the backend's table and are used for display only.
var deliveryMethodFees = map[DeliveryMethod]decimal.Decimal{
	DeliveryMethodViettelPost:     decimal.RequireFromString("25.00"),
	DeliveryMethodGrabExpress:     decimal.RequireFromString("35.00"),
	DeliveryMethodShopeeExpress:   decimal.RequireFromString("20.00"),
	DeliveryMethodRaumaniaExpress: decimal.RequireFromString("36.00"),
}

// DeliveryMethods lists every carrier in display order.
func DeliveryMethods() []DeliveryMethod {
	out := make([]DeliveryMethod, len(validDeliveryMethods))
	copy(out, validDeliveryMethods)
	return out
}

// String implements fmt.Stringer.
func (d DeliveryMethod) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryMethod.
func (d DeliveryMethod) IsValid() bool {
	for _, candidate := range validDeliveryMethods {
		if candidate == d {
			return true
		}
	}
	return false
}

// DisplayName returns the carrier label shown to shoppers.
func (d DeliveryMethod) DisplayName() string {
	if name, ok := deliveryMethodNames[d]; ok {
		return name
	}
	return string(d)
}

// Fee returns the fixed delivery fee; unknown methods cost zero.
func (d DeliveryMethod) Fee() decimal.Decimal {
	if fee, ok := deliveryMethodFees[d]; ok {
		return fee
	}
	return decimal.Zero
}

// ParseDeliveryMethod converts raw input into a DeliveryMethod.
func ParseDeliveryMethod(value string) (DeliveryMethod, error) {
	for _, candidate := range validDeliveryMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery method %q", value)
}
