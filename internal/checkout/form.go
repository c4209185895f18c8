package checkout

import (
	"reflect"
	"strings"

	"github.com/angelmondragon/scent-storefront/pkg/enums"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/go-playground/validator/v10"
)

// Form is the checkout form as submitted by the shopper.
type Form struct {
	types.ShippingAddress
	DeliveryMethod enums.DeliveryMethod `json:"deliveryMethod" validate:"delivery_method"`
	PaymentMethod  enums.PaymentMethod  `json:"paymentMethod" validate:"payment_method"`
}

// DefaultForm is a blank form with the preselected delivery and payment methods.
func DefaultForm() Form {
	return Form{
		DeliveryMethod: enums.DefaultDeliveryMethod,
		PaymentMethod:  enums.DefaultPaymentMethod,
	}
}

// requiredFields is the order missing fields are reported in.
var requiredFields = []string{"houseNumber", "streetName", "city", "state", "country", "postalCode"}

const msgRequired = "is required"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("delivery_method", func(fl validator.FieldLevel) bool {
		return enums.DeliveryMethod(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return enums.PaymentMethod(fl.Field().String()).IsValid()
	})
	return v
}

// FieldErrors maps a form field name to its problem.
type FieldErrors map[string]string

// Missing lists the required address fields that are absent, in form order.
func (fe FieldErrors) Missing() []string {
	var out []string
	for _, field := range requiredFields {
		if fe[field] == msgRequired {
			out = append(out, field)
		}
	}
	return out
}

// Validate trims the address and checks every field. A nil map means the form is valid.
func (f *Form) Validate() FieldErrors {
	f.ShippingAddress = f.ShippingAddress.Trimmed()
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": err.Error()}
	}
	out := make(FieldErrors, len(errs))
	for _, fieldErr := range errs {
		switch fieldErr.Tag() {
		case "required":
			out[fieldErr.Field()] = msgRequired
		case "delivery_method":
			out[fieldErr.Field()] = "is not a supported delivery method"
		case "payment_method":
			out[fieldErr.Field()] = "is not a supported payment method"
		default:
			out[fieldErr.Field()] = "is invalid"
		}
	}
	return out
}

// Request builds the order-creation body for the given cart item ids.
func (f Form) Request(itemIDs []string) types.CreateOrderRequest {
	ids := make([]string, len(itemIDs))
	copy(ids, itemIDs)
	return types.CreateOrderRequest{
		CartItemIDs:     ids,
		DeliveryMethod:  f.DeliveryMethod,
		PaymentMethod:   f.PaymentMethod,
		ShippingAddress: f.ShippingAddress,
	}
}
