package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
	upiRe        = regexp.MustCompile(`^[a-zA-Z0-9]+@[a-zA-Z0-9]+$`)
)

// New returns a configured validator with the checkout struct-level rules
// registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})
	return v
}

// checkoutStructValidation enforces the instrument fields for the selected
// payment method: a 16-digit card number, MM/YY expiry and 3-digit cvv for
// CARD, a name@bank id for UPI.
func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)

	switch req.PaymentMethod {
	case "CARD":
		if !cardNumberRe.MatchString(req.CardNumber) {
			sl.ReportError(req.CardNumber, "cardNumber", "CardNumber", "card_number_16_digits", "")
		}
		if !expiryRe.MatchString(req.Expiry) {
			sl.ReportError(req.Expiry, "expiry", "Expiry", "expiry_mm_yy", "")
		}
		if !cvvRe.MatchString(req.CVV) {
			sl.ReportError(req.CVV, "cvv", "CVV", "cvv_3_digits", "")
		}
	case "UPI":
		if !upiRe.MatchString(req.UPIID) {
			sl.ReportError(req.UPIID, "upiId", "UPIID", "upi_id_format", "")
		}
	}
}
