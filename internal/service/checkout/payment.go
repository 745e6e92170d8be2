package checkout

import (
	"regexp"
	"time"

	"cocktailhaven/internal/domain"
)

var (
	cardNumberPattern  = regexp.MustCompile(`^\d{16}$`)
	cvvPattern         = regexp.MustCompile(`^\d{3}$`)
	bankAccountPattern = regexp.MustCompile(`^\d{10,}$`)
	paypalEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	expiryPattern      = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
)

// overridable in tests
var timeNow = time.Now

// ValidatePayment applies the selected method's rules to the form fields.
// Checks short-circuit: the first failing rule is returned and nothing
// else is inspected. Fields belonging to other methods are ignored.
func ValidatePayment(method domain.PaymentMethod, details domain.PaymentDetails) error {
	switch method {
	case domain.PaymentCreditCard:
		if !cardNumberPattern.MatchString(details.CardNumber) {
			return domain.Validation("cardNumber", "please enter a valid card number (16 digits)")
		}
		if details.Expiry == "" {
			return domain.Validation("expirationDate", "please select the expiration date")
		}
		if !expiryValid(details.Expiry) {
			return domain.Validation("expirationDate", "expiration date must be MM/YYYY and not in the past")
		}
		if !cvvPattern.MatchString(details.CVV) {
			return domain.Validation("cvv", "please enter a valid CVV (3 digits)")
		}
	case domain.PaymentPayPal:
		if !paypalEmailPattern.MatchString(details.PayPalEmail) {
			return domain.Validation("paypalEmail", "please enter a valid PayPal email")
		}
	case domain.PaymentBankTransfer:
		if !bankAccountPattern.MatchString(details.BankAccount) {
			return domain.Validation("bankAccount", "please enter a valid bank account number (at least 10 digits)")
		}
	default:
		return domain.Validation("paymentMethod", "please select a payment method")
	}
	return nil
}

// expiryValid accepts MM/YYYY dates no earlier than the current month.
func expiryValid(expiry string) bool {
	m := expiryPattern.FindStringSubmatch(expiry)
	if m == nil {
		return false
	}
	month := atoi(m[1])
	year := atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}
	now := timeNow()
	if year != now.Year() {
		return year > now.Year()
	}
	return month >= int(now.Month())
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
