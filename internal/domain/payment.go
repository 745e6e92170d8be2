package domain

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "CreditCard"
	PaymentPayPal       PaymentMethod = "PayPal"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
)

// IsValid reports whether m is one of the known methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentBankTransfer:
		return true
	default:
		return false
	}
}

// PaymentDetails carries the method-specific form fields. Only the fields of
// the selected method are ever inspected; switching methods blanks all of
// them so values cannot leak across a switch.
type PaymentDetails struct {
	CardNumber  string `json:"cardNumber,omitempty"`
	Expiry      string `json:"expirationDate,omitempty"` // MM/YYYY
	CVV         string `json:"cvv,omitempty"`
	PayPalEmail string `json:"paypalEmail,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
}

// Empty reports whether every field is blank.
func (d PaymentDetails) Empty() bool {
	return d == PaymentDetails{}
}
