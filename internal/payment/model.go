package payment

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

const (
	MethodCreditCard     = "credit_card"
	MethodDebitCard      = "debit_card"
	MethodPaypal         = "paypal"
	MethodBankTransfer   = "bank_transfer"
	MethodCashOnDelivery = "cash_on_delivery"
)

var validMethods = map[string]bool{
	MethodCreditCard:     true,
	MethodDebitCard:      true,
	MethodPaypal:         true,
	MethodBankTransfer:   true,
	MethodCashOnDelivery: true,
}

func ValidMethod(m string) bool {
	return validMethods[m]
}

type Payment struct {
	ID            uint       `json:"id"`
	OrderID       uint       `json:"order_id"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	Status        Status     `json:"status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
