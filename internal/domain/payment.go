package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodPaystack     PaymentMethod = "paystack"
	PaymentMethodStripe       PaymentMethod = "stripe"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodPaystack, PaymentMethodStripe:
		return true
	}
	return false
}

type Payment struct {
	ID                   int64
	BookingID            int64
	AmountCents          int64
	Method               PaymentMethod
	TransactionReference string
	Status               PaymentStatus
	PaymentDate          time.Time
	CreatedAt            time.Time
}
