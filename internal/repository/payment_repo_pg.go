package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
}

type PGPaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	err := r.db.QueryRow(ctx, `INSERT INTO payments (booking_id, amount_cents, payment_method, transaction_reference, payment_status, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		p.BookingID, p.AmountCents, p.Method, p.TransactionReference, p.Status, p.PaymentDate).
		Scan(&p.ID, &p.CreatedAt)
	return mapError(err, "payment")
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
