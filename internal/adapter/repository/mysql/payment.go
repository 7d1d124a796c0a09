package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "lendtracker/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID uint64) ([]*paymentDomain.Payment, error) {
	var out []*paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date DESC, created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) DeleteByLoan(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Delete(&paymentDomain.Payment{}).Error
}
