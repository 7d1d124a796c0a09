package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "lendtracker/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Delete(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, ownerID, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND loan_id = ?", ownerID, loanID).
		First(&out)
	if res.Error != nil {
		return nil, translateNotFound(res.Error)
	}
	return &out, nil
}

// GetByLoanIDForUpdate locks the row (SELECT ... FOR UPDATE) for the duration
// of the surrounding transaction. SQLite has no row locks; there the whole
// database serializes writes, so the clause is skipped.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, ownerID, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := q.
		Where("owner_id = ? AND loan_id = ?", ownerID, loanID).
		First(&out)
	if res.Error != nil {
		return nil, translateNotFound(res.Error)
	}
	return &out, nil
}

func (r *LoanRepository) ListByOwner(ctx context.Context, ownerID string) ([]*loanDomain.Loan, error) {
	var out []*loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]*loanDomain.Loan, error) {
	var out []*loanDomain.Loan
	res := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByOwnerAndStatus(ctx context.Context, ownerID string, s loanDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("owner_id = ? AND status = ?", ownerID, s).
		Count(&n)
	return n, res.Error
}

func (r *LoanRepository) CountByOwnerAndFrequency(ctx context.Context, ownerID string, f loanDomain.Frequency) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("owner_id = ? AND interest_frequency = ?", ownerID, f).
		Count(&n)
	return n, res.Error
}

// translateNotFound keeps gorm's sentinel out of the usecase layer.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanDomain.ErrNotFound
	}
	return err
}
