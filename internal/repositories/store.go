package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "gigcircle.com/gigcircle/internal/errors"
)

// Store groups the collection repositories over one connection or one open transaction.
type Store struct {
	db          *gorm.DB
	Users       *UserRepository
	Groups      *GroupRepository
	Tasks       *TaskRepository
	Deposits    *TransactionRepository
	Withdrawals *WithdrawalRepository
	Ledger      *WalletRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Users:       NewUserRepository(db),
		Groups:      NewGroupRepository(db),
		Tasks:       NewTaskRepository(db),
		Deposits:    NewTransactionRepository(db),
		Withdrawals: NewWithdrawalRepository(db),
		Ledger:      NewWalletRepository(db),
	}
}

// Transaction runs fn against repositories bound to a single database transaction.
// Any error returned by fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func notFound(err error, mapped error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return mapped
	}
	return err
}

func checkVersioned(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}
