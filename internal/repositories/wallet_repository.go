package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "gigcircle.com/gigcircle/internal/errors"
	model "gigcircle.com/gigcircle/internal/models"
)

// WalletRepository is the append-only record of wallet changes.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Record(ctx context.Context, entry *model.WalletEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateLedgerEntry
		}
		return err
	}
	return nil
}

func (r *WalletRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.WalletEntry, error) {
	var entries []model.WalletEntry
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

// SumByUser is the balance implied by the entries; it should always equal the wallet column.
func (r *WalletRepository) SumByUser(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.WalletEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&sum).Error
	return sum, err
}
