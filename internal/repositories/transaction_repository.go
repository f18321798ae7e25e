package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigcircle.com/gigcircle/internal/constants"
	apperrors "gigcircle.com/gigcircle/internal/errors"
	model "gigcircle.com/gigcircle/internal/models"
)

// TransactionRepository stores deposit requests.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, trx *model.Transaction) error {
	if trx.ID == "" {
		trx.ID = uuid.NewString()
	}
	trx.Type = constants.TypeDeposit
	trx.Status = constants.ReviewPending
	trx.CreatedAt = time.Now().UTC()
	trx.UpdatedAt = nil
	return r.db.WithContext(ctx).Create(trx).Error
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	var trx model.Transaction
	if err := r.db.WithContext(ctx).First(&trx, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrTransactionNotFound)
	}
	return &trx, nil
}

// CountLiveByUTR counts deposits with this reference that are not rejected.
func (r *TransactionRepository) CountLiveByUTR(ctx context.Context, utr string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("utr_number = ? AND status <> ?", utr, constants.ReviewRejected).
		Count(&n).Error
	return n, err
}

func (r *TransactionRepository) List(ctx context.Context, status constants.ReviewStatus, userID string) ([]model.Transaction, error) {
	var out []model.Transaction
	query := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Find(&out).Error
	return out, err
}

// Resolve moves a pending deposit to status. A row that is no longer pending is left alone
// and reported as already processed.
func (r *TransactionRepository) Resolve(
	ctx context.Context,
	id string,
	status constants.ReviewStatus,
	comment string,
	at time.Time,
) error {
	res := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND status = ?", id, constants.ReviewPending).
		Updates(map[string]interface{}{
			"status":        status,
			"admin_comment": comment,
			"updated_at":    at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrAlreadyProcessed
	}
	return nil
}
