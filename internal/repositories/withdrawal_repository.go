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

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(ctx context.Context, w *model.Withdrawal) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.Type = constants.TypeWithdrawal
	w.Status = constants.ReviewPending
	w.CreatedAt = time.Now().UTC()
	w.UpdatedAt = nil
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WithdrawalRepository) FindByID(ctx context.Context, id string) (*model.Withdrawal, error) {
	var w model.Withdrawal
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrWithdrawalNotFound)
	}
	return &w, nil
}

func (r *WithdrawalRepository) List(ctx context.Context, status constants.ReviewStatus, userID string) ([]model.Withdrawal, error) {
	var out []model.Withdrawal
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

func (r *WithdrawalRepository) Resolve(
	ctx context.Context,
	id string,
	status constants.ReviewStatus,
	comment string,
	at time.Time,
) error {
	res := r.db.WithContext(ctx).Model(&model.Withdrawal{}).
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
