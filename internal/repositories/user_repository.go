package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "gigcircle.com/gigcircle/internal/errors"
	model "gigcircle.com/gigcircle/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.Version = 1
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// A concurrent first sign-in won; retrying finds that user.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrOptimisticLock
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

// FindByIDs returns the users that exist, keyed by id.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]model.User, error) {
	out := make(map[string]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// Update writes everything except the wallet, which only moves through IncrementWallet/DebitWallet.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Updates(map[string]interface{}{
			"name":             user.Name,
			"email":            user.Email,
			"image":            user.Image,
			"rating":           user.Rating,
			"created_groups":   user.CreatedGroups,
			"joined_groups":    user.JoinedGroups,
			"joined_tasks":     user.JoinedTasks,
			"completed_tasks":  user.CompletedTasks,
			"offered_services": user.OfferedServices,
			"bio":              user.Bio,
			"occupation":       user.Occupation,
			"location":         user.Location,
			"phone_number":     user.PhoneNumber,
			"instagram_id":     user.InstagramID,
			"website":          user.Website,
			"version":          gorm.Expr("version + 1"),
		})

	if err := checkVersioned(res); err != nil {
		return err
	}

	user.Version++
	return nil
}

// Modify loads the user, applies fn and writes it back under the version check.
func (r *UserRepository) Modify(ctx context.Context, id string, fn func(u *model.User)) error {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	fn(user)
	return r.Update(ctx, user)
}

func (r *UserRepository) IncrementWallet(ctx context.Context, id string, delta int64) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"wallet":  gorm.Expr("wallet + ?", delta),
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// DebitWallet subtracts amount only when the balance covers it.
func (r *UserRepository) DebitWallet(ctx context.Context, id string, amount int64) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND wallet >= ?", id, amount).
		Updates(map[string]interface{}{
			"wallet":  gorm.Expr("wallet - ?", amount),
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrInsufficientBalance
	}
	return nil
}
