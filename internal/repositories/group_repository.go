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

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, group *model.Group) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	group.Version = 1
	group.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrGroupNotFound)
	}
	return &group, nil
}

func (r *GroupRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Group, error) {
	var groups []model.Group
	if len(ids) == 0 {
		return groups, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) List(ctx context.Context, category string) ([]model.Group, error) {
	var groups []model.Group
	query := r.db.WithContext(ctx).Order("created_at desc")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&groups).Error
	return groups, err
}

// ListExpiryCandidates pages through active groups that carry an expiry date; the caller decides which are due.
func (r *GroupRepository) ListExpiryCandidates(ctx context.Context, limit, offset int) ([]model.Group, error) {
	if limit <= 0 {
		return nil, apperrors.Validation("limit must be positive")
	}

	var groups []model.Group
	err := r.db.WithContext(ctx).
		Where("status = ? AND expiry_date <> ''", constants.GroupActive).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Update(ctx context.Context, group *model.Group) error {
	res := r.db.WithContext(ctx).Model(&model.Group{}).
		Where("id = ? AND version = ?", group.ID, group.Version).
		Updates(map[string]interface{}{
			"title":         group.Title,
			"description":   group.Description,
			"category":      group.Category,
			"location":      group.Location,
			"member_count":  group.MemberCount,
			"max_members":   group.MaxMembers,
			"joined_people": group.JoinedPeople,
			"status":        group.Status,
			"expiry_date":   group.ExpiryDate,
			"expiry_time":   group.ExpiryTime,
			"version":       gorm.Expr("version + 1"),
		})

	if err := checkVersioned(res); err != nil {
		return err
	}

	group.Version++
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, group *model.Group) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", group.ID, group.Version).
		Delete(&model.Group{})
	return checkVersioned(res)
}
