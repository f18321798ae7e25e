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

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.Version = 1
	task.CreatedAt = now
	task.UpdatedAt = now
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrTaskNotFound)
	}
	return &task, nil
}

func (r *TaskRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Task, error) {
	var tasks []model.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByCreator(ctx context.Context, creatorID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("creator = ?", creatorID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", userID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByStatuses(
	ctx context.Context,
	statuses []constants.TaskStatus,
	limit, offset int,
) ([]model.Task, error) {
	if limit <= 0 {
		return nil, apperrors.Validation("limit must be positive")
	}

	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":          task.Title,
			"description":    task.Description,
			"reward":         task.Reward,
			"deadline":       task.Deadline,
			"status":         task.Status,
			"applied_people": task.AppliedPeople,
			"assigned_to":    task.AssignedTo,
			"escrow_amount":  task.EscrowAmount,
			"version":        gorm.Expr("version + 1"),
		})

	if err := checkVersioned(res); err != nil {
		return err
	}

	task.Version++
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Delete(&model.Task{})
	return checkVersioned(res)
}
