package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	apperrors "gigcircle.com/gigcircle/internal/errors"
	model "gigcircle.com/gigcircle/internal/models"
	repository "gigcircle.com/gigcircle/internal/repositories"
	"gigcircle.com/gigcircle/internal/util"
)

type TaskService struct {
	rt     *Runtime
	escrow bool
}

// NewTaskService builds the task lifecycle. With escrow on, the reward leaves the creator's
// wallet when the task is posted and comes back on delete or expiry.
func NewTaskService(rt *Runtime, escrow bool) *TaskService {
	return &TaskService{
		rt:     rt,
		escrow: escrow,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, creatorID string, req dto.CreateTaskRequest) (*model.Task, error) {
	task, reward, err := s.newTask(creatorID, req)
	if err != nil {
		return nil, err
	}

	err = s.rt.Store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users.FindByID(ctx, creatorID); err != nil {
			return err
		}
		if s.escrow {
			task.EscrowAmount = reward
		}
		if err := tx.Tasks.CreateTask(ctx, task); err != nil {
			return err
		}
		if s.escrow {
			return debit(ctx, tx, creatorID, reward, constants.ReasonTaskEscrow, task.ID)
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsException(err) {
			log.WithError(err).WithField("user_id", creatorID).Error("failed to create task")
		}
		return nil, err
	}

	log.WithFields(log.Fields{"task_id": task.ID, "user_id": creatorID, "escrow": task.EscrowAmount}).Info("task created")
	s.rt.notify(ctx, constants.TopicTasks, constants.UserTopic(creatorID))
	return task, nil
}

func (s *TaskService) newTask(creatorID string, req dto.CreateTaskRequest) (*model.Task, int64, error) {
	task := &model.Task{
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Reward:        strings.TrimSpace(req.Reward),
		Deadline:      strings.TrimSpace(req.Deadline),
		Creator:       creatorID,
		Status:        constants.TaskPending,
		AppliedPeople: model.NewIDSet(),
	}

	if task.Title == "" || task.Description == "" || task.Deadline == "" || task.Reward == "" {
		return nil, 0, apperrors.Validation("title, description, deadline and reward are required")
	}
	reward, err := model.ParseReward(task.Reward)
	if err != nil {
		return nil, 0, apperrors.Validation(err.Error())
	}
	deadline, err := util.ParseDeadline(task.Deadline)
	if err != nil {
		return nil, 0, apperrors.Validation(err.Error())
	}
	if !deadline.After(s.rt.now()) {
		return nil, 0, apperrors.Validation("deadline must be in the future")
	}
	return task, reward, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.rt.Store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.ApplyEffectiveStatus(s.rt.now())
	return task, nil
}

// ListTasks is the marketplace listing. Status filtering uses the effective status.
func (s *TaskService) ListTasks(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error) {
	tasks, err := s.rt.Store.Tasks.List(ctx)
	if err != nil {
		log.WithError(err).Error("failed to list tasks")
		return nil, err
	}

	tasks = s.withEffectiveStatus(tasks)
	kept := tasks[:0]
	for _, t := range tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !util.ContainsFold(t.Title, filter.Search) && !util.ContainsFold(t.Description, filter.Search) {
			continue
		}
		kept = append(kept, t)
	}
	return kept, nil
}

// ListCreatedTasks orders a creator's tasks by status priority, keeping creation order within a status.
func (s *TaskService) ListCreatedTasks(ctx context.Context, creatorID string) ([]model.Task, error) {
	tasks, err := s.rt.Store.Tasks.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	tasks = s.withEffectiveStatus(tasks)
	SortByStatusPriority(tasks)
	return tasks, nil
}

func SortByStatusPriority(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return model.StatusPriority(tasks[i].Status) < model.StatusPriority(tasks[j].Status)
	})
}

func (s *TaskService) ListAssignedTasks(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.rt.Store.Tasks.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatus(tasks), nil
}

func (s *TaskService) ListAppliedTasks(ctx context.Context, userID string) ([]model.Task, error) {
	user, err := s.rt.Store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.rt.Store.Tasks.FindByIDs(ctx, user.JoinedTasks)
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatus(tasks), nil
}

func (s *TaskService) withEffectiveStatus(tasks []model.Task) []model.Task {
	now := s.rt.now()
	for i := range tasks {
		tasks[i].ApplyEffectiveStatus(now)
	}
	return tasks
}

func (s *TaskService) ApplyToTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	var task *model.Task
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		var err error
		task, err = tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Creator == userID {
			return apperrors.ErrOwnTask
		}
		if !task.IsOpen(s.rt.now()) {
			return apperrors.ErrTaskNotOpen
		}
		if task.HasApplicant(userID) {
			return nil
		}

		task.AppliedPeople = model.SetAdd(task.AppliedPeople, userID)
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}
		return tx.Users.Modify(ctx, userID, func(u *model.User) {
			u.JoinedTasks = model.SetAdd(u.JoinedTasks, taskID)
		})
	})
	if err != nil {
		return nil, s.logFailure(err, "apply", taskID, userID)
	}

	s.rt.notify(ctx, constants.TopicTasks, constants.UserTopic(userID))
	return task, nil
}

// AcceptApplicant moves one applicant into assignedTo. Only the creator may do it, and only while the task is open.
func (s *TaskService) AcceptApplicant(ctx context.Context, taskID, requesterID, applicantID string) (*model.Task, error) {
	var task *model.Task
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		var err error
		task, err = tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Creator != requesterID {
			return apperrors.ErrNotTaskCreator
		}
		if !task.IsOpen(s.rt.now()) {
			return apperrors.ErrTaskNotOpen
		}
		if !task.HasApplicant(applicantID) {
			return apperrors.ErrNotAnApplicant
		}

		task.AssignedTo = applicantID
		task.AppliedPeople = model.SetRemove(task.AppliedPeople, applicantID)
		task.Status = constants.TaskAccepted
		return tx.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, s.logFailure(err, "accept", taskID, requesterID)
	}

	log.WithFields(log.Fields{"task_id": taskID, "user_id": applicantID}).Info("applicant accepted")
	s.rt.notify(ctx, constants.TopicTasks, constants.UserTopic(applicantID))
	return task, nil
}

// MarkWorkerComplete is the assignee's half of the handshake. Repeating it is harmless.
func (s *TaskService) MarkWorkerComplete(ctx context.Context, taskID, requesterID string) (*model.Task, error) {
	var task *model.Task
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		var err error
		task, err = tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.AssignedTo == "" || task.AssignedTo != requesterID {
			return apperrors.ErrNotTaskAssignee
		}
		if task.Status == constants.TaskSubmitted {
			return nil
		}
		if task.EffectiveStatus(s.rt.now()) != constants.TaskAccepted {
			return apperrors.ErrTaskNotAccepted
		}

		task.Status = constants.TaskSubmitted
		return tx.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, s.logFailure(err, "complete", taskID, requesterID)
	}

	s.rt.notify(ctx, constants.TopicTasks, constants.UserTopic(task.Creator))
	return task, nil
}

// VerifyAndPay is the creator's half. The status transition, the reward credit and the completed-task
// entry commit together, so the reward lands exactly once.
func (s *TaskService) VerifyAndPay(ctx context.Context, taskID, requesterID string) (*model.Task, error) {
	var task *model.Task
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		var err error
		task, err = tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Creator != requesterID {
			return apperrors.ErrNotTaskCreator
		}
		switch task.Status {
		case constants.TaskCompleted:
			return apperrors.ErrTaskAlreadyCompleted
		case constants.TaskSubmitted:
		default:
			return apperrors.ErrTaskNotSubmitted
		}

		reward, err := task.RewardAmount()
		if err != nil {
			return apperrors.Validation(err.Error())
		}

		task.Status = constants.TaskCompleted
		task.EscrowAmount = 0
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}
		if err := credit(ctx, tx, task.AssignedTo, reward, constants.ReasonTaskReward, task.ID); err != nil {
			return err
		}
		return tx.Users.Modify(ctx, task.AssignedTo, func(u *model.User) {
			u.CompletedTasks = model.SetAdd(u.CompletedTasks, task.ID)
		})
	})
	if err != nil {
		return nil, s.logFailure(err, "verify", taskID, requesterID)
	}

	log.WithFields(log.Fields{"task_id": taskID, "user_id": task.AssignedTo, "reward": task.Reward}).Info("task verified and paid")
	s.rt.notify(ctx, constants.TopicTasks, constants.UserTopic(task.AssignedTo), constants.UserTopic(task.Creator))
	return task, nil
}

// DeleteTask is allowed before acceptance or after expiry. Any escrow goes back to the creator.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, requesterID string) error {
	var touched []string
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Creator != requesterID {
			return apperrors.ErrNotTaskCreator
		}
		switch task.EffectiveStatus(s.rt.now()) {
		case constants.TaskPending, constants.TaskActive, constants.TaskExpired:
		default:
			return apperrors.ErrTaskNotDeletable
		}

		if task.EscrowAmount > 0 {
			if err := credit(ctx, tx, task.Creator, task.EscrowAmount, constants.ReasonTaskRefund, task.ID); err != nil {
				return err
			}
		}

		touched = touched[:0]
		related := append([]string{}, task.AppliedPeople...)
		if task.AssignedTo != "" {
			related = append(related, task.AssignedTo)
		}
		for _, userID := range related {
			err := tx.Users.Modify(ctx, userID, func(u *model.User) {
				u.JoinedTasks = model.SetRemove(u.JoinedTasks, taskID)
			})
			if errors.Is(err, apperrors.ErrUserNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			touched = append(touched, userID)
		}

		return tx.Tasks.Delete(ctx, task)
	})
	if err != nil {
		return s.logFailure(err, "delete", taskID, requesterID)
	}

	log.WithFields(log.Fields{"task_id": taskID, "user_id": requesterID}).Info("task deleted")
	topics := []string{constants.TopicTasks, constants.UserTopic(requesterID)}
	for _, id := range touched {
		topics = append(topics, constants.UserTopic(id))
	}
	s.rt.notify(ctx, topics...)
	return nil
}

// ExpireTask persists expiry for an undelivered task past its deadline, clears the assignee and
// refunds any escrow. Submitted work never expires.
func (s *TaskService) ExpireTask(ctx context.Context, taskID string) (bool, error) {
	var (
		expired bool
		task    *model.Task
	)
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		expired = false
		var err error
		task, err = tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return err
		}
		if !task.Expirable() || !task.IsPastDeadline(s.rt.now()) {
			return nil
		}

		refund := task.EscrowAmount
		task.Status = constants.TaskExpired
		task.AssignedTo = ""
		task.EscrowAmount = 0
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}
		if refund > 0 {
			if err := credit(ctx, tx, task.Creator, refund, constants.ReasonTaskRefund, task.ID); err != nil {
				return err
			}
		}
		expired = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if expired {
		log.WithField("task_id", taskID).Info("task expired")
		s.rt.notify(ctx, constants.TopicTasks, constants.UserTopic(task.Creator))
	}
	return expired, nil
}

func (s *TaskService) logFailure(err error, action, taskID, userID string) error {
	if !apperrors.IsException(err) {
		log.WithError(err).WithFields(log.Fields{
			"task_id": taskID,
			"user_id": userID,
			"action":  action,
		}).Error("task operation failed")
	}
	return err
}
