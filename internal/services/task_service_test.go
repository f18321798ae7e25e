package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	apperrors "gigcircle.com/gigcircle/internal/errors"
	model "gigcircle.com/gigcircle/internal/models"
)

func taskRequest(reward, deadline string) dto.CreateTaskRequest {
	return dto.CreateTaskRequest{
		Title:       "Design a poster",
		Description: "A3 poster for the fest",
		Reward:      reward,
		Deadline:    deadline,
	}
}

// acceptedTask walks a task to accepted with "worker" as the assignee.
func acceptedTask(t *testing.T, env *testEnv, reward, deadline string) *model.Task {
	ctx := context.Background()
	task, err := env.tasks.CreateTask(ctx, "creator", taskRequest(reward, deadline))
	require.NoError(t, err)
	_, err = env.tasks.ApplyToTask(ctx, task.ID, "worker")
	require.NoError(t, err)
	task, err = env.tasks.AcceptApplicant(ctx, task.ID, "creator", "worker")
	require.NoError(t, err)
	return task
}

func TestTaskService_CreateValidation(t *testing.T) {
	env := setupEnv(t, true)
	env.signIn(t, "creator")

	cases := map[string]dto.CreateTaskRequest{
		"missing title":      {Description: "d", Reward: "10", Deadline: "2025-06-02"},
		"non numeric reward": taskRequest("ten", "2025-06-02"),
		"negative reward":    taskRequest("-5", "2025-06-02"),
		"bad deadline":       taskRequest("10", "tomorrow"),
		"past deadline":      taskRequest("10", "2025-05-30 10:00"),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.tasks.CreateTask(context.Background(), "creator", req)
			assert.Equal(t, 400, apperrors.StatusCode(err))
		})
	}
}

func TestTaskService_VerifyAndPayCreditsOnce(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "creator")
	env.signIn(t, "worker")
	env.fund(t, "creator", 100)

	task := acceptedTask(t, env, "50", "2025-06-03 18:00")
	assert.Equal(t, constants.TaskAccepted, task.Status)
	assert.Equal(t, "worker", task.AssignedTo)
	assert.Empty(t, task.AppliedPeople)
	assert.EqualValues(t, 50, task.EscrowAmount)
	assert.EqualValues(t, 60, env.balance(t, "creator"))

	_, err := env.tasks.VerifyAndPay(ctx, task.ID, "creator")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotSubmitted)

	task, err = env.tasks.MarkWorkerComplete(ctx, task.ID, "worker")
	require.NoError(t, err)
	assert.True(t, task.CompletedByUser())
	assert.False(t, task.CompletedByCreator())

	_, err = env.tasks.MarkWorkerComplete(ctx, task.ID, "worker")
	require.NoError(t, err)

	task, err = env.tasks.VerifyAndPay(ctx, task.ID, "creator")
	require.NoError(t, err)
	assert.Equal(t, constants.TaskCompleted, task.Status)
	assert.True(t, task.CompletedByCreator())
	assert.EqualValues(t, 60, env.balance(t, "worker"))

	_, err = env.tasks.VerifyAndPay(ctx, task.ID, "creator")
	assert.ErrorIs(t, err, apperrors.ErrTaskAlreadyCompleted)
	assert.EqualValues(t, 60, env.balance(t, "worker"))
	assert.EqualValues(t, 60, env.balance(t, "creator"))

	worker, err := env.users.GetUser(ctx, "worker")
	require.NoError(t, err)
	assert.Equal(t, []string{task.ID}, []string(worker.CompletedTasks))

	env.assertLedgerMatches(t, "creator")
	env.assertLedgerMatches(t, "worker")
}

func TestTaskService_EscrowDisabledLeavesCreatorWallet(t *testing.T) {
	env := setupEnv(t, false)
	ctx := context.Background()
	env.signIn(t, "creator")
	env.signIn(t, "worker")

	task := acceptedTask(t, env, "50", "2025-06-03")
	assert.Zero(t, task.EscrowAmount)
	assert.EqualValues(t, 10, env.balance(t, "creator"))

	_, err := env.tasks.MarkWorkerComplete(ctx, task.ID, "worker")
	require.NoError(t, err)
	_, err = env.tasks.VerifyAndPay(ctx, task.ID, "creator")
	require.NoError(t, err)

	assert.EqualValues(t, 10, env.balance(t, "creator"))
	assert.EqualValues(t, 60, env.balance(t, "worker"))
}

func TestTaskService_EscrowNeedsFunds(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "creator")

	_, err := env.tasks.CreateTask(ctx, "creator", taskRequest("50", "2025-06-03"))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	created, err := env.tasks.ListCreatedTasks(ctx, "creator")
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.EqualValues(t, 10, env.balance(t, "creator"))
}

func TestTaskService_Authorization(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	for _, id := range []string{"creator", "worker", "other"} {
		env.signIn(t, id)
	}

	task, err := env.tasks.CreateTask(ctx, "creator", taskRequest("5", "2025-06-03"))
	require.NoError(t, err)

	_, err = env.tasks.ApplyToTask(ctx, task.ID, "creator")
	assert.ErrorIs(t, err, apperrors.ErrOwnTask)

	_, err = env.tasks.AcceptApplicant(ctx, task.ID, "creator", "other")
	assert.ErrorIs(t, err, apperrors.ErrNotAnApplicant)

	_, err = env.tasks.ApplyToTask(ctx, task.ID, "worker")
	require.NoError(t, err)
	task, err = env.tasks.ApplyToTask(ctx, task.ID, "worker")
	require.NoError(t, err)
	assert.Len(t, task.AppliedPeople, 1)

	_, err = env.tasks.AcceptApplicant(ctx, task.ID, "other", "worker")
	assert.ErrorIs(t, err, apperrors.ErrNotTaskCreator)

	_, err = env.tasks.AcceptApplicant(ctx, task.ID, "creator", "worker")
	require.NoError(t, err)

	_, err = env.tasks.ApplyToTask(ctx, task.ID, "other")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotOpen)

	_, err = env.tasks.MarkWorkerComplete(ctx, task.ID, "other")
	assert.ErrorIs(t, err, apperrors.ErrNotTaskAssignee)

	_, err = env.tasks.MarkWorkerComplete(ctx, task.ID, "worker")
	require.NoError(t, err)

	_, err = env.tasks.VerifyAndPay(ctx, task.ID, "worker")
	assert.ErrorIs(t, err, apperrors.ErrNotTaskCreator)
}

func TestTaskService_DeleteRefundsEscrow(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "creator")
	env.signIn(t, "worker")

	task, err := env.tasks.CreateTask(ctx, "creator", taskRequest("8", "2025-06-03"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, env.balance(t, "creator"))

	_, err = env.tasks.ApplyToTask(ctx, task.ID, "worker")
	require.NoError(t, err)

	err = env.tasks.DeleteTask(ctx, task.ID, "worker")
	assert.ErrorIs(t, err, apperrors.ErrNotTaskCreator)

	require.NoError(t, env.tasks.DeleteTask(ctx, task.ID, "creator"))
	assert.EqualValues(t, 10, env.balance(t, "creator"))

	_, err = env.tasks.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	worker, err := env.users.GetUser(ctx, "worker")
	require.NoError(t, err)
	assert.NotContains(t, []string(worker.JoinedTasks), task.ID)
	env.assertLedgerMatches(t, "creator")
}

func TestTaskService_DeleteRefusedAfterAcceptance(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "creator")
	env.signIn(t, "worker")

	task := acceptedTask(t, env, "5", "2025-06-03")

	err := env.tasks.DeleteTask(ctx, task.ID, "creator")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotDeletable)
	assert.EqualValues(t, 5, env.balance(t, "creator"))
}

func TestTaskService_ExpireAcceptedTask(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "creator")
	env.signIn(t, "worker")

	task := acceptedTask(t, env, "5", "2025-06-01 18:00")
	env.clock.Advance(7 * time.Hour)

	got, err := env.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskExpired, got.Status)

	_, err = env.tasks.MarkWorkerComplete(ctx, task.ID, "worker")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotAccepted)

	changed, err := env.tasks.ExpireTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := env.rt.Store.Tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskExpired, stored.Status)
	assert.Empty(t, stored.AssignedTo)
	assert.Zero(t, stored.EscrowAmount)
	assert.EqualValues(t, 10, env.balance(t, "creator"))

	changed, err = env.tasks.ExpireTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.EqualValues(t, 10, env.balance(t, "creator"))

	require.NoError(t, env.tasks.DeleteTask(ctx, task.ID, "creator"))
	assert.EqualValues(t, 10, env.balance(t, "creator"))
	env.assertLedgerMatches(t, "creator")
}

func TestTaskService_SubmittedTaskNeverExpires(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "creator")
	env.signIn(t, "worker")

	task := acceptedTask(t, env, "5", "2025-06-01 18:00")
	_, err := env.tasks.MarkWorkerComplete(ctx, task.ID, "worker")
	require.NoError(t, err)

	env.clock.Advance(48 * time.Hour)

	changed, err := env.tasks.ExpireTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	paid, err := env.tasks.VerifyAndPay(ctx, task.ID, "creator")
	require.NoError(t, err)
	assert.Equal(t, constants.TaskCompleted, paid.Status)
	assert.EqualValues(t, 15, env.balance(t, "worker"))
}

func TestTaskService_Listings(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "creator")
	env.signIn(t, "worker")
	env.fund(t, "creator", 100)

	accepted := acceptedTask(t, env, "5", "2025-06-03")
	open1, err := env.tasks.CreateTask(ctx, "creator", taskRequest("5", "2025-06-03"))
	require.NoError(t, err)
	open2, err := env.tasks.CreateTask(ctx, "creator", dto.CreateTaskRequest{
		Title: "Proofread thesis", Description: "40 pages", Reward: "5", Deadline: "2025-06-03",
	})
	require.NoError(t, err)
	_, err = env.tasks.ApplyToTask(ctx, open2.ID, "worker")
	require.NoError(t, err)

	created, err := env.tasks.ListCreatedTasks(ctx, "creator")
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, constants.TaskPending, created[0].Status)
	assert.Equal(t, constants.TaskPending, created[1].Status)
	assert.Equal(t, accepted.ID, created[2].ID)

	pending, err := env.tasks.ListTasks(ctx, dto.TaskFilter{Status: constants.TaskPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	search, err := env.tasks.ListTasks(ctx, dto.TaskFilter{Search: "THESIS"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, open2.ID, search[0].ID)

	assigned, err := env.tasks.ListAssignedTasks(ctx, "worker")
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, accepted.ID, assigned[0].ID)

	applied, err := env.tasks.ListAppliedTasks(ctx, "worker")
	require.NoError(t, err)
	ids := []string{}
	for _, task := range applied {
		ids = append(ids, task.ID)
	}
	assert.ElementsMatch(t, []string{accepted.ID, open2.ID}, ids)
	assert.NotContains(t, ids, open1.ID)
}

func TestSortByStatusPriority_IsStable(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Status: constants.TaskCompleted},
		{ID: "2", Status: "archived"},
		{ID: "3", Status: constants.TaskPending},
		{ID: "4", Status: constants.TaskExpired},
		{ID: "5", Status: constants.TaskSubmitted},
		{ID: "6", Status: constants.TaskAccepted},
		{ID: "7", Status: constants.TaskActive},
		{ID: "8", Status: constants.TaskPending},
	}

	SortByStatusPriority(tasks)

	var order []string
	for _, task := range tasks {
		order = append(order, task.ID)
	}
	assert.Equal(t, []string{"3", "8", "7", "5", "6", "1", "4", "2"}, order)
}

func TestTaskService_ExpiredReadsHaveNoAssignee(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "creator")
	env.signIn(t, "worker")
	env.fund(t, "creator", 100)

	task := acceptedTask(t, env, "10", "2025-06-01 16:00")
	env.clock.Advance(5 * time.Hour)

	got, err := env.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskExpired, got.Status)
	assert.Empty(t, got.AssignedTo)

	created, err := env.tasks.ListCreatedTasks(ctx, "creator")
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Empty(t, created[0].AssignedTo)

	assigned, err := env.tasks.ListAssignedTasks(ctx, "worker")
	require.NoError(t, err)
	for _, a := range assigned {
		assert.Equal(t, constants.TaskExpired, a.Status)
		assert.Empty(t, a.AssignedTo)
	}

	stored, err := env.rt.Store.Tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskAccepted, stored.Status)
	assert.Equal(t, "worker", stored.AssignedTo)
}
