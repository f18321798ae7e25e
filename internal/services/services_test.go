package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	model "gigcircle.com/gigcircle/internal/models"
	"gigcircle.com/gigcircle/internal/queue"
	repository "gigcircle.com/gigcircle/internal/repositories"
	"gigcircle.com/gigcircle/internal/util"
)

const adminID = "admin-uid"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	rt       *Runtime
	clock    *testClock
	notifier *queue.MemoryNotifier
	users    *UserService
	wallet   *WalletService
	review   *ReviewService
	groups   *GroupService
	tasks    *TaskService
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func setupEnv(t *testing.T, escrow bool) *testEnv {
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, util.Location())}
	notifier := queue.NewMemoryNotifier()
	rt := &Runtime{
		Store:    repository.NewStore(setupTestDB(t)),
		Notifier: notifier,
		Retries:  3,
		Clock:    clock.Now,
	}

	return &testEnv{
		rt:       rt,
		clock:    clock,
		notifier: notifier,
		users:    NewUserService(rt, 10),
		wallet: NewWalletService(rt, WalletPolicy{
			DepositMinAmount:  1,
			WithdrawMinAmount: 50,
			WithdrawFee:       10,
		}),
		review: NewReviewService(rt, adminID),
		groups: NewGroupService(rt),
		tasks:  NewTaskService(rt, escrow),
	}
}

func (e *testEnv) signIn(t *testing.T, id string) *model.User {
	user, _, err := e.users.SignIn(context.Background(), dto.Identity{UserID: id, Name: "name-" + id, Email: id + "@example.com"})
	require.NoError(t, err)
	return user
}

func (e *testEnv) fund(t *testing.T, id string, amount int64) {
	require.NoError(t, e.wallet.Credit(context.Background(), id, amount, constants.ReasonSeedGrant, uuid.NewString()))
}

func (e *testEnv) balance(t *testing.T, id string) int64 {
	b, err := e.wallet.Balance(context.Background(), id)
	require.NoError(t, err)
	return b
}

// assertLedgerMatches checks that the wallet column equals the sum of the user's ledger entries.
func (e *testEnv) assertLedgerMatches(t *testing.T, id string) {
	sum, err := e.rt.Store.Ledger.SumByUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, e.balance(t, id), sum, "ledger drift for %s", id)
}

func groupRequest(max int) dto.CreateGroupRequest {
	return dto.CreateGroupRequest{
		Title:       "Evening football",
		Description: "5-a-side at the park",
		Category:    "sports",
		Location:    "Indiranagar",
		MaxMembers:  max,
	}
}

func TestUserService_SignInCreatesUserOnce(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()

	user, created, err := env.users.SignIn(ctx, dto.Identity{UserID: "u1", Name: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.EqualValues(t, 10, user.Wallet)
	assert.Zero(t, user.Rating)

	again, created, err := env.users.SignIn(ctx, dto.Identity{UserID: "u1", Name: "Renamed"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Asha", again.Name)
	assert.EqualValues(t, 10, env.balance(t, "u1"))
	env.assertLedgerMatches(t, "u1")
}

func TestUserService_UpdateProfileAndPublicView(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "u1")

	bio := "  likes football  "
	updated, err := env.users.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{
		Bio:             &bio,
		OfferedServices: []string{"tutoring", "tutoring", " ", "design"},
	})
	require.NoError(t, err)
	assert.Equal(t, "likes football", updated.Bio)
	assert.Equal(t, []string{"tutoring", "design"}, []string(updated.OfferedServices))

	group, err := env.groups.CreateGroup(ctx, "u1", groupRequest(4))
	require.NoError(t, err)

	profile, err := env.users.GetPublicProfile(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, profile.CreatedGroups, 1)
	assert.Equal(t, group.ID, profile.CreatedGroups[0].ID)
	assert.Empty(t, profile.CompletedTasks)
}

func TestUserService_SyncRevisionsMove(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()
	env.signIn(t, "u1")

	before, err := env.users.Sync(ctx, "u1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, before.PollIntervalSeconds)

	_, err = env.groups.CreateGroup(ctx, "u1", groupRequest(2))
	require.NoError(t, err)

	after, err := env.users.Sync(ctx, "u1", 5)
	require.NoError(t, err)
	assert.Greater(t, after.Revisions[constants.TopicGroups], before.Revisions[constants.TopicGroups])
	assert.Equal(t, before.Revisions[constants.TopicTasks], after.Revisions[constants.TopicTasks])
}
