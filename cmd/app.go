package cmd

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/rueidis"
	log "github.com/sirupsen/logrus"

	config "gigcircle.com/gigcircle/internal/configs"
	"gigcircle.com/gigcircle/internal/queue"
	repository "gigcircle.com/gigcircle/internal/repositories"
	"gigcircle.com/gigcircle/internal/services"
	"gigcircle.com/gigcircle/internal/util"
)

type app struct {
	cfg    config.Config
	redis  rueidis.Client
	locker queue.Locker
	rt     *services.Runtime
	users  *services.UserService
	groups *services.GroupService
	tasks  *services.TaskService
	wallet *services.WalletService
	review *services.ReviewService
}

func bootstrap() *app {
	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using environment variables")
	}

	cfg := config.Load()
	config.SetupLogger(cfg)

	if loc, err := time.LoadLocation(cfg.Timezone); err != nil {
		log.WithField("tz", cfg.Timezone).Warn("unknown timezone, keeping Asia/Kolkata")
	} else {
		util.SetLocation(loc)
	}

	database := config.NewDatabaseClient(cfg)
	redisClient := config.NewRedisClient(cfg)

	var (
		notifier queue.ChangeNotifier = queue.NewMemoryNotifier()
		locker   queue.Locker         = queue.NewMemoryLocker()
	)
	if redisClient != nil {
		notifier = queue.NewRedisNotifier(redisClient, cfg.RedisKeyPrefix)
		locker = queue.NewRedisLocker(redisClient, cfg.RedisKeyPrefix)
	}

	rt := &services.Runtime{
		Store:    repository.NewStore(database),
		Notifier: notifier,
		Retries:  cfg.MutationRetries,
		Clock:    util.Now,
	}

	return &app{
		cfg:    cfg,
		redis:  redisClient,
		locker: locker,
		rt:     rt,
		users:  services.NewUserService(rt, cfg.Wallet.NewUserBalance),
		groups: services.NewGroupService(rt),
		tasks:  services.NewTaskService(rt, cfg.Wallet.TaskEscrow),
		wallet: services.NewWalletService(rt, services.WalletPolicy{
			DepositMinAmount:  cfg.Wallet.DepositMinAmount,
			WithdrawMinAmount: cfg.Wallet.WithdrawMinAmount,
			WithdrawFee:       cfg.Wallet.WithdrawFee,
		}),
		review: services.NewReviewService(rt, cfg.AdminUserID),
	}
}

func (a *app) expiryService() *services.ExpiryService {
	return services.NewExpiryService(a.rt, a.groups, a.tasks, a.locker, services.ExpiryOptions{
		Workers:   a.cfg.Sweep.Workers,
		QueueSize: a.cfg.Sweep.QueueSize,
		Interval:  time.Duration(a.cfg.Sweep.IntervalSeconds) * time.Second,
		BatchSize: a.cfg.Sweep.BatchSize,
	})
}

func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
}
