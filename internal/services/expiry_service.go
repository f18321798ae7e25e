package services

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"gigcircle.com/gigcircle/internal/constants"
	"gigcircle.com/gigcircle/internal/queue"
	repository "gigcircle.com/gigcircle/internal/repositories"
)

const sweepLockKey = "expiry-sweep"

type jobKind string

const (
	jobGroup jobKind = "group"
	jobTask  jobKind = "task"
)

type expiryJob struct {
	kind jobKind
	id   string
}

func (j expiryJob) key() string {
	return string(j.kind) + ":" + j.id
}

type ExpiryOptions struct {
	Workers   int
	QueueSize int
	Interval  time.Duration
	BatchSize int
}

// ExpiryService persists group and task expiry in the background. A ticker collects due documents
// and feeds them, deduplicated, to a fixed set of workers.
type ExpiryService struct {
	queue       chan expiryJob
	wg          sync.WaitGroup
	requeueWG   sync.WaitGroup
	enqueued    sync.Map
	store       *repository.Store
	groups      *GroupService
	tasks       *TaskService
	locker      queue.Locker
	now         func() time.Time
	opts        ExpiryOptions
	requeueStop chan struct{}
	started     bool
}

func NewExpiryService(
	rt *Runtime,
	groups *GroupService,
	tasks *TaskService,
	locker queue.Locker,
	opts ExpiryOptions,
) *ExpiryService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}

	return &ExpiryService{
		queue:       make(chan expiryJob, opts.QueueSize),
		store:       rt.Store,
		groups:      groups,
		tasks:       tasks,
		locker:      locker,
		now:         rt.now,
		opts:        opts,
		requeueStop: make(chan struct{}),
	}
}

// Start launches the ticker and the workers. SweepOnce does not need it.
func (p *ExpiryService) Start() {
	p.started = true

	p.requeueWG.Add(1)
	go p.sweepLoop()

	for i := 1; i <= p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *ExpiryService) worker(workerID int) {
	defer p.wg.Done()

	log.WithField("worker", workerID).Debug("expiry worker started")

	for job := range p.queue {
		p.handle(workerID, job)
	}

	log.WithField("worker", workerID).Debug("expiry worker stopped")
}

func (p *ExpiryService) handle(workerID int, job expiryJob) {
	defer p.untrackEnqueued(job)

	if _, err := p.expire(context.Background(), job); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"worker": workerID,
			"kind":   job.kind,
			"id":     job.id,
		}).Warn("expiry failed")
	}
}

func (p *ExpiryService) expire(ctx context.Context, job expiryJob) (bool, error) {
	switch job.kind {
	case jobGroup:
		return p.groups.ExpireGroup(ctx, job.id)
	case jobTask:
		return p.tasks.ExpireTask(ctx, job.id)
	}
	return false, nil
}

func (p *ExpiryService) sweepLoop() {
	defer p.requeueWG.Done()

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.enqueueDueOnce()
		case <-p.requeueStop:
			return
		}
	}
}

func (p *ExpiryService) enqueueDueOnce() {
	ctx := context.Background()

	if p.locker != nil {
		ok, err := p.locker.Acquire(ctx, sweepLockKey, p.opts.Interval)
		if err != nil {
			log.WithError(err).Warn("expiry sweep: lock unavailable")
			return
		}
		if !ok {
			return
		}
		defer func() {
			if err := p.locker.Release(ctx, sweepLockKey); err != nil {
				log.WithError(err).Warn("expiry sweep: failed to release lock")
			}
		}()
	}

	jobs, err := p.collectDue(ctx)
	if err != nil {
		log.WithError(err).Error("expiry sweep: failed to list candidates")
		return
	}

	for _, job := range jobs {
		enqueued, queueFull := p.enqueueIfNotPresent(job)
		if !enqueued && !queueFull {
			continue
		}
		if queueFull {
			log.WithField("pending", len(jobs)).Warn("expiry sweep: queue full, remaining jobs wait for the next tick")
			return
		}
	}
}

// collectDue reads every due group and task page by page before anything is changed.
func (p *ExpiryService) collectDue(ctx context.Context) ([]expiryJob, error) {
	now := p.now()
	var jobs []expiryJob

	for offset := 0; ; offset += p.opts.BatchSize {
		groups, err := p.store.Groups.ListExpiryCandidates(ctx, p.opts.BatchSize, offset)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			if g.IsExpiredAt(now) {
				jobs = append(jobs, expiryJob{kind: jobGroup, id: g.ID})
			}
		}
		if len(groups) < p.opts.BatchSize {
			break
		}
	}

	statuses := []constants.TaskStatus{constants.TaskPending, constants.TaskActive, constants.TaskAccepted}
	for offset := 0; ; offset += p.opts.BatchSize {
		tasks, err := p.store.Tasks.ListByStatuses(ctx, statuses, p.opts.BatchSize, offset)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if t.IsPastDeadline(now) {
				jobs = append(jobs, expiryJob{kind: jobTask, id: t.ID})
			}
		}
		if len(tasks) < p.opts.BatchSize {
			break
		}
	}

	return jobs, nil
}

// SweepOnce expires everything that is due, synchronously, and reports how many documents changed.
func (p *ExpiryService) SweepOnce(ctx context.Context) (int, error) {
	if p.locker != nil {
		ok, err := p.locker.Acquire(ctx, sweepLockKey, p.opts.Interval)
		if err != nil {
			return 0, err
		}
		if !ok {
			log.Info("expiry sweep already running elsewhere")
			return 0, nil
		}
		defer func() {
			if err := p.locker.Release(ctx, sweepLockKey); err != nil {
				log.WithError(err).Warn("failed to release sweep lock")
			}
		}()
	}

	jobs, err := p.collectDue(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, job := range jobs {
		ok, err := p.expire(ctx, job)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{"kind": job.kind, "id": job.id}).Warn("expiry failed")
			continue
		}
		if ok {
			changed++
		}
	}
	return changed, nil
}

func (p *ExpiryService) enqueueIfNotPresent(job expiryJob) (bool, bool) {
	if !p.trackEnqueued(job) {
		return false, false
	}

	select {
	case p.queue <- job:
		return true, false
	default:
		p.untrackEnqueued(job)
		return false, true
	}
}

func (p *ExpiryService) trackEnqueued(job expiryJob) bool {
	_, loaded := p.enqueued.LoadOrStore(job.key(), struct{}{})
	return !loaded
}

func (p *ExpiryService) untrackEnqueued(job expiryJob) {
	p.enqueued.Delete(job.key())
}

func (p *ExpiryService) Shutdown(ctx context.Context) {
	if !p.started {
		return
	}

	close(p.requeueStop)
	p.requeueWG.Wait()
	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("expiry workers shut down cleanly")
	case <-ctx.Done():
		log.Warn("expiry worker shutdown timed out")
	}
}
