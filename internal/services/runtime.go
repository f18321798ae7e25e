package services

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	apperrors "gigcircle.com/gigcircle/internal/errors"
	"gigcircle.com/gigcircle/internal/queue"
	repository "gigcircle.com/gigcircle/internal/repositories"
	"gigcircle.com/gigcircle/internal/util"
)

// Runtime carries the collaborators every service shares. It is built once at startup.
type Runtime struct {
	Store    *repository.Store
	Notifier queue.ChangeNotifier
	Retries  int
	Clock    util.Clock
}

func (rt *Runtime) now() time.Time {
	if rt.Clock == nil {
		return util.Now()
	}
	return rt.Clock()
}

// mutate runs fn in one database transaction and replays the whole read-validate-write
// cycle when another writer got there first.
func (rt *Runtime) mutate(ctx context.Context, fn func(tx *repository.Store) error) error {
	attempts := rt.Retries
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = rt.Store.Transaction(ctx, fn)
		if !errors.Is(err, apperrors.ErrOptimisticLock) {
			return err
		}
		log.WithField("attempt", attempt).Debug("optimistic lock conflict, retrying")
	}
	return err
}

// notify bumps topic revisions. Failures are logged and dropped.
func (rt *Runtime) notify(ctx context.Context, topics ...string) {
	if rt.Notifier == nil {
		return
	}
	for _, topic := range topics {
		if err := rt.Notifier.Notify(ctx, topic); err != nil {
			log.WithError(err).WithField("topic", topic).Warn("change notification failed")
		}
	}
}
