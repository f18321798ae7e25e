package services

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	apperrors "gigcircle.com/gigcircle/internal/errors"
	model "gigcircle.com/gigcircle/internal/models"
	repository "gigcircle.com/gigcircle/internal/repositories"
)

type UserService struct {
	rt            *Runtime
	signupBalance int64
}

func NewUserService(rt *Runtime, signupBalance int64) *UserService {
	return &UserService{
		rt:            rt,
		signupBalance: signupBalance,
	}
}

// SignIn returns the user for id, creating the document with the signup balance on first sight.
func (s *UserService) SignIn(ctx context.Context, id dto.Identity) (*model.User, bool, error) {
	if strings.TrimSpace(id.UserID) == "" {
		return nil, false, apperrors.ErrUnauthenticated
	}

	var (
		user    *model.User
		created bool
	)
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		created = false
		existing, err := tx.Users.FindByID(ctx, id.UserID)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}

		user = &model.User{
			ID:              id.UserID,
			Name:            id.Name,
			Email:           id.Email,
			Image:           id.Picture,
			CreatedGroups:   model.NewIDSet(),
			JoinedGroups:    model.NewIDSet(),
			JoinedTasks:     model.NewIDSet(),
			CompletedTasks:  model.NewIDSet(),
			OfferedServices: model.NewIDSet(),
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		if s.signupBalance > 0 {
			if err := credit(ctx, tx, user.ID, s.signupBalance, constants.ReasonSignupBonus, user.ID); err != nil {
				return err
			}
			user.Wallet = s.signupBalance
		}
		created = true
		return nil
	})
	if err != nil {
		log.WithError(err).WithField("user_id", id.UserID).Error("sign-in failed")
		return nil, false, err
	}

	if created {
		log.WithField("user_id", user.ID).Info("user created")
		s.rt.notify(ctx, constants.UserTopic(user.ID))
	}
	return user, created, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.rt.Store.Users.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*model.User, error) {
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		return tx.Users.Modify(ctx, userID, func(u *model.User) {
			applyProfile(u, req)
		})
	})
	if err != nil {
		return nil, err
	}

	s.rt.notify(ctx, constants.UserTopic(userID))
	return s.rt.Store.Users.FindByID(ctx, userID)
}

func applyProfile(u *model.User, req dto.UpdateProfileRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&u.Bio, req.Bio)
	set(&u.Occupation, req.Occupation)
	set(&u.Location, req.Location)
	set(&u.PhoneNumber, req.PhoneNumber)
	set(&u.InstagramID, req.InstagramID)
	set(&u.Website, req.Website)

	if req.OfferedServices != nil {
		services := model.NewIDSet()
		for _, svc := range req.OfferedServices {
			if svc = strings.TrimSpace(svc); svc != "" {
				services = model.SetAdd(services, svc)
			}
		}
		u.OfferedServices = services
	}
}

// GetPublicProfile is the view other users get: no wallet, no contact details.
func (s *UserService) GetPublicProfile(ctx context.Context, userID string) (*dto.ProfileView, error) {
	user, err := s.rt.Store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.rt.Store.Tasks.FindByIDs(ctx, user.CompletedTasks)
	if err != nil {
		return nil, err
	}
	groups, err := s.rt.Store.Groups.FindByIDs(ctx, user.CreatedGroups)
	if err != nil {
		return nil, err
	}

	view := &dto.ProfileView{
		UID:             user.ID,
		Name:            user.Name,
		Image:           user.Image,
		Rating:          user.Rating,
		Bio:             user.Bio,
		Occupation:      user.Occupation,
		Location:        user.Location,
		OfferedServices: append([]string{}, user.OfferedServices...),
		CompletedTasks:  make([]dto.ProfileEntry, 0, len(tasks)),
		CreatedGroups:   make([]dto.ProfileEntry, 0, len(groups)),
	}
	for _, t := range tasks {
		view.CompletedTasks = append(view.CompletedTasks, dto.ProfileEntry{ID: t.ID, Title: t.Title})
	}
	for _, g := range groups {
		view.CreatedGroups = append(view.CreatedGroups, dto.ProfileEntry{ID: g.ID, Title: g.Title})
	}
	return view, nil
}

// Sync reports the revision of every topic the caller's screens depend on.
func (s *UserService) Sync(ctx context.Context, userID string, pollSeconds int) (*dto.SyncView, error) {
	topics := []string{
		constants.TopicGroups,
		constants.TopicTasks,
		constants.TopicTransactions,
		constants.UserTopic(userID),
	}

	revisions, err := s.rt.Notifier.Revisions(ctx, topics)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to read revisions")
		return nil, err
	}

	return &dto.SyncView{
		Revisions:           revisions,
		PollIntervalSeconds: pollSeconds,
	}, nil
}
