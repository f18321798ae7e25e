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
	"gigcircle.com/gigcircle/internal/util"
)

const unknownUserName = "Unknown User"

type GroupService struct {
	rt *Runtime
}

func NewGroupService(rt *Runtime) *GroupService {
	return &GroupService{rt: rt}
}

func (s *GroupService) CreateGroup(ctx context.Context, creatorID string, req dto.CreateGroupRequest) (*model.Group, error) {
	group, err := newGroup(creatorID, req)
	if err != nil {
		return nil, err
	}

	err = s.rt.mutate(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users.FindByID(ctx, creatorID); err != nil {
			return err
		}
		if err := tx.Groups.Create(ctx, group); err != nil {
			return err
		}
		return tx.Users.Modify(ctx, creatorID, func(u *model.User) {
			u.CreatedGroups = model.SetAdd(u.CreatedGroups, group.ID)
		})
	})
	if err != nil {
		if !apperrors.IsException(err) {
			log.WithError(err).WithField("user_id", creatorID).Error("failed to create group")
		}
		return nil, err
	}

	log.WithFields(log.Fields{"group_id": group.ID, "user_id": creatorID}).Info("group created")
	s.rt.notify(ctx, constants.TopicGroups, constants.UserTopic(creatorID))
	return group, nil
}

func newGroup(creatorID string, req dto.CreateGroupRequest) (*model.Group, error) {
	g := &model.Group{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.TrimSpace(req.Category),
		Location:     strings.TrimSpace(req.Location),
		Creator:      creatorID,
		MaxMembers:   req.MaxMembers,
		MemberCount:  0,
		JoinedPeople: model.NewIDSet(),
		Status:       constants.GroupActive,
		ExpiryDate:   strings.TrimSpace(req.ExpiryDate),
		ExpiryTime:   strings.TrimSpace(req.ExpiryTime),
	}

	switch {
	case g.Title == "" || g.Description == "" || g.Category == "" || g.Location == "":
		return nil, apperrors.Validation("title, description, category and location are required")
	case !constants.IsGroupCategory(g.Category):
		return nil, apperrors.Validation("unknown group category")
	case g.MaxMembers < 1:
		return nil, apperrors.Validation("maxMembers must be at least 1")
	case g.ExpiryDate == "" && g.ExpiryTime != "":
		return nil, apperrors.Validation("expiryTime needs an expiryDate")
	}
	if _, _, err := util.ParseGroupExpiry(g.ExpiryDate, g.ExpiryTime); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return g, nil
}

func (s *GroupService) GetGroup(ctx context.Context, groupID, viewerID string) (*dto.GroupView, error) {
	group, err := s.rt.Store.Groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(ctx, []model.Group{*group}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListGroups derives expiry on read; nothing is written from here.
func (s *GroupService) ListGroups(ctx context.Context, viewerID string, filter dto.GroupFilter) ([]dto.GroupView, error) {
	groups, err := s.rt.Store.Groups.List(ctx, filter.Category)
	if err != nil {
		log.WithError(err).Error("failed to list groups")
		return nil, err
	}

	now := s.rt.now()
	kept := groups[:0]
	for _, g := range groups {
		if filter.ActiveOnly && g.IsExpiredAt(now) {
			continue
		}
		if filter.Search != "" && !util.ContainsFold(g.Title, filter.Search) {
			continue
		}
		kept = append(kept, g)
	}

	return s.buildViews(ctx, kept, viewerID)
}

func (s *GroupService) buildViews(ctx context.Context, groups []model.Group, viewerID string) ([]dto.GroupView, error) {
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.Creator)
		ids = append(ids, g.JoinedPeople...)
	}

	users, err := s.rt.Store.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	name := func(id string) string {
		if u, ok := users[id]; ok && u.Name != "" {
			return u.Name
		}
		return unknownUserName
	}

	now := s.rt.now()
	views := make([]dto.GroupView, 0, len(groups))
	for _, g := range groups {
		view := dto.GroupView{
			Group:           g,
			CreatorName:     name(g.Creator),
			JoinedUserNames: make([]string, 0, len(g.JoinedPeople)),
			Joined:          g.HasMember(viewerID),
		}
		view.Status = g.EffectiveStatus(now)
		for _, id := range g.JoinedPeople {
			view.JoinedUserNames = append(view.JoinedUserNames, name(id))
		}
		views = append(views, view)
	}
	return views, nil
}

// ToggleJoin removes a member or admits a non-member, all under the group's version check.
func (s *GroupService) ToggleJoin(ctx context.Context, groupID, userID string) (*dto.MembershipResult, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	var result dto.MembershipResult
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		group, err := tx.Groups.FindByID(ctx, groupID)
		if err != nil {
			return err
		}
		if _, err := tx.Users.FindByID(ctx, userID); err != nil {
			return err
		}

		joining := !group.HasMember(userID)
		if joining {
			if group.IsExpiredAt(s.rt.now()) {
				return apperrors.ErrGroupExpired
			}
			if group.IsFull() {
				return apperrors.ErrGroupFull
			}
			group.JoinedPeople = model.SetAdd(group.JoinedPeople, userID)
		} else {
			group.JoinedPeople = model.SetRemove(group.JoinedPeople, userID)
		}
		group.MemberCount = len(group.JoinedPeople)

		if err := tx.Groups.Update(ctx, group); err != nil {
			return err
		}
		if err := tx.Users.Modify(ctx, userID, func(u *model.User) {
			if joining {
				u.JoinedGroups = model.SetAdd(u.JoinedGroups, groupID)
			} else {
				u.JoinedGroups = model.SetRemove(u.JoinedGroups, groupID)
			}
		}); err != nil {
			return err
		}

		result = dto.MembershipResult{
			GroupID:     group.ID,
			Joined:      joining,
			MemberCount: group.MemberCount,
			MaxMembers:  group.MaxMembers,
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsException(err) {
			log.WithError(err).WithFields(log.Fields{"group_id": groupID, "user_id": userID}).Error("failed to toggle membership")
		}
		return nil, err
	}

	s.rt.notify(ctx, constants.TopicGroups, constants.UserTopic(userID))
	return &result, nil
}

// DeleteGroup removes the group and every reference to it from member and creator profiles.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID, requesterID string, confirmed bool) error {
	var touched []string
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		group, err := tx.Groups.FindByID(ctx, groupID)
		if err != nil {
			return err
		}
		if group.Creator != requesterID {
			return apperrors.ErrNotGroupCreator
		}
		if !confirmed {
			return apperrors.ErrConfirmationRequired
		}

		touched = touched[:0]
		for _, memberID := range group.JoinedPeople {
			err := tx.Users.Modify(ctx, memberID, func(u *model.User) {
				u.JoinedGroups = model.SetRemove(u.JoinedGroups, groupID)
			})
			if errors.Is(err, apperrors.ErrUserNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			touched = append(touched, memberID)
		}

		if err := tx.Users.Modify(ctx, group.Creator, func(u *model.User) {
			u.CreatedGroups = model.SetRemove(u.CreatedGroups, groupID)
		}); err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}

		return tx.Groups.Delete(ctx, group)
	})
	if err != nil {
		if !apperrors.IsException(err) {
			log.WithError(err).WithField("group_id", groupID).Error("failed to delete group")
		}
		return err
	}

	log.WithFields(log.Fields{"group_id": groupID, "user_id": requesterID}).Info("group deleted")
	topics := []string{constants.TopicGroups, constants.UserTopic(requesterID)}
	for _, id := range touched {
		topics = append(topics, constants.UserTopic(id))
	}
	s.rt.notify(ctx, topics...)
	return nil
}

// ExpireGroup persists the expired status once the expiry moment has passed. It reports whether it changed anything.
func (s *GroupService) ExpireGroup(ctx context.Context, groupID string) (bool, error) {
	expired := false
	err := s.rt.mutate(ctx, func(tx *repository.Store) error {
		expired = false
		group, err := tx.Groups.FindByID(ctx, groupID)
		if err != nil {
			return err
		}
		if group.Status == constants.GroupExpired || !group.IsExpiredAt(s.rt.now()) {
			return nil
		}

		group.Status = constants.GroupExpired
		if err := tx.Groups.Update(ctx, group); err != nil {
			return err
		}
		expired = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if expired {
		log.WithField("group_id", groupID).Info("group expired")
		s.rt.notify(ctx, constants.TopicGroups)
	}
	return expired, nil
}
