package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	apperrors "gigcircle.com/gigcircle/internal/errors"
)

type Fixtures struct {
	Users  []UserFixture  `yaml:"users"`
	Groups []GroupFixture `yaml:"groups"`
	Tasks  []TaskFixture  `yaml:"tasks"`
}

type UserFixture struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Picture string `yaml:"picture"`
	Wallet  int64  `yaml:"wallet"`
}

type GroupFixture struct {
	dto.CreateGroupRequest `yaml:",inline"`
	Creator                string   `yaml:"creator"`
	Members                []string `yaml:"members"`
}

type TaskFixture struct {
	dto.CreateTaskRequest `yaml:",inline"`
	Creator               string   `yaml:"creator"`
	Applicants            []string `yaml:"applicants"`
}

type SeedReport struct {
	Users  int
	Groups int
	Tasks  int
}

// Seeder loads development fixtures through the regular services, so every invariant still applies.
type Seeder struct {
	users  *UserService
	wallet *WalletService
	groups *GroupService
	tasks  *TaskService
}

func NewSeeder(users *UserService, wallet *WalletService, groups *GroupService, tasks *TaskService) *Seeder {
	return &Seeder{
		users:  users,
		wallet: wallet,
		groups: groups,
		tasks:  tasks,
	}
}

func ParseFixtures(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return &f, nil
}

func (s *Seeder) Load(ctx context.Context, f *Fixtures) (SeedReport, error) {
	var report SeedReport

	for _, u := range f.Users {
		user, created, err := s.users.SignIn(ctx, dto.Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Picture: u.Picture})
		if err != nil {
			return report, fmt.Errorf("user %s: %w", u.ID, err)
		}
		if created {
			report.Users++
		}
		if top := u.Wallet - user.Wallet; created && top > 0 {
			err := s.wallet.Credit(ctx, u.ID, top, constants.ReasonSeedGrant, u.ID)
			if err != nil && !errors.Is(err, apperrors.ErrDuplicateLedgerEntry) {
				return report, fmt.Errorf("user %s wallet: %w", u.ID, err)
			}
		}
	}

	for _, g := range f.Groups {
		group, err := s.groups.CreateGroup(ctx, g.Creator, g.CreateGroupRequest)
		if err != nil {
			return report, fmt.Errorf("group %q: %w", g.Title, err)
		}
		for _, member := range g.Members {
			if _, err := s.groups.ToggleJoin(ctx, group.ID, member); err != nil {
				return report, fmt.Errorf("group %q member %s: %w", g.Title, member, err)
			}
		}
		report.Groups++
	}

	for _, t := range f.Tasks {
		task, err := s.tasks.CreateTask(ctx, t.Creator, t.CreateTaskRequest)
		if err != nil {
			return report, fmt.Errorf("task %q: %w", t.Title, err)
		}
		for _, applicant := range t.Applicants {
			if _, err := s.tasks.ApplyToTask(ctx, task.ID, applicant); err != nil {
				return report, fmt.Errorf("task %q applicant %s: %w", t.Title, applicant, err)
			}
		}
		report.Tasks++
	}

	log.WithFields(log.Fields{"users": report.Users, "groups": report.Groups, "tasks": report.Tasks}).Info("fixtures loaded")
	return report, nil
}
