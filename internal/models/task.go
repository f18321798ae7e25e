package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gigcircle.com/gigcircle/internal/constants"
	"gigcircle.com/gigcircle/internal/util"
)

type Task struct {
	ID            string               `gorm:"primaryKey;size:36" json:"id"`
	Title         string               `gorm:"not null" json:"title"`
	Description   string               `gorm:"not null" json:"description"`
	Reward        string               `gorm:"size:32;not null" json:"reward"`
	Deadline      string               `gorm:"size:32;not null" json:"deadline"`
	Creator       string               `gorm:"size:128;not null;index" json:"creator"`
	Status        constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AppliedPeople IDSet                `json:"appliedPeople"`
	AssignedTo    string               `gorm:"size:128;index" json:"assignedTo,omitempty"`
	EscrowAmount  int64                `gorm:"not null;default:0" json:"escrowAmount"`
	Version       uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ParseReward reads a string-encoded reward as whole currency units.
func ParseReward(reward string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(reward), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("reward %q is not a whole number", reward)
	}
	if v <= 0 {
		return 0, fmt.Errorf("reward must be positive")
	}
	return v, nil
}

func (t *Task) RewardAmount() (int64, error) {
	return ParseReward(t.Reward)
}

func (t *Task) HasApplicant(userID string) bool {
	return SetContains(t.AppliedPeople, userID)
}

// Expirable tasks are the ones nobody has delivered yet.
func (t *Task) Expirable() bool {
	switch t.Status {
	case constants.TaskPending, constants.TaskActive, constants.TaskAccepted:
		return true
	}
	return false
}

func (t *Task) IsPastDeadline(now time.Time) bool {
	at, err := util.ParseDeadline(t.Deadline)
	if err != nil {
		return false
	}
	return at.Before(now)
}

// EffectiveStatus derives expiry on read without touching the stored status.
func (t *Task) EffectiveStatus(now time.Time) constants.TaskStatus {
	if t.Expirable() && t.IsPastDeadline(now) {
		return constants.TaskExpired
	}
	return t.Status
}

// ApplyEffectiveStatus rewrites a read copy with its effective status. An expired task has no assignee.
func (t *Task) ApplyEffectiveStatus(now time.Time) {
	t.Status = t.EffectiveStatus(now)
	if t.Status == constants.TaskExpired {
		t.AssignedTo = ""
	}
}

func (t *Task) IsOpen(now time.Time) bool {
	s := t.EffectiveStatus(now)
	return s == constants.TaskPending || s == constants.TaskActive
}

func (t Task) CompletedByUser() bool {
	return t.Status == constants.TaskSubmitted || t.Status == constants.TaskCompleted
}

func (t Task) CompletedByCreator() bool {
	return t.Status == constants.TaskCompleted
}

func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		alias
		CompletedByUser    bool `json:"completedByUser"`
		CompletedByCreator bool `json:"completedByCreator"`
	}{
		alias:              alias(t),
		CompletedByUser:    t.CompletedByUser(),
		CompletedByCreator: t.CompletedByCreator(),
	})
}

var statusPriority = map[constants.TaskStatus]int{
	constants.TaskPending:   1,
	constants.TaskActive:    2,
	constants.TaskAccepted:  3,
	constants.TaskSubmitted: 3,
	constants.TaskCompleted: 4,
	constants.TaskExpired:   5,
}

func StatusPriority(s constants.TaskStatus) int {
	if p, ok := statusPriority[s]; ok {
		return p
	}
	return 999
}
