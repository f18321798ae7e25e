package model

import (
	"time"

	"gigcircle.com/gigcircle/internal/constants"
	"gigcircle.com/gigcircle/internal/util"
)

type Group struct {
	ID           string                `gorm:"primaryKey;size:36" json:"id"`
	Title        string                `gorm:"not null" json:"title"`
	Description  string                `gorm:"not null" json:"description"`
	Category     string                `gorm:"size:32;not null;index" json:"category"`
	Location     string                `gorm:"not null" json:"location"`
	Creator      string                `gorm:"size:128;not null;index" json:"creator"`
	MemberCount  int                   `gorm:"not null;default:0" json:"memberCount"`
	MaxMembers   int                   `gorm:"not null" json:"maxMembers"`
	JoinedPeople IDSet                 `json:"joinedPeople"`
	Status       constants.GroupStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ExpiryDate   string                `gorm:"size:10" json:"expiryDate"`
	ExpiryTime   string                `gorm:"size:5" json:"expiryTime"`
	Version      uint                  `gorm:"not null;default:1" json:"version"`
	CreatedAt    time.Time             `json:"createdAt"`
}

func (g *Group) HasMember(userID string) bool {
	return SetContains(g.JoinedPeople, userID)
}

func (g *Group) IsFull() bool {
	return g.MemberCount >= g.MaxMembers
}

// IsExpiredAt treats stored expiry as final and otherwise compares now with expiryDate+expiryTime.
func (g *Group) IsExpiredAt(now time.Time) bool {
	if g.Status == constants.GroupExpired {
		return true
	}
	at, ok, err := util.ParseGroupExpiry(g.ExpiryDate, g.ExpiryTime)
	if err != nil || !ok {
		return false
	}
	return now.After(at)
}

func (g *Group) EffectiveStatus(now time.Time) constants.GroupStatus {
	if g.IsExpiredAt(now) {
		return constants.GroupExpired
	}
	return g.Status
}
