package model

import "time"

type User struct {
	ID    string `gorm:"primaryKey;size:128" json:"uid"`
	Name  string `gorm:"size:255" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Image string `gorm:"size:1024" json:"image"`

	Wallet int64   `gorm:"not null;default:0" json:"wallet"`
	Rating float64 `gorm:"not null;default:0" json:"rating"`

	CreatedGroups   IDSet `json:"createdGroups"`
	JoinedGroups    IDSet `json:"joinedGroups"`
	JoinedTasks     IDSet `json:"joinedTasks"`
	CompletedTasks  IDSet `json:"completedTasks"`
	OfferedServices IDSet `json:"offeredServices"`

	Bio         string `json:"bio"`
	Occupation  string `json:"occupation"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phoneNumber"`
	InstagramID string `gorm:"column:instagram_id" json:"instagramId"`
	Website     string `json:"website"`

	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
