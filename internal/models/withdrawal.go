package model

import (
	"time"

	"gigcircle.com/gigcircle/internal/constants"
)

type Withdrawal struct {
	ID              string                    `gorm:"primaryKey;size:36" json:"id"`
	UserID          string                    `gorm:"size:128;not null;index" json:"userId"`
	UserName        string                    `json:"userName"`
	UserEmail       string                    `json:"userEmail"`
	RequestedAmount int64                     `gorm:"not null" json:"requestedAmount"`
	PlatformFee     int64                     `gorm:"not null" json:"platformFee"`
	FinalAmount     int64                     `gorm:"not null" json:"finalAmount"`
	UPIID           string                    `gorm:"column:upi_id;size:255;not null" json:"upiId"`
	Status          constants.ReviewStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	Type            constants.TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	AdminComment    *string                   `json:"adminComment"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       *time.Time                `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
