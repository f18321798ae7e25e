package model

import (
	"time"

	"gigcircle.com/gigcircle/internal/constants"
)

// Transaction is a manually verified deposit request.
type Transaction struct {
	ID           string                    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string                    `gorm:"size:128;not null;index" json:"userId"`
	UserName     string                    `json:"userName"`
	UserEmail    string                    `json:"userEmail"`
	Amount       int64                     `gorm:"not null" json:"amount"`
	UTRNumber    string                    `gorm:"column:utr_number;size:64;not null;index" json:"utrNumber"`
	Status       constants.ReviewStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	Type         constants.TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	AdminComment *string                   `json:"adminComment"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    *time.Time                `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
