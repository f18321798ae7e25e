package model

import (
	"time"

	"gigcircle.com/gigcircle/internal/constants"
)

// WalletEntry records one balance change. The (user, reason, reference) triple is unique,
// so the same reward or refund cannot land twice.
type WalletEntry struct {
	ID          uint                  `gorm:"primaryKey" json:"id"`
	UserID      string                `gorm:"size:128;not null;uniqueIndex:idx_wallet_entry_ref,priority:1" json:"userId"`
	Reason      constants.EntryReason `gorm:"type:varchar(32);not null;uniqueIndex:idx_wallet_entry_ref,priority:2" json:"reason"`
	ReferenceID string                `gorm:"size:128;not null;uniqueIndex:idx_wallet_entry_ref,priority:3" json:"referenceId"`
	Delta       int64                 `gorm:"not null" json:"delta"`
	CreatedAt   time.Time             `gorm:"index" json:"createdAt"`
}
