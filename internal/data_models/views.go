package dto

import (
	"time"

	"gigcircle.com/gigcircle/internal/constants"
	model "gigcircle.com/gigcircle/internal/models"
)

type GroupView struct {
	model.Group
	CreatorName     string   `json:"creatorName"`
	JoinedUserNames []string `json:"joinedUserNames"`
	Joined          bool     `json:"joined"`
}

type MembershipResult struct {
	GroupID     string `json:"groupId"`
	Joined      bool   `json:"joined"`
	MemberCount int    `json:"memberCount"`
	MaxMembers  int    `json:"maxMembers"`
}

type WalletView struct {
	Balance int64               `json:"wallet"`
	Entries []model.WalletEntry `json:"entries"`
}

// ReviewItem is one row of the admin queue or a user's history: a deposit or a withdrawal.
type ReviewItem struct {
	ID              string                    `json:"id"`
	Type            constants.TransactionType `json:"type"`
	UserID          string                    `json:"userId"`
	UserName        string                    `json:"userName"`
	UserEmail       string                    `json:"userEmail"`
	Amount          int64                     `json:"amount"`
	Status          constants.ReviewStatus    `json:"status"`
	UTRNumber       string                    `json:"utrNumber,omitempty"`
	RequestedAmount int64                     `json:"requestedAmount,omitempty"`
	PlatformFee     int64                     `json:"platformFee,omitempty"`
	FinalAmount     int64                     `json:"finalAmount,omitempty"`
	UPIID           string                    `json:"upiId,omitempty"`
	AdminComment    *string                   `json:"adminComment"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       *time.Time                `json:"updatedAt"`
}

func DepositItem(t model.Transaction) ReviewItem {
	return ReviewItem{
		ID:           t.ID,
		Type:         constants.TypeDeposit,
		UserID:       t.UserID,
		UserName:     t.UserName,
		UserEmail:    t.UserEmail,
		Amount:       t.Amount,
		Status:       t.Status,
		UTRNumber:    t.UTRNumber,
		AdminComment: t.AdminComment,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// WithdrawalItem shows finalAmount as the amount, which is what leaves the platform.
func WithdrawalItem(w model.Withdrawal) ReviewItem {
	return ReviewItem{
		ID:              w.ID,
		Type:            constants.TypeWithdrawal,
		UserID:          w.UserID,
		UserName:        w.UserName,
		UserEmail:       w.UserEmail,
		Amount:          w.FinalAmount,
		Status:          w.Status,
		RequestedAmount: w.RequestedAmount,
		PlatformFee:     w.PlatformFee,
		FinalAmount:     w.FinalAmount,
		UPIID:           w.UPIID,
		AdminComment:    w.AdminComment,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

type ProfileView struct {
	UID             string         `json:"uid"`
	Name            string         `json:"name"`
	Image           string         `json:"image"`
	Rating          float64        `json:"rating"`
	Bio             string         `json:"bio"`
	Occupation      string         `json:"occupation"`
	Location        string         `json:"location"`
	OfferedServices []string       `json:"offeredServices"`
	CompletedTasks  []ProfileEntry `json:"completedTasks"`
	CreatedGroups   []ProfileEntry `json:"createdGroups"`
}

type ProfileEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type SyncView struct {
	Revisions           map[string]int64 `json:"revisions"`
	PollIntervalSeconds int              `json:"pollIntervalSeconds"`
}
