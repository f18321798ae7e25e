package constants

// EntryReason names the source of a wallet balance change.
type EntryReason string

const (
	ReasonSignupBonus      EntryReason = "signup_bonus"
	ReasonTaskEscrow       EntryReason = "task_escrow"
	ReasonTaskRefund       EntryReason = "task_refund"
	ReasonTaskReward       EntryReason = "task_reward"
	ReasonDeposit          EntryReason = "deposit"
	ReasonWithdrawalHold   EntryReason = "withdrawal_hold"
	ReasonWithdrawalRefund EntryReason = "withdrawal_refund"
	ReasonSeedGrant        EntryReason = "seed_grant"
)
