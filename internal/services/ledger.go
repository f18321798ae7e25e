package services

import (
	"context"

	"gigcircle.com/gigcircle/internal/constants"
	apperrors "gigcircle.com/gigcircle/internal/errors"
	model "gigcircle.com/gigcircle/internal/models"
	repository "gigcircle.com/gigcircle/internal/repositories"
)

// credit and debit must run inside the caller's transaction so the balance change, its ledger
// row and the triggering state transition commit together.
func credit(
	ctx context.Context,
	tx *repository.Store,
	userID string,
	amount int64,
	reason constants.EntryReason,
	referenceID string,
) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if err := tx.Users.IncrementWallet(ctx, userID, amount); err != nil {
		return err
	}
	return tx.Ledger.Record(ctx, &model.WalletEntry{
		UserID:      userID,
		Reason:      reason,
		ReferenceID: referenceID,
		Delta:       amount,
	})
}

func debit(
	ctx context.Context,
	tx *repository.Store,
	userID string,
	amount int64,
	reason constants.EntryReason,
	referenceID string,
) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if err := tx.Users.DebitWallet(ctx, userID, amount); err != nil {
		return err
	}
	return tx.Ledger.Record(ctx, &model.WalletEntry{
		UserID:      userID,
		Reason:      reason,
		ReferenceID: referenceID,
		Delta:       -amount,
	})
}
