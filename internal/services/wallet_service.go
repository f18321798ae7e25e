package services

import (
	"context"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	apperrors "gigcircle.com/gigcircle/internal/errors"
	model "gigcircle.com/gigcircle/internal/models"
	repository "gigcircle.com/gigcircle/internal/repositories"
)

type WalletPolicy struct {
	DepositMinAmount  int64
	WithdrawMinAmount int64
	WithdrawFee       int64
}

type WalletService struct {
	rt     *Runtime
	policy WalletPolicy
}

func NewWalletService(rt *Runtime, policy WalletPolicy) *WalletService {
	return &WalletService{
		rt:     rt,
		policy: policy,
	}
}

func (s *WalletService) Balance(ctx context.Context, userID string) (int64, error) {
	user, err := s.rt.Store.Users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Wallet, nil
}

func (s *WalletService) History(ctx context.Context, userID string, limit int) (*dto.WalletView, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.rt.Store.Ledger.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return &dto.WalletView{Balance: balance, Entries: entries}, nil
}

// Credit adds amount to a wallet outside any other workflow. Reusing (reason, referenceID) is refused.
func (s *WalletService) Credit(
	ctx context.Context,
	userID string,
	amount int64,
	reason constants.EntryReason,
	referenceID string,
) error {
	err := s.rt.Store.Transaction(ctx, func(tx *repository.Store) error {
		return credit(ctx, tx, userID, amount, reason, referenceID)
	})
	if err != nil {
		return err
	}
	s.rt.notify(ctx, constants.UserTopic(userID))
	return nil
}

func (s *WalletService) SubmitDeposit(ctx context.Context, userID string, req dto.DepositRequest) (*model.Transaction, error) {
	utr := strings.TrimSpace(req.UTRNumber)
	switch {
	case req.Amount < s.policy.DepositMinAmount:
		return nil, apperrors.Validation("deposit amount is below the minimum")
	case utr == "":
		return nil, apperrors.Validation("UTR number is required")
	case req.ConfirmUTRNumber != "" && strings.TrimSpace(req.ConfirmUTRNumber) != utr:
		return nil, apperrors.Validation("UTR numbers do not match")
	}

	var trx *model.Transaction
	err := s.rt.Store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		used, err := tx.Deposits.CountLiveByUTR(ctx, utr)
		if err != nil {
			return err
		}
		if used > 0 {
			return apperrors.ErrDuplicateUTR
		}

		trx = &model.Transaction{
			UserID:    user.ID,
			UserName:  user.Name,
			UserEmail: user.Email,
			Amount:    req.Amount,
			UTRNumber: utr,
		}
		return tx.Deposits.Create(ctx, trx)
	})
	if err != nil {
		if !apperrors.IsException(err) {
			log.WithError(err).WithField("user_id", userID).Error("failed to submit deposit")
		}
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "transaction_id": trx.ID}).Info("deposit submitted")
	s.rt.notify(ctx, constants.TopicTransactions, constants.UserTopic(userID))
	return trx, nil
}

// SubmitWithdrawal debits the requested amount from the wallet at submission (withdrawal_hold).
// Completing the withdrawal later moves no money; rejecting it refunds the requested amount.
func (s *WalletService) SubmitWithdrawal(ctx context.Context, userID string, req dto.WithdrawalRequest) (*model.Withdrawal, error) {
	upi := strings.TrimSpace(req.UPIID)
	final := req.Amount - s.policy.WithdrawFee
	switch {
	case req.Amount < s.policy.WithdrawMinAmount:
		return nil, apperrors.Validation("withdrawal amount is below the minimum")
	case final <= 0:
		return nil, apperrors.Validation("withdrawal amount does not cover the platform fee")
	case upi == "" || !strings.Contains(upi, "@"):
		return nil, apperrors.Validation("a valid UPI id is required")
	}

	var w *model.Withdrawal
	err := s.rt.Store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		w = &model.Withdrawal{
			UserID:          user.ID,
			UserName:        user.Name,
			UserEmail:       user.Email,
			RequestedAmount: req.Amount,
			PlatformFee:     s.policy.WithdrawFee,
			FinalAmount:     final,
			UPIID:           upi,
		}
		if err := tx.Withdrawals.Create(ctx, w); err != nil {
			return err
		}
		return debit(ctx, tx, user.ID, req.Amount, constants.ReasonWithdrawalHold, w.ID)
	})
	if err != nil {
		if !apperrors.IsException(err) {
			log.WithError(err).WithField("user_id", userID).Error("failed to submit withdrawal")
		}
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "transaction_id": w.ID}).Info("withdrawal submitted")
	s.rt.notify(ctx, constants.TopicTransactions, constants.UserTopic(userID))
	return w, nil
}

// ListUserTransactions merges deposits and withdrawals, newest first.
func (s *WalletService) ListUserTransactions(ctx context.Context, userID string) ([]dto.ReviewItem, error) {
	return listReviewItems(ctx, s.rt.Store, dto.ReviewFilter{}, userID)
}

func listReviewItems(
	ctx context.Context,
	store *repository.Store,
	filter dto.ReviewFilter,
	userID string,
) ([]dto.ReviewItem, error) {
	items := []dto.ReviewItem{}

	if filter.Type == "" || filter.Type == constants.TypeDeposit {
		deposits, err := store.Deposits.List(ctx, filter.Status, userID)
		if err != nil {
			return nil, err
		}
		for _, d := range deposits {
			items = append(items, dto.DepositItem(d))
		}
	}

	if filter.Type == "" || filter.Type == constants.TypeWithdrawal {
		withdrawals, err := store.Withdrawals.List(ctx, filter.Status, userID)
		if err != nil {
			return nil, err
		}
		for _, w := range withdrawals {
			items = append(items, dto.WithdrawalItem(w))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
