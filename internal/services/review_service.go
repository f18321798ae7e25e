package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	apperrors "gigcircle.com/gigcircle/internal/errors"
	repository "gigcircle.com/gigcircle/internal/repositories"
)

const (
	commentDepositApproved    = "Payment verified and approved"
	commentDepositRejected    = "Payment verification failed"
	commentWithdrawalComplete = "Withdrawal processed successfully"
	commentWithdrawalRejected = "Withdrawal request rejected"
)

// ReviewService is the admin side of deposits and withdrawals. Every transition is a conditional
// update on status pending, so a second click finds nothing to change and moves no money.
type ReviewService struct {
	rt      *Runtime
	adminID string
}

func NewReviewService(rt *Runtime, adminID string) *ReviewService {
	return &ReviewService{
		rt:      rt,
		adminID: adminID,
	}
}

func (s *ReviewService) IsAdmin(userID string) bool {
	return userID != "" && userID == s.adminID
}

func (s *ReviewService) authorize(requesterID string) error {
	if !s.IsAdmin(requesterID) {
		return apperrors.ErrAdminOnly
	}
	return nil
}

func (s *ReviewService) ListForReview(ctx context.Context, requesterID string, filter dto.ReviewFilter) ([]dto.ReviewItem, error) {
	if err := s.authorize(requesterID); err != nil {
		return nil, err
	}
	return listReviewItems(ctx, s.rt.Store, filter, "")
}

func (s *ReviewService) ApproveDeposit(ctx context.Context, requesterID, id string) error {
	return s.resolveDeposit(ctx, requesterID, id, constants.ReviewApproved, commentDepositApproved)
}

func (s *ReviewService) RejectDeposit(ctx context.Context, requesterID, id, reason string) error {
	return s.resolveDeposit(ctx, requesterID, id, constants.ReviewRejected, commentOr(reason, commentDepositRejected))
}

func (s *ReviewService) resolveDeposit(
	ctx context.Context,
	requesterID string,
	id string,
	status constants.ReviewStatus,
	comment string,
) error {
	if err := s.authorize(requesterID); err != nil {
		return err
	}

	var userID string
	err := s.rt.Store.Transaction(ctx, func(tx *repository.Store) error {
		trx, err := tx.Deposits.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if trx.Status != constants.ReviewPending {
			return apperrors.ErrAlreadyProcessed
		}
		userID = trx.UserID

		if err := tx.Deposits.Resolve(ctx, id, status, comment, s.rt.now()); err != nil {
			return err
		}
		if status == constants.ReviewApproved {
			return credit(ctx, tx, trx.UserID, trx.Amount, constants.ReasonDeposit, trx.ID)
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsException(err) {
			log.WithError(err).WithField("transaction_id", id).Error("failed to resolve deposit")
		}
		return err
	}

	log.WithFields(log.Fields{"transaction_id": id, "status": status}).Info("deposit reviewed")
	s.rt.notify(ctx, constants.TopicTransactions, constants.UserTopic(userID))
	return nil
}

// CompleteWithdrawal finalises the hold taken at submission; no further debit happens here.
func (s *ReviewService) CompleteWithdrawal(ctx context.Context, requesterID, id string) error {
	return s.resolveWithdrawal(ctx, requesterID, id, constants.ReviewCompleted, commentWithdrawalComplete)
}

func (s *ReviewService) RejectWithdrawal(ctx context.Context, requesterID, id, reason string) error {
	return s.resolveWithdrawal(ctx, requesterID, id, constants.ReviewRejected, commentOr(reason, commentWithdrawalRejected))
}

func (s *ReviewService) resolveWithdrawal(
	ctx context.Context,
	requesterID string,
	id string,
	status constants.ReviewStatus,
	comment string,
) error {
	if err := s.authorize(requesterID); err != nil {
		return err
	}

	var userID string
	err := s.rt.Store.Transaction(ctx, func(tx *repository.Store) error {
		w, err := tx.Withdrawals.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if w.Status != constants.ReviewPending {
			return apperrors.ErrAlreadyProcessed
		}
		userID = w.UserID

		if err := tx.Withdrawals.Resolve(ctx, id, status, comment, s.rt.now()); err != nil {
			return err
		}
		if status == constants.ReviewRejected {
			return credit(ctx, tx, w.UserID, w.RequestedAmount, constants.ReasonWithdrawalRefund, w.ID)
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsException(err) {
			log.WithError(err).WithField("transaction_id", id).Error("failed to resolve withdrawal")
		}
		return err
	}

	log.WithFields(log.Fields{"transaction_id": id, "status": status}).Info("withdrawal reviewed")
	s.rt.notify(ctx, constants.TopicTransactions, constants.UserTopic(userID))
	return nil
}

func commentOr(reason, fallback string) string {
	if r := strings.TrimSpace(reason); r != "" {
		return r
	}
	return fallback
}
