package dto

import "gigcircle.com/gigcircle/internal/constants"

type GroupFilter struct {
	Search     string
	Category   string
	ActiveOnly bool
}

type TaskFilter struct {
	Search string
	Status constants.TaskStatus
}

type ReviewFilter struct {
	Type   constants.TransactionType
	Status constants.ReviewStatus
}
