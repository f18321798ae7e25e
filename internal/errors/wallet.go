package errors

import "net/http"

var ErrInsufficientBalance = &Exception{
	Message:    "insufficient wallet balance",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrInvalidAmount = &Exception{
	Message:    "amount must be positive",
	StatusCode: http.StatusBadRequest,
}

var ErrDuplicateLedgerEntry = &Exception{
	Message:    "wallet change already recorded",
	StatusCode: http.StatusConflict,
}
