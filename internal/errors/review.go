package errors

import "net/http"

var ErrTransactionNotFound = &Exception{
	Message:    "transaction not found",
	StatusCode: http.StatusNotFound,
}

var ErrWithdrawalNotFound = &Exception{
	Message:    "withdrawal not found",
	StatusCode: http.StatusNotFound,
}

var ErrAlreadyProcessed = &Exception{
	Message:    "this request has already been processed",
	StatusCode: http.StatusConflict,
}

var ErrDuplicateUTR = &Exception{
	Message:    "this UTR number has already been submitted",
	StatusCode: http.StatusConflict,
}
