package errors

import "net/http"

var ErrGroupNotFound = &Exception{
	Message:    "group not found",
	StatusCode: http.StatusNotFound,
}

var ErrGroupFull = &Exception{
	Message:    "Group is full",
	StatusCode: http.StatusConflict,
}

var ErrGroupExpired = &Exception{
	Message:    "group has expired",
	StatusCode: http.StatusConflict,
}

var ErrNotGroupCreator = &Exception{
	Message:    "only the group creator can delete this group",
	StatusCode: http.StatusForbidden,
}

var ErrConfirmationRequired = &Exception{
	Message:    "deleting a group must be confirmed",
	StatusCode: http.StatusBadRequest,
}
