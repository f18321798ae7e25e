package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrNotTaskCreator = &Exception{
	Message:    "only the task creator can do this",
	StatusCode: http.StatusForbidden,
}

var ErrNotTaskAssignee = &Exception{
	Message:    "only the assigned user can do this",
	StatusCode: http.StatusForbidden,
}

var ErrTaskNotOpen = &Exception{
	Message:    "task is no longer open",
	StatusCode: http.StatusConflict,
}

var ErrOwnTask = &Exception{
	Message:    "you cannot apply to your own task",
	StatusCode: http.StatusConflict,
}

var ErrNotAnApplicant = &Exception{
	Message:    "user has not applied to this task",
	StatusCode: http.StatusConflict,
}

var ErrTaskNotAccepted = &Exception{
	Message:    "task is not in progress",
	StatusCode: http.StatusConflict,
}

var ErrTaskNotSubmitted = &Exception{
	Message:    "task has not been marked done by the assignee",
	StatusCode: http.StatusConflict,
}

var ErrTaskAlreadyCompleted = &Exception{
	Message:    "task has already been verified and paid",
	StatusCode: http.StatusConflict,
}

var ErrTaskNotDeletable = &Exception{
	Message:    "task can only be deleted before it is accepted",
	StatusCode: http.StatusConflict,
}
