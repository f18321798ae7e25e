package errors

import "net/http"

var ErrUnauthenticated = &Exception{
	Message:    "you need to sign in first",
	StatusCode: http.StatusUnauthorized,
}

var ErrAdminOnly = &Exception{
	Message:    "only the administrator can review transactions",
	StatusCode: http.StatusForbidden,
}
