// services/notice.go
package services

import (
	"errors"
	"net/http"

	"match-tracker/utils"
)

// Notice is the transient message a view shows after a failed action.
type Notice struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

const (
	MsgInvalidCredentials = "incorrect user or password"
	MsgAccountConflict    = "username or email already in use"
	MsgNotAuthenticated   = "not authenticated"
	MsgActionFailed       = "could not complete action"
)

// NoticeFor maps any error from a service call to what the user is told.
func NoticeFor(err error) Notice {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return Notice{Status: http.StatusUnauthorized, Message: MsgInvalidCredentials}
	case errors.Is(err, ErrAccountConflict):
		return Notice{Status: http.StatusConflict, Message: MsgAccountConflict}
	case errors.Is(err, ErrNotAuthenticated):
		return Notice{Status: http.StatusUnauthorized, Message: MsgNotAuthenticated}
	case errors.Is(err, ErrInvalidMatch), errors.Is(err, ErrPartialScore):
		return Notice{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, ErrMatchNotFound):
		return Notice{Status: http.StatusNotFound, Message: ErrMatchNotFound.Error()}
	case errors.Is(err, ErrExportDisabled):
		return Notice{Status: http.StatusServiceUnavailable, Message: ErrExportDisabled.Error()}
	}

	switch utils.StatusCode(err) {
	case http.StatusUnauthorized:
		return Notice{Status: http.StatusUnauthorized, Message: MsgNotAuthenticated}
	case http.StatusNotFound:
		return Notice{Status: http.StatusNotFound, Message: ErrMatchNotFound.Error()}
	}
	return Notice{Status: http.StatusBadGateway, Message: MsgActionFailed}
}
