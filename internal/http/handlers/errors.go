package handlers

import (
	"errors"

	"github.com/naseej-app/internal/http/response"
	"github.com/naseej-app/internal/service"
	"github.com/naseej-app/internal/workflow"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds one business error to its response code.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

var commonErrorRules = []mappedHandlerError{
	{target: service.ErrRequestNotFound, code: response.CodeNotFound, msg: "request not found"},
	{target: service.ErrItemNotFound, code: response.CodeNotFound, msg: "item not found"},
	{target: service.ErrStatusNotFound, code: response.CodeNotFound, msg: "status not found"},
	{target: service.ErrNotificationNotFound, code: response.CodeNotFound, msg: "notification not found"},
	{target: service.ErrStoreNotFound, code: response.CodeBadRequest, msg: "no store is linked to this account"},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: "operation not permitted"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrDisplayOrderTaken, code: response.CodeConflict, msg: "display order is already in use"},
	{target: service.ErrStatusInUse, code: response.CodeBadRequest, msg: "status is referenced by existing items"},
	{target: service.ErrConcurrentTransition, code: response.CodeConflict, msg: "the request was modified concurrently, try again"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, msg: "captcha verification failed"},
	{target: service.ErrEmailTaken, code: response.CodeConflict, msg: "email is already registered"},
	{target: workflow.ErrInvalidTransition, code: response.CodeBadRequest, msg: "this status change is not allowed from the current status"},
	{target: workflow.ErrUnknownState, code: response.CodeBadRequest, msg: "the request carries an unknown status"},
}

// respondServiceError maps a business error onto the envelope; anything
// unmapped logs and degrades to a 500.
func respondServiceError(c *gin.Context, err error) {
	for _, rule := range commonErrorRules {
		if errors.Is(err, rule.target) {
			if errors.Is(err, service.ErrInvalidInput) {
				// ErrInvalidInput is usually wrapped with the offending
				// field; show the full message.
				response.Error(c, rule.code, err.Error())
				return
			}
			response.Error(c, rule.code, rule.msg)
			return
		}
	}
	requestLog(c).Errorw("handler_error", "error", err)
	response.Error(c, response.CodeInternal, "internal error")
}
