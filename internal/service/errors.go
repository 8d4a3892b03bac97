package service

import "errors"

// Business errors surfaced to the handler layer, which maps them to
// response codes.
var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrStatusNotFound       = errors.New("status not found")
	ErrStoreNotFound        = errors.New("no store is linked to this account")
	ErrForbidden            = errors.New("operation not permitted for this account")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDisplayOrderTaken    = errors.New("display order is already used by another status")
	ErrStatusInUse          = errors.New("status is referenced by existing items and cannot be deleted")
	ErrConcurrentTransition = errors.New("request was modified concurrently, try again")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrCaptchaInvalid       = errors.New("captcha verification failed")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmailTaken           = errors.New("email is already registered")
)
