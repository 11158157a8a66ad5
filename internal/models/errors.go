package models

import "errors"

// Common errors used throughout the application
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrFundraiserNotFound   = errors.New("fundraiser not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateEntry       = errors.New("duplicate entry")
	ErrBuyingWindowClosed   = errors.New("fundraiser buying window is closed")
)
